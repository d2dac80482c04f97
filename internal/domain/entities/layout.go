package entities

import "path/filepath"

// ProjectLayout locates the Android project of a Flutter app
type ProjectLayout struct {
	RootDir    string // the Android root project, usually <flutter>/android
	ModuleName string // the app module directory under RootDir
}

// Abs returns the absolute Android root directory
func (l ProjectLayout) Abs() string {
	abs, err := filepath.Abs(l.RootDir)
	if err != nil {
		return filepath.Clean(l.RootDir)
	}
	return abs
}

// ModuleDir returns the absolute app module directory
func (l ProjectLayout) ModuleDir() string {
	name := l.ModuleName
	if name == "" {
		name = "app"
	}
	return filepath.Join(l.Abs(), name)
}

// RootFile resolves a path against the Android root directory
func (l ProjectLayout) RootFile(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(l.Abs(), rel)
}

// ModuleFile resolves a path against the app module directory
func (l ProjectLayout) ModuleFile(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(l.ModuleDir(), rel)
}

// FlutterRoot resolves the flutter source directory declared relative to the module
func (l ProjectLayout) FlutterRoot(source string) string {
	return l.ModuleFile(source)
}
