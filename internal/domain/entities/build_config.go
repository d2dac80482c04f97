package entities

// VersionInfo carries the SDK levels and app version supplied by the Flutter toolchain
type VersionInfo struct {
	MinSDK      int
	TargetSDK   int
	CompileSDK  int
	VersionCode int
	VersionName string
}

// BuildConfiguration is the resolved record consumed once per build invocation
type BuildConfiguration struct {
	InvocationID  string
	Namespace     string
	ApplicationID string
	NDKVersion    string
	JavaVersion   int
	FlutterSource string
	Versions      VersionInfo
	Variant       BuildType
	Signing       *SigningConfig
	Dependencies  []Dependency
}
