package entities

// ModuleDescriptor is the declarative identity of the Android app module
type ModuleDescriptor struct {
	Namespace      string
	ApplicationID  string
	NDKVersion     string
	JavaVersion    int
	FlutterSource  string
	PropertiesFile string
	Release        ReleaseRules
	Dependencies   []DependencyDeclaration
}

// ReleaseRules lists the ordered shrinker rule files for the release variant
type ReleaseRules struct {
	ProguardFiles []ProguardFile
}

// DependencyDeclaration is a dependency as written in the descriptor
type DependencyDeclaration struct {
	Configuration string
	Notation      string
}
