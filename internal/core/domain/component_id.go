package domain

// ComponentIdentifier identifies a resolved component. Its shape depends on where the
// component came from: an external module, a project of the build, a native library
// binary, or something only known by its display name.
type ComponentIdentifier interface {
	DisplayName() string
	componentIdentifier()
}

// ModuleComponentIdentifier identifies a component published as a module.
type ModuleComponentIdentifier struct {
	Module  ModuleIdentifier
	Version InternedString
}

// NewModuleComponentIdentifier creates a ModuleComponentIdentifier.
func NewModuleComponentIdentifier(group, name, version string) ModuleComponentIdentifier {
	return ModuleComponentIdentifier{
		Module:  NewModuleIdentifier(group, name),
		Version: NewInternedString(version),
	}
}

// ModuleComponentFor creates the component identifier of a module version.
func ModuleComponentFor(id ModuleVersionIdentifier) ModuleComponentIdentifier {
	return ModuleComponentIdentifier{Module: id.Module, Version: id.Version}
}

// DisplayName returns group:name:version.
func (m ModuleComponentIdentifier) DisplayName() string {
	return m.Module.String() + ":" + m.Version.String()
}

func (ModuleComponentIdentifier) componentIdentifier() {}

// ProjectComponentIdentifier identifies a project of a (possibly included) build.
type ProjectComponentIdentifier struct {
	BuildPath   string
	ProjectPath string
	ProjectName string
}

// DisplayName returns "project <path>", prefixed with the build path for included builds.
func (p ProjectComponentIdentifier) DisplayName() string {
	if p.BuildPath == "" || p.BuildPath == ":" {
		return "project " + p.ProjectPath
	}
	return "project " + p.BuildPath + p.ProjectPath
}

func (ProjectComponentIdentifier) componentIdentifier() {}

// LibraryBinaryIdentifier identifies one binary variant of a native library.
type LibraryBinaryIdentifier struct {
	ProjectPath string
	LibraryName string
	Variant     string
}

// DisplayName returns "project <path> library <name> variant <variant>".
func (l LibraryBinaryIdentifier) DisplayName() string {
	return "project " + l.ProjectPath + " library " + l.LibraryName + " variant " + l.Variant
}

func (LibraryBinaryIdentifier) componentIdentifier() {}

// OpaqueComponentIdentifier is a component identified only by its display name.
type OpaqueComponentIdentifier struct {
	Name string
}

// DisplayName returns the name.
func (o OpaqueComponentIdentifier) DisplayName() string {
	return o.Name
}

func (OpaqueComponentIdentifier) componentIdentifier() {}
