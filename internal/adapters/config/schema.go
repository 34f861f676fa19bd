package config

// ResolutionFile represents the structure of the resolution.yaml file.
type ResolutionFile struct {
	Version    string          `yaml:"version"`
	Components []*ComponentDTO `yaml:"components"`
}

// ComponentDTO represents one resolved component in the resolution file.
type ComponentDTO struct {
	ID         *int64          `yaml:"id"`
	Module     string          `yaml:"module"`
	Reasons    []ReasonDTO     `yaml:"reasons"`
	Component  *ComponentIDDTO `yaml:"component"`
	Variant    string          `yaml:"variant"`
	Attributes map[string]any  `yaml:"attributes"`
	Repository *string         `yaml:"repository"`
}

// ReasonDTO represents one selection descriptor.
type ReasonDTO struct {
	Cause       string `yaml:"cause"`
	Description string `yaml:"description"`
}

// ComponentIDDTO holds exactly one of the component identifier kinds.
type ComponentIDDTO struct {
	Module  string      `yaml:"module"`
	Project *ProjectDTO `yaml:"project"`
	Library *LibraryDTO `yaml:"library"`
	Opaque  string      `yaml:"opaque"`
}

// ProjectDTO identifies a project of a build.
type ProjectDTO struct {
	Build string `yaml:"build"`
	Path  string `yaml:"path"`
	Name  string `yaml:"name"`
}

// LibraryDTO identifies a native library binary.
type LibraryDTO struct {
	Project string `yaml:"project"`
	Library string `yaml:"library"`
	Variant string `yaml:"variant"`
}
