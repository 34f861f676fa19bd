// Package config provides the resolution file loader for graphcache.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the resolution file version this loader understands.
const SupportedVersion = "1"

// Loader implements ports.ResolutionLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the resolution file at path. A directory is resolved to the
// resolution.yaml file inside it.
func (l *Loader) Load(path string) ([]domain.ComponentResult, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, domain.ResolutionFileName)
	}

	var file ResolutionFile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, err
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, reading it as version %s", path, file.Version, SupportedVersion))
	}

	results := make([]domain.ComponentResult, 0, len(file.Components))
	seen := make(map[int64]int, len(file.Components))
	for i, dto := range file.Components {
		r, err := toComponentResult(dto)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "index", i), "path", path)
		}
		if prev, ok := seen[r.id]; ok {
			err := zerr.With(zerr.Wrap(domain.ErrDuplicateResultID, "result ids must be unique within a resolution"), "id", r.id)
			err = zerr.With(err, "index", i)
			return nil, zerr.With(err, "previous_index", prev)
		}
		seen[r.id] = i
		results = append(results, r)
	}
	return results, nil
}

func toComponentResult(dto *ComponentDTO) (*resolvedComponent, error) {
	if dto == nil {
		return nil, zerr.Wrap(domain.ErrInvalidComponent, "empty component entry")
	}
	if dto.ID == nil {
		return nil, zerr.Wrap(domain.ErrInvalidComponent, "missing id")
	}
	if dto.Variant == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidComponent, "missing variant"), "id", *dto.ID)
	}

	module, err := domain.ParseModuleVersion(dto.Module)
	if err != nil {
		return nil, zerr.With(err, "id", *dto.ID)
	}

	reason, err := toSelectionReason(dto.Reasons)
	if err != nil {
		return nil, zerr.With(err, "id", *dto.ID)
	}

	component, err := toComponentIdentifier(dto.Component, module)
	if err != nil {
		return nil, zerr.With(err, "id", *dto.ID)
	}

	attributes, err := toAttributes(dto.Attributes)
	if err != nil {
		return nil, zerr.With(err, "id", *dto.ID)
	}

	return &resolvedComponent{
		id:         *dto.ID,
		module:     module,
		reason:     reason,
		component:  component,
		variant:    variantName(dto.Variant),
		attributes: attributes,
		repository: dto.Repository,
	}, nil
}

func toSelectionReason(reasons []ReasonDTO) (domain.ComponentSelectionReason, error) {
	descriptors := make([]domain.SelectionDescriptor, 0, len(reasons))
	for _, r := range reasons {
		cause, err := domain.ParseSelectionCause(r.Cause)
		if err != nil {
			return domain.ComponentSelectionReason{}, err
		}
		descriptors = append(descriptors, domain.DescribedAs(cause, r.Description))
	}
	return domain.NewSelectionReason(descriptors...), nil
}

func toComponentIdentifier(dto *ComponentIDDTO, module domain.ModuleVersionIdentifier) (domain.ComponentIdentifier, error) {
	if dto == nil {
		return domain.ModuleComponentFor(module), nil
	}

	var ids []domain.ComponentIdentifier
	if dto.Module != "" {
		mv, err := domain.ParseModuleVersion(dto.Module)
		if err != nil {
			return nil, err
		}
		ids = append(ids, domain.ModuleComponentFor(mv))
	}
	if dto.Project != nil {
		ids = append(ids, domain.ProjectComponentIdentifier{
			BuildPath:   dto.Project.Build,
			ProjectPath: dto.Project.Path,
			ProjectName: dto.Project.Name,
		})
	}
	if dto.Library != nil {
		ids = append(ids, domain.LibraryBinaryIdentifier{
			ProjectPath: dto.Library.Project,
			LibraryName: dto.Library.Library,
			Variant:     dto.Library.Variant,
		})
	}
	if dto.Opaque != "" {
		ids = append(ids, domain.OpaqueComponentIdentifier{Name: dto.Opaque})
	}

	if len(ids) != 1 {
		err := zerr.Wrap(domain.ErrInvalidComponent, "component must name exactly one of module, project, library or opaque")
		return nil, zerr.With(err, "kinds", len(ids))
	}
	return ids[0], nil
}

func toAttributes(values map[string]any) (domain.AttributeContainer, error) {
	attrs := domain.EmptyAttributes()
	for name, value := range values {
		switch value.(type) {
		case string, bool, int, int64:
		default:
			err := zerr.Wrap(domain.ErrUnsupportedAttributeType, "attribute values must be strings, booleans or integers")
			err = zerr.With(err, "attribute", name)
			return domain.AttributeContainer{}, zerr.With(err, "type", fmt.Sprintf("%T", value))
		}
		attrs = attrs.With(name, value)
	}
	return attrs, nil
}

func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is provided by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.With(errors.Join(domain.ErrConfigParseFailed, parseErr), "path", path)
	}

	return nil
}
