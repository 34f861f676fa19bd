package codec

import (
	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/serialize"
)

// ModuleVersionIdentifierSerializer writes a module version as its group, name and version strings.
type ModuleVersionIdentifierSerializer struct{}

var _ serialize.Serializer[domain.ModuleVersionIdentifier] = (*ModuleVersionIdentifierSerializer)(nil)

// NewModuleVersionIdentifierSerializer creates a ModuleVersionIdentifierSerializer.
func NewModuleVersionIdentifierSerializer() *ModuleVersionIdentifierSerializer {
	return &ModuleVersionIdentifierSerializer{}
}

// Write writes group, name and version.
func (s *ModuleVersionIdentifierSerializer) Write(e *serialize.Encoder, v domain.ModuleVersionIdentifier) error {
	if err := e.WriteString(v.Group()); err != nil {
		return err
	}
	if err := e.WriteString(v.Name()); err != nil {
		return err
	}
	return e.WriteString(v.Version.String())
}

// Read reads group, name and version and interns them.
func (s *ModuleVersionIdentifierSerializer) Read(d *serialize.Decoder) (domain.ModuleVersionIdentifier, error) {
	group, err := d.ReadString()
	if err != nil {
		return domain.ModuleVersionIdentifier{}, err
	}
	name, err := d.ReadString()
	if err != nil {
		return domain.ModuleVersionIdentifier{}, err
	}
	version, err := d.ReadString()
	if err != nil {
		return domain.ModuleVersionIdentifier{}, err
	}
	return domain.NewModuleVersionIdentifier(group, name, version), nil
}
