package codec

import (
	"fmt"

	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/serialize"
	"go.trai.ch/zerr"
)

// Component identifier kinds. The values are written as the first byte of every
// identifier and must not change.
const (
	componentModule  byte = 0
	componentProject byte = 1
	componentLibrary byte = 2
	componentOpaque  byte = 3
)

// ComponentIdentifierSerializer writes a kind byte followed by the kind's fields.
type ComponentIdentifierSerializer struct {
	ids *ModuleVersionIdentifierSerializer
}

var _ serialize.Serializer[domain.ComponentIdentifier] = (*ComponentIdentifierSerializer)(nil)

// NewComponentIdentifierSerializer creates a ComponentIdentifierSerializer.
func NewComponentIdentifierSerializer() *ComponentIdentifierSerializer {
	return &ComponentIdentifierSerializer{ids: NewModuleVersionIdentifierSerializer()}
}

// Write writes the identifier. Identifier kinds other than the four domain kinds are rejected.
func (s *ComponentIdentifierSerializer) Write(e *serialize.Encoder, v domain.ComponentIdentifier) error {
	switch id := v.(type) {
	case domain.ModuleComponentIdentifier:
		if err := e.WriteByte(componentModule); err != nil {
			return err
		}
		return s.ids.Write(e, domain.ModuleVersionIdentifier{Module: id.Module, Version: id.Version})
	case domain.ProjectComponentIdentifier:
		if err := e.WriteByte(componentProject); err != nil {
			return err
		}
		return writeStrings(e, id.BuildPath, id.ProjectPath, id.ProjectName)
	case domain.LibraryBinaryIdentifier:
		if err := e.WriteByte(componentLibrary); err != nil {
			return err
		}
		return writeStrings(e, id.ProjectPath, id.LibraryName, id.Variant)
	case domain.OpaqueComponentIdentifier:
		if err := e.WriteByte(componentOpaque); err != nil {
			return err
		}
		return e.WriteString(id.Name)
	default:
		err := zerr.Wrap(domain.ErrUnsupportedComponentIdentifier, "cannot encode component identifier")
		return zerr.With(err, "type", fmt.Sprintf("%T", v))
	}
}

// Read reads an identifier written by Write.
func (s *ComponentIdentifierSerializer) Read(d *serialize.Decoder) (domain.ComponentIdentifier, error) {
	kind, err := d.ReadByte()
	if err != nil {
		return nil, err
	}

	switch kind {
	case componentModule:
		id, err := s.ids.Read(d)
		if err != nil {
			return nil, err
		}
		return domain.ModuleComponentFor(id), nil
	case componentProject:
		f, err := readStrings(d, 3)
		if err != nil {
			return nil, err
		}
		return domain.ProjectComponentIdentifier{BuildPath: f[0], ProjectPath: f[1], ProjectName: f[2]}, nil
	case componentLibrary:
		f, err := readStrings(d, 3)
		if err != nil {
			return nil, err
		}
		return domain.LibraryBinaryIdentifier{ProjectPath: f[0], LibraryName: f[1], Variant: f[2]}, nil
	case componentOpaque:
		name, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		return domain.OpaqueComponentIdentifier{Name: name}, nil
	default:
		return nil, zerr.With(d.Malformed("unknown component identifier kind"), "tag", kind)
	}
}

func writeStrings(e *serialize.Encoder, values ...string) error {
	for _, v := range values {
		if err := e.WriteString(v); err != nil {
			return err
		}
	}
	return nil
}

func readStrings(d *serialize.Decoder, n int) ([]string, error) {
	values := make([]string, n)
	for i := range values {
		v, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
