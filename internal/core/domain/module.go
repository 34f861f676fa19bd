// Package domain contains the core domain models of a resolved dependency graph node.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// ModuleIdentifier identifies a module independent of its version.
type ModuleIdentifier struct {
	Group InternedString
	Name  InternedString
}

// NewModuleIdentifier creates a ModuleIdentifier with interned coordinates.
func NewModuleIdentifier(group, name string) ModuleIdentifier {
	return ModuleIdentifier{
		Group: NewInternedString(group),
		Name:  NewInternedString(name),
	}
}

// String returns the module in group:name notation.
func (m ModuleIdentifier) String() string {
	return m.Group.String() + ":" + m.Name.String()
}

// ModuleVersionIdentifier is the resolved module and version of a graph node.
type ModuleVersionIdentifier struct {
	Module  ModuleIdentifier
	Version InternedString
}

// NewModuleVersionIdentifier creates a ModuleVersionIdentifier with interned coordinates.
func NewModuleVersionIdentifier(group, name, version string) ModuleVersionIdentifier {
	return ModuleVersionIdentifier{
		Module:  NewModuleIdentifier(group, name),
		Version: NewInternedString(version),
	}
}

// Group returns the module group.
func (m ModuleVersionIdentifier) Group() string {
	return m.Module.Group.String()
}

// Name returns the module name.
func (m ModuleVersionIdentifier) Name() string {
	return m.Module.Name.String()
}

// String returns the identifier in group:name:version notation.
func (m ModuleVersionIdentifier) String() string {
	return m.Module.String() + ":" + m.Version.String()
}

// ParseModuleVersion parses group:name:version notation.
// The group and name must be non-empty; the version may be empty.
func ParseModuleVersion(notation string) (ModuleVersionIdentifier, error) {
	parts := strings.Split(notation, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return ModuleVersionIdentifier{}, zerr.With(zerr.Wrap(ErrInvalidModuleNotation, "cannot parse module notation"), "notation", notation)
	}
	return NewModuleVersionIdentifier(parts[0], parts[1], parts[2]), nil
}
