package config

import "go.trai.ch/graphcache/internal/core/domain"

// variantName is the variant of a loaded component.
type variantName string

func (v variantName) DisplayName() string { return string(v) }

// resolvedComponent is a domain.ComponentResult backed by a resolution file entry.
type resolvedComponent struct {
	id         int64
	module     domain.ModuleVersionIdentifier
	reason     domain.ComponentSelectionReason
	component  domain.ComponentIdentifier
	variant    variantName
	attributes domain.AttributeContainer
	repository *string
}

var _ domain.ComponentResult = (*resolvedComponent)(nil)

func (c *resolvedComponent) ResultID() int64                                  { return c.id }
func (c *resolvedComponent) ModuleVersion() domain.ModuleVersionIdentifier    { return c.module }
func (c *resolvedComponent) SelectionReason() domain.ComponentSelectionReason { return c.reason }
func (c *resolvedComponent) ComponentID() domain.ComponentIdentifier          { return c.component }
func (c *resolvedComponent) VariantName() domain.Describable                  { return c.variant }
func (c *resolvedComponent) VariantAttributes() domain.AttributeContainer     { return c.attributes }

func (c *resolvedComponent) RepositoryID() (string, bool) {
	if c.repository == nil {
		return "", false
	}
	return *c.repository, true
}
