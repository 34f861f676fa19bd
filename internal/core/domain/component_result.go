package domain

// Describable is anything with a human-readable display name.
type Describable interface {
	DisplayName() string
}

// DisplayName is a plain string Describable.
type DisplayName string

// DisplayName returns the string itself.
func (d DisplayName) DisplayName() string {
	return string(d)
}

// ComponentResult is one resolved node of a dependency graph as seen by the
// resolution engine. The engine owns the implementation; this module only reads it.
type ComponentResult interface {
	// ResultID identifies the node within one resolution. It is not unique across resolutions.
	ResultID() int64
	ModuleVersion() ModuleVersionIdentifier
	SelectionReason() ComponentSelectionReason
	ComponentID() ComponentIdentifier
	VariantName() Describable
	VariantAttributes() AttributeContainer
	// RepositoryID returns the repository that supplied the component, if any.
	RepositoryID() (string, bool)
}

// DetachedComponentResult is a ComponentResult that holds plain values only.
// It is what the codec produces on read and is safe to store or hand to another process.
type DetachedComponentResult struct {
	ID         int64
	Module     ModuleVersionIdentifier
	Reason     ComponentSelectionReason
	Component  ComponentIdentifier
	Variant    string
	Attributes AttributeContainer
	// Repository is nil when the component was resolved without a repository.
	Repository *string
}

var _ ComponentResult = DetachedComponentResult{}

// ResultID returns the result id.
func (r DetachedComponentResult) ResultID() int64 { return r.ID }

// ModuleVersion returns the resolved module version.
func (r DetachedComponentResult) ModuleVersion() ModuleVersionIdentifier { return r.Module }

// SelectionReason returns why the version was selected.
func (r DetachedComponentResult) SelectionReason() ComponentSelectionReason { return r.Reason }

// ComponentID returns the component identifier.
func (r DetachedComponentResult) ComponentID() ComponentIdentifier { return r.Component }

// VariantName returns the variant display name.
func (r DetachedComponentResult) VariantName() Describable { return DisplayName(r.Variant) }

// VariantAttributes returns the variant attributes.
func (r DetachedComponentResult) VariantAttributes() AttributeContainer { return r.Attributes }

// RepositoryID returns the repository id, if present.
func (r DetachedComponentResult) RepositoryID() (string, bool) {
	if r.Repository == nil {
		return "", false
	}
	return *r.Repository, true
}

// Detach copies any ComponentResult into a DetachedComponentResult.
// The variant name is normalized to its display string.
func Detach(r ComponentResult) DetachedComponentResult {
	d := DetachedComponentResult{
		ID:         r.ResultID(),
		Module:     r.ModuleVersion(),
		Reason:     NewSelectionReason(r.SelectionReason().Descriptors()...),
		Component:  r.ComponentID(),
		Attributes: r.VariantAttributes(),
	}
	if v := r.VariantName(); v != nil {
		d.Variant = v.DisplayName()
	}
	if repo, ok := r.RepositoryID(); ok {
		d.Repository = &repo
	}
	return d
}

// SessionResults groups the detached results read back from one session.
type SessionResults struct {
	Session string
	Results []DetachedComponentResult
}
