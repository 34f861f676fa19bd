package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// SelectionCause is the kind of rule that selected a component version.
// The numeric values are written to the wire as a single byte and must not be reordered.
type SelectionCause uint8

const (
	// CauseRequested marks a version that was requested directly.
	CauseRequested SelectionCause = iota
	// CauseRoot marks the root component of the graph.
	CauseRoot
	// CauseForced marks a version that was forced.
	CauseForced
	// CauseConflictResolution marks a version chosen while resolving a version conflict.
	CauseConflictResolution
	// CauseSelectedByRule marks a version chosen by a dependency resolve rule.
	CauseSelectedByRule
	// CauseCompositeBuild marks a component substituted by an included build.
	CauseCompositeBuild
	// CauseRejection marks a version chosen because others were rejected.
	CauseRejection
	// CauseConstraint marks a version chosen because of a dependency constraint.
	CauseConstraint
	// CauseByAncestor marks a version chosen by an ancestor in the graph.
	CauseByAncestor
)

var causeNames = [...]string{
	CauseRequested:          "requested",
	CauseRoot:               "root",
	CauseForced:             "forced",
	CauseConflictResolution: "conflict_resolution",
	CauseSelectedByRule:     "selected_by_rule",
	CauseCompositeBuild:     "composite_build",
	CauseRejection:          "rejection",
	CauseConstraint:         "constraint",
	CauseByAncestor:         "by_ancestor",
}

var defaultReasons = [...]string{
	CauseRequested:          "requested",
	CauseRoot:               "root",
	CauseForced:             "forced",
	CauseConflictResolution: "conflict resolution",
	CauseSelectedByRule:     "selected by rule",
	CauseCompositeBuild:     "composite build substitution",
	CauseRejection:          "rejection",
	CauseConstraint:         "constraint",
	CauseByAncestor:         "by ancestor",
}

// SelectionCauseCount is the number of known selection causes.
const SelectionCauseCount = len(causeNames)

// Valid reports whether c is a known cause.
func (c SelectionCause) Valid() bool {
	return int(c) < SelectionCauseCount
}

// String returns the snake_case name of the cause.
func (c SelectionCause) String() string {
	if !c.Valid() {
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
	return causeNames[c]
}

// DefaultReason returns the description used when none is given.
func (c SelectionCause) DefaultReason() string {
	if !c.Valid() {
		return ""
	}
	return defaultReasons[c]
}

// ParseSelectionCause parses the snake_case name of a cause.
func ParseSelectionCause(name string) (SelectionCause, error) {
	for i, n := range causeNames {
		if n == name {
			return SelectionCause(i), nil
		}
	}
	return 0, zerr.With(zerr.Wrap(ErrUnknownSelectionCause, "cannot parse selection cause"), "cause", name)
}

// SelectionDescriptor is one entry of a selection reason.
type SelectionDescriptor struct {
	Cause       SelectionCause
	Description string
}

// NewSelectionDescriptor creates a descriptor with the cause's default description.
func NewSelectionDescriptor(cause SelectionCause) SelectionDescriptor {
	return SelectionDescriptor{Cause: cause, Description: cause.DefaultReason()}
}

// DescribedAs creates a descriptor with a custom description.
// An empty description falls back to the default.
func DescribedAs(cause SelectionCause, description string) SelectionDescriptor {
	if description == "" {
		return NewSelectionDescriptor(cause)
	}
	return SelectionDescriptor{Cause: cause, Description: description}
}

// HasCustomDescription reports whether the description differs from the cause default.
func (d SelectionDescriptor) HasCustomDescription() bool {
	return d.Description != d.Cause.DefaultReason()
}

// String returns the description, or the cause name with the custom description in parentheses.
func (d SelectionDescriptor) String() string {
	if d.HasCustomDescription() {
		return d.Cause.DefaultReason() + " (" + d.Description + ")"
	}
	return d.Description
}

// ComponentSelectionReason explains why a component version was chosen.
// Reasons are drawn from a small set of descriptions, which is why their encoding is deduplicated.
type ComponentSelectionReason struct {
	descriptors []SelectionDescriptor
}

// NewSelectionReason creates a reason from the given descriptors, in order.
func NewSelectionReason(descriptors ...SelectionDescriptor) ComponentSelectionReason {
	if len(descriptors) == 0 {
		return ComponentSelectionReason{}
	}
	d := make([]SelectionDescriptor, len(descriptors))
	copy(d, descriptors)
	return ComponentSelectionReason{descriptors: d}
}

// Requested returns the reason for a directly requested version.
func Requested() ComponentSelectionReason {
	return NewSelectionReason(NewSelectionDescriptor(CauseRequested))
}

// Root returns the reason for the root component.
func Root() ComponentSelectionReason {
	return NewSelectionReason(NewSelectionDescriptor(CauseRoot))
}

// Forced returns the reason for a forced version.
func Forced() ComponentSelectionReason {
	return NewSelectionReason(NewSelectionDescriptor(CauseForced))
}

// ConflictResolution returns the reason for a version chosen by conflict resolution.
func ConflictResolution(description string) ComponentSelectionReason {
	return NewSelectionReason(DescribedAs(CauseConflictResolution, description))
}

// Descriptors returns a copy of the reason's descriptors.
func (r ComponentSelectionReason) Descriptors() []SelectionDescriptor {
	if len(r.descriptors) == 0 {
		return nil
	}
	d := make([]SelectionDescriptor, len(r.descriptors))
	copy(d, r.descriptors)
	return d
}

// Len returns the number of descriptors.
func (r ComponentSelectionReason) Len() int {
	return len(r.descriptors)
}

// Has reports whether any descriptor has the given cause.
func (r ComponentSelectionReason) Has(cause SelectionCause) bool {
	for _, d := range r.descriptors {
		if d.Cause == cause {
			return true
		}
	}
	return false
}

// IsRequested reports whether the version was requested directly.
func (r ComponentSelectionReason) IsRequested() bool { return r.Has(CauseRequested) }

// IsForced reports whether the version was forced.
func (r ComponentSelectionReason) IsForced() bool { return r.Has(CauseForced) }

// IsConflictResolution reports whether a conflict was resolved to pick the version.
func (r ComponentSelectionReason) IsConflictResolution() bool {
	return r.Has(CauseConflictResolution)
}

// IsSelectedByRule reports whether a resolve rule picked the version.
func (r ComponentSelectionReason) IsSelectedByRule() bool { return r.Has(CauseSelectedByRule) }

// IsConstrained reports whether a constraint picked the version.
func (r ComponentSelectionReason) IsConstrained() bool { return r.Has(CauseConstraint) }

// String joins the descriptors with " and ".
func (r ComponentSelectionReason) String() string {
	parts := make([]string, len(r.descriptors))
	for i, d := range r.descriptors {
		parts[i] = d.String()
	}
	return strings.Join(parts, " and ")
}
