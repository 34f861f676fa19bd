// Package export renders decoded sessions for people and for other tools.
package export

import (
	"go.trai.ch/graphcache/internal/core/domain"
)

// sessionView is the document shape shared by the structured formats.
type sessionView struct {
	Session string       `json:"session" yaml:"session" cbor:"session"`
	Results []resultView `json:"results" yaml:"results" cbor:"results"`
}

type resultView struct {
	ID         int64          `json:"id" yaml:"id" cbor:"id"`
	Module     string         `json:"module" yaml:"module" cbor:"module"`
	Reasons    []reasonView   `json:"reasons,omitempty" yaml:"reasons,omitempty" cbor:"reasons,omitempty"`
	Component  componentView  `json:"component" yaml:"component" cbor:"component"`
	Variant    string         `json:"variant" yaml:"variant" cbor:"variant"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty" cbor:"attributes,omitempty"`
	Repository *string        `json:"repository,omitempty" yaml:"repository,omitempty" cbor:"repository,omitempty"`
}

type reasonView struct {
	Cause       string `json:"cause" yaml:"cause" cbor:"cause"`
	Description string `json:"description" yaml:"description" cbor:"description"`
}

type componentView struct {
	Kind string `json:"kind" yaml:"kind" cbor:"kind"`
	Name string `json:"name" yaml:"name" cbor:"name"`
}

func newSessionViews(sessions []domain.SessionResults) []sessionView {
	views := make([]sessionView, len(sessions))
	for i, s := range sessions {
		results := make([]resultView, len(s.Results))
		for j, r := range s.Results {
			results[j] = newResultView(r)
		}
		views[i] = sessionView{Session: s.Session, Results: results}
	}
	return views
}

func newResultView(r domain.DetachedComponentResult) resultView {
	var reasons []reasonView
	for _, d := range r.Reason.Descriptors() {
		reasons = append(reasons, reasonView{Cause: d.Cause.String(), Description: d.Description})
	}

	var attributes map[string]any
	if !r.Attributes.IsEmpty() {
		attributes = r.Attributes.Map()
	}

	return resultView{
		ID:         r.ID,
		Module:     r.Module.String(),
		Reasons:    reasons,
		Component:  componentView{Kind: componentKind(r.Component), Name: displayName(r.Component)},
		Variant:    r.Variant,
		Attributes: attributes,
		Repository: r.Repository,
	}
}

func componentKind(id domain.ComponentIdentifier) string {
	switch id.(type) {
	case domain.ModuleComponentIdentifier:
		return "module"
	case domain.ProjectComponentIdentifier:
		return "project"
	case domain.LibraryBinaryIdentifier:
		return "library"
	case domain.OpaqueComponentIdentifier:
		return "opaque"
	default:
		return "unknown"
	}
}

func displayName(id domain.ComponentIdentifier) string {
	if id == nil {
		return ""
	}
	return id.DisplayName()
}
