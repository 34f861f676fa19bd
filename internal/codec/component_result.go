// Package codec implements the binary codec for resolved dependency graph nodes.
package codec

import (
	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/serialize"
	"go.trai.ch/zerr"
)

// ComponentResultSerializer reads and writes one component result by delegating
// each field to a dedicated serializer, in a fixed order:
//
//	result id | module version | selection reason | component id |
//	variant name | variant attributes | repository id (nullable)
//
// The encoding is positional and carries no field tags. Reading a stream that was
// not written by this serializer, or reading fields out of order, is not detected
// as such: it fails with domain.ErrMalformedStream at best and decodes a wrong value
// at worst.
//
// The selection reason serializer deduplicates descriptions for the lifetime of a
// session. Call Reset between independent sessions; use one instance per goroutine.
type ComponentResultSerializer struct {
	ids        *ModuleVersionIdentifierSerializer
	reasons    *SelectionReasonSerializer
	components *ComponentIdentifierSerializer
	attributes serialize.Serializer[domain.AttributeContainer]
}

// NewComponentResultSerializer creates a ComponentResultSerializer that writes variant
// attributes with the given serializer. A nil serializer selects AttributeContainerSerializer.
func NewComponentResultSerializer(attributes serialize.Serializer[domain.AttributeContainer]) *ComponentResultSerializer {
	if attributes == nil {
		attributes = NewAttributeContainerSerializer()
	}
	return &ComponentResultSerializer{
		ids:        NewModuleVersionIdentifierSerializer(),
		reasons:    NewSelectionReasonSerializer(),
		components: NewComponentIdentifierSerializer(),
		attributes: attributes,
	}
}

// Write writes v. A failure part-way leaves the bytes already written in place.
func (s *ComponentResultSerializer) Write(e *serialize.Encoder, v domain.ComponentResult) error {
	variant := v.VariantName()
	if variant == nil {
		return zerr.With(zerr.Wrap(domain.ErrMissingVariantName, "cannot encode component result"), "result_id", v.ResultID())
	}

	if err := e.WriteSmallLong(v.ResultID()); err != nil {
		return annotate(err, "result_id")
	}
	if err := s.ids.Write(e, v.ModuleVersion()); err != nil {
		return annotate(err, "module_version")
	}
	if err := s.reasons.Write(e, v.SelectionReason()); err != nil {
		return annotate(err, "selection_reason")
	}
	if err := s.components.Write(e, v.ComponentID()); err != nil {
		return annotate(err, "component_id")
	}
	if err := e.WriteString(variant.DisplayName()); err != nil {
		return annotate(err, "variant_name")
	}
	if err := s.attributes.Write(e, v.VariantAttributes()); err != nil {
		return annotate(err, "variant_attributes")
	}

	var repository *string
	if repo, ok := v.RepositoryID(); ok {
		repository = &repo
	}
	if err := e.WriteNullableString(repository); err != nil {
		return annotate(err, "repository_id")
	}
	return nil
}

// Read reads one record and returns it as a new detached result.
func (s *ComponentResultSerializer) Read(d *serialize.Decoder) (domain.DetachedComponentResult, error) {
	var r domain.DetachedComponentResult
	var err error

	if r.ID, err = d.ReadSmallLong(); err != nil {
		return domain.DetachedComponentResult{}, annotate(err, "result_id")
	}
	if r.Module, err = s.ids.Read(d); err != nil {
		return domain.DetachedComponentResult{}, annotate(err, "module_version")
	}
	if r.Reason, err = s.reasons.Read(d); err != nil {
		return domain.DetachedComponentResult{}, annotate(err, "selection_reason")
	}
	if r.Component, err = s.components.Read(d); err != nil {
		return domain.DetachedComponentResult{}, annotate(err, "component_id")
	}
	if r.Variant, err = d.ReadString(); err != nil {
		return domain.DetachedComponentResult{}, annotate(err, "variant_name")
	}
	if r.Attributes, err = s.attributes.Read(d); err != nil {
		return domain.DetachedComponentResult{}, annotate(err, "variant_attributes")
	}
	if r.Repository, err = d.ReadNullableString(); err != nil {
		return domain.DetachedComponentResult{}, annotate(err, "repository_id")
	}
	return r, nil
}

// Reset clears the session state of the selection reason serializer.
// It performs no I/O, is idempotent and is safe to call before first use.
func (s *ComponentResultSerializer) Reset() {
	s.reasons.Reset()
}

// annotate records which field failed on errors raised by the codec itself.
// Errors from the underlying reader or writer are returned unchanged.
func annotate(err error, field string) error {
	if z, ok := err.(*zerr.Error); ok {
		return z.With("field", field)
	}
	return err
}
