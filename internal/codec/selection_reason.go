package codec

import (
	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/serialize"
	"go.trai.ch/zerr"
)

// SelectionReasonSerializer writes selection reasons, replacing descriptions it has
// already written with a back-reference into a per-session table.
//
// The table makes the serializer stateful. A stream produced after N writes can only
// be read by a serializer that has read the same N values first, so the owner must
// call Reset whenever a new independent session starts. A SelectionReasonSerializer
// must not be shared between goroutines.
type SelectionReasonSerializer struct {
	// write side: description -> index
	indexes map[string]int
	// read side: index -> description
	descriptions []string
}

var _ serialize.Serializer[domain.ComponentSelectionReason] = (*SelectionReasonSerializer)(nil)

// NewSelectionReasonSerializer creates a fresh SelectionReasonSerializer.
// The zero value is also fresh and ready to use.
func NewSelectionReasonSerializer() *SelectionReasonSerializer {
	return &SelectionReasonSerializer{}
}

// Write writes the descriptor count and, per descriptor, the cause byte and the description.
func (s *SelectionReasonSerializer) Write(e *serialize.Encoder, v domain.ComponentSelectionReason) error {
	descriptors := v.Descriptors()
	if err := e.WriteSmallInt(len(descriptors)); err != nil {
		return err
	}
	for _, desc := range descriptors {
		if !desc.Cause.Valid() {
			return zerr.With(zerr.Wrap(domain.ErrUnknownSelectionCause, "cannot encode selection reason"), "cause", uint8(desc.Cause))
		}
		if err := e.WriteByte(byte(desc.Cause)); err != nil {
			return err
		}
		if err := s.writeDescription(e, desc.Description); err != nil {
			return err
		}
	}
	return nil
}

func (s *SelectionReasonSerializer) writeDescription(e *serialize.Encoder, description string) error {
	if index, ok := s.indexes[description]; ok {
		if err := e.WriteBoolean(true); err != nil {
			return err
		}
		return e.WriteSmallInt(index)
	}
	if err := e.WriteBoolean(false); err != nil {
		return err
	}
	if err := e.WriteString(description); err != nil {
		return err
	}
	if s.indexes == nil {
		s.indexes = make(map[string]int)
	}
	s.indexes[description] = len(s.indexes)
	return nil
}

// Read reads a reason written by Write within the same session.
func (s *SelectionReasonSerializer) Read(d *serialize.Decoder) (domain.ComponentSelectionReason, error) {
	count, err := d.ReadSmallInt()
	if err != nil {
		return domain.ComponentSelectionReason{}, err
	}
	if count == 0 {
		return domain.ComponentSelectionReason{}, nil
	}

	descriptors := make([]domain.SelectionDescriptor, 0, min(count, domain.SelectionCauseCount))
	for range count {
		b, err := d.ReadByte()
		if err != nil {
			return domain.ComponentSelectionReason{}, err
		}
		cause := domain.SelectionCause(b)
		if !cause.Valid() {
			return domain.ComponentSelectionReason{}, zerr.With(d.Malformed("unknown selection cause"), "cause", b)
		}
		description, err := s.readDescription(d)
		if err != nil {
			return domain.ComponentSelectionReason{}, err
		}
		descriptors = append(descriptors, domain.SelectionDescriptor{Cause: cause, Description: description})
	}
	return domain.NewSelectionReason(descriptors...), nil
}

func (s *SelectionReasonSerializer) readDescription(d *serialize.Decoder) (string, error) {
	known, err := d.ReadBoolean()
	if err != nil {
		return "", err
	}
	if known {
		index, err := d.ReadSmallInt()
		if err != nil {
			return "", err
		}
		if index >= len(s.descriptions) {
			err := zerr.With(d.Malformed("description reference not seen in this session"), "index", index)
			return "", zerr.With(err, "known", len(s.descriptions))
		}
		return s.descriptions[index], nil
	}
	description, err := d.ReadString()
	if err != nil {
		return "", err
	}
	s.descriptions = append(s.descriptions, description)
	return description, nil
}

// Reset forgets every description seen so far and releases the tables. It performs
// no I/O and may be called at any time, including before first use.
func (s *SelectionReasonSerializer) Reset() {
	s.indexes = nil
	s.descriptions = nil
}
