package codec

import (
	"fmt"

	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/serialize"
	"go.trai.ch/zerr"
)

// Attribute value types on the wire.
const (
	attributeString byte = 0
	attributeBool   byte = 1
	attributeInt    byte = 2
)

// AttributeContainerSerializer writes attributes as a count followed by
// name, type byte and value for each attribute in name order.
type AttributeContainerSerializer struct{}

var _ serialize.Serializer[domain.AttributeContainer] = (*AttributeContainerSerializer)(nil)

// NewAttributeContainerSerializer creates an AttributeContainerSerializer.
func NewAttributeContainerSerializer() *AttributeContainerSerializer {
	return &AttributeContainerSerializer{}
}

// Write writes the container. Values are checked before anything is written.
func (s *AttributeContainerSerializer) Write(e *serialize.Encoder, v domain.AttributeContainer) error {
	attrs := v.Attributes()
	for _, a := range attrs {
		switch a.Value.(type) {
		case string, bool, int64:
		default:
			err := zerr.Wrap(domain.ErrUnsupportedAttributeType, "cannot encode attribute")
			err = zerr.With(err, "attribute", a.Name)
			return zerr.With(err, "type", fmt.Sprintf("%T", a.Value))
		}
	}

	if err := e.WriteSmallInt(len(attrs)); err != nil {
		return err
	}
	for _, a := range attrs {
		if err := e.WriteString(a.Name); err != nil {
			return err
		}
		if err := writeAttributeValue(e, a.Value); err != nil {
			return err
		}
	}
	return nil
}

func writeAttributeValue(e *serialize.Encoder, value any) error {
	switch x := value.(type) {
	case string:
		if err := e.WriteByte(attributeString); err != nil {
			return err
		}
		return e.WriteString(x)
	case bool:
		if err := e.WriteByte(attributeBool); err != nil {
			return err
		}
		return e.WriteBoolean(x)
	default:
		if err := e.WriteByte(attributeInt); err != nil {
			return err
		}
		return e.WriteSmallLong(x.(int64))
	}
}

// Read reads a container written by Write. Names must be strictly ascending,
// so duplicates and unsorted streams are malformed.
func (s *AttributeContainerSerializer) Read(d *serialize.Decoder) (domain.AttributeContainer, error) {
	count, err := d.ReadSmallInt()
	if err != nil {
		return domain.AttributeContainer{}, err
	}

	attrs := make([]domain.Attribute, 0, min(count, 64))
	for range count {
		name, err := d.ReadString()
		if err != nil {
			return domain.AttributeContainer{}, err
		}
		if n := len(attrs); n > 0 && name <= attrs[n-1].Name {
			err := zerr.With(d.Malformed("attribute names out of order"), "attribute", name)
			return domain.AttributeContainer{}, zerr.With(err, "previous", attrs[n-1].Name)
		}
		value, err := readAttributeValue(d)
		if err != nil {
			return domain.AttributeContainer{}, err
		}
		attrs = append(attrs, domain.Attribute{Name: name, Value: value})
	}
	return domain.NewAttributeContainer(attrs...), nil
}

func readAttributeValue(d *serialize.Decoder) (any, error) {
	kind, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch kind {
	case attributeString:
		return d.ReadString()
	case attributeBool:
		return d.ReadBoolean()
	case attributeInt:
		return d.ReadSmallLong()
	default:
		return nil, zerr.With(d.Malformed("unknown attribute type"), "tag", kind)
	}
}
