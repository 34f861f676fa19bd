// export_test.go exports session state for white-box testing.
package codec

// SessionSize returns how many descriptions the serializer has recorded on its
// write side and its read side.
func (s *SelectionReasonSerializer) SessionSize() (written, read int) {
	return len(s.indexes), len(s.descriptions)
}

// Reasons exposes the selection reason serializer owned by a ComponentResultSerializer.
func (s *ComponentResultSerializer) Reasons() *SelectionReasonSerializer {
	return s.reasons
}
