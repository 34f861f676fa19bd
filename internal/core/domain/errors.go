package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedStream is returned when a record cannot be decoded: the input ended early,
	// a length prefix does not fit the remaining bytes, or a flag, tag or index is out of range.
	ErrMalformedStream = zerr.New("malformed component result stream")

	// ErrNegativeSmallInt is returned when a negative value is written with the unsigned small int encoding.
	ErrNegativeSmallInt = zerr.New("small int must not be negative")

	// ErrMissingVariantName is returned when a component result has no variant name to write.
	ErrMissingVariantName = zerr.New("component result has no variant name")

	// ErrUnsupportedComponentIdentifier is returned when a component identifier kind has no wire form.
	ErrUnsupportedComponentIdentifier = zerr.New("unsupported component identifier")

	// ErrUnsupportedAttributeType is returned when an attribute value is not a string, bool or integer.
	ErrUnsupportedAttributeType = zerr.New("unsupported attribute value type")

	// ErrInvalidModuleNotation is returned when a module string is not in group:name:version form.
	ErrInvalidModuleNotation = zerr.New("invalid module notation, expected group:name:version")

	// ErrUnknownSelectionCause is returned when a selection cause name is not recognised.
	ErrUnknownSelectionCause = zerr.New("unknown selection cause")

	// ErrDuplicateResultID is returned when two components in one resolution share a result id.
	ErrDuplicateResultID = zerr.New("duplicate result id")

	// ErrInvalidComponent is returned when a component entry in a resolution file is incomplete.
	ErrInvalidComponent = zerr.New("invalid component")

	// ErrConfigReadFailed is returned when the resolution file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read resolution file")

	// ErrConfigParseFailed is returned when the resolution file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse resolution file")

	// ErrStoreCreateFailed is returned when the session store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create session store directory")

	// ErrStoreReadFailed is returned when a session file cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read session")

	// ErrStoreWriteFailed is returned when a session file cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write session")

	// ErrStoreEncodeFailed is returned when component results cannot be encoded into a session.
	ErrStoreEncodeFailed = zerr.New("failed to encode session")

	// ErrStoreDecodeFailed is returned when a session body cannot be decoded.
	ErrStoreDecodeFailed = zerr.New("failed to decode session")

	// ErrStoreCorrupt is returned when a session file has a bad header or checksum.
	ErrStoreCorrupt = zerr.New("session file is corrupt")

	// ErrSessionNotFound is returned when a requested session does not exist in the store.
	ErrSessionNotFound = zerr.New("session not found")

	// ErrNoSessionsSpecified is returned when the read command is given no session names.
	ErrNoSessionsSpecified = zerr.New("no sessions specified")

	// ErrInvalidSessionName is returned when a session name is empty.
	ErrInvalidSessionName = zerr.New("invalid session name")

	// ErrUnknownFormat is returned when an export format is not supported.
	ErrUnknownFormat = zerr.New("unknown format, expected text, yaml, json or cbor")

	// ErrRenderFailed is returned when decoded results cannot be rendered.
	ErrRenderFailed = zerr.New("failed to render results")
)
