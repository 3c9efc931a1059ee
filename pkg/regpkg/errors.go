package regpkg

import "fmt"

// ProtobufParseError reports that the outer wire-format byte image
// could not be parsed at all (truncated, bad tag, bad wire type).
type ProtobufParseError struct {
	Cause error
}

func (e *ProtobufParseError) Error() string {
	return fmt.Sprintf("regpkg: malformed protobuf envelope: %v", e.Cause)
}

func (e *ProtobufParseError) Unwrap() error { return e.Cause }

// ContentsParseError reports that a string sub-field decoded from the
// wire could not be parsed into its typed form (Hash, PublicKey,
// Version, HashAlgorithm, Permission).
type ContentsParseError struct {
	Field string
	Cause error
}

func (e *ContentsParseError) Error() string {
	return fmt.Sprintf("regpkg: failed to parse field %q: %v", e.Field, e.Cause)
}

func (e *ContentsParseError) Unwrap() error { return e.Cause }

// KeyIDParseError reports that an envelope's key_id field failed to parse.
type KeyIDParseError struct {
	Cause error
}

func (e *KeyIDParseError) Error() string {
	return fmt.Sprintf("regpkg: failed to parse envelope key_id: %v", e.Cause)
}

func (e *KeyIDParseError) Unwrap() error { return e.Cause }

// SignatureParseError reports that an envelope's signature field failed to parse.
type SignatureParseError struct {
	Cause error
}

func (e *SignatureParseError) Error() string {
	return fmt.Sprintf("regpkg: failed to parse envelope signature: %v", e.Cause)
}

func (e *SignatureParseError) Unwrap() error { return e.Cause }

// MissingFieldError reports that a structurally required field was
// absent from the decoded message.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("regpkg: missing required field %q", e.Field)
}

// UnknownEnumValueError reports that an enum ordinal did not match any
// known variant.
type UnknownEnumValueError struct {
	Enum  string
	Value int32
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("regpkg: unknown %s ordinal %d", e.Enum, e.Value)
}

// TimestampParseError reports that a Timestamp sub-message failed to
// parse or convert to time.Time.
type TimestampParseError struct {
	Cause error
}

func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("regpkg: failed to parse timestamp: %v", e.Cause)
}

func (e *TimestampParseError) Unwrap() error { return e.Cause }
