// SPDX-License-Identifier: MPL-2.0

package iff

import (
	"errors"
	"fmt"
)

const (
	// ChunkIDLen is the number of bytes in a chunk identifier.
	ChunkIDLen = 4

	// LowerCharBound is the lowest byte allowed in a chunk identifier (space).
	LowerCharBound byte = 0x20
	// UpperCharBound is the highest byte allowed in a chunk identifier (tilde).
	UpperCharBound byte = 0x7E
	// SpaceChar is the only padding byte allowed in a chunk identifier.
	SpaceChar byte = 0x20

	// ChunkIDErrShortLength is reported when fewer than 4 source bytes are given.
	ChunkIDErrShortLength ChunkIDErrorKind = "short_length"
	// ChunkIDErrUnsupportedChar is reported when a byte falls outside printable ASCII.
	ChunkIDErrUnsupportedChar ChunkIDErrorKind = "unsupported_char"
	// ChunkIDErrSpacePrecedeLetter is reported when a space is directly followed by a non-space.
	ChunkIDErrSpacePrecedeLetter ChunkIDErrorKind = "space_precede_letter"
)

var (
	// ErrInvalidChunkID is the sentinel error wrapped by every InvalidChunkIDError.
	ErrInvalidChunkID = errors.New("invalid chunk id")
	// ErrShortLength is wrapped by InvalidChunkIDError when the source is shorter than 4 bytes.
	ErrShortLength = errors.New("chunk id source should be at least 4 bytes")
	// ErrUnsupportedChar is wrapped by InvalidChunkIDError when a byte is not printable ASCII.
	ErrUnsupportedChar = errors.New("chunk id can contain only displayable ASCII characters")
	// ErrSpacePrecedeLetter is wrapped by InvalidChunkIDError when a space precedes a non-space.
	ErrSpacePrecedeLetter = errors.New("space cannot precede letter in chunk id")
	// ErrInvalidChunkIDErrorKind is returned when a ChunkIDErrorKind value is not recognized.
	ErrInvalidChunkIDErrorKind = errors.New("invalid chunk id error kind")
)

type (
	// ChunkID is a validated 4-byte chunk identifier.
	//
	// Every byte lies in the printable ASCII range [0x20, 0x7E], and a space may
	// only be followed by another space, so identifiers can carry trailing
	// padding ("CAT ", "AB  ") but never a leading or inner space.
	// Values obtained from NewChunkID or ParseChunkID are always valid. The zero
	// value (four NUL bytes) is not.
	ChunkID [ChunkIDLen]byte

	// ChunkIDErrorKind classifies why a byte sequence was rejected as a ChunkID.
	ChunkIDErrorKind string

	// InvalidChunkIDError is returned when a byte sequence is not a legal ChunkID.
	// It wraps ErrInvalidChunkID and the sentinel matching Kind, so both
	// errors.Is(err, ErrInvalidChunkID) and errors.Is(err, ErrShortLength) work.
	InvalidChunkIDError struct {
		Kind ChunkIDErrorKind
		// Source holds at most the first 4 bytes that were inspected.
		Source []byte
	}

	// InvalidChunkIDErrorKindError is returned when a ChunkIDErrorKind is unknown.
	InvalidChunkIDErrorKindError struct {
		Value ChunkIDErrorKind
	}
)

// NewChunkID builds a ChunkID from the first 4 bytes of src.
//
// Checks run in order and the first failure wins: fewer than 4 bytes
// (ErrShortLength), a byte outside [0x20, 0x7E] (ErrUnsupportedChar), a space
// directly followed by a non-space (ErrSpacePrecedeLetter). Bytes past the
// fourth are ignored.
func NewChunkID(src []byte) (ChunkID, error) {
	if len(src) < ChunkIDLen {
		return ChunkID{}, newInvalidChunkIDError(ChunkIDErrShortLength, src)
	}

	var id ChunkID
	copy(id[:], src[:ChunkIDLen])

	if kind, ok := id.check(); !ok {
		return ChunkID{}, newInvalidChunkIDError(kind, id[:])
	}
	return id, nil
}

// ParseChunkID builds a ChunkID from the bytes of s, with the same rules as NewChunkID.
func ParseChunkID(s string) (ChunkID, error) {
	return NewChunkID([]byte(s))
}

// MustParseChunkID is like ParseChunkID but panics when s is not a legal ChunkID.
// It is meant for package-level values built from literals.
func MustParseChunkID(s string) ChunkID {
	id, err := ParseChunkID(s)
	if err != nil {
		panic(fmt.Sprintf("iff: MustParseChunkID(%q): %v", s, err))
	}
	return id
}

// String returns the identifier's 4 bytes as text.
func (id ChunkID) String() string { return string(id[:]) }

// Bytes returns a copy of the identifier's 4 bytes.
func (id ChunkID) Bytes() []byte {
	b := make([]byte, ChunkIDLen)
	copy(b, id[:])
	return b
}

// IsReserved reports whether the identifier names a structural chunk
// (LIST, FORM, CAT, PROP and their numbered variants, or four spaces).
func (id ChunkID) IsReserved() bool {
	_, ok := reservedSet[id]
	return ok
}

// IsValid returns whether the ChunkID satisfies the character and spacing rules.
// Only the zero value or a value built by converting raw bytes can be invalid.
func (id ChunkID) IsValid() (bool, []error) {
	if kind, ok := id.check(); !ok {
		return false, []error{newInvalidChunkIDError(kind, id[:])}
	}
	return true, nil
}

// Validate returns an error if the ChunkID is not valid.
func (id ChunkID) Validate() error {
	if ok, errs := id.IsValid(); !ok {
		return errs[0]
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (id ChunkID) MarshalText() ([]byte, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return id.Bytes(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text must be exactly
// 4 bytes long; unlike NewChunkID, surplus bytes are rejected.
func (id *ChunkID) UnmarshalText(text []byte) error {
	if len(text) > ChunkIDLen {
		return fmt.Errorf("%w: %q is longer than %d bytes", ErrInvalidChunkID, text, ChunkIDLen)
	}
	parsed, err := NewChunkID(text)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// check applies the character-range rule, then the pairwise spacing rule.
func (id ChunkID) check() (ChunkIDErrorKind, bool) {
	for _, b := range id {
		if b < LowerCharBound || b > UpperCharBound {
			return ChunkIDErrUnsupportedChar, false
		}
	}
	for i := range ChunkIDLen - 1 {
		if id[i] == SpaceChar && id[i+1] != SpaceChar {
			return ChunkIDErrSpacePrecedeLetter, false
		}
	}
	return "", true
}

func newInvalidChunkIDError(kind ChunkIDErrorKind, src []byte) *InvalidChunkIDError {
	n := min(len(src), ChunkIDLen)
	source := make([]byte, n)
	copy(source, src[:n])
	return &InvalidChunkIDError{Kind: kind, Source: source}
}

// Error implements the error interface for InvalidChunkIDError.
func (e *InvalidChunkIDError) Error() string {
	return fmt.Sprintf("invalid chunk id %q: %s", e.Source, e.kindErr())
}

// Unwrap returns ErrInvalidChunkID and the sentinel for Kind for errors.Is() compatibility.
func (e *InvalidChunkIDError) Unwrap() []error {
	if kindErr := e.kindErr(); kindErr != nil {
		return []error{ErrInvalidChunkID, kindErr}
	}
	return []error{ErrInvalidChunkID}
}

func (e *InvalidChunkIDError) kindErr() error {
	switch e.Kind {
	case ChunkIDErrShortLength:
		return ErrShortLength
	case ChunkIDErrUnsupportedChar:
		return ErrUnsupportedChar
	case ChunkIDErrSpacePrecedeLetter:
		return ErrSpacePrecedeLetter
	default:
		return nil
	}
}

// String returns the string representation of the ChunkIDErrorKind.
func (k ChunkIDErrorKind) String() string { return string(k) }

// IsValid returns whether the ChunkIDErrorKind is one of the defined kinds.
func (k ChunkIDErrorKind) IsValid() (bool, []error) {
	switch k {
	case ChunkIDErrShortLength, ChunkIDErrUnsupportedChar, ChunkIDErrSpacePrecedeLetter:
		return true, nil
	default:
		return false, []error{&InvalidChunkIDErrorKindError{Value: k}}
	}
}

// Error implements the error interface for InvalidChunkIDErrorKindError.
func (e *InvalidChunkIDErrorKindError) Error() string {
	return fmt.Sprintf("invalid chunk id error kind %q", e.Value)
}

// Unwrap returns ErrInvalidChunkIDErrorKind for errors.Is() compatibility.
func (e *InvalidChunkIDErrorKindError) Unwrap() error { return ErrInvalidChunkIDErrorKind }
