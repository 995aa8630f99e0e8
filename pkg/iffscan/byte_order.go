// SPDX-License-Identifier: MPL-2.0

package iffscan

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/invowk/iffchunk/pkg/iff"
)

const (
	// ByteOrderAuto picks little-endian for RIFF files and big-endian otherwise.
	ByteOrderAuto ByteOrder = "auto"
	// ByteOrderBig decodes sizes as big-endian (IFF, AIFF, RIFX).
	ByteOrderBig ByteOrder = "big"
	// ByteOrderLittle decodes sizes as little-endian (RIFF, WAV, AVI).
	ByteOrderLittle ByteOrder = "little"
)

// ErrInvalidByteOrder is the sentinel error wrapped by InvalidByteOrderError.
var ErrInvalidByteOrder = errors.New("invalid byte order")

type (
	// ByteOrder selects how chunk sizes are decoded.
	// The zero value ("") behaves like ByteOrderAuto.
	ByteOrder string

	// InvalidByteOrderError is returned when a ByteOrder value is not recognized.
	InvalidByteOrderError struct {
		Value ByteOrder
	}
)

// String returns the string representation of the ByteOrder.
func (o ByteOrder) String() string { return string(o) }

// IsValid returns whether the ByteOrder is one of the defined orders or empty.
func (o ByteOrder) IsValid() (bool, []error) {
	switch o {
	case "", ByteOrderAuto, ByteOrderBig, ByteOrderLittle:
		return true, nil
	default:
		return false, []error{&InvalidByteOrderError{Value: o}}
	}
}

// Resolve returns the concrete order to use for data. For ByteOrderAuto the
// first four bytes decide: "RIFF" selects ByteOrderLittle, anything else
// ByteOrderBig.
func (o ByteOrder) Resolve(data []byte) ByteOrder {
	switch o {
	case ByteOrderBig, ByteOrderLittle:
		return o
	default:
		if len(data) >= iff.ChunkIDLen && bytes.Equal(data[:iff.ChunkIDLen], iff.RIFF[:]) {
			return ByteOrderLittle
		}
		return ByteOrderBig
	}
}

// decoder returns the binary decoder for a resolved order.
func (o ByteOrder) decoder() binary.ByteOrder {
	if o == ByteOrderLittle {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Error implements the error interface for InvalidByteOrderError.
func (e *InvalidByteOrderError) Error() string {
	return fmt.Sprintf("invalid byte order %q (valid: auto, big, little)", e.Value)
}

// Unwrap returns ErrInvalidByteOrder for errors.Is() compatibility.
func (e *InvalidByteOrderError) Unwrap() error { return ErrInvalidByteOrder }
