// SPDX-License-Identifier: MPL-2.0

package iffscan

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/invowk/iffchunk/pkg/iff"
)

// HeaderLen is the size of a chunk header: 4 identifier bytes and a 32-bit size.
const HeaderLen = 8

// ErrShortHeader is returned when fewer than HeaderLen bytes remain.
var ErrShortHeader = errors.New("iffscan: short chunk header")

// Header is a decoded chunk header.
type Header struct {
	ID   iff.ChunkID
	Size uint32
}

// DecodeHeader decodes the chunk header at the start of b. The identifier is
// validated; an invalid one is returned wrapped so that errors.Is matches the
// iff sentinels.
func DecodeHeader(b []byte, order binary.ByteOrder) (Header, error) {
	if len(b) < HeaderLen {
		return Header{}, ErrShortHeader
	}
	id, err := iff.NewChunkID(b[0:4])
	if err != nil {
		return Header{}, fmt.Errorf("iffscan: header: %w", err)
	}
	return Header{ID: id, Size: order.Uint32(b[4:8])}, nil
}

// EncodeHeader returns the 8-byte wire form of h.
func EncodeHeader(h Header, order binary.ByteOrder) []byte {
	buf := make([]byte, HeaderLen)
	copy(buf[0:4], h.ID[:])
	order.PutUint32(buf[4:8], h.Size)
	return buf
}
