// SPDX-License-Identifier: MPL-2.0

package iff

import (
	"bytes"
	"fmt"
)

// Chunk pairs a ChunkID with the size declared in its header and a borrowed,
// read-only view of the bytes that follow the header.
//
// The declared size never exceeds the length of the view. The view is kept as
// given: it is neither copied nor truncated to the declared size, so it must
// outlive the Chunk and must not be mutated while the Chunk is in use.
type Chunk struct {
	id   ChunkID
	size uint32
	data []byte
}

// NewChunk returns a Chunk for id with the declared size over data.
// The boolean is false, and the Chunk is the zero value, when size exceeds
// len(data): the header claims more bytes than were supplied.
func NewChunk(id ChunkID, size uint32, data []byte) (Chunk, bool) {
	if uint64(size) > uint64(len(data)) {
		return Chunk{}, false
	}
	return Chunk{id: id, size: size, data: data}, true
}

// ID returns the chunk identifier.
func (c Chunk) ID() ChunkID { return c.id }

// Len returns the declared size in bytes.
func (c Chunk) Len() uint32 { return c.size }

// PaddedLen returns the declared size rounded up to an even byte count,
// which is how far an IFF reader advances past the payload.
func (c Chunk) PaddedLen() uint64 {
	n := uint64(c.size)
	return n + n&1
}

// Data returns the borrowed view exactly as it was passed to NewChunk.
// Callers must treat it as read-only.
func (c Chunk) Data() []byte { return c.data }

// Payload returns the view limited to the declared size. No bytes are copied.
func (c Chunk) Payload() []byte { return c.data[:c.size:c.size] }

// Equal reports whether both chunks have the same identifier, declared size,
// and byte-equal views.
func (c Chunk) Equal(other Chunk) bool {
	return c.id == other.id && c.size == other.size && bytes.Equal(c.data, other.data)
}

// String renders the chunk as `Chunk "XXXX". Size N bytes`.
func (c Chunk) String() string {
	return fmt.Sprintf(`Chunk "%s". Size %d bytes`, c.id, c.size)
}
