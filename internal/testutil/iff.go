// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"bytes"
	"encoding/binary"
)

// Chunk returns the wire form of one chunk: the 4 identifier bytes, the payload
// length in order, the payload, and a zero pad byte when the length is odd.
// id is written verbatim so tests can build malformed identifiers.
func Chunk(order binary.ByteOrder, id string, payload []byte) []byte {
	return ChunkWithSize(order, id, uint32(len(payload)), payload)
}

// ChunkWithSize is like Chunk but writes size as the declared length, which
// lets tests build headers that claim more bytes than they carry. The pad byte
// follows len(payload), not size.
func ChunkWithSize(order binary.ByteOrder, id string, size uint32, payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(id)
	var sz [4]byte
	order.PutUint32(sz[:], size)
	buf.Write(sz[:])
	buf.Write(payload)
	if len(payload)%2 == 1 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// Group returns a group chunk (FORM, LIST, RIFF, ...) whose payload is the
// 4-byte type identifier followed by the concatenated children.
func Group(order binary.ByteOrder, id, typ string, children ...[]byte) []byte {
	payload := append([]byte(typ), Concat(children...)...)
	return Chunk(order, id, payload)
}

// Concat joins byte slices into a new slice.
func Concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// WAV returns a minimal little-endian RIFF/WAVE file with "fmt " and "data" chunks.
func WAV(samples []byte) []byte {
	fmtChunk := []byte{
		1, 0, // PCM
		1, 0, // mono
		0x40, 0x1f, 0, 0, // 8000 Hz
		0x40, 0x1f, 0, 0, // byte rate
		1, 0, // block align
		8, 0, // bits per sample
	}
	return Group(binary.LittleEndian, "RIFF", "WAVE",
		Chunk(binary.LittleEndian, "fmt ", fmtChunk),
		Chunk(binary.LittleEndian, "data", samples),
	)
}
