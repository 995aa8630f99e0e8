// SPDX-License-Identifier: MPL-2.0

// Package iff defines the validated value types shared by every IFF-family
// format (IFF, AIFF, RIFF/WAV/AVI): the 4-byte chunk identifier (ChunkID, also
// known as a FourCC) and the Chunk that pairs an identifier with a declared size
// and a borrowed view of the bytes it describes.
//
// Both types are validated once at construction and are immutable afterwards.
// A Chunk never copies, truncates, or mutates the byte view it was given; the
// caller keeps ownership of the buffer and must not modify it while the Chunk
// is in use.
//
// This package is a leaf dependency: it imports only the standard library.
// Readers, scanners, and CLIs build on top of it; it never imports them.
package iff
