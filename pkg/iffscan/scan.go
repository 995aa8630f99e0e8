// SPDX-License-Identifier: MPL-2.0

package iffscan

import (
	"errors"
	"fmt"

	"github.com/invowk/iffchunk/pkg/iff"
)

// ErrTruncatedChunk is the sentinel error wrapped by TruncatedChunkError.
var ErrTruncatedChunk = errors.New("iffscan: chunk size exceeds available data")

type (
	// Logger receives debug events while scanning. *log.Logger from
	// github.com/charmbracelet/log satisfies it.
	Logger interface {
		Debug(msg any, keyvals ...any)
	}

	// Options controls Scan.
	Options struct {
		// ByteOrder selects size decoding; empty means ByteOrderAuto.
		ByteOrder ByteOrder
		// Strict turns a truncated final chunk or stray trailing bytes into errors.
		// Otherwise the scan stops there and the Result records what happened.
		Strict bool
		// Logger is optional.
		Logger Logger
	}

	// Entry is one top-level chunk found by Scan.
	Entry struct {
		// Offset is the position of the chunk header in the scanned buffer.
		Offset int64
		Chunk  iff.Chunk
		// Reserved is true for structural (group) identifiers.
		Reserved bool
		// GroupType is the type identifier stored in the first 4 payload bytes
		// of a group chunk. HasGroupType is false when absent or invalid.
		GroupType    iff.ChunkID
		HasGroupType bool
	}

	// Result is the outcome of a Scan.
	Result struct {
		// ByteOrder is the resolved order, never ByteOrderAuto.
		ByteOrder ByteOrder
		Entries   []Entry
		// Truncated is set when a chunk declared more bytes than remained.
		Truncated   bool
		TruncatedAt int64
		// TrailingBytes counts bytes after the last chunk too short for a header.
		TrailingBytes int
	}

	// TruncatedChunkError is returned in strict mode when a chunk declares more
	// bytes than the buffer holds.
	TruncatedChunkError struct {
		Offset    int64
		ID        iff.ChunkID
		Declared  uint32
		Available int
	}
)

type nopLogger struct{}

func (nopLogger) Debug(any, ...any) {}

// Scan walks the top-level chunks of data in order.
//
// An invalid chunk identifier always stops the scan with an error wrapping the
// iff sentinels. A chunk whose declared size exceeds the remaining bytes stops
// the scan too: with Options.Strict it is an error, otherwise Result.Truncated
// is set and the entries found so far are returned.
func Scan(data []byte, opts Options) (*Result, error) {
	if ok, errs := opts.ByteOrder.IsValid(); !ok {
		return nil, errs[0]
	}
	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	order := opts.ByteOrder.Resolve(data)
	dec := order.decoder()
	res := &Result{ByteOrder: order}
	logger.Debug("scan start", "bytes", len(data), "byte_order", order)

	for off := 0; off < len(data); {
		remaining := len(data) - off
		if remaining < HeaderLen {
			if opts.Strict {
				return nil, fmt.Errorf("offset %d: %w (%d bytes left)", off, ErrShortHeader, remaining)
			}
			res.TrailingBytes = remaining
			logger.Debug("trailing bytes", "offset", off, "count", remaining)
			break
		}

		h, err := DecodeHeader(data[off:], dec)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", off, err)
		}

		body := data[off+HeaderLen:]
		c, ok := iff.NewChunk(h.ID, h.Size, body)
		if !ok {
			truncErr := &TruncatedChunkError{Offset: int64(off), ID: h.ID, Declared: h.Size, Available: len(body)}
			if opts.Strict {
				return nil, truncErr
			}
			res.Truncated = true
			res.TruncatedAt = int64(off)
			logger.Debug("truncated chunk", "offset", off, "id", h.ID, "declared", h.Size, "available", len(body))
			break
		}

		entry := Entry{Offset: int64(off), Chunk: c, Reserved: h.ID.IsReserved()}
		if entry.Reserved && c.Len() >= iff.ChunkIDLen {
			if gt, err := iff.NewChunkID(c.Payload()); err == nil {
				entry.GroupType = gt
				entry.HasGroupType = true
			}
		}
		res.Entries = append(res.Entries, entry)
		logger.Debug("chunk", "offset", off, "id", h.ID, "size", h.Size, "reserved", entry.Reserved)

		// A missing pad byte at end of data is tolerated.
		next := uint64(off) + HeaderLen + c.PaddedLen()
		if next > uint64(len(data)) {
			next = uint64(len(data))
		}
		off = int(next)
	}

	return res, nil
}

// Counts returns how many top-level chunks carry each identifier.
func (r *Result) Counts() map[iff.ChunkID]int {
	counts := make(map[iff.ChunkID]int, len(r.Entries))
	for _, e := range r.Entries {
		counts[e.Chunk.ID()]++
	}
	return counts
}

// Error implements the error interface for TruncatedChunkError.
func (e *TruncatedChunkError) Error() string {
	return fmt.Sprintf("offset %d: chunk %q declares %d bytes but only %d remain", e.Offset, e.ID, e.Declared, e.Available)
}

// Unwrap returns ErrTruncatedChunk for errors.Is() compatibility.
func (e *TruncatedChunkError) Unwrap() error { return ErrTruncatedChunk }
