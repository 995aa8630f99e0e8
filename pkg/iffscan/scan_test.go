// SPDX-License-Identifier: MPL-2.0

package iffscan

import (
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/invowk/iffchunk/internal/testutil"
	"github.com/invowk/iffchunk/pkg/iff"
)

type recordingLogger struct {
	msgs []string
}

func (l *recordingLogger) Debug(msg any, _ ...any) {
	l.msgs = append(l.msgs, fmt.Sprint(msg))
}

func TestScan_WAV(t *testing.T) {
	t.Parallel()

	data := testutil.WAV([]byte{1, 2, 3})
	res, err := Scan(data, Options{})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if res.ByteOrder != ByteOrderLittle {
		t.Errorf("ByteOrder = %q, want little", res.ByteOrder)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("expected 1 top-level entry, got %d", len(res.Entries))
	}

	e := res.Entries[0]
	if e.Chunk.ID() != iff.RIFF {
		t.Errorf("ID = %q, want RIFF", e.Chunk.ID())
	}
	if e.Reserved {
		t.Error("RIFF is not in the reserved table")
	}
	if e.HasGroupType {
		t.Error("GroupType is only read for reserved identifiers")
	}
	if int(e.Chunk.Len()) != len(data)-HeaderLen {
		t.Errorf("Len() = %d, want %d", e.Chunk.Len(), len(data)-HeaderLen)
	}
	if res.Truncated || res.TrailingBytes != 0 {
		t.Errorf("unexpected truncation: %+v", res)
	}
}

func TestScan_FlatBigEndian(t *testing.T) {
	t.Parallel()

	be := binary.BigEndian
	data := testutil.Concat(
		testutil.Group(be, "FORM", "AIFF", testutil.Chunk(be, "COMM", make([]byte, 18))),
		testutil.Chunk(be, "ANNO", []byte("odd")),
		testutil.Chunk(be, "NAME", []byte("ab")),
	)

	res, err := Scan(data, Options{ByteOrder: ByteOrderAuto})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if res.ByteOrder != ByteOrderBig {
		t.Errorf("ByteOrder = %q, want big", res.ByteOrder)
	}

	want := []struct {
		id     string
		size   uint32
		offset int64
	}{
		{"FORM", 4 + 8 + 18, 0},
		{"ANNO", 3, 8 + 30},
		{"NAME", 2, 8 + 30 + 8 + 4},
	}
	if len(res.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(res.Entries), len(want))
	}
	for i, w := range want {
		e := res.Entries[i]
		if e.Chunk.ID().String() != w.id || e.Chunk.Len() != w.size || e.Offset != w.offset {
			t.Errorf("entry %d = {%q %d @%d}, want {%q %d @%d}", i, e.Chunk.ID(), e.Chunk.Len(), e.Offset, w.id, w.size, w.offset)
		}
	}

	form := res.Entries[0]
	if !form.Reserved || !form.HasGroupType || form.GroupType.String() != "AIFF" {
		t.Errorf("FORM entry = %+v, want reserved with group type AIFF", form)
	}

	counts := res.Counts()
	if counts[iff.FORM] != 1 || counts[iff.MustParseChunkID("ANNO")] != 1 {
		t.Errorf("Counts() = %v", counts)
	}
}

func TestScan_Truncated(t *testing.T) {
	t.Parallel()

	be := binary.BigEndian
	data := testutil.Concat(
		testutil.Chunk(be, "NAME", []byte("ok")),
		testutil.ChunkWithSize(be, "BODY", 100, []byte("short")),
	)

	log := &recordingLogger{}
	res, err := Scan(data, Options{ByteOrder: ByteOrderBig, Logger: log})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if !res.Truncated || res.TruncatedAt != 10 {
		t.Errorf("Truncated = %v at %d, want true at 10", res.Truncated, res.TruncatedAt)
	}
	if len(res.Entries) != 1 {
		t.Errorf("expected 1 entry before truncation, got %d", len(res.Entries))
	}
	if len(log.msgs) == 0 {
		t.Error("logger received no events")
	}

	_, err = Scan(data, Options{ByteOrder: ByteOrderBig, Strict: true})
	if !errors.Is(err, ErrTruncatedChunk) {
		t.Fatalf("expected ErrTruncatedChunk, got %v", err)
	}
	var truncErr *TruncatedChunkError
	if !errors.As(err, &truncErr) {
		t.Fatalf("error should be *TruncatedChunkError, got: %T", err)
	}
	if truncErr.Declared != 100 || truncErr.Available != 6 || truncErr.ID.String() != "BODY" {
		t.Errorf("TruncatedChunkError = %+v", truncErr)
	}
}

func TestScan_TrailingBytes(t *testing.T) {
	t.Parallel()

	data := testutil.Concat(testutil.Chunk(binary.BigEndian, "NAME", []byte("ok")), []byte{'x', 'y', 'z'})

	res, err := Scan(data, Options{})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if res.TrailingBytes != 3 {
		t.Errorf("TrailingBytes = %d, want 3", res.TrailingBytes)
	}

	if _, err := Scan(data, Options{Strict: true}); !errors.Is(err, ErrShortHeader) {
		t.Errorf("strict scan: expected ErrShortHeader, got %v", err)
	}
}

func TestScan_MissingFinalPadByte(t *testing.T) {
	t.Parallel()

	data := testutil.Chunk(binary.BigEndian, "ANNO", []byte("odd"))
	data = data[:len(data)-1]

	res, err := Scan(data, Options{Strict: true})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Chunk.Len() != 3 {
		t.Errorf("unexpected entries: %+v", res.Entries)
	}
}

func TestScan_InvalidID(t *testing.T) {
	t.Parallel()

	be := binary.BigEndian
	data := testutil.Concat(
		testutil.Chunk(be, "NAME", nil),
		testutil.Chunk(be, "a bc", nil),
	)

	_, err := Scan(data, Options{})
	if !errors.Is(err, iff.ErrSpacePrecedeLetter) {
		t.Fatalf("expected ErrSpacePrecedeLetter, got %v", err)
	}
	if got := err.Error(); got[:9] != "offset 8:" {
		t.Errorf("error should name the offset, got %q", got)
	}
}

func TestScan_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := Scan(nil, Options{ByteOrder: "middle"})
	if !errors.Is(err, ErrInvalidByteOrder) {
		t.Errorf("expected ErrInvalidByteOrder, got %v", err)
	}
}

func TestScan_Empty(t *testing.T) {
	t.Parallel()

	res, err := Scan(nil, Options{Strict: true})
	if err != nil {
		t.Fatalf("Scan(nil) error: %v", err)
	}
	if len(res.Entries) != 0 || res.Truncated {
		t.Errorf("Scan(nil) = %+v", res)
	}
}

func TestScan_GroupTypeInvalid(t *testing.T) {
	t.Parallel()

	be := binary.BigEndian
	data := testutil.Concat(
		testutil.Chunk(be, "LIST", []byte{0, 0, 0, 0}),
		testutil.Chunk(be, "PROP", []byte("ab")),
	)

	res, err := Scan(data, Options{})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	for _, e := range res.Entries {
		if !e.Reserved {
			t.Errorf("%q should be reserved", e.Chunk.ID())
		}
		if e.HasGroupType {
			t.Errorf("%q should have no group type, got %q", e.Chunk.ID(), e.GroupType)
		}
	}
}
