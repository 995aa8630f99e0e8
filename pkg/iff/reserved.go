// SPDX-License-Identifier: MPL-2.0

package iff

// Well-known identifiers.
var (
	// FORM opens a typed group of chunks.
	FORM = MustParseChunkID("FORM")
	// LIST opens a list of FORMs sharing properties.
	LIST = MustParseChunkID("LIST")
	// CAT opens a concatenation of groups. Note the trailing space.
	CAT = MustParseChunkID("CAT ")
	// PROP carries shared properties inside a LIST.
	PROP = MustParseChunkID("PROP")
	// RIFF is the little-endian container used by WAV and AVI.
	RIFF = MustParseChunkID("RIFF")
	// RIFX is the big-endian variant of RIFF.
	RIFX = MustParseChunkID("RIFX")
)

// reservedChunkIDs lists the identifiers set aside for structural chunks,
// in canonical order.
var reservedChunkIDs = [...]ChunkID{
	{'L', 'I', 'S', 'T'}, {'L', 'I', 'S', '1'}, {'L', 'I', 'S', '2'}, {'L', 'I', 'S', '3'}, {'L', 'I', 'S', '4'},
	{'L', 'I', 'S', '5'}, {'L', 'I', 'S', '6'}, {'L', 'I', 'S', '7'}, {'L', 'I', 'S', '8'}, {'L', 'I', 'S', '9'},
	{'F', 'O', 'R', 'M'}, {'F', 'O', 'R', '1'}, {'F', 'O', 'R', '2'}, {'F', 'O', 'R', '3'}, {'F', 'O', 'R', '4'},
	{'F', 'O', 'R', '5'}, {'F', 'O', 'R', '6'}, {'F', 'O', 'R', '7'}, {'F', 'O', 'R', '8'}, {'F', 'O', 'R', '9'},
	{'C', 'A', 'T', ' '}, {'C', 'A', 'T', '1'}, {'C', 'A', 'T', '2'}, {'C', 'A', 'T', '3'}, {'C', 'A', 'T', '4'},
	{'C', 'A', 'T', '5'}, {'C', 'A', 'T', '6'}, {'C', 'A', 'T', '7'}, {'C', 'A', 'T', '8'}, {'C', 'A', 'T', '9'},
	{'P', 'R', 'O', 'P'},
	{' ', ' ', ' ', ' '},
}

var reservedSet = func() map[ChunkID]struct{} {
	set := make(map[ChunkID]struct{}, len(reservedChunkIDs))
	for _, id := range reservedChunkIDs {
		set[id] = struct{}{}
	}
	return set
}()

// ReservedChunkIDs returns a copy of the reserved identifier table in canonical order.
func ReservedChunkIDs() []ChunkID {
	out := make([]ChunkID, len(reservedChunkIDs))
	copy(out, reservedChunkIDs[:])
	return out
}
