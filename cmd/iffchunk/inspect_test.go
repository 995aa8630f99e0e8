// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/iffchunk/internal/testutil"
	"github.com/invowk/iffchunk/pkg/iff"

	"github.com/pelletier/go-toml/v2"
)

func aiffFile() []byte {
	be := binary.BigEndian
	return testutil.Concat(
		testutil.Group(be, "FORM", "AIFF",
			testutil.Chunk(be, "COMM", make([]byte, 18)),
			testutil.Chunk(be, "SSND", []byte{1, 2, 3}),
		),
	)
}

func TestInspectCommand_Text(t *testing.T) {
	data := aiffFile()
	path := testutil.MustWriteFile(t, t.TempDir(), "sound.aiff", data)

	res := runCLI(t, "inspect", path)
	if res.err != nil {
		t.Fatalf("inspect returned error: %v\nstderr: %s", res.err, res.stderr)
	}

	for _, want := range []string{
		"Chunks in " + path,
		"Byte order: big",
		fmt.Sprintf(`Chunk "FORM". Size %d bytes`, len(data)-8),
		`(type "AIFF")`,
		"reserved",
		"Summary: 1 chunk(s)",
		`"FORM" 1`,
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout should contain %q:\n%s", want, res.stdout)
		}
	}
	if strings.Contains(res.stdout, "truncated") {
		t.Errorf("unexpected truncation warning:\n%s", res.stdout)
	}
}

func TestInspectCommand_SummarySorted(t *testing.T) {
	be := binary.BigEndian
	data := testutil.Concat(
		testutil.Chunk(be, "NAME", []byte("ab")),
		testutil.Chunk(be, "AUTH", []byte("cd")),
		testutil.Chunk(be, "NAME", []byte("ef")),
	)
	path := testutil.MustWriteFile(t, t.TempDir(), "meta.iff", data)

	res := runCLI(t, "inspect", path)
	if res.err != nil {
		t.Fatalf("inspect returned error: %v", res.err)
	}

	auth := strings.Index(res.stdout, `"AUTH" 1`)
	name := strings.Index(res.stdout, `"NAME" 2`)
	if auth < 0 || name < 0 || auth > name {
		t.Errorf("summary should list AUTH before NAME:\n%s", res.stdout)
	}
}

func TestInspectCommand_TOML(t *testing.T) {
	path := testutil.MustWriteFile(t, t.TempDir(), "sound.aiff", aiffFile())

	res := runCLI(t, "inspect", "--output", "toml", path)
	if res.err != nil {
		t.Fatalf("inspect returned error: %v", res.err)
	}

	var report inspectReport
	if err := toml.Unmarshal([]byte(res.stdout), &report); err != nil {
		t.Fatalf("output is not valid TOML: %v\n%s", err, res.stdout)
	}
	if report.File != path || report.ByteOrder != "big" || report.Truncated {
		t.Errorf("unexpected report header: %+v", report)
	}
	if len(report.Chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(report.Chunks))
	}
	c := report.Chunks[0]
	if c.ID != iff.FORM || !c.Reserved || c.GroupType != "AIFF" || c.Offset != 0 {
		t.Errorf("unexpected chunk report: %+v", c)
	}
	if report.Summary["FORM"] != 1 {
		t.Errorf("summary = %v, want FORM=1", report.Summary)
	}
}

func TestInspectCommand_WAVAutoByteOrder(t *testing.T) {
	path := testutil.MustWriteFile(t, t.TempDir(), "sound.wav", testutil.WAV([]byte{0x80, 0x80}))

	res := runCLI(t, "inspect", path)
	if res.err != nil {
		t.Fatalf("inspect returned error: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Byte order: little") || !strings.Contains(res.stdout, `Chunk "RIFF".`) {
		t.Errorf("unexpected output:\n%s", res.stdout)
	}
}

func truncatedFile() []byte {
	be := binary.BigEndian
	return testutil.Concat(
		testutil.Chunk(be, "NAME", []byte("ab")),
		testutil.ChunkWithSize(be, "DATA", 100, []byte{1, 2, 3}),
	)
}

func TestInspectCommand_TruncatedWarns(t *testing.T) {
	path := testutil.MustWriteFile(t, t.TempDir(), "cut.iff", truncatedFile())

	res := runCLI(t, "inspect", path)
	if res.err != nil {
		t.Fatalf("non-strict inspect should succeed, got: %v", res.err)
	}
	if !strings.Contains(res.stdout, `Chunk "NAME". Size 2 bytes`) {
		t.Errorf("chunks before the break should be listed:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "chunk at offset 10 is truncated") {
		t.Errorf("missing truncation warning:\n%s", res.stdout)
	}
}

func TestInspectCommand_TruncatedStrict(t *testing.T) {
	path := testutil.MustWriteFile(t, t.TempDir(), "cut.iff", truncatedFile())

	res := runCLI(t, "inspect", "--strict", path)

	var exitErr *ExitError
	if !errors.As(res.err, &exitErr) || exitErr.Code != ExitFailure {
		t.Fatalf("expected exit code 1, got %v", res.err)
	}
	for _, want := range []string{"failed to inspect file", "declares 100 bytes but only 4 remain"} {
		if !strings.Contains(res.stderr, want) {
			t.Errorf("stderr should contain %q:\n%s", want, res.stderr)
		}
	}
}

func TestInspectCommand_StrictFromConfig(t *testing.T) {
	cfgDir := t.TempDir()
	testutil.MustWriteFile(t, cfgDir, "config.cue", []byte(`strict: true`))
	path := testutil.MustWriteFile(t, t.TempDir(), "cut.iff", truncatedFile())

	res := runCLIWithConfigDir(t, cfgDir, "inspect", path)
	if res.err == nil {
		t.Fatal("strict config should make truncation fatal")
	}

	// The flag overrides the config in both directions.
	res = runCLIWithConfigDir(t, cfgDir, "inspect", "--strict=false", path)
	if res.err != nil {
		t.Fatalf("--strict=false should override config, got: %v", res.err)
	}
}

func TestInspectCommand_InvalidChunkID(t *testing.T) {
	data := testutil.Chunk(binary.BigEndian, " BAD", []byte("xx"))
	path := testutil.MustWriteFile(t, t.TempDir(), "bad.iff", data)

	res := runCLI(t, "inspect", path)
	if res.err == nil {
		t.Fatal("inspect should fail on an invalid chunk id")
	}
	if !strings.Contains(res.stderr, "space cannot precede letter in chunk id") {
		t.Errorf("stderr should explain the invalid id:\n%s", res.stderr)
	}
}

func TestInspectCommand_FileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		res := runCLI(t, "inspect", filepath.Join(dir, "missing.iff"))
		if res.err == nil {
			t.Fatal("inspect should fail for a missing file")
		}
		if !strings.Contains(res.stderr, "Check the path for typos") {
			t.Errorf("stderr should carry a suggestion:\n%s", res.stderr)
		}
	})

	t.Run("directory", func(t *testing.T) {
		res := runCLI(t, "inspect", dir)
		if res.err == nil || !strings.Contains(res.stderr, "is a directory") {
			t.Errorf("expected directory error, got err=%v stderr=%s", res.err, res.stderr)
		}
	})

	t.Run("too large", func(t *testing.T) {
		cfgDir := t.TempDir()
		testutil.MustWriteFile(t, cfgDir, "config.cue", []byte(`max_file_size: 4`))
		path := testutil.MustWriteFile(t, dir, "big.iff", aiffFile())

		res := runCLIWithConfigDir(t, cfgDir, "--verbose", "inspect", path)
		if res.err == nil {
			t.Fatal("inspect should reject files over max_file_size")
		}
		for _, want := range []string{"exceeds maximum 4 bytes", "Raise max_file_size", "File is larger than the configured limit"} {
			if !strings.Contains(res.stderr, want) {
				t.Errorf("stderr should contain %q:\n%s", want, res.stderr)
			}
		}
	})
}

func TestInspectCommand_InvalidFlags(t *testing.T) {
	path := testutil.MustWriteFile(t, t.TempDir(), "sound.aiff", aiffFile())

	res := runCLI(t, "inspect", "--output", "json", path)
	if res.err == nil || !strings.Contains(res.err.Error(), `invalid output format "json"`) {
		t.Errorf("expected output format error, got %v", res.err)
	}

	res = runCLI(t, "inspect", "--byte-order", "middle", path)
	if res.err == nil || !strings.Contains(res.err.Error(), `invalid byte order "middle"`) {
		t.Errorf("expected byte order error, got %v", res.err)
	}
}

func TestInspectCommand_ByteOrderFlag(t *testing.T) {
	le := binary.LittleEndian
	data := testutil.Chunk(le, "NAME", []byte("abcd"))
	path := testutil.MustWriteFile(t, t.TempDir(), "le.iff", data)

	// Auto picks big-endian for non-RIFF data, so the size reads as 0x04000000.
	res := runCLI(t, "inspect", path)
	if !strings.Contains(res.stdout, "is truncated") {
		t.Errorf("expected truncation with big-endian sizes:\n%s", res.stdout)
	}

	res = runCLI(t, "inspect", "--byte-order", "little", path)
	if res.err != nil {
		t.Fatalf("inspect returned error: %v", res.err)
	}
	if !strings.Contains(res.stdout, `Chunk "NAME". Size 4 bytes`) {
		t.Errorf("unexpected output:\n%s", res.stdout)
	}
}
