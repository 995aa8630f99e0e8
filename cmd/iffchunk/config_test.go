// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/iffchunk/internal/testutil"
)

func TestConfigShow_Defaults(t *testing.T) {
	res := runCLI(t, "config", "show")
	if res.err != nil {
		t.Fatalf("config show returned error: %v", res.err)
	}
	for _, want := range []string{"(using defaults)", "byte_order: auto", "max_file_size: 67108864", "color_scheme: auto"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout should contain %q:\n%s", want, res.stdout)
		}
	}
}

func TestConfigShow_FromFile(t *testing.T) {
	cfgDir := t.TempDir()
	path := testutil.MustWriteFile(t, cfgDir, "config.cue", []byte(`byte_order: "little"`))

	res := runCLIWithConfigDir(t, cfgDir, "config", "show")
	if res.err != nil {
		t.Fatalf("config show returned error: %v", res.err)
	}
	if !strings.Contains(res.stdout, path) || !strings.Contains(res.stdout, "byte_order: little") {
		t.Errorf("unexpected output:\n%s", res.stdout)
	}
}

func TestConfigShow_BrokenFile(t *testing.T) {
	cfgDir := t.TempDir()
	testutil.MustWriteFile(t, cfgDir, "config.cue", []byte(`byte_order: "middle"`))

	res := runCLIWithConfigDir(t, cfgDir, "config", "show")
	if res.err == nil {
		t.Fatal("config show should fail for an invalid config file")
	}
	if !strings.Contains(res.stderr, "Warning:") || !strings.Contains(res.stderr, "Failed to load configuration") {
		t.Errorf("stderr should warn and render the guide:\n%s", res.stderr)
	}
}

func TestConfigFlag_ExplicitFile(t *testing.T) {
	explicit := testutil.MustWriteFile(t, t.TempDir(), "custom.cue", []byte(`strict: true`))

	res := runCLI(t, "--config", explicit, "config", "dump")
	if res.err != nil {
		t.Fatalf("config dump returned error: %v", res.err)
	}
	if !strings.Contains(res.stdout, "strict: true") {
		t.Errorf("dump should reflect the explicit file:\n%s", res.stdout)
	}
}

func TestConfigInit(t *testing.T) {
	cfgDir := filepath.Join(t.TempDir(), "iffchunk")

	res := runCLIWithConfigDir(t, cfgDir, "config", "init")
	if res.err != nil {
		t.Fatalf("config init returned error: %v", res.err)
	}
	cfgPath := filepath.Join(cfgDir, "config.cue")
	if !strings.Contains(res.stdout, "Created default configuration at "+cfgPath) {
		t.Errorf("unexpected output:\n%s", res.stdout)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	res = runCLIWithConfigDir(t, cfgDir, "config", "init")
	if res.err != nil || !strings.Contains(res.stdout, "already exists") {
		t.Errorf("second init should report the existing file, got err=%v stdout=%s", res.err, res.stdout)
	}
}

func TestConfigPath(t *testing.T) {
	cfgDir := t.TempDir()

	res := runCLIWithConfigDir(t, cfgDir, "config", "path")
	if res.err != nil {
		t.Fatalf("config path returned error: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Config directory: "+cfgDir) ||
		!strings.Contains(res.stdout, "Config file: "+filepath.Join(cfgDir, "config.cue")) {
		t.Errorf("unexpected output:\n%s", res.stdout)
	}
}

func TestVerboseFromConfigEnablesDebugLogs(t *testing.T) {
	cfgDir := t.TempDir()
	testutil.MustWriteFile(t, cfgDir, "config.cue", []byte("ui: verbose: true\n"))

	res := runCLIWithConfigDir(t, cfgDir, "id", "FORM")
	if res.err != nil {
		t.Fatalf("id returned error: %v", res.err)
	}
	if !strings.Contains(res.stderr, "configuration loaded") {
		t.Errorf("debug log should be written to stderr:\n%s", res.stderr)
	}
}
