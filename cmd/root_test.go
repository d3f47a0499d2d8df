//go:build unix

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gurisko/vm/internal/registry"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr, "test")
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func tempConfig(t *testing.T) string {
	t.Helper()
	t.Setenv("VM_CONFIG", "")
	t.Setenv("VM_VAGRANT", "")
	t.Setenv("VM_VERBOSE", "")
	return filepath.Join(t.TempDir(), "vm", "config.toml")
}

func TestCLI_AddListRemove(t *testing.T) {
	cfg := tempConfig(t)
	web := t.TempDir()
	db := t.TempDir()

	if r := runCLI(t, "", "--config", cfg, "add", "web", web); r.code != 0 {
		t.Fatalf("add web: code=%d stderr=%q", r.code, r.stderr)
	}
	if r := runCLI(t, "", "--config", cfg, "add", "db", db); r.code != 0 {
		t.Fatalf("add db: code=%d stderr=%q", r.code, r.stderr)
	}

	r := runCLI(t, "", "--config", cfg, "list")
	if r.code != 0 {
		t.Fatalf("list: code=%d stderr=%q", r.code, r.stderr)
	}
	if want := "db: " + db + "\nweb: " + web + "\n"; r.stdout != want {
		t.Errorf("Expected list output %q, got %q", want, r.stdout)
	}

	r = runCLI(t, "n", "--config", cfg, "remove", "web")
	if r.code != 0 || !strings.Contains(r.stdout, "aborted") {
		t.Errorf("Expected aborted removal, got code=%d stdout=%q", r.code, r.stdout)
	}

	r = runCLI(t, "y", "--config", cfg, "remove", "web")
	if r.code != 0 || !strings.Contains(r.stdout, "Removed web") {
		t.Errorf("Expected removal, got code=%d stdout=%q", r.code, r.stdout)
	}

	reg, err := registry.Load(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if reg.Get("web") != nil || reg.Get("db") == nil {
		t.Errorf("Expected only db left, got %+v", reg.List())
	}
}

func TestCLI_FirstRunCreatesConfig(t *testing.T) {
	cfg := tempConfig(t)

	r := runCLI(t, "", "--config", cfg, "config-file-path")
	if r.code != 0 {
		t.Fatalf("code=%d stderr=%q", r.code, r.stderr)
	}
	if strings.TrimSpace(r.stdout) != cfg {
		t.Errorf("Expected %q, got %q", cfg, r.stdout)
	}
	if _, err := os.Stat(cfg); err != nil {
		t.Errorf("Expected config file created: %v", err)
	}
}

func TestCLI_ConfigFromEnv(t *testing.T) {
	cfg := tempConfig(t)
	t.Setenv("VM_CONFIG", cfg)

	r := runCLI(t, "", "config-file-path")
	if strings.TrimSpace(r.stdout) != cfg {
		t.Errorf("Expected %q from VM_CONFIG, got %q", cfg, r.stdout)
	}
}

func TestCLI_UsageErrors(t *testing.T) {
	cfg := tempConfig(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "add missing path", args: []string{"--config", cfg, "add", "web"}},
		{name: "remove missing name", args: []string{"--config", cfg, "remove"}},
		{name: "unknown flag", args: []string{"--config", cfg, "list", "--bogus"}},
		{name: "dangling -c", args: []string{"--config", cfg, "web", "-c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, "", tt.args...)
			if r.code != 2 {
				t.Errorf("Expected exit 2, got %d", r.code)
			}
			if !strings.Contains(r.stderr, "vm: ") {
				t.Errorf("Expected error on stderr, got %q", r.stderr)
			}
		})
	}
}

func TestCLI_UnknownNameDoesNotRun(t *testing.T) {
	cfg := tempConfig(t)
	marker := filepath.Join(t.TempDir(), "ran")
	t.Setenv("VM_VAGRANT", "sh")

	r := runCLI(t, "", "--config", cfg, "ghost", "--", "-c", "touch "+marker)
	if r.code == 0 {
		t.Error("Expected non-zero exit")
	}
	if !strings.Contains(r.stderr, "ghost is not found in vm_list") {
		t.Errorf("Expected not-found message, got %q", r.stderr)
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Error("Expected no process to run")
	}
}

func TestCLI_ForwardsToVagrant(t *testing.T) {
	cfg := tempConfig(t)
	web := t.TempDir()
	if r := runCLI(t, "", "--config", cfg, "add", "web", web); r.code != 0 {
		t.Fatalf("add: code=%d stderr=%q", r.code, r.stderr)
	}
	// sh stands in for vagrant so the forwarded argv is observable.
	t.Setenv("VM_VAGRANT", "sh")

	r := runCLI(t, "", "--config", cfg, "web", "--", "-c", "pwd")
	if r.code != 0 {
		t.Fatalf("raw: code=%d stderr=%q", r.code, r.stderr)
	}
	wantDir, _ := filepath.EvalSymlinks(web)
	gotDir, _ := filepath.EvalSymlinks(strings.TrimSpace(r.stdout))
	if gotDir != wantDir {
		t.Errorf("Expected vagrant to run in %q, got %q", wantDir, gotDir)
	}

	if r := runCLI(t, "", "--config", cfg, "web", "-c", "-c 'exit 7'"); r.code != 7 {
		t.Errorf("Expected exit 7 from -c form, got %d (stderr=%q)", r.code, r.stderr)
	}
	if r := runCLI(t, "", "--config", cfg, "web", "-ec", "exit 9"); r.code != 9 {
		t.Errorf("Expected exit 9 from subcommand form, got %d (stderr=%q)", r.code, r.stderr)
	}

	reg, _ := registry.Load(cfg)
	if reg.VagrantPath != registry.DefaultVagrantPath() {
		t.Errorf("Expected VM_VAGRANT not to be persisted, got %q", reg.VagrantPath)
	}
}

func TestCLI_MissingVagrant(t *testing.T) {
	cfg := tempConfig(t)
	if r := runCLI(t, "", "--config", cfg, "add", "web", t.TempDir()); r.code != 0 {
		t.Fatalf("add: code=%d stderr=%q", r.code, r.stderr)
	}
	t.Setenv("VM_VAGRANT", filepath.Join(t.TempDir(), "no-vagrant"))

	r := runCLI(t, "", "--config", cfg, "web", "up")
	if r.code != 1 {
		t.Errorf("Expected exit 1, got %d", r.code)
	}
	if !strings.Contains(r.stderr, "cannot run") {
		t.Errorf("Expected process error on stderr, got %q", r.stderr)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{in: "~", want: home},
		{in: "~/proj", want: filepath.Join(home, "proj")},
		{in: "~other/proj", want: "~other/proj"},
		{in: "/srv/web", want: "/srv/web"},
		{in: "rel/path", want: "rel/path"},
	}
	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.want {
			t.Errorf("expandHome(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
