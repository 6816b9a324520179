package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

const frames = `
complete = true

[textures.checker]
pattern = "checker"
size = 4

[[frame]]
name = "first"
blend = "alpha"
color = [1, 0, 0, 1]
depth_test = "less"
texture0 = "checker"

[[frame]]
complete = false
unset = ["blend"]
cull_face = "front cw"
color_write = "rg"
depth_write = false

[[frame]]
color = [1, 0, 0]
`

const wantOutput = `frame 1 first (complete=true)
  blend on SrcAlpha OneMinusSrcAlpha Add
  color 1 0 0 1
  depthtest on Less
  bind 0 checker
  actions: ISSUE_NEW=4
frame 2 (complete=false)
  colorwrite rg
  cull Front CW
  depthwrite off
  actions: ISSUE_NEW=3
frame 3 (complete=true)
  blend off
  colorwrite rgba
  cull Back CCW
  depthtest off
  depthwrite on
  unbind 0
  actions: SKIP_UNCHANGED=1 UNISSUE_ABSENT=6
total: 3 frames, 3 calls, 13 issued
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(&out, zerolog.New(io.Discard))
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestReplayRecorder(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "frames.toml", frames)
	config := writeFile(t, dir, "replay.toml", "")

	got, err := runCommand(t, "--config", config, script)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(wantOutput, got); d != "" {
		t.Errorf("output mismatch (-want +got):\n%s", d)
	}
}

func TestReplayForcedComplete(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "frames.toml", frames)
	config := writeFile(t, dir, "replay.toml", "")

	got, err := runCommand(t, "--config", config, "--complete", script)
	if err != nil {
		t.Fatal(err)
	}
	// The second frame now resets everything it does not name.
	if !strings.Contains(got, "frame 2 (complete=true)\n  blend off\n  color 1 1 1 1\n") {
		t.Errorf("frame 2 was not complete:\n%s", got)
	}
}

func TestReplayErrors(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "replay.toml", "")
	bad := writeFile(t, dir, "bad.toml", "[[frame]]\nfog = true\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing script", []string{"--config", config, filepath.Join(dir, "none.toml")}, "no such file"},
		{"bad attribute", []string{"--config", config, bad}, "unknown attribute"},
		{"missing config", []string{"--config", filepath.Join(dir, "none.toml"), bad}, "load config"},
		{"bad log level", []string{"--config", config, "--log-level", "loud", bad}, "log level"},
		{"bad clear color", []string{"--config", config, "--clear-color", "1,2,3", bad}, "--clear-color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "replay.toml", "preferred_backends = [\"native\"]\nhal_backend = \"gl\"\npool_size = 8\n")

	f := flags{config: config, backends: "recorder", clearColor: []float64{1, 0, 0}, verbose: true}
	cfg, err := f.resolve(map[string]bool{"config": true, "backend": true, "clear-color": true})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"recorder"}, cfg.Backends); d != "" {
		t.Errorf("Backends mismatch (-want +got):\n%s", d)
	}
	if cfg.HALBackend != "gl" || cfg.PoolSize != 8 || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ClearColor != (gputypes.Color{R: 1, A: 1}) {
		t.Errorf("ClearColor = %v", cfg.ClearColor)
	}
}
