package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out.String(), "edgarmcp "+version) {
		t.Errorf("unexpected version output: %q", out.String())
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"init", "--email", "analyst@example.com"})

	if err := root.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	path := filepath.Join(dir, "edgarmcp", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
	if !strings.Contains(string(data), "analyst@example.com") {
		t.Errorf("config file missing email: %s", data)
	}

	// A second init must not clobber the existing file.
	rerun := newRootCmd()
	rerun.SetArgs([]string{"init", "--email", "other@example.com"})
	err = rerun.Execute()
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected already-exists error, got %v", err)
	}
}

func TestInitCommandRequiresEmail(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()

	root := newRootCmd()
	root.SetArgs([]string{"init"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error when --email is missing")
	}
}
