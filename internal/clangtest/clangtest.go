// Package clangtest replaces the clang executable with a shell script in
// tests, so the subprocess path runs on machines without a toolchain.
package clangtest

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Script is what the fake clang writes and how it exits.
type Script struct {
	Stdout string
	Stderr string
	Exit   int
}

// Clang is an installed fake clang.
type Clang struct {
	// Path is the executable to pass as the clang binary.
	Path string

	argsFile string
}

// Install writes an executable that behaves as s into a temporary directory.
func Install(t testing.TB, s Script) *Clang {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake clang is a shell script")
	}

	dir := t.TempDir()

	c := &Clang{
		Path:     filepath.Join(dir, "clang"),
		argsFile: filepath.Join(dir, "args"),
	}

	stdout := filepath.Join(dir, "stdout")
	stderr := filepath.Join(dir, "stderr")

	write(t, stdout, s.Stdout, 0o644)
	write(t, stderr, s.Stderr, 0o644)

	script := fmt.Sprintf(`#!/bin/sh
for arg in "$@"; do
	printf '%%s\n' "$arg" >> '%s'
done
cat '%s'
cat '%s' >&2
exit %d
`, c.argsFile, stdout, stderr, s.Exit)

	write(t, c.Path, script, 0o755)

	return c
}

// Args returns the arguments of the last run, or nil if it never ran.
func (c *Clang) Args(t testing.TB) []string {
	t.Helper()

	b, err := os.ReadFile(c.argsFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading fake clang arguments: %v", err)
	}

	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
}

// Ran reports whether the fake clang was executed.
func (c *Clang) Ran(t testing.TB) bool {
	t.Helper()
	return c.Args(t) != nil
}

func write(t testing.TB, path, data string, perm os.FileMode) {
	t.Helper()

	if err := os.WriteFile(path, []byte(data), perm); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
