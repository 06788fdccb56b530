package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, code string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.fn")
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileAcceptsWellTypedProgram(t *testing.T) {
	path := writeTemp(t, "fn add(a: Int, b: Int) -> Int:\n    a + b\n")
	pl, err := compile(path)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if pl.diags.HasErrors() {
		t.Fatalf("expected no diagnostics, got: %v", pl.diags)
	}
}

func TestCompileReportsTypeMismatch(t *testing.T) {
	path := writeTemp(t, "fn f() -> Int:\n    if true:\n        1\n    else:\n        \"x\"\n")
	pl, err := compile(path)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !pl.diags.HasErrors() {
		t.Fatal("expected a type-mismatch diagnostic")
	}
}

func TestCompileReportsParseError(t *testing.T) {
	path := writeTemp(t, "fn f(:\n")
	pl, err := compile(path)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !pl.diags.HasErrors() {
		t.Fatal("expected a parse diagnostic")
	}
}

func TestCompileMissingFile(t *testing.T) {
	if _, err := compile(filepath.Join(t.TempDir(), "missing.fn")); err == nil {
		t.Fatal("expected a read error for a missing file")
	}
}
