package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cheaxlang/cheax/internal/eval"
	"github.com/cheaxlang/cheax/pkg/cheax"
)

func newTestHandle() *cheax.Handle {
	return cheax.Init(cheax.Options{})
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.MaxStackDepth != eval.DefaultMaxStackDepth {
		t.Errorf("MaxStackDepth = %d, want default %d", opts.MaxStackDepth, eval.DefaultMaxStackDepth)
	}
	if len(opts.Features) != 0 {
		t.Errorf("Features = %v, want empty", opts.Features)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cheax.yaml")
	doc := "max_stack_depth: 64\nfeatures:\n  - stdout\n  - exit\nprelude: prelude.chx\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.MaxStackDepth != 64 {
		t.Errorf("MaxStackDepth = %d, want 64", opts.MaxStackDepth)
	}
	if len(opts.Features) != 2 || opts.Features[0] != "stdout" || opts.Features[1] != "exit" {
		t.Errorf("Features = %v", opts.Features)
	}
	if opts.Prelude != "prelude.chx" {
		t.Errorf("Prelude = %q", opts.Prelude)
	}
}

func TestApplyPreludeDefinesBindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prelude.chx")
	if err := os.WriteFile(path, []byte("(var square-seed 6)\n(const answer 42)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts := Default()
	opts.Prelude = path
	h := newTestHandle()
	if err := ApplyPrelude(h, opts); err != nil {
		t.Fatalf("ApplyPrelude: %v", err)
	}
	got, err := h.Get("answer")
	if err != nil {
		t.Fatalf("lookup answer: %v", err)
	}
	if h.PrintString(got) != "42" {
		t.Errorf("answer printed as %s, want 42", h.PrintString(got))
	}
}

func TestApplyPreludeMissingFileErrors(t *testing.T) {
	opts := Default()
	opts.Prelude = filepath.Join(t.TempDir(), "missing.chx")
	h := newTestHandle()
	if err := ApplyPrelude(h, opts); err == nil {
		t.Fatal("expected an error for a missing prelude file")
	}
}

func TestApplyPreludeBlankIsNoop(t *testing.T) {
	h := newTestHandle()
	if err := ApplyPrelude(h, Default()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
