package compressor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pdfFixture = append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{0xAB}, 512)...)

func fixedOutput(out []byte) Compressor {
	return Func(func(ctx context.Context, src []byte, opts Options) ([]byte, error) {
		return out, nil
	})
}

func TestExecuteSuccess(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.pdf")
	dest := filepath.Join(dir, "out", "doc.pdf")
	if err := os.WriteFile(src, pdfFixture, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	compressed := []byte("%PDF-1.4\ncompressed")
	unit := NewUnit(fixedOutput(compressed))

	res := unit.Execute(context.Background(), Request{
		SourcePath:   src,
		DestPath:     dest,
		OriginalSize: int64(len(pdfFixture)),
		Quality:      50,
		DPI:          150,
	})

	if !res.Success() {
		t.Fatalf("expected success, got stage=%s err=%v", res.Stage, res.Err)
	}
	if res.CompressedSize != int64(len(compressed)) {
		t.Fatalf("expected compressed size %d, got %d", len(compressed), res.CompressedSize)
	}
	if res.Elapsed < 0 {
		t.Fatalf("expected non-negative elapsed, got %v", res.Elapsed)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if !bytes.Equal(got, compressed) {
		t.Fatalf("destination bytes differ from compressor output")
	}

	after, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("re-read source: %v", err)
	}
	if !bytes.Equal(after, pdfFixture) {
		t.Fatalf("source file was modified")
	}
}

func TestExecutePassesOptionsThrough(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(src, pdfFixture, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var seen Options
	unit := NewUnit(Func(func(ctx context.Context, src []byte, opts Options) ([]byte, error) {
		seen = opts
		return src, nil
	}))

	res := unit.Execute(context.Background(), Request{
		SourcePath: src,
		DestPath:   filepath.Join(dir, "out.pdf"),
		Quality:    30,
		DPI:        100,
	})
	if !res.Success() {
		t.Fatalf("execute: %v", res.Err)
	}
	if seen.Quality != 30 || seen.DPI != 100 {
		t.Fatalf("options not passed through: %+v", seen)
	}
}

func TestExecuteReadFailure(t *testing.T) {
	unit := NewUnit(fixedOutput(nil))
	res := unit.Execute(context.Background(), Request{
		SourcePath: filepath.Join(t.TempDir(), "missing.pdf"),
		DestPath:   filepath.Join(t.TempDir(), "out.pdf"),
	})
	if res.Success() {
		t.Fatal("expected failure for missing source")
	}
	if res.Stage != StageRead {
		t.Fatalf("expected stage %q, got %q", StageRead, res.Stage)
	}
}

func TestExecuteRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "fake.pdf")
	if err := os.WriteFile(src, []byte("just some text, no signature"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	called := false
	unit := NewUnit(Func(func(ctx context.Context, src []byte, opts Options) ([]byte, error) {
		called = true
		return src, nil
	}))

	res := unit.Execute(context.Background(), Request{
		SourcePath: src,
		DestPath:   filepath.Join(dir, "out.pdf"),
	})
	if res.Success() {
		t.Fatal("expected failure for non-PDF content")
	}
	if res.Stage != StageRead {
		t.Fatalf("expected stage %q, got %q", StageRead, res.Stage)
	}
	if called {
		t.Fatal("compressor invoked for non-PDF content")
	}
}

func TestExecuteCompressFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.pdf")
	dest := filepath.Join(dir, "out.pdf")
	if err := os.WriteFile(src, pdfFixture, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	boom := errors.New("malformed xref")
	unit := NewUnit(Func(func(ctx context.Context, src []byte, opts Options) ([]byte, error) {
		return nil, boom
	}))

	res := unit.Execute(context.Background(), Request{SourcePath: src, DestPath: dest})
	if res.Success() {
		t.Fatal("expected failure")
	}
	if res.Stage != StageCompress {
		t.Fatalf("expected stage %q, got %q", StageCompress, res.Stage)
	}
	if !errors.Is(res.Err, boom) {
		t.Fatalf("expected wrapped compressor error, got %v", res.Err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("destination should not exist after failure, stat err: %v", err)
	}
}

func TestExecuteContainsPanic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(src, pdfFixture, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	unit := NewUnit(Func(func(ctx context.Context, src []byte, opts Options) ([]byte, error) {
		panic("index out of range in parser")
	}))

	res := unit.Execute(context.Background(), Request{
		SourcePath: src,
		DestPath:   filepath.Join(dir, "out.pdf"),
	})
	if res.Success() {
		t.Fatal("expected failure from panicking compressor")
	}
	if res.Stage != StageCompress {
		t.Fatalf("expected stage %q, got %q", StageCompress, res.Stage)
	}
	if !strings.Contains(res.Err.Error(), "panic") {
		t.Fatalf("expected panic to be reported, got %v", res.Err)
	}
}

func TestExecuteCreatesNestedDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.pdf")
	dest := filepath.Join(dir, "a", "b", "doc.pdf")
	if err := os.WriteFile(src, pdfFixture, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	unit := NewUnit(fixedOutput([]byte("%PDF-1.4\nout")))
	res := unit.Execute(context.Background(), Request{SourcePath: src, DestPath: dest})
	if !res.Success() {
		t.Fatalf("execute: %v", res.Err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("stat dest: %v", err)
	}
}
