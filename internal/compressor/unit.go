package compressor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"crush/pkg/pdfutil"
)

// Request describes one file's compression job. Built once by the
// orchestrator, owned exclusively by the worker executing it.
type Request struct {
	SourcePath   string
	DestPath     string
	OriginalSize int64
	Quality      int
	DPI          int
}

// Stages a per-file failure is attributed to.
const (
	StageRead     = "read"
	StageCompress = "compress"
	StageWrite    = "write"
)

// Result is the terminal outcome of one request. Err == nil means the
// compressed copy exists at DestPath.
type Result struct {
	SourcePath     string
	OriginalSize   int64
	CompressedSize int64
	Elapsed        time.Duration
	Stage          string
	Err            error
}

func (r Result) Success() bool {
	return r.Err == nil
}

// Unit executes single requests against a Compressor.
type Unit struct {
	comp Compressor
}

func NewUnit(comp Compressor) *Unit {
	return &Unit{comp: comp}
}

// Execute runs one request to a terminal Result. Every failure, including a
// panicking collaborator, is contained in the Result so a bad document can
// never take down its worker. The source file is only ever read.
func (u *Unit) Execute(ctx context.Context, req Request) (res Result) {
	start := time.Now()
	res = Result{SourcePath: req.SourcePath, OriginalSize: req.OriginalSize}
	defer func() {
		if p := recover(); p != nil {
			res.Stage = StageCompress
			res.Err = fmt.Errorf("compressor panic: %v", p)
		}
		res.Elapsed = time.Since(start)
	}()

	src, err := os.ReadFile(req.SourcePath)
	if err != nil {
		res.Stage, res.Err = StageRead, err
		return res
	}
	if _, err := pdfutil.DetectHeader(src); err != nil {
		res.Stage, res.Err = StageRead, err
		return res
	}

	out, err := u.comp.Compress(ctx, src, Options{Quality: req.Quality, DPI: req.DPI})
	if err != nil {
		res.Stage, res.Err = StageCompress, err
		return res
	}

	if err := writeAtomic(req.DestPath, out); err != nil {
		res.Stage, res.Err = StageWrite, err
		return res
	}

	res.CompressedSize = int64(len(out))
	return res
}

// writeAtomic lands data at destPath via a temp file in the destination
// directory so a failed write never leaves a truncated output behind.
func writeAtomic(destPath string, data []byte) error {
	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(destDir, "crush-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return replaceFile(tmpFile.Name(), destPath)
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
