package compressor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wudi/pdfkit/ir"
	"github.com/wudi/pdfkit/optimize"
	"github.com/wudi/pdfkit/writer"
)

// Options carries the lossy knobs applied to embedded images. Structural
// compression (stream deflate, object streams, duplicate merging) is always
// on.
type Options struct {
	Quality int // JPEG re-encode quality, 0-100
	DPI     int // downsample images rendered above this density
}

// Compressor turns PDF bytes into smaller PDF bytes. Implementations must
// not modify src.
type Compressor interface {
	Compress(ctx context.Context, src []byte, opts Options) ([]byte, error)
}

// Func adapts a plain function to the Compressor interface.
type Func func(ctx context.Context, src []byte, opts Options) ([]byte, error)

func (f Func) Compress(ctx context.Context, src []byte, opts Options) ([]byte, error) {
	return f(ctx, src, opts)
}

// PDFKit compresses documents in-process with github.com/wudi/pdfkit:
// parse to the semantic document, run the optimizer over it, serialize with
// maximum stream compression and object streams enabled.
type PDFKit struct{}

func NewPDFKit() *PDFKit {
	return &PDFKit{}
}

func (p *PDFKit) Compress(ctx context.Context, src []byte, opts Options) ([]byte, error) {
	doc, err := ir.NewDefault().Parse(ctx, bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	opt := optimize.New(optimize.Config{
		CombineDuplicateDirectObjects:   true,
		CombineIdenticalIndirectObjects: true,
		CombineDuplicateStreams:         true,
		CompressStreams:                 true,
		CleanUnusedResources:            true,
		ImageQuality:                    opts.Quality,
		ImageUpperPPI:                   float64(opts.DPI),
	})
	if err := opt.Optimize(ctx, doc); err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}

	var buf bytes.Buffer
	cfg := writer.Config{
		Compression:   9,
		ObjectStreams: true,
	}
	if err := writer.NewWriter().Write(ctx, doc, &buf, cfg); err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}

	return buf.Bytes(), nil
}
