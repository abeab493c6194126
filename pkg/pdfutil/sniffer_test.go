package pdfutil

import (
	"bytes"
	"errors"
	"testing"
)

func TestDetectHeader(t *testing.T) {
	cases := []struct {
		name    string
		header  []byte
		version string
		wantErr bool
	}{
		{"pdf17", []byte("%PDF-1.7\n"), "1.7", false},
		{"pdf20", []byte("%PDF-2.0\r\n"), "2.0", false},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46}, "", true},
		{"text", []byte("hello world"), "", true},
		{"short", []byte("%PDF"), "", true},
		{"no version", []byte("%PDF-abc"), "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			version, err := DetectHeader(tc.header)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got version %q", version)
				}
				return
			}
			if err != nil {
				t.Fatalf("detect: %v", err)
			}
			if version != tc.version {
				t.Fatalf("expected version %q, got %q", tc.version, version)
			}
		})
	}
}

func TestSniffReaderNotPDF(t *testing.T) {
	_, err := SniffReader(bytes.NewReader([]byte("PK\x03\x04 not a pdf at all")))
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("expected ErrNotPDF, got %v", err)
	}
}

func TestSniffReaderValid(t *testing.T) {
	version, err := SniffReader(bytes.NewReader([]byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")))
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	if version != "1.4" {
		t.Fatalf("expected version 1.4, got %q", version)
	}
}
