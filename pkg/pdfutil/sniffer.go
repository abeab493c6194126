package pdfutil

import (
	"errors"
	"io"
	"os"
)

// ErrNotPDF is returned when a file does not start with the PDF signature.
var ErrNotPDF = errors.New("not a PDF file")

var pdfSig = []byte("%PDF-")

// DetectHeader checks the first bytes of a file for the %PDF- signature and
// returns the declared version string (e.g. "1.7"), or ErrNotPDF.
func DetectHeader(header []byte) (string, error) {
	if len(header) < 8 {
		return "", errors.New("header too short")
	}
	if !hasPrefix(header, pdfSig) {
		return "", ErrNotPDF
	}

	version := make([]byte, 0, 3)
	for _, b := range header[len(pdfSig):] {
		if (b < '0' || b > '9') && b != '.' {
			break
		}
		version = append(version, b)
	}
	if len(version) == 0 {
		return "", ErrNotPDF
	}
	return string(version), nil
}

// SniffFile reads the first 8 bytes of a file and validates the signature.
func SniffFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads the first 8 bytes from r and validates the signature.
func SniffReader(r io.Reader) (string, error) {
	header := make([]byte, 8)
	if _, err := io.ReadFull(r, header); err != nil {
		return "", err
	}

	return DetectHeader(header)
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i := range prefix {
		if buf[i] != prefix[i] {
			return false
		}
	}
	return true
}
