package catalog

import (
	"os"
	"path/filepath"
	"strings"
)

// File describes one candidate input discovered during enumeration.
type File struct {
	Path string
	Size int64
}

// Enumerate lists the PDF files directly inside dir, in directory order.
// A missing directory or one with no matching files yields an empty slice;
// the caller decides how to report a no-op batch. Matching is a
// case-insensitive .pdf suffix check, subdirectories are not descended.
func Enumerate(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || !entry.Type().IsRegular() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Path: filepath.Join(dir, entry.Name()),
			Size: info.Size(),
		})
	}

	return files, nil
}
