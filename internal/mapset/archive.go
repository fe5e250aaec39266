package mapset

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"
)

// archiveModTime is stamped on every entry so equal input yields equal bytes
var archiveModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// PackageArchive writes every document of the set into a zip archive, in set
// order, with the document name as entry path and its content as UTF-8 text.
func PackageArchive(set *MapSet) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, doc := range set.Documents() {
		header := &zip.FileHeader{
			Name:     doc.Name,
			Method:   zip.Deflate,
			Modified: archiveModTime,
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", doc.Name, err)
		}
		if _, err := io.WriteString(w, doc.Content); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", doc.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// ArchiveEntry is one file read back from an archive
type ArchiveEntry struct {
	Name    string
	Content string
}

// ReadArchive returns the entries of a zip archive in stored order
func ReadArchive(data []byte) ([]ArchiveEntry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	entries := make([]ArchiveEntry, 0, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		entries = append(entries, ArchiveEntry{Name: f.Name, Content: string(content)})
	}
	return entries, nil
}
