package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskProvider writes uploads under a local directory served at /files.
type DiskProvider struct {
	dir     string
	baseURL string
}

func NewDisk(dir, baseURL string) *DiskProvider {
	return &DiskProvider{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (p *DiskProvider) Upload(ctx context.Context, filename string, contentType string, r io.Reader) (string, error) {
	_ = ctx
	_ = contentType

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", err
	}

	// Stored names are unguessable; the original name survives as a suffix
	// for readability.
	name := uuid.NewString() + "-" + sanitize(filename)
	path := filepath.Join(p.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", err
	}

	return fmt.Sprintf("%s/files/%s", p.baseURL, name), nil
}

func sanitize(filename string) string {
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, " ", "_")
	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "upload.pdf"
	}
	return b.String()
}
