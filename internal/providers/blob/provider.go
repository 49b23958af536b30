package blob

import (
	"context"
	"errors"
	"io"
)

// Provider stores an uploaded file and returns its public URL.
type Provider interface {
	Upload(ctx context.Context, filename string, contentType string, r io.Reader) (string, error)
}

var ErrNotConfigured = errors.New("blob provider not configured")

type NoOpProvider struct{}

func (p *NoOpProvider) Upload(ctx context.Context, filename string, contentType string, r io.Reader) (string, error) {
	return "", ErrNotConfigured
}
