// Package media uploads files to the asset host and removes them again.
//
// Assets are addressed by the key and resource type the host returned at
// upload time. Both are stored next to the public URL so deletion never has
// to reverse-engineer a key from a URL.
package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Resource types understood by the asset host. Audio is stored as "video".
const (
	ResourceImage = "image"
	ResourceVideo = "video"
)

// Asset is an uploaded file.
type Asset struct {
	URL  string
	Key  string
	Type string
}

// UploadOptions tells the host where and how to store a file.
type UploadOptions struct {
	Folder       string
	ResourceType string
	Filename     string
}

// Host is the asset host.
type Host interface {
	Upload(ctx context.Context, r io.Reader, opts UploadOptions) (*Asset, error)
	Delete(ctx context.Context, key, resourceType string) error
}

// Policy declares which files a media kind accepts.
type Policy struct {
	AllowedTypes []string
	MaxBytes     int64
	ResourceType string
}

var (
	ImagePolicy = Policy{
		AllowedTypes: []string{"image/png", "image/jpeg", "image/webp"},
		MaxBytes:     10 << 20,
		ResourceType: ResourceImage,
	}

	AudioPolicy = Policy{
		AllowedTypes: []string{"audio/mpeg", "audio/wav"},
		MaxBytes:     50 << 20,
		ResourceType: ResourceVideo,
	}
)

// PolicyError describes why a file was refused.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string {
	return e.Reason
}

// Check enforces the policy on r, whose length is size. The content type is
// sniffed from the bytes, never taken from the client. r is rewound on
// success.
func (p Policy) Check(r io.ReadSeeker, size int64) (string, error) {
	if size <= 0 {
		return "", &PolicyError{Reason: "file is empty"}
	}
	if p.MaxBytes > 0 && size > p.MaxBytes {
		return "", &PolicyError{Reason: fmt.Sprintf("file exceeds the %d MB limit", p.MaxBytes>>20)}
	}

	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	for _, allowed := range p.AllowedTypes {
		if mtype.Is(allowed) {
			return allowed, nil
		}
	}

	return "", &PolicyError{Reason: fmt.Sprintf("file type %s is not allowed (allowed: %s)",
		mtype.String(), strings.Join(p.AllowedTypes, ", "))}
}
