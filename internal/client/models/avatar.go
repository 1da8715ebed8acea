package models

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/wroger/gymtrack/internal/filex"
)

// MaxAvatarBytes is the upper bound for a profile image. Anything larger
// is rejected locally, before any upload is attempted.
const MaxAvatarBytes = 5 * 1024 * 1024

var (
	ErrAvatarTooLarge = errors.New("avatar image exceeds the 5 MB limit")
	ErrAvatarNotImage = errors.New("avatar file is not an image")
)

// AvatarCandidate is a locally picked image pending upload: a path, its
// byte size, and the declared MIME type.
type AvatarCandidate struct {
	Path string
	Size int64
	MIME string
}

// NewAvatarCandidate inspects the file at path and builds a candidate.
// The file contents are not loaded into memory here.
func NewAvatarCandidate(path string) (AvatarCandidate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return AvatarCandidate{}, fmt.Errorf("stat %s: %w", path, err)
	}

	mime, err := filex.SniffMime(path)
	if err != nil {
		return AvatarCandidate{}, err
	}

	return AvatarCandidate{Path: path, Size: info.Size(), MIME: mime}, nil
}

// Validate enforces the local upload constraints: the candidate must be
// an image and must not exceed MaxAvatarBytes.
func (c AvatarCandidate) Validate() error {
	if !strings.HasPrefix(c.MIME, "image/") {
		return ErrAvatarNotImage
	}
	if c.Size > MaxAvatarBytes {
		return ErrAvatarTooLarge
	}
	return nil
}
