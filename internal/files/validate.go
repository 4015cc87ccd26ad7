package files

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sentinel errors surfaced by upload validation. Handlers map anything
// matching [ErrInvalidUpload] (which all of them wrap) to a client error.
var (
	// ErrNoFile is returned when no file payload was supplied at all.
	ErrNoFile = errors.New("no file provided")

	// ErrInvalidUpload is the common ancestor of every validation rejection.
	ErrInvalidUpload = errors.New("invalid upload")
)

// KeyError reports which logical slot of a keyed batch failed and why.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("failed to save file for key %q: %v", e.Key, e.Err)
}

func (e *KeyError) Unwrap() error { return e.Err }

// validate applies the category profile to one upload: media-type coherence,
// extension allow-list, and size ceiling. Validation always runs before any
// byte is written.
func (s *Store) validate(u Upload, category Category) error {
	if len(u.Content) == 0 && u.Name == "" {
		return ErrNoFile
	}

	switch category {
	case CategoryImage:
		if !strings.HasPrefix(u.ContentType, "image/") {
			return fmt.Errorf("%w: invalid image file, only images are allowed", ErrInvalidUpload)
		}
	case CategoryVideo:
		if !strings.HasPrefix(u.ContentType, "video/") {
			return fmt.Errorf("%w: invalid video file, only videos are allowed", ErrInvalidUpload)
		}
	case CategoryFile:
		// The generic bucket is for non-media documents only.
		if strings.HasPrefix(u.ContentType, "image/") || strings.HasPrefix(u.ContentType, "video/") {
			return fmt.Errorf("%w: invalid file type", ErrInvalidUpload)
		}
	default:
		return fmt.Errorf("%w: unknown upload category %q", ErrInvalidUpload, category)
	}

	allowed := s.allowedExtensions(category)
	ext := strings.ToLower(filepath.Ext(u.Name))
	if !contains(allowed, ext) {
		return fmt.Errorf("%w: invalid file extension, allowed: %s", ErrInvalidUpload, strings.Join(allowed, ", "))
	}

	if max := s.maxSize(category); u.Size > max {
		return fmt.Errorf("%w: file too large, max allowed size is %d MB", ErrInvalidUpload, max/(1<<20))
	}

	return nil
}

func (s *Store) allowedExtensions(category Category) []string {
	switch category {
	case CategoryImage:
		return s.cfg.AllowedImageExts
	case CategoryVideo:
		return s.cfg.AllowedVideoExts
	default:
		return s.cfg.AllowedFileExts
	}
}

func (s *Store) maxSize(category Category) int64 {
	switch category {
	case CategoryImage:
		return s.cfg.MaxImageSize
	case CategoryVideo:
		return s.cfg.MaxVideoSize
	default:
		return s.cfg.MaxFileSize
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
