// SPDX-License-Identifier: Apache-2.0

// Package files implements the upload persistence layer: it validates,
// uniquely names, stores, and later removes binary attachments on behalf of
// the feature services (applications, configuration, pages, services).
//
// Stored uploads are addressed by a public URL of the form
//
//	{host}/{uploadDir}/{folder}/{uniqueName}
//
// which doubles as the persisted reference inside owning documents. The URL
// scheme and the on-disk layout {root}/{folder}/{uniqueName} are a persisted
// contract: changing either breaks previously stored references.
package files

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mkamel/corsite-backend/internal/config"
	"github.com/mkamel/corsite-backend/internal/logger"
)

// Category selects the validation profile applied to an upload.
type Category string

const (
	CategoryImage Category = "image"
	CategoryVideo Category = "video"
	CategoryFile  Category = "file"
)

// Upload is one multipart file payload handed over by the transport layer.
type Upload struct {
	// Name is the original client-side file name; only its extension is
	// trusted, and only after validation.
	Name string

	// ContentType is the media type declared by the client.
	ContentType string

	// Size is the payload size in bytes.
	Size int64

	// Content holds the raw bytes.
	Content []byte
}

// Failed describes one rejected entry of a homogeneous batch.
type Failed struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Store persists uploads under a single configured root directory.
// All state is read-only after construction; Store is safe for concurrent
// use by multiple requests.
type Store struct {
	cfg    config.Uploads
	logger *logger.Logger
}

// NewStore constructs a Store from the boot-time upload configuration.
func NewStore(cfg config.Uploads, log *logger.Logger) *Store {
	log.Debug().Str("dir", cfg.Dir).Msg("creating upload store")
	return &Store{cfg: cfg, logger: log}
}

// Save stores a homogeneous batch of uploads under folder, validating each
// one against the category profile.
//
// Failures are captured per file: one rejected or unwritable entry never
// aborts the rest of the batch. The first return value lists the public URLs
// of the stored files, the second the rejected entries with human-readable
// reasons.
func (s *Store) Save(ctx context.Context, uploads []Upload, folder string, category Category) ([]string, []Failed) {
	log := logger.FromContext(ctx)

	saved := make([]string, 0, len(uploads))
	failed := make([]Failed, 0)

	for _, u := range uploads {
		url, err := s.saveOne(u, "", folder, category)
		if err != nil {
			log.Warn().Err(err).Str("file", u.Name).Msg("upload rejected")
			failed = append(failed, Failed{File: u.Name, Reason: err.Error()})
			continue
		}
		saved = append(saved, url)
	}

	return saved, failed
}

// SaveWithKeys stores a keyed batch of uploads under folder: each upload is
// bound to a caller-defined logical slot name (e.g. "cv", "main_logo").
//
// The call is all-or-nothing. Every upload is validated before any byte is
// written; if a later write fails, files already written by this call are
// removed again on a best-effort basis. The returned error names the
// offending key. On success the result maps each slot to its public URL.
func (s *Store) SaveWithKeys(ctx context.Context, uploads map[string]Upload, folder string, category Category) (map[string]string, error) {
	log := logger.FromContext(ctx)

	if len(uploads) == 0 {
		return nil, ErrNoFile
	}

	keys := make([]string, 0, len(uploads))
	for key := range uploads {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Validate everything up front so a bad later key cannot leave earlier
	// files orphaned on disk.
	for _, key := range keys {
		if err := s.validate(uploads[key], category); err != nil {
			return nil, &KeyError{Key: key, Err: err}
		}
	}

	result := make(map[string]string, len(uploads))
	written := make([]string, 0, len(uploads))

	for _, key := range keys {
		url, err := s.saveOne(uploads[key], key, folder, category)
		if err != nil {
			log.Err(err).Str("key", key).Msg("keyed upload write failed, rolling back batch")
			for _, u := range written {
				s.DeleteByURL(ctx, u)
			}
			return nil, &KeyError{Key: key, Err: err}
		}
		result[key] = url
		written = append(written, url)
	}

	return result, nil
}

// saveOne validates, names, and writes one upload, returning its public URL.
// key is empty for anonymous batch entries.
func (s *Store) saveOne(u Upload, key, folder string, category Category) (string, error) {
	if err := s.validate(u, category); err != nil {
		return "", err
	}

	name := uniqueName(key, u.Name)
	dir := filepath.Join(s.cfg.Dir, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name), u.Content, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}

	return s.cfg.HostURL + "/" + path.Join(s.cfg.Dir, folder, name), nil
}

// DeleteByURL removes the stored file a previously issued public URL points
// to. It is idempotent and never signals failure: a missing file, a foreign
// host, or a malformed URL is logged and swallowed — callers rely on
// best-effort cleanup semantics.
func (s *Store) DeleteByURL(ctx context.Context, fileURL string) {
	log := logger.FromContext(ctx)

	if fileURL == "" {
		return
	}

	rel, ok := s.resolvePath(fileURL)
	if !ok {
		log.Warn().Str("url", fileURL).Msg("cannot resolve upload URL to a storage path, skipping delete")
		return
	}

	target := filepath.Join(s.cfg.Dir, filepath.FromSlash(rel))
	if err := os.Remove(target); err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", target).Msg("error deleting stored upload")
		}
		return
	}
	log.Debug().Str("path", target).Msg("deleted stored upload")
}

// resolvePath strips the host prefix and the upload-root segment from a
// public URL, yielding the path relative to the storage root. It refuses
// anything that would escape the root.
func (s *Store) resolvePath(fileURL string) (string, bool) {
	rel := strings.TrimPrefix(fileURL, s.cfg.HostURL)
	rel = strings.TrimLeft(rel, "/")
	rel = strings.TrimPrefix(rel, s.cfg.Dir+"/")

	if rel == "" || strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") {
		return "", false
	}
	clean := path.Clean(rel)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", false
	}
	return clean, true
}

// uniqueName builds the stored file name:
//
//	{key-}{unix millis}-{12 hex chars}{original extension}
//
// The random suffix comes from crypto/rand, so uniqueness holds with
// overwhelming probability across concurrent uploads; collisions are not
// otherwise detected.
func uniqueName(key, originalName string) string {
	suffix := make([]byte, 6)
	_, _ = rand.Read(suffix)

	var b strings.Builder
	if key != "" {
		b.WriteString(key)
		b.WriteByte('-')
	}
	fmt.Fprintf(&b, "%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(suffix), strings.ToLower(filepath.Ext(originalName)))
	return b.String()
}
