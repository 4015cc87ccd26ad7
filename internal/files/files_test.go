// SPDX-License-Identifier: Apache-2.0

package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkamel/corsite-backend/internal/config"
	"github.com/mkamel/corsite-backend/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	cfg := config.Uploads{
		Dir:              "uploads",
		HostURL:          "http://localhost:8080",
		AllowedImageExts: []string{".jpg", ".jpeg", ".png"},
		AllowedVideoExts: []string{".mp4"},
		AllowedFileExts:  []string{".pdf", ".docx"},
		MaxImageSize:     1 << 20,
		MaxVideoSize:     4 << 20,
		MaxFileSize:      2 << 20,
	}
	return NewStore(cfg, logger.Nop())
}

func pdfUpload(name string) Upload {
	return Upload{
		Name:        name,
		ContentType: "application/pdf",
		Size:        64,
		Content:     []byte("%PDF-1.4 test payload"),
	}
}

func TestSave_StoresBatchAndCapturesFailures(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uploads := []Upload{
		pdfUpload("resume.pdf"),
		{Name: "huge.pdf", ContentType: "application/pdf", Size: 3 << 20, Content: []byte("x")},
		{Name: "photo.png", ContentType: "image/png", Size: 10, Content: []byte("x")},
	}

	saved, failed := s.Save(ctx, uploads, "applications", CategoryFile)

	require.Len(t, saved, 1)
	assert.True(t, strings.HasPrefix(saved[0], "http://localhost:8080/uploads/applications/"), "unexpected URL %q", saved[0])

	require.Len(t, failed, 2)
	assert.Equal(t, "huge.pdf", failed[0].File)
	assert.Contains(t, failed[0].Reason, "file too large, max allowed size is 2 MB")
	assert.Equal(t, "photo.png", failed[1].File)
	assert.Contains(t, failed[1].Reason, "invalid file type")
}

func TestSaveWithKeys_Success(t *testing.T) {
	s := newTestStore(t)

	result, err := s.SaveWithKeys(context.Background(), map[string]Upload{
		"cv":          pdfUpload("cv.pdf"),
		"coverLetter": pdfUpload("letter.pdf"),
	}, "applications", CategoryFile)
	require.NoError(t, err)
	require.Len(t, result, 2)

	namePattern := regexp.MustCompile(`^cv-\d+-[0-9a-f]{12}\.pdf$`)
	rel := strings.TrimPrefix(result["cv"], "http://localhost:8080/")
	assert.True(t, namePattern.MatchString(filepath.Base(rel)), "unexpected stored name %q", filepath.Base(rel))

	// the URL path mirrors the on-disk path
	_, err = os.Stat(filepath.FromSlash(rel))
	assert.NoError(t, err)
}

func TestSaveWithKeys_ValidatesBeforeWriting(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveWithKeys(context.Background(), map[string]Upload{
		"cv":    pdfUpload("cv.pdf"),
		"other": {Name: "malware.exe", ContentType: "application/octet-stream", Size: 10, Content: []byte("x")},
	}, "applications", CategoryFile)

	var keyErr *KeyError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, "other", keyErr.Key)
	assert.ErrorIs(t, err, ErrInvalidUpload)

	// nothing may be written when any key fails validation
	_, statErr := os.Stat(filepath.Join("uploads", "applications"))
	assert.True(t, os.IsNotExist(statErr), "a rejected batch must not leave files behind")
}

func TestSaveWithKeys_EmptyBatch(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveWithKeys(context.Background(), nil, "applications", CategoryFile)
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestDeleteByURL_RemovesStoredFile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	result, err := s.SaveWithKeys(ctx, map[string]Upload{"cv": pdfUpload("cv.pdf")}, "applications", CategoryFile)
	require.NoError(t, err)

	url := result["cv"]
	rel := strings.TrimPrefix(url, "http://localhost:8080/")

	s.DeleteByURL(ctx, url)
	_, statErr := os.Stat(filepath.FromSlash(rel))
	assert.True(t, os.IsNotExist(statErr))

	// idempotent: deleting again is a no-op
	s.DeleteByURL(ctx, url)
}

func TestDeleteByURL_RefusesPathTraversal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile("secret.txt", []byte("keep"), 0o644))

	s.DeleteByURL(ctx, "http://localhost:8080/uploads/../secret.txt")
	s.DeleteByURL(ctx, "http://localhost:8080/uploads/../../secret.txt")
	s.DeleteByURL(ctx, "")
	s.DeleteByURL(ctx, "https://elsewhere.example.com/uploads/applications/x.pdf")

	_, err := os.Stat("secret.txt")
	assert.NoError(t, err, "files outside the upload root must never be touched")
}

func TestValidate_CategoryProfiles(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name     string
		upload   Upload
		category Category
		wantErr  string
	}{
		{
			name:     "image with wrong media type",
			upload:   Upload{Name: "a.png", ContentType: "text/plain", Size: 10, Content: []byte("x")},
			category: CategoryImage,
			wantErr:  "only images are allowed",
		},
		{
			name:     "image with disallowed extension",
			upload:   Upload{Name: "a.gif", ContentType: "image/gif", Size: 10, Content: []byte("x")},
			category: CategoryImage,
			wantErr:  "invalid file extension",
		},
		{
			name:     "video accepted",
			upload:   Upload{Name: "clip.mp4", ContentType: "video/mp4", Size: 10, Content: []byte("x")},
			category: CategoryVideo,
		},
		{
			name:     "video with image payload",
			upload:   Upload{Name: "clip.mp4", ContentType: "image/png", Size: 10, Content: []byte("x")},
			category: CategoryVideo,
			wantErr:  "only videos are allowed",
		},
		{
			name:     "document bucket rejects media",
			upload:   Upload{Name: "a.pdf", ContentType: "video/mp4", Size: 10, Content: []byte("x")},
			category: CategoryFile,
			wantErr:  "invalid file type",
		},
		{
			name:     "extension match is case-insensitive",
			upload:   Upload{Name: "CV.PDF", ContentType: "application/pdf", Size: 10, Content: []byte("x")},
			category: CategoryFile,
		},
		{
			name:     "empty payload",
			upload:   Upload{},
			category: CategoryFile,
			wantErr:  "no file provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.validate(tt.upload, tt.category)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if !errors.Is(err, ErrNoFile) {
				assert.ErrorIs(t, err, ErrInvalidUpload)
			}
		})
	}
}
