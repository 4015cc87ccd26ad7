// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkamel/corsite-backend/internal/files"
	"github.com/mkamel/corsite-backend/internal/logger"
)

// ─────────────────────────────────────────────
// UploadFiles
// ─────────────────────────────────────────────

func uploadBatch() []files.Upload {
	return []files.Upload{
		{Name: "team.jpg", ContentType: "image/jpeg", Size: 128, Content: []byte("x")},
		{Name: "office.png", ContentType: "image/png", Size: 256, Content: []byte("y")},
	}
}

func TestFileService_UploadFiles_Success(t *testing.T) {
	var gotFolder string
	var gotCategory files.Category
	fileStore := &mockFileStore{
		saveFn: func(_ context.Context, uploads []files.Upload, folder string, category files.Category) ([]string, []files.Failed) {
			gotFolder = folder
			gotCategory = category
			urls := make([]string, 0, len(uploads))
			for _, u := range uploads {
				urls = append(urls, "http://host/uploads/"+folder+"/"+u.Name)
			}
			return urls, nil
		},
	}
	svc := NewFileService(fileStore, logger.Nop())

	result, err := svc.UploadFiles(context.Background(), uploadBatch(), "gallery", files.CategoryImage)
	require.NoError(t, err)

	assert.Equal(t, "gallery", gotFolder)
	assert.Equal(t, files.CategoryImage, gotCategory)
	require.Len(t, result.URLs, 2)
	assert.Equal(t, "http://host/uploads/gallery/team.jpg", result.URLs[0])
	assert.Empty(t, result.Failed)
}

func TestFileService_UploadFiles_ReturnsPerFileRejections(t *testing.T) {
	fileStore := &mockFileStore{
		saveFn: func(_ context.Context, uploads []files.Upload, folder string, _ files.Category) ([]string, []files.Failed) {
			return []string{"http://host/uploads/" + folder + "/" + uploads[0].Name},
				[]files.Failed{{File: uploads[1].Name, Reason: "only images are allowed"}}
		},
	}
	svc := NewFileService(fileStore, logger.Nop())

	result, err := svc.UploadFiles(context.Background(), uploadBatch(), "gallery", files.CategoryImage)
	require.NoError(t, err)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "office.png", result.Failed[0].File)
	assert.Equal(t, "only images are allowed", result.Failed[0].Reason)
	assert.Len(t, result.URLs, 1)
}

func TestFileService_UploadFiles_EmptyBatch(t *testing.T) {
	svc := NewFileService(&mockFileStore{}, logger.Nop())

	_, err := svc.UploadFiles(context.Background(), nil, "gallery", files.CategoryImage)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.Contains(t, err.Error(), "no files uploaded")
}

func TestFileService_UploadFiles_UnknownCategory(t *testing.T) {
	svc := NewFileService(&mockFileStore{}, logger.Nop())

	_, err := svc.UploadFiles(context.Background(), uploadBatch(), "gallery", files.Category("archive"))
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestFileService_UploadFiles_RejectsEscapingFolders(t *testing.T) {
	svc := NewFileService(&mockFileStore{}, logger.Nop())

	for _, folder := range []string{"", "/etc", "..", "../secrets", "gallery/../.."} {
		_, err := svc.UploadFiles(context.Background(), uploadBatch(), folder, files.CategoryImage)
		assert.ErrorIs(t, err, ErrInvalidDataProvided, "folder %q", folder)
	}
}
