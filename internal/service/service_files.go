// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/mkamel/corsite-backend/internal/files"
	"github.com/mkamel/corsite-backend/internal/logger"
)

// fileService is the generic batch-upload surface of the admin panel. Unlike
// the keyed uploads owned by applications, pages, and the configuration, a
// batch stored here has no owning document; the caller keeps the returned
// URLs.
type fileService struct {
	fileStore FileStore
	logger    *logger.Logger
}

// NewFileService constructs a FileService.
func NewFileService(fileStore FileStore, logger *logger.Logger) FileService {
	return &fileService{
		fileStore: fileStore,
		logger:    logger,
	}
}

// UploadFiles stores a homogeneous batch of uploads under folder, validated
// against the given category profile. Rejected entries are reported per file
// in the result and never abort the rest of the batch.
//
// Returns ErrInvalidDataProvided when the batch is empty, the category is
// unknown, or the destination folder would escape the upload root.
func (f *fileService) UploadFiles(ctx context.Context, uploads []files.Upload, folder string, category files.Category) (UploadResult, error) {
	log := logger.FromContext(ctx)

	if len(uploads) == 0 {
		return UploadResult{}, fmt.Errorf("%w: no files uploaded", ErrInvalidDataProvided)
	}
	switch category {
	case files.CategoryImage, files.CategoryVideo, files.CategoryFile:
	default:
		return UploadResult{}, fmt.Errorf("%w: unknown file category %q", ErrInvalidDataProvided, category)
	}
	if !validUploadFolder(folder) {
		return UploadResult{}, fmt.Errorf("%w: invalid destination path %q", ErrInvalidDataProvided, folder)
	}

	saved, failed := f.fileStore.Save(ctx, uploads, folder, category)
	log.Debug().Int("saved", len(saved)).Int("rejected", len(failed)).Str("folder", folder).Msg("stored upload batch")

	return UploadResult{URLs: saved, Failed: failed}, nil
}

// validUploadFolder accepts relative sub-paths that stay inside the upload
// root. Uploads never land in the root itself, so empty is rejected too.
func validUploadFolder(folder string) bool {
	if folder == "" || path.IsAbs(folder) {
		return false
	}
	clean := path.Clean(folder)
	return clean != "." && clean != ".." && !strings.HasPrefix(clean, "../")
}
