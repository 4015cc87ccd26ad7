// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mkamel/corsite-backend/internal/files"
	"github.com/mkamel/corsite-backend/internal/logger"
	"github.com/mkamel/corsite-backend/internal/store"
	"github.com/mkamel/corsite-backend/models"
)

// Upload subdirectories for the configuration media slots.
const (
	configImagesFolder = "config/images"
	configVideosFolder = "config/videos"
)

// configurationService manages the site-wide configuration singleton. Media
// uploads are split by content type: images and videos live in separate slot
// maps and separate folders, each replace-on-update.
type configurationService struct {
	configurationRepository store.ConfigurationRepository
	fileStore               FileStore
	logger                  *logger.Logger
}

// NewConfigurationService constructs a ConfigurationService.
func NewConfigurationService(configurationRepository store.ConfigurationRepository, fileStore FileStore, logger *logger.Logger) ConfigurationService {
	return &configurationService{
		configurationRepository: configurationRepository,
		fileStore:               fileStore,
		logger:                  logger,
	}
}

// GetConfiguration retrieves the configuration singleton.
func (c *configurationService) GetConfiguration(ctx context.Context) (models.Configuration, error) {
	log := logger.FromContext(ctx)

	configuration, err := c.configurationRepository.GetConfiguration(ctx)
	if err != nil {
		log.Err(err).Msg("configuration lookup failed")
		return models.Configuration{}, fmt.Errorf("configuration lookup failed: %w", err)
	}

	return configuration, nil
}

// SaveConfiguration replaces the configuration payload. The free-form config
// object is replaced wholesale; uploaded media is routed by content type
// (image/* vs video/*) into the image and video slot maps, replacing what
// each targeted slot held before.
func (c *configurationService) SaveConfiguration(ctx context.Context, configObj models.Document, media map[string]files.Upload) (models.Configuration, error) {
	log := logger.FromContext(ctx)

	if configObj == nil {
		return models.Configuration{}, ErrInvalidDataProvided
	}

	images := make(map[string]files.Upload)
	videos := make(map[string]files.Upload)
	for slot, upload := range media {
		if strings.HasPrefix(upload.ContentType, "video/") {
			videos[slot] = upload
		} else {
			images[slot] = upload
		}
	}

	existing, err := c.configurationRepository.GetConfiguration(ctx)
	if err != nil && !errors.Is(err, store.ErrConfigurationNotFound) {
		log.Err(err).Msg("configuration lookup failed")
		return models.Configuration{}, fmt.Errorf("configuration lookup failed: %w", err)
	}

	mergedImages, err := replaceFileSlots(ctx, c.fileStore, configImagesFolder, files.CategoryImage, images, func() (models.FileMap, error) {
		return existing.Data.Images, nil
	})
	if err != nil {
		log.Err(err).Msg("storing configuration images failed")
		return models.Configuration{}, fmt.Errorf("storing configuration images failed: %w", err)
	}

	mergedVideos, err := replaceFileSlots(ctx, c.fileStore, configVideosFolder, files.CategoryVideo, videos, func() (models.FileMap, error) {
		return existing.Data.Videos, nil
	})
	if err != nil {
		log.Err(err).Msg("storing configuration videos failed")
		return models.Configuration{}, fmt.Errorf("storing configuration videos failed: %w", err)
	}

	saved, err := c.configurationRepository.SaveConfiguration(ctx, models.ConfigurationData{
		ConfigObj: configObj,
		Images:    mergedImages,
		Videos:    mergedVideos,
	})
	if err != nil {
		log.Err(err).Msg("configuration save failed")
		return models.Configuration{}, fmt.Errorf("configuration save failed: %w", err)
	}

	return saved, nil
}
