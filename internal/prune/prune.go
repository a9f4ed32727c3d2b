// Package prune removes dangling images left behind after updates.
package prune

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sycured/podhawk/internal/config"
	"github.com/sycured/podhawk/internal/podman"
	"github.com/sycured/podhawk/pkg/log"
	"github.com/sycured/podhawk/pkg/util"
)

// Run removes dangling images older than the configured minimum age.
// Failures on individual images are logged and skipped.
func Run(ctx context.Context, cfg config.Config, client podman.Client) error {
	if !cfg.Prune.Enabled {
		log.Debug("Prune is disabled")
		return nil
	}

	startTime := time.Now()
	log.Info("Starting image prune")

	images, err := client.ListDanglingImages(ctx)
	if err != nil {
		log.ErrorErr("Failed to list dangling images", err)
		return err
	}

	log.Infof("Found %d dangling images", len(images))

	minAge := time.Duration(cfg.Prune.MinAgeHours) * time.Hour
	removedCount := 0
	skippedCount := 0
	var totalReclaimed int64

	for _, image := range images {
		if err := ctx.Err(); err != nil {
			log.Warn("Prune interrupted")
			return err
		}

		imageTag := "none"
		if len(image.RepoTags) > 0 {
			imageTag = strings.Join(image.RepoTags, ",")
		}
		imageLogger := log.WithImage(util.ShortID(image.ID.Encoded()), imageTag)

		if !isEligible(image, minAge, imageLogger) {
			skippedCount++
			continue
		}

		sizeStr := util.FormatBytes(image.Size)
		imageLogger.Info().Msgf("Removing image (size: %s)", sizeStr)
		if err := client.RemoveImage(ctx, image.ID.String()); err != nil {
			imageLogger.Error().Err(err).Msg("Failed to remove image")
			skippedCount++
			continue
		}

		removedCount++
		totalReclaimed += image.Size
	}

	log.Infof("Prune complete: %d removed, %d skipped, %d total. Space reclaimed: %s (in %v)",
		removedCount, skippedCount, len(images), util.FormatBytes(totalReclaimed), time.Since(startTime))
	return nil
}

// isEligible determines if an image is old enough to prune
func isEligible(image podman.ImageInfo, minAge time.Duration, logger *zerolog.Logger) bool {
	age := time.Since(image.CreatedAt)
	if age < minAge {
		logger.Debug().Msgf("Image is too new (age: %v, min: %v)", age.Round(time.Minute), minAge)
		return false
	}
	return true
}
