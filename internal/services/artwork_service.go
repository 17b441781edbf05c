// internal/services/artwork_service.go
package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/threadforge/pod-backend/internal/artwork"
	"github.com/threadforge/pod-backend/internal/models"
)

type ArtworkService struct {
	db      *gorm.DB
	storage *StorageService
}

type ArtworkUploadResult struct {
	Asset       *models.ArtworkAsset `json:"asset"`
	Duplicate   bool                 `json:"duplicate"`
	DownloadURL string               `json:"download_url,omitempty"`
}

func NewArtworkService(db *gorm.DB, storage *StorageService) *ArtworkService {
	return &ArtworkService{
		db:      db,
		storage: storage,
	}
}

// UploadArtwork stores the file, analyzes it for print readiness and
// persists the asset. Re-uploading identical bytes returns the
// existing asset instead of storing a second copy.
func (s *ArtworkService) UploadArtwork(file multipart.File, header *multipart.FileHeader, targetAreaID *uuid.UUID) (*ArtworkUploadResult, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])

	var existing models.ArtworkAsset
	err = s.db.Where("checksum = ? AND status = ?", checksum, models.ArtworkStatusReady).
		First(&existing).Error
	if err == nil {
		return &ArtworkUploadResult{Asset: &existing, Duplicate: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	target, err := s.printTarget(targetAreaID)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.storage.UploadArtwork(data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	asset := &models.ArtworkAsset{
		FileName:     header.Filename,
		FileURL:      uploaded.URL,
		StorageKey:   uploaded.Key,
		Checksum:     checksum,
		FileSize:     int64(len(data)),
		TargetAreaID: targetAreaID,
		Status:       models.ArtworkStatusReady,
	}

	analysis, err := artwork.Analyze(data, header.Filename, target)
	if err != nil {
		// The file is stored either way; pricing treats a failed
		// analysis as missing metadata.
		logrus.WithError(err).WithField("file", header.Filename).Warn("Artwork analysis failed")
		asset.Status = models.ArtworkStatusFailed
		asset.Metadata = models.JSONB{"analysis_error": err.Error()}
	} else {
		asset.Format = analysis.Format
		asset.Width = analysis.Width
		asset.Height = analysis.Height
		asset.DPI = analysis.DPI
		asset.QualityScore = analysis.QualityScore
		asset.ColorCount = analysis.ColorCount
		asset.PrintReady = analysis.PrintReady
		asset.SuggestedUse = models.SuggestedUse(analysis.SuggestedUse)
	}

	if err := s.db.Create(asset).Error; err != nil {
		return nil, fmt.Errorf("failed to save artwork: %w", err)
	}

	return &ArtworkUploadResult{Asset: asset, DownloadURL: s.downloadURL(asset)}, nil
}

func (s *ArtworkService) GetArtwork(id uuid.UUID) (*models.ArtworkAsset, error) {
	var asset models.ArtworkAsset
	if err := s.db.Preload("TargetArea").First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("artwork not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &asset, nil
}

func (s *ArtworkService) GetArtworkWithDownloadURL(id uuid.UUID) (*ArtworkUploadResult, error) {
	asset, err := s.GetArtwork(id)
	if err != nil {
		return nil, err
	}
	return &ArtworkUploadResult{Asset: asset, DownloadURL: s.downloadURL(asset)}, nil
}

func (s *ArtworkService) DeleteArtwork(id uuid.UUID) error {
	asset, err := s.GetArtwork(id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteFile(asset.StorageKey); err != nil {
		return err
	}

	if err := s.db.Delete(asset).Error; err != nil {
		return fmt.Errorf("failed to delete artwork: %w", err)
	}

	return nil
}

// EstimateColors satisfies the quote builder's ColorEstimator using the
// color count derived at upload time.
func (s *ArtworkService) EstimateColors(artworkID uuid.UUID) (int, error) {
	asset, err := s.GetArtwork(artworkID)
	if err != nil {
		return 0, err
	}
	if asset.ColorCount == nil || *asset.ColorCount < 1 {
		return 0, errors.New("color count unavailable for artwork")
	}
	return *asset.ColorCount, nil
}

func (s *ArtworkService) printTarget(targetAreaID *uuid.UUID) (*artwork.Target, error) {
	if targetAreaID == nil {
		return nil, nil
	}

	var area models.DesignArea
	if err := s.db.First(&area, *targetAreaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("design area not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if area.PrintWidthIn <= 0 || area.PrintHeightIn <= 0 {
		return nil, nil
	}
	return &artwork.Target{WidthIn: area.PrintWidthIn, HeightIn: area.PrintHeightIn}, nil
}

func (s *ArtworkService) downloadURL(asset *models.ArtworkAsset) string {
	url, err := s.storage.GeneratePresignedURL(asset.StorageKey, 15*time.Minute)
	if err != nil {
		// Local development serves the stored URL directly
		return asset.FileURL
	}
	return url
}
