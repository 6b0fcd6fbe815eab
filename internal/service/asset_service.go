package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/request"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/b3"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/repository"
)

// AssetService handles asset-related business logic operations.
type AssetService struct {
	db            *sql.DB
	assetRepo     *repository.AssetRepository
	operationRepo *repository.OperationRepository
}

// NewAssetService creates a new AssetService with the provided dependencies.
func NewAssetService(
	db *sql.DB,
	assetRepo *repository.AssetRepository,
	operationRepo *repository.OperationRepository,
) *AssetService {
	return &AssetService{
		db:            db,
		assetRepo:     assetRepo,
		operationRepo: operationRepo,
	}
}

// ListAssets returns all active assets with aggregated position statistics.
// Statistics cover active operations across every market and institution.
func (s *AssetService) ListAssets() ([]model.AssetWithStats, error) {
	return s.assetRepo.ListAssets()
}

// GetAsset retrieves a single active asset with its aggregated statistics.
func (s *AssetService) GetAsset(assetID string) (model.AssetWithStats, error) {
	return s.assetRepo.GetAssetStats(assetID)
}

// GetOrCreateAsset returns the active asset for a normalized ticker, creating
// it if none exists. Classification runs only on creation; an existing asset
// keeps its stored class and type. A concurrent insert of the same ticker is
// resolved by refetching.
func GetOrCreateAsset(repo *repository.AssetRepository, ticker, productName string) (model.Asset, error) {
	asset, err := repo.GetAssetByTicker(ticker)
	if err == nil {
		return asset, nil
	}
	if !errors.Is(err, apperrors.ErrAssetNotFound) {
		return model.Asset{}, err
	}

	assetClass, assetType := b3.Classify(ticker, productName)
	asset = model.Asset{
		ID:          uuid.New().String(),
		Ticker:      ticker,
		AssetClass:  assetClass,
		AssetType:   assetType,
		ProductName: productName,
		CreatedAt:   time.Now().UTC(),
		Status:      model.StatusActive,
	}

	err = repo.InsertAsset(&asset)
	if errors.Is(err, apperrors.ErrDuplicateAsset) {
		return repo.GetAssetByTicker(ticker)
	}
	if err != nil {
		return model.Asset{}, err
	}
	return asset, nil
}

// CreateAsset registers an asset explicitly, ahead of any operation.
// The ticker is uppercased and classified; an active asset with the same
// ticker is a conflict.
func (s *AssetService) CreateAsset(req request.CreateAssetRequest) (model.Asset, error) {
	ticker := b3.NormalizeTicker(req.Ticker, "")
	if ticker == "" {
		return model.Asset{}, fmt.Errorf("%w: ticker", apperrors.ErrEmptyID)
	}

	assetClass, assetType := b3.Classify(ticker, req.ProductName)
	asset := model.Asset{
		ID:          uuid.New().String(),
		Ticker:      ticker,
		AssetClass:  assetClass,
		AssetType:   assetType,
		ProductName: req.ProductName,
		CreatedAt:   time.Now().UTC(),
		Status:      model.StatusActive,
	}

	if err := s.assetRepo.InsertAsset(&asset); err != nil {
		return model.Asset{}, err
	}
	return asset, nil
}

// UpdateAsset applies a partial metadata update to an active asset.
// Ticker and asset class are immutable.
func (s *AssetService) UpdateAsset(assetID string, req request.UpdateAssetRequest) (model.AssetWithStats, error) {
	asset, err := s.assetRepo.GetAssetByID(assetID)
	if err != nil {
		return model.AssetWithStats{}, err
	}

	if req.ProductName != nil {
		asset.ProductName = *req.ProductName
	}
	if req.AssetType != nil {
		asset.AssetType = *req.AssetType
	}

	if err := s.assetRepo.UpdateAsset(&asset); err != nil {
		return model.AssetWithStats{}, err
	}

	return s.assetRepo.GetAssetStats(assetID)
}

// DeleteAsset soft-deletes an asset. Assets that still have active operations
// cannot be deleted; the error carries the blocking count. The check and the
// delete run in one transaction so an operation inserted in between cannot be
// orphaned.
func (s *AssetService) DeleteAsset(assetID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	assetTx := s.assetRepo.WithTx(tx)
	if _, err := assetTx.GetAssetByID(assetID); err != nil {
		return err
	}

	count, err := assetTx.CountActiveOperations(assetID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d active operations", apperrors.ErrAssetHasOperations, count)
	}

	if err := assetTx.SoftDeleteAsset(assetID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
