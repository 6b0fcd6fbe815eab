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

// OperationService handles the append-only operation ledger. Operations are
// never mutated in place: edits cancel the original row and insert a
// replacement, deletes flip status only.
type OperationService struct {
	db            *sql.DB
	assetRepo     *repository.AssetRepository
	operationRepo *repository.OperationRepository
}

// NewOperationService creates a new OperationService with the provided dependencies.
func NewOperationService(
	db *sql.DB,
	assetRepo *repository.AssetRepository,
	operationRepo *repository.OperationRepository,
) *OperationService {
	return &OperationService{
		db:            db,
		assetRepo:     assetRepo,
		operationRepo: operationRepo,
	}
}

// ListOperations returns all active operations, newest trade date first.
func (s *OperationService) ListOperations() ([]model.OperationResponse, error) {
	return s.operationRepo.ListOperations()
}

// ListOperationsByAsset returns the active operations of one asset.
func (s *OperationService) ListOperationsByAsset(assetID string) ([]model.OperationResponse, error) {
	if _, err := s.assetRepo.GetAssetByID(assetID); err != nil {
		return nil, err
	}
	return s.operationRepo.ListOperationsByAsset(assetID)
}

// GetOperation retrieves a single operation regardless of status, so
// superseded rows remain inspectable.
func (s *OperationService) GetOperation(operationID string) (model.OperationResponse, error) {
	return s.operationRepo.GetOperation(operationID)
}

// CreateOperation records a manual operation. The ticker is normalized and
// the asset is created on first use, inside the same transaction as the
// operation insert. A row matching an existing natural key is rejected.
func (s *OperationService) CreateOperation(req request.CreateOperationRequest) (model.OperationResponse, error) {
	tradeDate, err := time.Parse("2006-01-02", req.TradeDate)
	if err != nil {
		return model.OperationResponse{}, fmt.Errorf("invalid trade date %q: %w", req.TradeDate, err)
	}

	ticker := b3.NormalizeTicker(req.Ticker, req.Market)
	value := float64(req.Quantity) * req.Price

	tx, err := s.db.Begin()
	if err != nil {
		return model.OperationResponse{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	asset, err := GetOrCreateAsset(s.assetRepo.WithTx(tx), ticker, req.ProductName)
	if err != nil {
		return model.OperationResponse{}, err
	}

	op := model.Operation{
		ID:           uuid.New().String(),
		AssetID:      asset.ID,
		MovementType: req.MovementType,
		Quantity:     req.Quantity,
		Price:        req.Price,
		Value:        value,
		TradeDate:    tradeDate,
		CreatedAt:    time.Now().UTC(),
		Source:       model.SourceManual,
		Status:       model.StatusActive,
		Market:       req.Market,
		Institution:  req.Institution,
	}

	if err := s.operationRepo.WithTx(tx).InsertOperation(&op); err != nil {
		return model.OperationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.OperationResponse{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.operationRepo.GetOperation(op.ID)
}

// UpdateOperation supersedes an active operation: the original row is
// cancelled and a replacement inserted in one transaction. Unset request
// fields carry over from the original. Returns the replacement operation.
func (s *OperationService) UpdateOperation(operationID string, req request.UpdateOperationRequest) (model.OperationResponse, error) {
	original, err := s.operationRepo.GetOperation(operationID)
	if err != nil {
		return model.OperationResponse{}, err
	}
	if original.Status != model.StatusActive {
		return model.OperationResponse{}, fmt.Errorf("%w: operation %s has status %s",
			apperrors.ErrOperationNotActive, operationID, original.Status)
	}

	replacement := model.Operation{
		ID:           uuid.New().String(),
		AssetID:      original.AssetID,
		MovementType: original.MovementType,
		Quantity:     original.Quantity,
		Price:        original.Price,
		Value:        original.Value,
		TradeDate:    original.TradeDate,
		CreatedAt:    time.Now().UTC(),
		Source:       original.Source,
		Status:       model.StatusActive,
		Market:       original.Market,
		Institution:  original.Institution,
	}

	if req.MovementType != nil {
		replacement.MovementType = *req.MovementType
	}
	if req.Quantity != nil {
		replacement.Quantity = *req.Quantity
	}
	if req.Price != nil {
		replacement.Price = *req.Price
	}
	if req.TradeDate != nil {
		tradeDate, err := time.Parse("2006-01-02", *req.TradeDate)
		if err != nil {
			return model.OperationResponse{}, fmt.Errorf("invalid trade date %q: %w", *req.TradeDate, err)
		}
		replacement.TradeDate = tradeDate
	}
	if req.Market != nil {
		replacement.Market = *req.Market
	}
	if req.Institution != nil {
		replacement.Institution = *req.Institution
	}
	replacement.Value = float64(replacement.Quantity) * replacement.Price

	tx, err := s.db.Begin()
	if err != nil {
		return model.OperationResponse{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txRepo := s.operationRepo.WithTx(tx)
	if err := txRepo.SetStatus(operationID, model.StatusCancelled); err != nil {
		return model.OperationResponse{}, err
	}
	if err := txRepo.InsertOperation(&replacement); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateOperation) {
			return model.OperationResponse{}, fmt.Errorf("%w: edited operation collides with an existing one", apperrors.ErrDuplicateOperation)
		}
		return model.OperationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.OperationResponse{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.operationRepo.GetOperation(replacement.ID)
}

// DeleteOperation soft-deletes an active operation. Cancelled or already
// deleted rows cannot be deleted again.
func (s *OperationService) DeleteOperation(operationID string) error {
	op, err := s.operationRepo.GetOperation(operationID)
	if err != nil {
		return err
	}
	if op.Status != model.StatusActive {
		return fmt.Errorf("%w: operation %s has status %s",
			apperrors.ErrOperationNotActive, operationID, op.Status)
	}
	return s.operationRepo.SetStatus(operationID, model.StatusDeleted)
}
