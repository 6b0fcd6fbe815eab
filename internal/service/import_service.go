package service

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/b3"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/repository"
)

// ImportService runs the B3 statement import pipeline: parse, normalize
// tickers, resolve assets, insert operations. The whole import is one
// transaction; a fatal error rolls back every row of the call.
type ImportService struct {
	db            *sql.DB
	assetRepo     *repository.AssetRepository
	operationRepo *repository.OperationRepository
}

// NewImportService creates a new ImportService with the provided dependencies.
func NewImportService(
	db *sql.DB,
	assetRepo *repository.AssetRepository,
	operationRepo *repository.OperationRepository,
) *ImportService {
	return &ImportService{
		db:            db,
		assetRepo:     assetRepo,
		operationRepo: operationRepo,
	}
}

// ImportStatement imports a B3 "Negociação" CSV export.
//
// The pipeline runs in two passes over the parsed rows. The first pass
// normalizes every ticker (folding the fractional market suffix into the
// standard lot symbol) and resolves or creates each distinct asset once.
// The second pass inserts one ledger row per statement row; a natural-key
// duplicate increments a counter and continues, making re-imports of the
// same file idempotent. Any other insert failure aborts the import.
func (s *ImportService) ImportStatement(r io.Reader) (model.ImportSummary, error) {
	statement, err := b3.ParseStatement(r)
	if err != nil {
		return model.ImportSummary{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.ImportSummary{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	assetTx := s.assetRepo.WithTx(tx)
	operationTx := s.operationRepo.WithTx(tx)

	summary := model.ImportSummary{
		TotalRows:  len(statement.Rows),
		ImportedAt: time.Now().UTC(),
	}

	// First pass: one asset lookup or creation per distinct normalized ticker.
	assets := make(map[string]model.Asset)
	for _, row := range statement.Rows {
		ticker := b3.NormalizeTicker(row.Ticker, row.Market)
		if ticker == "" {
			continue
		}
		if _, ok := assets[ticker]; ok {
			continue
		}

		asset, err := assetTx.GetAssetByTicker(ticker)
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			asset, err = GetOrCreateAsset(assetTx, ticker, "")
			if err == nil {
				summary.AssetsCreated++
			}
		}
		if err != nil {
			return model.ImportSummary{}, fmt.Errorf("failed to resolve asset %s: %w", ticker, err)
		}
		assets[ticker] = asset
	}
	summary.UniqueTickers = len(assets)

	// Second pass: insert the ledger rows against the resolved assets.
	for i, row := range statement.Rows {
		ticker := b3.NormalizeTicker(row.Ticker, row.Market)
		asset, ok := assets[ticker]
		if !ok {
			log.Printf("WARN import: row %d skipped, no asset for symbol %q", i+1, row.Ticker)
			summary.Skipped++
			continue
		}

		// The statement's value column is informational only; the ledger
		// always stores quantity times price.
		value := float64(row.Quantity) * row.Price

		op := model.Operation{
			ID:           uuid.New().String(),
			AssetID:      asset.ID,
			MovementType: row.MovementType,
			Quantity:     row.Quantity,
			Price:        row.Price,
			Value:        value,
			TradeDate:    row.TradeDate,
			CreatedAt:    time.Now().UTC(),
			Source:       model.SourceImported,
			Status:       model.StatusActive,
			Market:       row.Market,
			Institution:  row.Institution,
		}

		err := operationTx.InsertOperation(&op)
		if errors.Is(err, apperrors.ErrDuplicateOperation) {
			summary.Duplicated++
			continue
		}
		if err != nil {
			return model.ImportSummary{}, fmt.Errorf("%w: row %d: %v", apperrors.ErrFailedToImport, i+1, err)
		}
		summary.Inserted++
	}

	if err := tx.Commit(); err != nil {
		return model.ImportSummary{}, fmt.Errorf("failed to commit import: %w", err)
	}

	return summary, nil
}
