package service

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/apperrors"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/api/request"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/config"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/repository"
)

// daysPerYear converts calendar days to years for compounding.
const daysPerYear = 365.25

// FixedIncomeService manages fixed-income holdings, their deposit and
// withdrawal sub-ledger, and yield projections to maturity.
type FixedIncomeService struct {
	db              *sql.DB
	assetRepo       *repository.AssetRepository
	fixedIncomeRepo *repository.FixedIncomeRepository
	rates           config.RateConfig
}

// NewFixedIncomeService creates a new FixedIncomeService with the provided dependencies.
func NewFixedIncomeService(
	db *sql.DB,
	assetRepo *repository.AssetRepository,
	fixedIncomeRepo *repository.FixedIncomeRepository,
	rates config.RateConfig,
) *FixedIncomeService {
	return &FixedIncomeService{
		db:              db,
		assetRepo:       assetRepo,
		fixedIncomeRepo: fixedIncomeRepo,
		rates:           rates,
	}
}

// ListFixedIncome returns all active fixed-income holdings with balances,
// ordered by maturity date.
func (s *FixedIncomeService) ListFixedIncome() ([]model.FixedIncomeAssetWithBalance, error) {
	return s.fixedIncomeRepo.ListFixedIncomeAssets()
}

// GetFixedIncome returns one fixed-income holding with its balance.
func (s *FixedIncomeService) GetFixedIncome(assetID string) (model.FixedIncomeAssetWithBalance, error) {
	fi, err := s.fixedIncomeRepo.GetFixedIncomeByAssetID(assetID)
	if err != nil {
		return model.FixedIncomeAssetWithBalance{}, err
	}
	asset, err := s.assetRepo.GetAssetByID(assetID)
	if err != nil {
		return model.FixedIncomeAssetWithBalance{}, err
	}
	balance, err := s.fixedIncomeRepo.GetBalance(assetID)
	if err != nil {
		return model.FixedIncomeAssetWithBalance{}, err
	}
	operations, err := s.fixedIncomeRepo.ListFixedIncomeOperations(assetID)
	if err != nil {
		return model.FixedIncomeAssetWithBalance{}, err
	}

	return model.FixedIncomeAssetWithBalance{
		FixedIncomeAsset: fi,
		Ticker:           asset.Ticker,
		ProductName:      asset.ProductName,
		TotalInvested:    balance.TotalInvested,
		TotalRedeemed:    balance.TotalRedeemed,
		CurrentBalance:   balance.TotalInvested - balance.TotalRedeemed,
		OperationsCount:  len(operations),
	}, nil
}

// CreateFixedIncome registers a fixed-income holding. The underlying asset is
// created if the ticker is new; an asset that already carries an active
// fixed-income row is rejected.
func (s *FixedIncomeService) CreateFixedIncome(req request.CreateFixedIncomeRequest) (model.FixedIncomeAssetWithBalance, error) {
	issueDate, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		return model.FixedIncomeAssetWithBalance{}, fmt.Errorf("invalid issue date %q: %w", req.IssueDate, err)
	}
	maturityDate, err := time.Parse("2006-01-02", req.MaturityDate)
	if err != nil {
		return model.FixedIncomeAssetWithBalance{}, fmt.Errorf("invalid maturity date %q: %w", req.MaturityDate, err)
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return model.FixedIncomeAssetWithBalance{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	assetTx := s.assetRepo.WithTx(tx)
	asset, err := assetTx.GetAssetByTicker(ticker)
	if errors.Is(err, apperrors.ErrAssetNotFound) {
		asset = model.Asset{
			ID:          uuid.New().String(),
			Ticker:      ticker,
			AssetClass:  model.AssetClassFixedIncome,
			AssetType:   req.ProductType,
			ProductName: req.ProductName,
			CreatedAt:   now,
			Status:      model.StatusActive,
		}
		err = assetTx.InsertAsset(&asset)
	}
	if err != nil {
		return model.FixedIncomeAssetWithBalance{}, err
	}

	fi := model.FixedIncomeAsset{
		ID:           uuid.New().String(),
		AssetID:      asset.ID,
		Issuer:       req.Issuer,
		ProductType:  req.ProductType,
		Indexer:      req.Indexer,
		Rate:         req.Rate,
		MaturityDate: maturityDate,
		IssueDate:    issueDate,
		CustodyFee:   req.CustodyFee,
		CreatedAt:    now,
		Status:       model.StatusActive,
	}
	if err := s.fixedIncomeRepo.WithTx(tx).InsertFixedIncomeAsset(&fi); err != nil {
		return model.FixedIncomeAssetWithBalance{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.FixedIncomeAssetWithBalance{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return model.FixedIncomeAssetWithBalance{
		FixedIncomeAsset: fi,
		Ticker:           asset.Ticker,
		ProductName:      asset.ProductName,
	}, nil
}

// DeleteFixedIncome soft-deletes a fixed-income holding. The underlying asset
// is soft-deleted with it when it has no active ledger operations.
func (s *FixedIncomeService) DeleteFixedIncome(assetID string) error {
	if _, err := s.fixedIncomeRepo.GetFixedIncomeByAssetID(assetID); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.fixedIncomeRepo.WithTx(tx).SoftDeleteFixedIncomeAsset(assetID); err != nil {
		return err
	}

	assetTx := s.assetRepo.WithTx(tx)
	count, err := assetTx.CountActiveOperations(assetID)
	if err != nil {
		return err
	}
	if count == 0 {
		if err := assetTx.SoftDeleteAsset(assetID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CreateFixedIncomeOperation records a deposit, withdrawal or maturity event
// against a holding's balance.
func (s *FixedIncomeService) CreateFixedIncomeOperation(assetID string, req request.CreateFixedIncomeOperationRequest) (model.FixedIncomeOperation, error) {
	if _, err := s.fixedIncomeRepo.GetFixedIncomeByAssetID(assetID); err != nil {
		return model.FixedIncomeOperation{}, err
	}
	if req.Amount <= 0 {
		return model.FixedIncomeOperation{}, fmt.Errorf("%w: amount %.2f", apperrors.ErrNonPositiveAmount, req.Amount)
	}
	tradeDate, err := time.Parse("2006-01-02", req.TradeDate)
	if err != nil {
		return model.FixedIncomeOperation{}, fmt.Errorf("invalid trade date %q: %w", req.TradeDate, err)
	}

	op := model.FixedIncomeOperation{
		ID:            uuid.New().String(),
		AssetID:       assetID,
		OperationType: req.OperationType,
		Amount:        req.Amount,
		NetAmount:     req.NetAmount,
		TaxAmount:     req.TaxAmount,
		TradeDate:     tradeDate,
		CreatedAt:     time.Now().UTC(),
		Status:        model.StatusActive,
	}
	if err := s.fixedIncomeRepo.InsertFixedIncomeOperation(&op); err != nil {
		return model.FixedIncomeOperation{}, err
	}
	return op, nil
}

// ListFixedIncomeOperations returns the active sub-ledger of one holding.
func (s *FixedIncomeService) ListFixedIncomeOperations(assetID string) ([]model.FixedIncomeOperation, error) {
	if _, err := s.fixedIncomeRepo.GetFixedIncomeByAssetID(assetID); err != nil {
		return nil, err
	}
	return s.fixedIncomeRepo.ListFixedIncomeOperations(assetID)
}

// Project computes the yield projection of a holding to its maturity date.
//
// The contracted rate is resolved to an annual percentage by indexer: CDI and
// SELIC holdings earn a percentage of the market reference rate, IPCA
// holdings earn the inflation reference plus a fixed spread, and PRE holdings
// earn their contracted rate outright. The balance compounds over the years
// until maturity, then regressive income tax (by time held since the first
// deposit) and the prorated custody fee are deducted. LCI and LCA are tax
// exempt.
func (s *FixedIncomeService) Project(assetID string) (model.FixedIncomeProjection, error) {
	fi, err := s.fixedIncomeRepo.GetFixedIncomeByAssetID(assetID)
	if err != nil {
		return model.FixedIncomeProjection{}, err
	}
	asset, err := s.assetRepo.GetAssetByID(assetID)
	if err != nil {
		return model.FixedIncomeProjection{}, err
	}
	balance, err := s.fixedIncomeRepo.GetBalance(assetID)
	if err != nil {
		return model.FixedIncomeProjection{}, err
	}

	current := balance.TotalInvested - balance.TotalRedeemed
	projection := model.FixedIncomeProjection{
		AssetID:        assetID,
		Ticker:         asset.Ticker,
		ProductType:    fi.ProductType,
		Indexer:        fi.Indexer,
		RateContracted: fi.Rate,
		MaturityDate:   fi.MaturityDate.Format("2006-01-02"),
		CurrentBalance: round2(current),
	}

	if current <= 0 {
		projection.Message = "no balance to project"
		return projection, nil
	}

	now := time.Now().UTC()
	if !fi.MaturityDate.After(now) {
		projection.GrossProjection = round2(current)
		projection.NetProjection = round2(current)
		projection.Message = "asset has reached maturity"
		return projection, nil
	}

	days := int(math.Ceil(fi.MaturityDate.Sub(now).Hours() / 24))
	years := float64(days) / daysPerYear
	annualRate := s.annualRate(fi)

	gross := current * math.Pow(1+annualRate/100, years)
	grossGain := gross - current

	taxRate := 0.0
	if !isTaxExempt(fi.ProductType) {
		holdingDays := days
		if balance.FirstDepositDate.Valid {
			if firstDeposit, err := repository.ParseTime(balance.FirstDepositDate.String); err == nil {
				holdingDays = int(math.Ceil(fi.MaturityDate.Sub(firstDeposit).Hours() / 24))
			}
		}
		taxRate = regressiveTaxRate(holdingDays)
	}
	taxAmount := grossGain * taxRate / 100

	custodyAmount := current * fi.CustodyFee / 100 * years
	net := gross - taxAmount - custodyAmount

	projection.DaysToMaturity = days
	projection.GrossProjection = round2(gross)
	projection.GrossGain = round2(grossGain)
	projection.TaxRate = taxRate
	projection.TaxAmount = round2(taxAmount)
	projection.CustodyFeeAmount = round2(custodyAmount)
	projection.NetProjection = round2(net)
	projection.NetGain = round2(net - current)
	projection.AnnualRateUsed = round2(annualRate)
	return projection, nil
}

// annualRate resolves a holding's contracted rate to an annual percentage.
func (s *FixedIncomeService) annualRate(fi model.FixedIncomeAsset) float64 {
	switch fi.Indexer {
	case model.IndexerCDI, model.IndexerSelic:
		return s.rates.CDIAnnualPercent * fi.Rate / 100
	case model.IndexerIPCA:
		return s.rates.IPCAAnnualPercent + fi.Rate
	default:
		return fi.Rate
	}
}

// isTaxExempt reports whether a product type is exempt from income tax.
func isTaxExempt(productType string) bool {
	switch strings.ToUpper(productType) {
	case "LCI", "LCA":
		return true
	}
	return false
}

// regressiveTaxRate returns the Brazilian regressive income tax percentage
// for a holding period in days.
func regressiveTaxRate(days int) float64 {
	switch {
	case days <= 180:
		return 22.5
	case days <= 360:
		return 20
	case days <= 720:
		return 17.5
	default:
		return 15
	}
}
