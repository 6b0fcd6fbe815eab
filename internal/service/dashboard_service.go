package service

import (
	"log"
	"math"
	"time"

	"github.com/rcoelho/B3-Portfolio-Backend/internal/model"
	"github.com/rcoelho/B3-Portfolio-Backend/internal/repository"
)

const (
	topPositionsLimit     = 5
	recentOperationsLimit = 10
)

// DashboardService assembles the portfolio summary: totals, top positions
// valued at market where quotes are available, recent ledger activity and
// allocation by asset class.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	operationRepo *repository.OperationRepository
	quoteService  *QuoteService
}

// NewDashboardService creates a new DashboardService with the provided dependencies.
func NewDashboardService(
	dashboardRepo *repository.DashboardRepository,
	operationRepo *repository.OperationRepository,
	quoteService *QuoteService,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		operationRepo: operationRepo,
		quoteService:  quoteService,
	}
}

// GetSummary builds the dashboard summary. Every open position is valued with
// cached-or-fetched quotes; a position whose quote is unavailable falls back
// to cost basis and is flagged as unpriced, so the summary never fails on a
// provider outage. Current value and gain cover the whole portfolio; only the
// largest positions are listed.
func (s *DashboardService) GetSummary() (model.DashboardSummary, error) {
	totals, err := s.dashboardRepo.GetTotals()
	if err != nil {
		return model.DashboardSummary{}, err
	}

	positions, err := s.dashboardRepo.GetPositions()
	if err != nil {
		return model.DashboardSummary{}, err
	}

	currentValue := 0.0
	for i := range positions {
		s.valuePosition(&positions[i])
		currentValue += positions[i].CurrentValue
	}

	top := positions
	if len(top) > topPositionsLimit {
		top = top[:topPositionsLimit]
	}

	recent, err := s.operationRepo.ListRecentOperations(recentOperationsLimit)
	if err != nil {
		return model.DashboardSummary{}, err
	}

	allocation, err := s.dashboardRepo.GetAllocation()
	if err != nil {
		return model.DashboardSummary{}, err
	}

	totalInvested := totals.TotalBoughtValue - totals.TotalSoldValue
	allocated := 0.0
	for _, a := range allocation {
		allocated += a.Value
	}
	for i := range allocation {
		if allocated > 0 {
			allocation[i].Percentage = round2(allocation[i].Value / allocated * 100)
		}
	}

	summary := model.DashboardSummary{
		TotalAssets:      totals.TotalAssets,
		TotalInvested:    totalInvested,
		CurrentValue:     currentValue,
		TotalBoughtValue: totals.TotalBoughtValue,
		TotalSoldValue:   totals.TotalSoldValue,
		TopPositions:     top,
		RecentOperations: recent,
		AssetAllocation:  allocation,
		GeneratedAt:      time.Now().UTC(),
	}
	summary.TotalGain = currentValue - totalInvested
	if totalInvested > 0 {
		summary.TotalGainPercent = round2(summary.TotalGain / totalInvested * 100)
	}

	return summary, nil
}

// valuePosition fills CurrentValue for one position. Only listed classes are
// quoted; fixed income and anything without a quote keep cost basis.
func (s *DashboardService) valuePosition(p *model.Position) {
	p.CurrentValue = p.InvestedValue

	if p.AssetClass != model.AssetClassEquity &&
		p.AssetClass != model.AssetClassETF &&
		p.AssetClass != model.AssetClassRealEstateFund {
		return
	}

	quote, err := s.quoteService.GetQuote(p.Ticker)
	if err != nil {
		log.Printf("WARN dashboard: no quote for %s, using cost basis: %v", p.Ticker, err)
		return
	}

	p.CurrentValue = float64(p.Quantity) * quote.Price
	p.Priced = true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
