package service

import (
	"time"

	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/repository"
)

// SnapshotService aggregates valued assets into per-class buckets and dated
// portfolio snapshots.
type SnapshotService struct {
	valuation    *ValuationService
	snapshotRepo *repository.SnapshotRepository

	now func() time.Time
}

// NewSnapshotService creates a SnapshotService.
func NewSnapshotService(valuation *ValuationService, snapshotRepo *repository.SnapshotRepository) *SnapshotService {
	return &SnapshotService{
		valuation:    valuation,
		snapshotRepo: snapshotRepo,
		now:          time.Now,
	}
}

// Aggregate sums valued assets into per-class buckets and grand totals.
//
// Aggregation deliberately differs from single-asset semantics: an absent
// value contributes zero to the sums ("no contribution"), whereas on the
// asset itself it stays absent ("unknown"). Percentages are of the USD grand
// total and are zero across the board when the total is zero.
func Aggregate(assets []model.ValuedAsset) (totalUSD, totalAMD float64, breakdown model.PortfolioBreakdown) {
	breakdown = model.PortfolioBreakdown{}

	for _, a := range assets {
		var valueUSD, valueAMD float64
		if a.TotalValueUSD != nil {
			valueUSD = *a.TotalValueUSD
		}
		if a.TotalValueAMD != nil {
			valueAMD = *a.TotalValueAMD
		}

		totalUSD += valueUSD
		totalAMD += valueAMD

		entry := breakdown[a.AssetType]
		entry.ValueUSD += valueUSD
		entry.ValueAMD += valueAMD
		entry.Assets = append(entry.Assets, model.BreakdownAsset{
			ID:       a.ID,
			Name:     a.Name,
			ValueUSD: valueUSD,
			ValueAMD: valueAMD,
		})
		breakdown[a.AssetType] = entry
	}

	for assetType, entry := range breakdown {
		if totalUSD > 0 {
			entry.Percentage = entry.ValueUSD / totalUSD * 100
		}
		breakdown[assetType] = entry
	}

	return totalUSD, totalAMD, breakdown
}

// CreateSnapshot values the portfolio and writes the snapshot for today's
// date. Snapshot creation is idempotent per calendar day: running twice on
// the same date overwrites the earlier record.
func (s *SnapshotService) CreateSnapshot() (model.PortfolioSnapshot, error) {
	assets, err := s.valuation.ValueAssets()
	if err != nil {
		return model.PortfolioSnapshot{}, err
	}

	totalUSD, totalAMD, breakdown := Aggregate(assets)
	date := s.now().UTC().Format("2006-01-02")

	if err := s.snapshotRepo.Upsert(date, totalUSD, totalAMD, breakdown); err != nil {
		return model.PortfolioSnapshot{}, err
	}

	return s.snapshotRepo.GetByDate(date)
}

// List returns up to limit snapshots, newest first.
func (s *SnapshotService) List(limit int) ([]model.PortfolioSnapshot, error) {
	if limit <= 0 {
		limit = 365
	}
	return s.snapshotRepo.List(limit)
}

// Stats summarizes the current portfolio for the dashboard: totals, the sum
// of known gains/losses, and per-class value, count, and share.
func (s *SnapshotService) Stats() (model.PortfolioStats, error) {
	assets, err := s.valuation.ValueAssets()
	if err != nil {
		return model.PortfolioStats{}, err
	}

	stats := model.PortfolioStats{
		AssetCount: len(assets),
		ByType:     map[model.AssetType]model.TypeStats{},
	}

	for _, a := range assets {
		var valueUSD float64
		if a.TotalValueUSD != nil {
			valueUSD = *a.TotalValueUSD
		}
		if a.TotalValueAMD != nil {
			stats.TotalValueAMD += *a.TotalValueAMD
		}
		if a.GainLossUSD != nil {
			stats.TotalGainLossUSD += *a.GainLossUSD
		}
		stats.TotalValueUSD += valueUSD

		entry := stats.ByType[a.AssetType]
		entry.ValueUSD += valueUSD
		entry.Count++
		stats.ByType[a.AssetType] = entry
	}

	for assetType, entry := range stats.ByType {
		if stats.TotalValueUSD > 0 {
			entry.Percentage = entry.ValueUSD / stats.TotalValueUSD * 100
		}
		stats.ByType[assetType] = entry
	}

	return stats, nil
}
