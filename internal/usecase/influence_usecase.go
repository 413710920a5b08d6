package usecase

import (
	"fmt"
	"time"

	"field-presence-backend/internal/logger"
	"field-presence-backend/internal/model"
	"field-presence-backend/internal/repository"
)

// Co-lateness thresholds. Note the 15-minute bar here vs the 30-minute
// "severe late" bar in the per-employee score: correlation sensitivity
// and individual severity are tuned independently.
const (
	coLateThresholdMinutes = 15
	minCoOccurrences       = 5
)

// InfluenceRunSummary is the aggregate outcome of one graph build.
type InfluenceRunSummary struct {
	BranchesScanned int
	PairsExamined   int
	EdgesUpserted   int
}

// InfluenceGraphBuilder finds same-branch employee pairs who are late
// together often enough to be worth recording. The resulting edges are
// correlational bookkeeping only — "late on the same days", never "one
// causes the other" — and downstream consumers must present them as such.
type InfluenceGraphBuilder struct {
	branchRepo repository.BranchRepository
	attRepo    repository.AttendanceRepository
	riskRepo   repository.RiskRepository
	settings   repository.SettingRepository
	log        *logger.Logger
	now        func() time.Time
}

func NewInfluenceGraphBuilder(branchRepo repository.BranchRepository, attRepo repository.AttendanceRepository, riskRepo repository.RiskRepository, settings repository.SettingRepository, log *logger.Logger) *InfluenceGraphBuilder {
	return &InfluenceGraphBuilder{
		branchRepo: branchRepo,
		attRepo:    attRepo,
		riskRepo:   riskRepo,
		settings:   settings,
		log:        log,
		now:        time.Now,
	}
}

type pairKey struct {
	a, b uint
}

func makePairKey(x, y uint) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{a: x, b: y}
}

// Run scans every active branch over the lookback window and upserts a
// co_late edge for each pair that crosses the co-occurrence threshold.
// Evidence accumulates across runs; strength follows it monotonically.
func (b *InfluenceGraphBuilder) Run(analysisDate time.Time) (*InfluenceRunSummary, error) {
	branches, err := b.branchRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}

	lookback := b.settings.GetInt(model.SettingLookbackDays, defaultLookbackDays)
	fromDate := analysisDate.AddDate(0, 0, -lookback).Format(dateLayout)
	summary := &InfluenceRunSummary{}

	for i := range branches {
		branch := &branches[i]
		summary.BranchesScanned++

		records, err := b.attRepo.ListByBranchSince(branch.ID, fromDate)
		if err != nil {
			b.log.Error("skipping branch in influence scan",
				"branch_id", branch.ID, "error", err)
			continue
		}

		// Who was notably late on which date.
		lateByDate := map[string][]uint{}
		for j := range records {
			rec := &records[j]
			if rec.LateMinutes > coLateThresholdMinutes {
				lateByDate[rec.Date] = append(lateByDate[rec.Date], rec.UserID)
			}
		}

		coOccurrences := map[pairKey]int{}
		for _, userIDs := range lateByDate {
			for x := 0; x < len(userIDs); x++ {
				for y := x + 1; y < len(userIDs); y++ {
					coOccurrences[makePairKey(userIDs[x], userIDs[y])]++
				}
			}
		}

		summary.PairsExamined += len(coOccurrences)
		for pair, count := range coOccurrences {
			if count < minCoOccurrences {
				continue
			}
			edge, err := b.riskRepo.UpsertCoLateEdge(pair.a, pair.b, count, b.now())
			if err != nil {
				b.log.Error("failed to upsert influence edge",
					"user_a", pair.a, "user_b", pair.b, "error", err)
				continue
			}
			summary.EdgesUpserted++
			b.log.Info("co-late edge recorded",
				"user_a", pair.a, "user_b", pair.b,
				"occurrences", count, "evidence_count", edge.EvidenceCount,
				"strength", edge.Strength)
		}
	}

	b.log.Info("influence graph run complete",
		"branches", summary.BranchesScanned,
		"pairs_examined", summary.PairsExamined,
		"edges_upserted", summary.EdgesUpserted)
	return summary, nil
}
