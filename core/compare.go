package core

import (
	"math"
	"sort"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/schema"
)

// CompareOptions configures one correlation run.
type CompareOptions struct {
	OldYear   int // 0 when unknown
	NewYear   int // 0 when unknown
	Tolerance float64
}

// Compare correlates the defects of an older and a newer survey.
//
// Matching is greedy nearest-distance in a single pass over the new defects in
// table order: each new defect claims the closest unconsumed old defect within
// the tolerance, ties broken by the earlier table row. A consumed old defect
// is never reclaimed, even by a closer later candidate, so the result depends
// on the input ordering. That mirrors how inspection analysts walk a run
// report top to bottom and is kept deliberately.
//
// Growth statistics appear only when both years are known, chronological, and
// both surveys carry a depth channel; millimeter rates additionally need
// nominal wall thickness on both sides. Callers must check the result's
// capability flags before reading growth fields.
func Compare(oldSet, newSet schema.DefectSet, opts CompareOptions) (*schema.ComparisonResult, error) {
	if err := checkColumnContract(oldSet); err != nil {
		return nil, err
	}
	if err := checkColumnContract(newSet); err != nil {
		return nil, err
	}

	result := &schema.ComparisonResult{
		OldYear:         opts.OldYear,
		NewYear:         opts.NewYear,
		Tolerance:       opts.Tolerance,
		HasDepthData:    oldSet.HasDepth && newSet.HasDepth,
		HasWTData:       oldSet.HasWallNominal && newSet.HasWallNominal,
		CalculateGrowth: opts.OldYear != 0 && opts.NewYear != 0 && opts.NewYear > opts.OldYear,
	}
	withGrowth := result.CalculateGrowth && result.HasDepthData

	oldConsumed := make([]bool, len(oldSet.Defects))
	newConsumed := make([]bool, len(newSet.Defects))

	for ni, nd := range newSet.Defects {
		bestIdx := -1
		bestDiff := math.Inf(1)
		for oi, od := range oldSet.Defects {
			if oldConsumed[oi] {
				continue
			}
			// Type-equality filter intentionally disabled: vendors relabel
			// anomaly categories between runs, so matching stays
			// distance-only.
			// if od.AnomalyType != nd.AnomalyType {
			// 	continue
			// }
			diff := math.Abs(nd.LogDist - od.LogDist)
			if diff > opts.Tolerance {
				continue
			}
			if diff < bestDiff {
				bestDiff = diff
				bestIdx = oi
			}
		}
		if bestIdx < 0 {
			continue
		}

		oldConsumed[bestIdx] = true
		newConsumed[ni] = true
		m := schema.Match{
			NewDefectID:  nd.ID,
			OldDefectID:  oldSet.Defects[bestIdx].ID,
			DistanceDiff: bestDiff,
			LogDist:      nd.LogDist,
			OldLogDist:   oldSet.Defects[bestIdx].LogDist,
			DefectType:   nd.AnomalyType,
		}
		if withGrowth {
			attachGrowth(&m, oldSet.Defects[bestIdx], nd, result.HasWTData, opts)
		}
		result.Matches = append(result.Matches, m)
	}

	for ni, nd := range newSet.Defects {
		if !newConsumed[ni] {
			result.NewDefects = append(result.NewDefects, nd)
		}
	}

	result.TotalDefects = len(newSet.Defects)
	result.CommonDefectsCount = len(result.Matches)
	result.NewDefectsCount = len(result.NewDefects)
	if result.TotalDefects > 0 {
		result.PctCommon = float64(result.CommonDefectsCount) / float64(result.TotalDefects) * 100
		result.PctNew = float64(result.NewDefectsCount) / float64(result.TotalDefects) * 100
	}

	result.TypeDistribution = typeDistribution(result.NewDefects)
	if withGrowth {
		result.GrowthStats = buildGrowthStats(result.Matches, result.HasWTData)
	}
	return result, nil
}

// checkColumnContract fails fast before any matching work when a dataset
// lacks one of the two required columns.
func checkColumnContract(set schema.DefectSet) error {
	if !set.HasLogDist {
		return &contract.MissingColumnError{Column: schema.ColLogDist}
	}
	if !set.HasAnomalyType {
		return &contract.MissingColumnError{Column: schema.ColAnomaly}
	}
	return nil
}

// attachGrowth fills the growth blocks of a match. Depth growth needs a depth
// reading on both sides; mm conversion additionally needs wall thickness on
// both sides and uses the average of the two nominal values, since the wall
// itself may differ slightly between measurement campaigns.
func attachGrowth(m *schema.Match, od, nd schema.Defect, withWT bool, opts CompareOptions) {
	if schema.IsMissing(od.DepthPct) || schema.IsMissing(nd.DepthPct) {
		return
	}
	yearDelta := float64(opts.NewYear - opts.OldYear)
	change := nd.DepthPct - od.DepthPct
	m.DepthGrowth = &schema.DepthGrowth{
		OldDepthPct:          od.DepthPct,
		NewDepthPct:          nd.DepthPct,
		DepthChangePct:       change,
		GrowthRatePctPerYear: change / yearDelta,
		IsNegativeGrowth:     change < 0,
	}

	if !withWT || schema.IsMissing(od.WallNominal) || schema.IsMissing(nd.WallNominal) {
		return
	}
	avgWT := (od.WallNominal + nd.WallNominal) / 2
	oldMM := od.DepthPct * avgWT / 100
	newMM := nd.DepthPct * avgWT / 100
	m.WallGrowth = &schema.WallGrowth{
		OldDepthMM:          oldMM,
		NewDepthMM:          newMM,
		DepthChangeMM:       newMM - oldMM,
		GrowthRateMMPerYear: (newMM - oldMM) / yearDelta,
	}
}

// typeDistribution counts anomaly types over the unmatched new defects only.
// Rows are ordered by descending count, then by type for determinism.
func typeDistribution(newDefects []schema.Defect) []schema.TypeCount {
	if len(newDefects) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, d := range newDefects {
		counts[d.AnomalyType]++
	}

	out := make([]schema.TypeCount, 0, len(counts))
	for defectType, count := range counts {
		out = append(out, schema.TypeCount{
			DefectType: defectType,
			Count:      count,
			Percentage: float64(count) / float64(len(newDefects)) * 100,
		})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].DefectType < out[b].DefectType
	})
	return out
}

// buildGrowthStats aggregates growth rates over the matches that carry a
// depth-growth block. Positive aggregates exclude negative-growth matches,
// which are physically implausible and flagged for manual review instead.
func buildGrowthStats(matches []schema.Match, withWT bool) *schema.GrowthStats {
	var total, negative, posCount int
	var sumPct, sumPosPct, maxPosPct float64
	var mmCount, mmPosCount int
	var sumMM, sumPosMM, maxPosMM float64
	for _, m := range matches {
		if m.DepthGrowth == nil {
			continue
		}
		total++
		sumPct += m.GrowthRatePctPerYear
		if m.IsNegativeGrowth {
			negative++
		} else {
			posCount++
			sumPosPct += m.GrowthRatePctPerYear
			if m.GrowthRatePctPerYear > maxPosPct {
				maxPosPct = m.GrowthRatePctPerYear
			}
		}
		if m.WallGrowth == nil {
			continue
		}
		mmCount++
		sumMM += m.GrowthRateMMPerYear
		if !m.IsNegativeGrowth {
			mmPosCount++
			sumPosMM += m.GrowthRateMMPerYear
			if m.GrowthRateMMPerYear > maxPosMM {
				maxPosMM = m.GrowthRateMMPerYear
			}
		}
	}
	if total == 0 {
		return nil
	}

	stats := &schema.GrowthStats{
		TotalMatchedDefects: total,
		NegativeGrowthCount: negative,
		PctNegativeGrowth:   float64(negative) / float64(total) * 100,
		AvgGrowthRatePct:    sumPct / float64(total),
		MaxGrowthRatePct:    maxPosPct,
	}
	if posCount > 0 {
		stats.AvgPositiveGrowthPct = sumPosPct / float64(posCount)
	}
	if withWT && mmCount > 0 {
		mm := &schema.GrowthStatsMM{
			AvgGrowthRateMM: sumMM / float64(mmCount),
			MaxGrowthRateMM: maxPosMM,
		}
		if mmPosCount > 0 {
			mm.AvgPositiveGrowthMM = sumPosMM / float64(mmPosCount)
		}
		stats.GrowthStatsMM = mm
	}
	return stats
}
