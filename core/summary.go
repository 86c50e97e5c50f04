package core

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pipewise/ilitrack/schema"
)

// TopGrowth returns the n fastest-growing matches, descending by the active
// growth-rate unit. mm/yr is preferred whenever the match carries a wall
// block; negative-growth matches are excluded because they rank for review,
// not for severity.
func TopGrowth(result *schema.ComparisonResult, n int) []schema.Match {
	var growing []schema.Match
	for _, m := range result.Matches {
		if m.DepthGrowth == nil || m.IsNegativeGrowth {
			continue
		}
		growing = append(growing, m)
	}
	sort.SliceStable(growing, func(a, b int) bool {
		return activeRate(growing[a]) > activeRate(growing[b])
	})
	if n > 0 && len(growing) > n {
		growing = growing[:n]
	}
	return growing
}

func activeRate(m schema.Match) float64 {
	if m.WallGrowth != nil {
		return m.GrowthRateMMPerYear
	}
	return m.GrowthRatePctPerYear
}

// NearMissScan re-runs the distance search at twice the tolerance without the
// consumption rule, so an operator can inspect near-threshold pairings. One
// old defect may appear against several new defects here; this view never
// feeds back into matching.
func NearMissScan(oldSet, newSet schema.DefectSet, tolerance float64) *schema.DiagnosticView {
	view := &schema.DiagnosticView{
		Tolerance: tolerance,
		HasDepth:  oldSet.HasDepth && newSet.HasDepth,
		HasClock:  oldSet.HasClock && newSet.HasClock,
		HasLength: true,
		HasWidth:  true,
	}

	widened := tolerance * 2
	for _, nd := range newSet.Defects {
		for _, od := range oldSet.Defects {
			diff := math.Abs(nd.LogDist - od.LogDist)
			if diff > widened {
				continue
			}
			row := schema.NearMiss{
				NewDist:      nd.LogDist,
				OldDist:      od.LogDist,
				DistanceDiff: diff,
				DefectType:   nd.AnomalyType,
				WouldMatch:   diff <= tolerance,
				NewDepthPct:  schema.Missing(),
				OldDepthPct:  schema.Missing(),
				NewLengthMM:  nd.LengthMM,
				OldLengthMM:  od.LengthMM,
				NewWidthMM:   nd.WidthMM,
				OldWidthMM:   od.WidthMM,
			}
			if view.HasDepth {
				row.NewDepthPct = nd.DepthPct
				row.OldDepthPct = od.DepthPct
			}
			if view.HasClock {
				row.NewClock = nd.Clock
				row.OldClock = od.Clock
			}
			view.Rows = append(view.Rows, row)
		}
	}
	sort.SliceStable(view.Rows, func(a, b int) bool {
		return view.Rows[a].DistanceDiff < view.Rows[b].DistanceDiff
	})
	return view
}

// DimensionStatistics summarizes the measured defect dimensions of one
// survey. Missing cells are dropped per dimension, so each row may cover a
// different sample count.
func DimensionStatistics(set schema.DefectSet) []schema.DimensionStats {
	dims := []struct {
		name    string
		present bool
		value   func(schema.Defect) float64
	}{
		{"depth [%]", set.HasDepth, func(d schema.Defect) float64 { return d.DepthPct }},
		{"length [mm]", true, func(d schema.Defect) float64 { return d.LengthMM }},
		{"width [mm]", true, func(d schema.Defect) float64 { return d.WidthMM }},
	}

	var out []schema.DimensionStats
	for _, dim := range dims {
		if !dim.present {
			continue
		}
		var values []float64
		for _, d := range set.Defects {
			v := dim.value(d)
			if !schema.IsMissing(v) {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		row := schema.DimensionStats{
			Dimension: dim.name,
			Mean:      stat.Mean(values, nil),
			Median:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
			Min:       sorted[0],
			Max:       sorted[len(sorted)-1],
			Count:     len(values),
		}
		if len(values) > 1 {
			row.StdDev = stat.StdDev(values, nil)
		}
		out = append(out, row)
	}
	return out
}

// RankJoints ranks joints by their worst defect. Severity is the maximum
// depth percentage when a depth channel exists, otherwise the defect count.
// Unassignable defects (no preceding joint marker) are skipped.
func RankJoints(set schema.DefectSet, n int) []schema.JointSeverity {
	type acc struct {
		count    int
		maxDepth float64
	}
	byJoint := make(map[float64]*acc)
	for _, d := range set.Defects {
		if schema.IsMissing(d.JointNumber) {
			continue
		}
		a := byJoint[d.JointNumber]
		if a == nil {
			a = &acc{maxDepth: math.Inf(-1)}
			byJoint[d.JointNumber] = a
		}
		a.count++
		if set.HasDepth && !schema.IsMissing(d.DepthPct) && d.DepthPct > a.maxDepth {
			a.maxDepth = d.DepthPct
		}
	}

	out := make([]schema.JointSeverity, 0, len(byJoint))
	for jn, a := range byJoint {
		severity := float64(a.count)
		if set.HasDepth && !math.IsInf(a.maxDepth, -1) {
			severity = a.maxDepth
		}
		out = append(out, schema.JointSeverity{
			JointNumber: jn,
			DefectCount: a.count,
			Severity:    severity,
		})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Severity != out[b].Severity {
			return out[a].Severity > out[b].Severity
		}
		return out[a].JointNumber < out[b].JointNumber
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Trend reduces consecutive-year comparisons to their headline numbers.
// Surveys must be supplied in ascending year order.
func Trend(surveys []*schema.Survey, tolerance float64) (*schema.TrendResult, error) {
	trend := &schema.TrendResult{}
	for i := 1; i < len(surveys); i++ {
		oldSurvey, newSurvey := surveys[i-1], surveys[i]
		result, err := Compare(oldSurvey.Defects, newSurvey.Defects, CompareOptions{
			OldYear:   oldSurvey.Year,
			NewYear:   newSurvey.Year,
			Tolerance: tolerance,
		})
		if err != nil {
			return nil, err
		}

		point := schema.TrendPoint{
			OldYear:            result.OldYear,
			NewYear:            result.NewYear,
			TotalDefects:       result.TotalDefects,
			CommonDefectsCount: result.CommonDefectsCount,
			NewDefectsCount:    result.NewDefectsCount,
			PctNew:             result.PctNew,
		}
		if result.GrowthStats != nil {
			point.HasGrowth = true
			point.AvgGrowthRatePct = result.GrowthStats.AvgGrowthRatePct
			if result.GrowthStats.GrowthStatsMM != nil {
				point.HasMM = true
				point.AvgGrowthRateMM = result.GrowthStats.AvgGrowthRateMM
			}
		}
		trend.Points = append(trend.Points, point)
	}
	return trend, nil
}
