package core

import (
	"testing"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// defectsAt builds a defect set with sequential ids from (distance, depth,
// wall) triples. Use NaN for absent readings.
func defectsAt(hasDepth, hasWT bool, rows ...[3]float64) schema.DefectSet {
	set := schema.DefectSet{
		HasLogDist:     true,
		HasAnomalyType: true,
		HasDepth:       hasDepth,
		HasWallNominal: hasWT,
	}
	for i, r := range rows {
		set.Defects = append(set.Defects, schema.Defect{
			ID:          i,
			LogDist:     r[0],
			AnomalyType: "corrosion",
			DepthPct:    r[1],
			WallNominal: r[2],
			LengthMM:    30,
			WidthMM:     20,
		})
	}
	return set
}

func TestCompareBasicMatchAndGrowth(t *testing.T) {
	old := defectsAt(true, true, [3]float64{10.000, 20, 8.0})
	newer := defectsAt(true, true, [3]float64{10.005, 25, 8.0})

	result, err := Compare(old, newer, CompareOptions{OldYear: 2015, NewYear: 2020, Tolerance: 0.01})
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, 1, result.CommonDefectsCount)
	assert.Equal(t, 0, result.NewDefectsCount)
	assert.InDelta(t, 100, result.PctCommon, 1e-9)

	m := result.Matches[0]
	require.NotNil(t, m.DepthGrowth)
	assert.InDelta(t, 5, m.DepthChangePct, 1e-9)
	assert.InDelta(t, 1.0, m.GrowthRatePctPerYear, 1e-9)
	assert.False(t, m.IsNegativeGrowth)

	require.NotNil(t, m.WallGrowth)
	assert.InDelta(t, 1.6, m.OldDepthMM, 1e-9)
	assert.InDelta(t, 2.0, m.NewDepthMM, 1e-9)
	assert.InDelta(t, 0.4, m.DepthChangeMM, 1e-9)
	assert.InDelta(t, 0.08, m.GrowthRateMMPerYear, 1e-9)

	require.NotNil(t, result.GrowthStats)
	assert.Equal(t, 1, result.GrowthStats.TotalMatchedDefects)
	assert.InDelta(t, 1.0, result.GrowthStats.AvgGrowthRatePct, 1e-9)
	require.NotNil(t, result.GrowthStats.GrowthStatsMM)
	assert.InDelta(t, 0.08, result.GrowthStats.AvgGrowthRateMM, 1e-9)
}

func TestCompareTighterToleranceLeavesNewDefect(t *testing.T) {
	old := defectsAt(true, true, [3]float64{10.000, 20, 8.0})
	newer := defectsAt(true, true, [3]float64{10.005, 25, 8.0})

	result, err := Compare(old, newer, CompareOptions{OldYear: 2015, NewYear: 2020, Tolerance: 0.001})
	require.NoError(t, err)

	assert.Empty(t, result.Matches)
	require.Len(t, result.NewDefects, 1)
	assert.Nil(t, result.GrowthStats)

	require.Len(t, result.TypeDistribution, 1)
	assert.Equal(t, "corrosion", result.TypeDistribution[0].DefectType)
	assert.Equal(t, 1, result.TypeDistribution[0].Count)
	assert.InDelta(t, 100, result.TypeDistribution[0].Percentage, 1e-9)
}

func TestCompareToleranceBoundaryIsInclusive(t *testing.T) {
	old := defectsAt(false, false, [3]float64{0.0, 0, 0})

	atBoundary := defectsAt(false, false, [3]float64{0.01, 0, 0})
	result, err := Compare(old, atBoundary, CompareOptions{Tolerance: 0.01})
	require.NoError(t, err)
	assert.Len(t, result.Matches, 1)

	beyond := defectsAt(false, false, [3]float64{0.02, 0, 0})
	result, err = Compare(old, beyond, CompareOptions{Tolerance: 0.01})
	require.NoError(t, err)
	assert.Empty(t, result.Matches)
}

func TestCompareGreedyNeverReclaims(t *testing.T) {
	old := defectsAt(false, false, [3]float64{10.000, 0, 0})
	// The first new defect in table order claims the only old defect, even
	// though the second one is closer.
	newer := defectsAt(false, false,
		[3]float64{10.004, 0, 0},
		[3]float64{10.001, 0, 0},
	)

	result, err := Compare(old, newer, CompareOptions{Tolerance: 0.01})
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, 0, result.Matches[0].NewDefectID)
	require.Len(t, result.NewDefects, 1)
	assert.Equal(t, 1, result.NewDefects[0].ID)
}

func TestCompareTieBreaksOnEarlierRow(t *testing.T) {
	old := defectsAt(false, false,
		[3]float64{10.0, 0, 0},
		[3]float64{10.0, 0, 0},
	)
	newer := defectsAt(false, false, [3]float64{10.0, 0, 0})

	result, err := Compare(old, newer, CompareOptions{Tolerance: 0.01})
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, 0, result.Matches[0].OldDefectID)
}

func TestCompareOneToOneAndConservation(t *testing.T) {
	old := defectsAt(false, false,
		[3]float64{5.0, 0, 0},
		[3]float64{10.0, 0, 0},
		[3]float64{15.0, 0, 0},
	)
	newer := defectsAt(false, false,
		[3]float64{5.001, 0, 0},
		[3]float64{10.002, 0, 0},
		[3]float64{30.0, 0, 0},
		[3]float64{45.0, 0, 0},
	)

	result, err := Compare(old, newer, CompareOptions{Tolerance: 0.01})
	require.NoError(t, err)

	assert.Equal(t, result.TotalDefects, result.CommonDefectsCount+result.NewDefectsCount)

	seenOld := make(map[int]bool)
	seenNew := make(map[int]bool)
	for _, m := range result.Matches {
		assert.False(t, seenOld[m.OldDefectID], "old defect matched twice")
		assert.False(t, seenNew[m.NewDefectID], "new defect matched twice")
		seenOld[m.OldDefectID] = true
		seenNew[m.NewDefectID] = true
	}
	for _, d := range result.NewDefects {
		assert.False(t, seenNew[d.ID], "defect both matched and new")
	}
}

func TestCompareNegativeGrowthFlagged(t *testing.T) {
	old := defectsAt(true, false, [3]float64{10.0, 30, 0})
	newer := defectsAt(true, false, [3]float64{10.0, 22, 0})

	result, err := Compare(old, newer, CompareOptions{OldYear: 2015, NewYear: 2020, Tolerance: 0.01})
	require.NoError(t, err)

	require.Len(t, result.Matches, 1)
	m := result.Matches[0]
	require.NotNil(t, m.DepthGrowth)
	assert.True(t, m.IsNegativeGrowth)
	assert.InDelta(t, -8, m.DepthChangePct, 1e-9)

	require.NotNil(t, result.GrowthStats)
	assert.Equal(t, 1, result.GrowthStats.NegativeGrowthCount)
	assert.InDelta(t, 100, result.GrowthStats.PctNegativeGrowth, 1e-9)
	// Positive aggregates exclude the negative match.
	assert.InDelta(t, 0, result.GrowthStats.AvgPositiveGrowthPct, 1e-9)
	assert.InDelta(t, 0, result.GrowthStats.MaxGrowthRatePct, 1e-9)
}

func TestCompareGrowthGatedOnYears(t *testing.T) {
	old := defectsAt(true, true, [3]float64{10.0, 20, 8.0})
	newer := defectsAt(true, true, [3]float64{10.0, 25, 8.0})

	// No years at all.
	result, err := Compare(old, newer, CompareOptions{Tolerance: 0.01})
	require.NoError(t, err)
	assert.False(t, result.CalculateGrowth)
	assert.Nil(t, result.GrowthStats)
	require.Len(t, result.Matches, 1)
	assert.Nil(t, result.Matches[0].DepthGrowth)

	// Reversed years.
	result, err = Compare(old, newer, CompareOptions{OldYear: 2020, NewYear: 2015, Tolerance: 0.01})
	require.NoError(t, err)
	assert.False(t, result.CalculateGrowth)
	assert.Nil(t, result.GrowthStats)
}

func TestCompareGrowthGatedOnDepth(t *testing.T) {
	old := defectsAt(false, true, [3]float64{10.0, schema.Missing(), 8.0})
	newer := defectsAt(true, true, [3]float64{10.0, 25, 8.0})

	result, err := Compare(old, newer, CompareOptions{OldYear: 2015, NewYear: 2020, Tolerance: 0.01})
	require.NoError(t, err)

	assert.True(t, result.CalculateGrowth)
	assert.False(t, result.HasDepthData)
	assert.Nil(t, result.GrowthStats)
	require.Len(t, result.Matches, 1)
	assert.Nil(t, result.Matches[0].DepthGrowth)
}

func TestCompareMissingDepthCellSkipsGrowth(t *testing.T) {
	old := defectsAt(true, true,
		[3]float64{10.0, schema.Missing(), 8.0},
		[3]float64{20.0, 10, 8.0},
	)
	newer := defectsAt(true, true,
		[3]float64{10.0, 25, 8.0},
		[3]float64{20.0, 14, 8.0},
	)

	result, err := Compare(old, newer, CompareOptions{OldYear: 2015, NewYear: 2020, Tolerance: 0.01})
	require.NoError(t, err)

	require.Len(t, result.Matches, 2)
	assert.Nil(t, result.Matches[0].DepthGrowth)
	require.NotNil(t, result.Matches[1].DepthGrowth)

	// Stats cover only the matches that carry growth.
	require.NotNil(t, result.GrowthStats)
	assert.Equal(t, 1, result.GrowthStats.TotalMatchedDefects)
}

func TestCompareMissingColumnFailsFast(t *testing.T) {
	valid := defectsAt(false, false, [3]float64{10.0, 0, 0})

	noDist := valid
	noDist.HasLogDist = false
	_, err := Compare(noDist, valid, CompareOptions{Tolerance: 0.01})
	require.Error(t, err)
	assert.True(t, contract.IsMissingColumn(err))
	assert.Contains(t, err.Error(), schema.ColLogDist)

	noType := valid
	noType.HasAnomalyType = false
	_, err = Compare(valid, noType, CompareOptions{Tolerance: 0.01})
	require.Error(t, err)
	assert.True(t, contract.IsMissingColumn(err))
	assert.Contains(t, err.Error(), schema.ColAnomaly)
}

func TestCompareEmptyInputsDegradeToZero(t *testing.T) {
	empty := schema.DefectSet{HasLogDist: true, HasAnomalyType: true}

	result, err := Compare(empty, empty, CompareOptions{OldYear: 2015, NewYear: 2020, Tolerance: 0.01})
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalDefects)
	assert.InDelta(t, 0, result.PctCommon, 1e-9)
	assert.InDelta(t, 0, result.PctNew, 1e-9)
	assert.Empty(t, result.TypeDistribution)
	assert.Nil(t, result.GrowthStats)
}
