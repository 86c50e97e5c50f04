package parquet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pipewise/ilitrack/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRecordsFrom(t *testing.T) {
	matches := []schema.Match{
		{
			NewDefectID: 1, OldDefectID: 2,
			LogDist: 10.005, OldLogDist: 10.0, DistanceDiff: 0.005,
			DefectType: "corrosion",
			DepthGrowth: &schema.DepthGrowth{
				OldDepthPct: 20, NewDepthPct: 25, GrowthRatePctPerYear: 1.0,
			},
			WallGrowth: &schema.WallGrowth{GrowthRateMMPerYear: 0.08},
		},
		{NewDefectID: 3, OldDefectID: 4, DefectType: "dent"},
	}

	records := MatchRecordsFrom(matches)
	require.Len(t, records, 2)

	require.NotNil(t, records[0].GrowthRatePctPerYear)
	assert.InDelta(t, 1.0, *records[0].GrowthRatePctPerYear, 1e-9)
	require.NotNil(t, records[0].GrowthRateMMPerYear)
	assert.InDelta(t, 0.08, *records[0].GrowthRateMMPerYear, 1e-9)
	require.NotNil(t, records[0].IsNegativeGrowth)
	assert.False(t, *records[0].IsNegativeGrowth)

	// No growth blocks, so the optional columns stay null.
	assert.Nil(t, records[1].GrowthRatePctPerYear)
	assert.Nil(t, records[1].IsNegativeGrowth)
}

func TestDefectRecordsFromMapsMissingToNull(t *testing.T) {
	defects := []schema.Defect{
		{
			ID: 0, LogDist: 5.2, AnomalyType: "corrosion",
			JointNumber: 1, DepthPct: 15, LengthMM: 30, WidthMM: 20,
		},
		{
			ID: 1, LogDist: 15.5, AnomalyType: "dent",
			JointNumber: schema.Missing(), DepthPct: schema.Missing(),
			LengthMM: 55, WidthMM: 35,
		},
	}

	records := DefectRecordsFrom(defects)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].DepthPct)
	assert.InDelta(t, 15, *records[0].DepthPct, 1e-9)
	assert.Nil(t, records[1].DepthPct)
	assert.Nil(t, records[1].JointNumber)
}

func TestWriteMatchesParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.parquet")
	matches := []schema.Match{
		{NewDefectID: 1, OldDefectID: 2, LogDist: 10.0, OldLogDist: 10.0, DefectType: "corrosion"},
	}

	require.NoError(t, WriteMatchesParquet(matches, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
