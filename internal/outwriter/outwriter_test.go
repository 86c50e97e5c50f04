package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Output:      schema.TextOut,
		Precision:   3,
		ResultLimit: 25,
		UseColors:   false,
		Width:       120,
		Table:       schema.DefectsTable,
	}
}

func sampleComparison() *schema.ComparisonResult {
	return &schema.ComparisonResult{
		OldYear:   2015,
		NewYear:   2020,
		Tolerance: 0.01,
		Matches: []schema.Match{
			{
				NewDefectID: 0, OldDefectID: 0,
				LogDist: 10.005, OldLogDist: 10.0, DistanceDiff: 0.005,
				DefectType: "corrosion",
				DepthGrowth: &schema.DepthGrowth{
					OldDepthPct: 20, NewDepthPct: 25,
					DepthChangePct: 5, GrowthRatePctPerYear: 1.0,
				},
				WallGrowth: &schema.WallGrowth{
					OldDepthMM: 1.6, NewDepthMM: 2.0,
					DepthChangeMM: 0.4, GrowthRateMMPerYear: 0.08,
				},
			},
		},
		NewDefects: []schema.Defect{
			{ID: 1, LogDist: 55.2, AnomalyType: "dent"},
		},
		TotalDefects:       2,
		CommonDefectsCount: 1,
		NewDefectsCount:    1,
		PctCommon:          50,
		PctNew:             50,
		TypeDistribution: []schema.TypeCount{
			{DefectType: "dent", Count: 1, Percentage: 100},
		},
		GrowthStats: &schema.GrowthStats{
			TotalMatchedDefects:  1,
			AvgGrowthRatePct:     1.0,
			AvgPositiveGrowthPct: 1.0,
			MaxGrowthRatePct:     1.0,
			GrowthStatsMM: &schema.GrowthStatsMM{
				AvgGrowthRateMM:     0.08,
				AvgPositiveGrowthMM: 0.08,
				MaxGrowthRateMM:     0.08,
			},
		},
		HasDepthData:    true,
		HasWTData:       true,
		CalculateGrowth: true,
	}
}

func TestWriteComparisonTable(t *testing.T) {
	cfg := testConfig()
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeComparisonTable(&buf, sampleComparison(), cfg, fmtFloat, fmtOpt, 100*time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Comparing 2020 against 2015")
	assert.Contains(t, output, "Total defects: 2")
	assert.Contains(t, output, "Common: 1 (50.000%)")
	assert.Contains(t, output, "corrosion")
	assert.Contains(t, output, "0.080 mm/yr")
	assert.Contains(t, output, "dent: 1 (100.000%)")
	assert.Contains(t, output, "Negative growth: 0")
	assert.Contains(t, output, "Low")
}

func TestWriteComparisonTableLimit(t *testing.T) {
	result := sampleComparison()
	result.Matches = append(result.Matches, result.Matches[0], result.Matches[0])
	cfg := testConfig()
	cfg.ResultLimit = 2

	fmtFloat, fmtOpt := createFormatters(cfg.Precision)
	var buf bytes.Buffer
	err := writeComparisonTable(&buf, result, cfg, fmtFloat, fmtOpt, time.Millisecond)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Showing 2 of 3 matches")
}

func TestWriteComparisonCSV(t *testing.T) {
	fmtFloat, fmtOpt := createFormatters(3)

	var buf bytes.Buffer
	err := writeComparisonCSV(&buf, sampleComparison(), fmtFloat, fmtOpt)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new_defect_id", records[0][0])
	assert.Equal(t, "corrosion", records[1][5])
	assert.Equal(t, "1.000", records[1][8])
	assert.Equal(t, "0.080", records[1][9])
}

func TestWriteGrowthTable(t *testing.T) {
	result := sampleComparison()
	cfg := testConfig()
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeGrowthTable(&buf, result, result.Matches, cfg, fmtFloat, fmtOpt)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Top 1 growing defects, 2020 against 2015")
	assert.Contains(t, output, "corrosion")
	assert.Contains(t, output, "0.080 mm/yr")
}

func TestWriteGrowthTableEmpty(t *testing.T) {
	result := sampleComparison()
	cfg := testConfig()
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeGrowthTable(&buf, result, nil, cfg, fmtFloat, fmtOpt)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No positive depth growth found")
}

func TestWriteDiagnosticsTable(t *testing.T) {
	view := &schema.DiagnosticView{
		Tolerance: 0.01,
		Rows: []schema.NearMiss{
			{
				NewDist: 10.005, OldDist: 10.0, DistanceDiff: 0.005,
				DefectType: "corrosion", WouldMatch: true,
				NewDepthPct: 25, OldDepthPct: 20,
				NewClock: "6:00", OldClock: "6:15",
			},
			{
				NewDist: 20.015, OldDist: 20.0, DistanceDiff: 0.015,
				DefectType: "dent", WouldMatch: false,
				NewDepthPct: schema.Missing(), OldDepthPct: schema.Missing(),
			},
		},
		HasDepth: true,
		HasClock: true,
	}
	cfg := testConfig()
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeDiagnosticsTable(&buf, view, cfg, fmtFloat, fmtOpt)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Candidate pairs within 0.02 m")
	assert.Contains(t, output, "yes")
	assert.Contains(t, output, "no")
	assert.Contains(t, output, "6:15")
}

func TestWriteSurveyListTable(t *testing.T) {
	infos := []schema.SurveyInfo{
		{Year: 2015, SourceFile: "run2015.csv", LoadedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), JointCount: 3, DefectCount: 12},
		{Year: 2020, SourceFile: "run2020.csv", LoadedAt: time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC), JointCount: 3, DefectCount: 15},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSurveyListTable(&buf, infos))

	output := buf.String()
	assert.Contains(t, output, "2015")
	assert.Contains(t, output, "run2020.csv")
	assert.Contains(t, output, "15")
}

func TestWriteSurveyListTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSurveyListTable(&buf, nil))
	assert.Contains(t, buf.String(), "No surveys loaded")
}

func TestWriteDefectsTableMissingCellsBlank(t *testing.T) {
	survey := &schema.Survey{
		Year: 2020,
		Defects: schema.DefectSet{
			Defects: []schema.Defect{
				{
					ID: 0, LogDist: 5.2, AnomalyType: "corrosion",
					JointNumber: 1, UpWeldDist: schema.Missing(),
					Clock: "6:00", ClockFloat: 6.0,
					DepthPct: schema.Missing(), LengthMM: 30, WidthMM: 20,
					WallNominal: schema.Missing(), SurfaceLoc: "INT",
				},
			},
		},
	}
	cfg := testConfig()
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeDefectsTable(&buf, survey, cfg, fmtFloat, fmtOpt))

	output := buf.String()
	assert.Contains(t, output, "Survey 2020: 1 defects")
	assert.Contains(t, output, "corrosion")
	assert.NotContains(t, output, "NaN")
}

func TestWriteStatsTables(t *testing.T) {
	dims := []schema.DimensionStats{
		{Dimension: "depth [%]", Mean: 25, Median: 24, Min: 10, Max: 60, StdDev: 8.5, Count: 40},
	}
	joints := []schema.JointSeverity{
		{JointNumber: 12, DefectCount: 5, Severity: 60, Rank: 1},
	}
	fmtFloat, _ := createFormatters(3)

	var buf bytes.Buffer
	require.NoError(t, writeStatsTables(&buf, dims, joints, fmtFloat))

	output := buf.String()
	assert.Contains(t, output, "Defect dimensions:")
	assert.Contains(t, output, "depth [%]")
	assert.Contains(t, output, "Worst joints:")
	assert.Contains(t, output, "60.000")
}

func TestWriteTrendTable(t *testing.T) {
	trend := &schema.TrendResult{
		Points: []schema.TrendPoint{
			{OldYear: 2010, NewYear: 2015, TotalDefects: 10, CommonDefectsCount: 8, NewDefectsCount: 2, PctNew: 20, AvgGrowthRatePct: 0.9, HasGrowth: true},
			{OldYear: 2015, NewYear: 2020, TotalDefects: 12, CommonDefectsCount: 9, NewDefectsCount: 3, PctNew: 25, AvgGrowthRatePct: 1.1, AvgGrowthRateMM: 0.08, HasGrowth: true, HasMM: true},
		},
	}
	fmtFloat, _ := createFormatters(3)

	var buf bytes.Buffer
	require.NoError(t, writeTrendTable(&buf, trend, fmtFloat))

	output := buf.String()
	assert.Contains(t, output, "2010-2015")
	assert.Contains(t, output, "0.900 %/yr")
	assert.Contains(t, output, "0.080 mm/yr")
}

func TestWriteTrendCSV(t *testing.T) {
	trend := &schema.TrendResult{
		Points: []schema.TrendPoint{
			{OldYear: 2015, NewYear: 2020, TotalDefects: 12, CommonDefectsCount: 9, NewDefectsCount: 3, PctNew: 25},
		},
	}
	fmtFloat, _ := createFormatters(3)

	var buf bytes.Buffer
	require.NoError(t, writeTrendCSV(&buf, trend, fmtFloat))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2015", records[1][0])
	// No growth block, so rate columns stay empty.
	assert.Equal(t, "", records[1][6])
}

func TestSeverityLabelPrefersMM(t *testing.T) {
	m := schema.Match{
		DepthGrowth: &schema.DepthGrowth{GrowthRatePctPerYear: 6.0},
		WallGrowth:  &schema.WallGrowth{GrowthRateMMPerYear: 0.05},
	}
	// 6 %/yr would be Critical, but 0.05 mm/yr wins as Low.
	assert.Equal(t, contract.LowValue, severityLabel(m, false))

	m.WallGrowth = nil
	assert.Equal(t, contract.CriticalValue, severityLabel(m, false))

	m.DepthGrowth = nil
	assert.Equal(t, "", severityLabel(m, false))
}

func TestTruncateCell(t *testing.T) {
	assert.Equal(t, "short", truncateCell("short", 20))
	long := strings.Repeat("a", 30) + "tail"
	got := truncateCell(long, 10)
	assert.Len(t, []rune(got), 10)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "tail"))
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, fmtOpt := createFormatters(2)
	assert.Equal(t, "1.50", fmtFloat(1.5))
	assert.Equal(t, "", fmtOpt(schema.Missing()))
	assert.Equal(t, "1.50", fmtOpt(1.5))
}

func TestLimitMatches(t *testing.T) {
	matches := make([]schema.Match, 5)
	assert.Len(t, limitMatches(matches, 3), 3)
	assert.Len(t, limitMatches(matches, 0), 5)
	assert.Len(t, limitMatches(matches, 10), 5)
}
