package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pipewise/ilitrack/internal/table"
	"github.com/pipewise/ilitrack/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSurveyRenamesAliasHeaders(t *testing.T) {
	tbl := table.New([]string{
		"log dist [m]", "feature type", "joint no.", "peak depth [%]",
		"length", "width",
	})
	tbl.AppendRow([]string{"0.0", "weld", "1", "", "", ""})
	tbl.AppendRow([]string{"5.2", "corrosion", "", "15", "30", "20"})

	survey := buildSurvey(tbl, "aliased.csv", 2020)

	require.Len(t, survey.Defects.Defects, 1)
	d := survey.Defects.Defects[0]
	assert.InDelta(t, 5.2, d.LogDist, 1e-9)
	assert.Equal(t, "corrosion", d.AnomalyType)
	assert.InDelta(t, 15, d.DepthPct, 1e-9)
	assert.True(t, survey.Defects.HasDepth)
	assert.Equal(t, 2020, survey.Year)
	assert.Equal(t, "aliased.csv", survey.SourceFile)
	assert.False(t, survey.LoadedAt.IsZero())
}

func TestBuildSurveyConvertsFractionClock(t *testing.T) {
	tbl := table.New([]string{
		schema.ColLogDist, schema.ColAnomaly, schema.ColClock,
		schema.ColLengthMM, schema.ColWidthMM,
	})
	// 0.25 of a day is 06:00, 0.5 is 12:00.
	tbl.AppendRow([]string{"5.2", "corrosion", "0.25", "30", "20"})
	tbl.AppendRow([]string{"15.5", "corrosion", "0.5", "40", "25"})

	survey := buildSurvey(tbl, "fractions.csv", 2020)

	require.Len(t, survey.Defects.Defects, 2)
	assert.Equal(t, "06:00", survey.Defects.Defects[0].Clock)
	assert.Equal(t, "12:00", survey.Defects.Defects[1].Clock)
}

func TestBuildSurveyLeavesClockTextAlone(t *testing.T) {
	tbl := table.New([]string{
		schema.ColLogDist, schema.ColAnomaly, schema.ColClock,
		schema.ColLengthMM, schema.ColWidthMM,
	})
	tbl.AppendRow([]string{"5.2", "corrosion", "6:00", "30", "20"})

	survey := buildSurvey(tbl, "text.csv", 2020)

	require.Len(t, survey.Defects.Defects, 1)
	assert.Equal(t, "6:00", survey.Defects.Defects[0].Clock)
}

func TestBuildSurveyMixedClockNotConverted(t *testing.T) {
	tbl := table.New([]string{
		schema.ColLogDist, schema.ColAnomaly, schema.ColClock,
		schema.ColLengthMM, schema.ColWidthMM,
	})
	// One value outside [0,1) means the column is not a fraction column.
	tbl.AppendRow([]string{"5.2", "corrosion", "0.25", "30", "20"})
	tbl.AppendRow([]string{"15.5", "corrosion", "6.5", "40", "25"})

	survey := buildSurvey(tbl, "mixed.csv", 2020)

	require.Len(t, survey.Defects.Defects, 2)
	assert.Equal(t, "0.25", survey.Defects.Defects[0].Clock)
}

func TestLoadSurveyFile(t *testing.T) {
	content := "log dist. [m];component / anomaly identification;joint number;length [mm];width [mm];depth [%]\n" +
		"0,0;weld;1;;;\n" +
		"5,2;corrosion;;30;20;15\n" +
		"15,5;corrosion;;40;25;22\n"
	path := filepath.Join(t.TempDir(), "run.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	survey, err := LoadSurveyFile(path, 2015)
	require.NoError(t, err)

	assert.Equal(t, 2015, survey.Year)
	assert.Equal(t, path, survey.SourceFile)
	require.Len(t, survey.Defects.Defects, 2)
	// Semicolon separator implies decimal commas.
	assert.InDelta(t, 5.2, survey.Defects.Defects[0].LogDist, 1e-9)
	assert.InDelta(t, 22, survey.Defects.Defects[1].DepthPct, 1e-9)
}

func TestLoadSurveyFileMissing(t *testing.T) {
	_, err := LoadSurveyFile(filepath.Join(t.TempDir(), "absent.csv"), 2015)
	require.Error(t, err)
}
