package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/internal/surveystore"
	"github.com/pipewise/ilitrack/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryManager struct {
	store contract.SurveyStore
}

func (m *memoryManager) GetSurveyStore() contract.SurveyStore { return m.store }

func newMemoryManager(t *testing.T, surveys ...*schema.Survey) *memoryManager {
	t.Helper()
	store := surveystore.NewMemoryStore()
	for _, s := range surveys {
		require.NoError(t, store.SaveSurvey(s))
	}
	return &memoryManager{store: store}
}

func storedSurvey(year int, depth float64) *schema.Survey {
	return &schema.Survey{
		Year:       year,
		SourceFile: "run.csv",
		Defects: schema.DefectSet{
			Defects: []schema.Defect{
				{
					ID: 0, LogDist: 10.0, AnomalyType: "corrosion",
					JointNumber: 1, DepthPct: depth,
					LengthMM: 30, WidthMM: 20, WallNominal: 8,
				},
			},
			HasLogDist:     true,
			HasAnomalyType: true,
			HasJointNumber: true,
			HasDepth:       true,
			HasWallNominal: true,
		},
	}
}

func jsonFileConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		Tolerance:   contract.DefaultTolerance,
		TopN:        contract.DefaultTopN,
		ResultLimit: contract.DefaultResultLimit,
		Precision:   contract.DefaultPrecision,
		Output:      schema.JSONOut,
		OutputFile:  filepath.Join(t.TempDir(), "out.json"),
		Table:       schema.DefectsTable,
	}
}

func TestExecuteLoadAndShow(t *testing.T) {
	content := "log dist. [m],component / anomaly identification,length [mm],width [mm],depth [%]\n" +
		"5.2,corrosion,30,20,15\n" +
		"15.5,dent,55,35,\n"
	path := filepath.Join(t.TempDir(), "run.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	mgr := newMemoryManager(t)
	cfg := jsonFileConfig(t)
	cfg.Year = 2020
	cfg.InputFile = path

	require.NoError(t, ExecuteLoad(context.Background(), cfg, mgr))

	stored, err := mgr.store.GetSurvey(2020)
	require.NoError(t, err)
	assert.Len(t, stored.Defects.Defects, 2)

	require.NoError(t, ExecuteSurveyShow(context.Background(), cfg, mgr))
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "corrosion")
}

func TestExecuteLoadRequiresYear(t *testing.T) {
	mgr := newMemoryManager(t)
	cfg := jsonFileConfig(t)
	cfg.InputFile = "whatever.csv"

	err := ExecuteLoad(context.Background(), cfg, mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--year")
}

func TestGetComparisonResultsMissingSurvey(t *testing.T) {
	mgr := newMemoryManager(t, storedSurvey(2020, 25))
	cfg := jsonFileConfig(t)
	cfg.OldYear, cfg.NewYear, cfg.CompareMode = 2015, 2020, true

	_, err := GetComparisonResults(cfg, mgr)
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrSurveyNotFound)
}

func TestExecuteCompareWritesResult(t *testing.T) {
	mgr := newMemoryManager(t, storedSurvey(2015, 20), storedSurvey(2020, 25))
	cfg := jsonFileConfig(t)
	cfg.OldYear, cfg.NewYear, cfg.CompareMode = 2015, 2020, true

	require.NoError(t, ExecuteCompare(context.Background(), cfg, mgr))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"common_defects_count\": 1")
	assert.Contains(t, string(data), "growth_stats")
}

func TestExecuteCheckGate(t *testing.T) {
	mgr := newMemoryManager(t, storedSurvey(2015, 20), storedSurvey(2020, 25))
	cfg := jsonFileConfig(t)
	cfg.OldYear, cfg.NewYear, cfg.CompareMode = 2015, 2020, true

	// Depth moves 20% -> 25% of an 8 mm wall over 5 years: 0.08 mm/yr.
	cfg.MaxGrowthRate = 0.1
	require.NoError(t, ExecuteCheck(context.Background(), cfg, mgr))

	cfg.MaxGrowthRate = 0.05
	err := ExecuteCheck(context.Background(), cfg, mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds the configured gate")
}

func TestExecuteCheckRequiresGate(t *testing.T) {
	mgr := newMemoryManager(t)
	cfg := jsonFileConfig(t)

	err := ExecuteCheck(context.Background(), cfg, mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--max-growth")
}

func TestGetTrendResultsAllStored(t *testing.T) {
	mgr := newMemoryManager(t,
		storedSurvey(2010, 15), storedSurvey(2015, 20), storedSurvey(2020, 25))
	cfg := jsonFileConfig(t)

	trend, err := GetTrendResults(cfg, mgr)
	require.NoError(t, err)
	require.Len(t, trend.Points, 2)
	assert.Equal(t, 2010, trend.Points[0].OldYear)
	assert.Equal(t, 2020, trend.Points[1].NewYear)
	assert.True(t, trend.Points[0].HasGrowth)
}

func TestGetTrendResultsNeedsTwoSurveys(t *testing.T) {
	mgr := newMemoryManager(t, storedSurvey(2020, 25))
	cfg := jsonFileConfig(t)

	_, err := GetTrendResults(cfg, mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two")
}

func TestExecuteGrowthWithoutDepth(t *testing.T) {
	old := storedSurvey(2015, 20)
	old.Defects.HasDepth = false
	mgr := newMemoryManager(t, old, storedSurvey(2020, 25))
	cfg := jsonFileConfig(t)
	cfg.OldYear, cfg.NewYear, cfg.CompareMode = 2015, 2020, true

	err := ExecuteGrowth(context.Background(), cfg, mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "depth channel")
}
