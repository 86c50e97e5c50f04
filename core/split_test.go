package core

import (
	"testing"

	"github.com/pipewise/ilitrack/internal/table"
	"github.com/pipewise/ilitrack/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawSurveyTable builds an unsorted raw table with weld markers and anomalies
// interleaved, the way run reports actually arrive.
func rawSurveyTable() *table.Table {
	tbl := table.New([]string{
		schema.ColLogDist,
		schema.ColAnomaly,
		schema.ColJointNumber,
		schema.ColJointLength,
		schema.ColWallNominal,
		schema.ColClock,
		schema.ColDepthPct,
		schema.ColLengthMM,
		schema.ColWidthMM,
		schema.ColSurfaceLoc,
	})
	rows := [][]string{
		{"24.0", "weld", "3", "12.1", "7.9", "", "", "", "", ""},
		{"0.0", "weld", "1", "12.0", "8.0", "", "", "", "", ""},
		{"15.5", "corrosion", "", "", "8.0", "3:30", "22", "40", "25", "internal"},
		{"12.0", "weld", "2", "11.9", "8.0", "", "", "", "", ""},
		{"5.2", "corrosion", "", "", "8.0", "6:00", "15", "30", "20", "E"},
		{"12.0", "weld", "2", "11.9", "8.0", "", "", "", "", ""}, // duplicate joint marker
		{"26.3", "dent", "", "", "7.9", "12:00", "", "55", "35", "weird"},
	}
	for _, r := range rows {
		tbl.AppendRow(r)
	}
	return tbl
}

func TestSplitJoints(t *testing.T) {
	joints, _ := Split(rawSurveyTable())

	require.Len(t, joints.Joints, 3)
	assert.True(t, joints.HasJointLength)
	assert.True(t, joints.HasWallNominal)

	// Sorted by distance, de-duplicated on joint number.
	assert.InDelta(t, 1, joints.Joints[0].JointNumber, 1e-9)
	assert.InDelta(t, 2, joints.Joints[1].JointNumber, 1e-9)
	assert.InDelta(t, 3, joints.Joints[2].JointNumber, 1e-9)
	assert.InDelta(t, 12.0, joints.Joints[1].LogDist, 1e-9)
}

func TestSplitDefectsPredicateAndOrder(t *testing.T) {
	_, defects := Split(rawSurveyTable())

	// Only rows with both length and width survive; weld markers do not.
	require.Len(t, defects.Defects, 3)
	assert.InDelta(t, 5.2, defects.Defects[0].LogDist, 1e-9)
	assert.InDelta(t, 15.5, defects.Defects[1].LogDist, 1e-9)
	assert.InDelta(t, 26.3, defects.Defects[2].LogDist, 1e-9)

	// Sequential ids in sorted order.
	for i, d := range defects.Defects {
		assert.Equal(t, i, d.ID)
	}
}

func TestSplitForwardFillsJointNumber(t *testing.T) {
	_, defects := Split(rawSurveyTable())

	assert.InDelta(t, 1, defects.Defects[0].JointNumber, 1e-9) // after joint 1 at 0.0
	assert.InDelta(t, 2, defects.Defects[1].JointNumber, 1e-9) // after joint 2 at 12.0
	assert.InDelta(t, 3, defects.Defects[2].JointNumber, 1e-9) // after joint 3 at 24.0
}

func TestSplitNoPrecedingJointIsUnassignable(t *testing.T) {
	tbl := table.New([]string{schema.ColLogDist, schema.ColJointNumber, schema.ColLengthMM, schema.ColWidthMM})
	tbl.AppendRow([]string{"1.0", "", "10", "10"})
	tbl.AppendRow([]string{"2.0", "5", "", ""})
	tbl.AppendRow([]string{"3.0", "", "12", "12"})

	_, defects := Split(tbl)
	require.Len(t, defects.Defects, 2)
	assert.True(t, schema.IsMissing(defects.Defects[0].JointNumber))
	assert.InDelta(t, 5, defects.Defects[1].JointNumber, 1e-9)
}

func TestSplitNormalizesSurfaceAndClock(t *testing.T) {
	_, defects := Split(rawSurveyTable())

	assert.Equal(t, string(schema.ExternalSurface), defects.Defects[0].SurfaceLoc)
	assert.Equal(t, string(schema.InternalSurface), defects.Defects[1].SurfaceLoc)
	assert.Equal(t, "weird", defects.Defects[2].SurfaceLoc) // unknown labels pass through

	assert.InDelta(t, 6.0, defects.Defects[0].ClockFloat, 1e-9)
	assert.InDelta(t, 3.5, defects.Defects[1].ClockFloat, 1e-9)
}

func TestSplitCapabilityFlags(t *testing.T) {
	tbl := table.New([]string{schema.ColLogDist, schema.ColAnomaly, schema.ColLengthMM, schema.ColWidthMM})
	tbl.AppendRow([]string{"1.0", "corrosion", "10", "10"})

	_, defects := Split(tbl)
	assert.True(t, defects.HasLogDist)
	assert.True(t, defects.HasAnomalyType)
	assert.False(t, defects.HasDepth)
	assert.False(t, defects.HasClock)
	assert.False(t, defects.HasJointNumber)
	assert.False(t, defects.HasSurfaceLoc)

	require.Len(t, defects.Defects, 1)
	assert.True(t, schema.IsMissing(defects.Defects[0].DepthPct))
	assert.True(t, schema.IsMissing(defects.Defects[0].JointNumber))
}

func TestSplitWithoutDistanceColumnKeepsInputOrder(t *testing.T) {
	tbl := table.New([]string{schema.ColAnomaly, schema.ColLengthMM, schema.ColWidthMM})
	tbl.AppendRow([]string{"b", "10", "10"})
	tbl.AppendRow([]string{"a", "11", "11"})

	_, defects := Split(tbl)
	require.Len(t, defects.Defects, 2)
	assert.Equal(t, "b", defects.Defects[0].AnomalyType)
	assert.Equal(t, "a", defects.Defects[1].AnomalyType)
}

func TestSplitIdempotent(t *testing.T) {
	// Fully populated rows so the outputs are directly comparable.
	tbl := table.New([]string{
		schema.ColLogDist, schema.ColAnomaly, schema.ColJointNumber,
		schema.ColJointLength, schema.ColWallNominal, schema.ColUpWeldDist,
		schema.ColClock, schema.ColDepthPct, schema.ColLengthMM,
		schema.ColWidthMM, schema.ColSurfaceLoc,
	})
	tbl.AppendRow([]string{"10.0", "weld", "1", "12.0", "8.0", "0", "12:00", "0", "1", "1", "INT"})
	tbl.AppendRow([]string{"12.5", "corrosion", "2", "11.8", "8.0", "2.5", "6:15", "18", "35", "22", "INT"})
	tbl.AppendRow([]string{"11.1", "corrosion", "3", "12.2", "7.9", "1.1", "3:00", "25", "40", "30", "E"})

	joints1, defects1 := Split(tbl)
	joints2, defects2 := Split(tbl)

	assert.Equal(t, joints1, joints2)
	assert.Equal(t, defects1, defects2)
}
