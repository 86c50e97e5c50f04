// Package core has core logic for survey splitting, defect correlation and
// growth aggregation.
package core

import (
	"github.com/pipewise/ilitrack/internal/table"
	"github.com/pipewise/ilitrack/schema"
)

// Split turns one raw per-row inspection table into the joints and defects
// tables of a survey.
//
// Rows are sorted by log distance first because joint association relies on
// forward propagation: a defect belongs to the most recently passed joint
// marker. When the raw table has no distance column the input order is kept
// and the caller is expected to have sorted the rows itself.
//
// Bad cell values never fail the split; they coerce to the missing sentinel.
func Split(raw *table.Table) (schema.JointSet, schema.DefectSet) {
	if raw.HasColumn(schema.ColLogDist) {
		raw.SortByFloat(schema.ColLogDist)
	}

	joints := splitJoints(raw)
	defects := splitDefects(raw)
	return joints, defects
}

// splitJoints projects rows carrying a joint number onto the joint attribute
// set, keeping the first occurrence per joint number.
func splitJoints(raw *table.Table) schema.JointSet {
	set := schema.JointSet{
		HasJointLength: raw.HasColumn(schema.ColJointLength),
		HasWallNominal: raw.HasColumn(schema.ColWallNominal),
	}
	if !raw.HasColumn(schema.ColJointNumber) {
		return set
	}

	seen := make(map[float64]struct{})
	for i := range raw.NumRows() {
		jn := raw.Float(i, schema.ColJointNumber)
		if schema.IsMissing(jn) {
			continue
		}
		if _, dup := seen[jn]; dup {
			continue
		}
		seen[jn] = struct{}{}
		set.Joints = append(set.Joints, schema.Joint{
			JointNumber: jn,
			LogDist:     raw.Float(i, schema.ColLogDist),
			JointLength: raw.Float(i, schema.ColJointLength),
			WallNominal: raw.Float(i, schema.ColWallNominal),
		})
	}
	return set
}

// splitDefects selects the anomaly rows and projects them onto the defect
// attribute set. A row is a defect only when both length and width are
// present; that predicate is what separates anomalies from weld markers,
// fittings and other survey features.
func splitDefects(raw *table.Table) schema.DefectSet {
	set := schema.DefectSet{
		HasLogDist:     raw.HasColumn(schema.ColLogDist),
		HasAnomalyType: raw.HasColumn(schema.ColAnomaly),
		HasJointNumber: raw.HasColumn(schema.ColJointNumber),
		HasUpWeldDist:  raw.HasColumn(schema.ColUpWeldDist),
		HasClock:       raw.HasColumn(schema.ColClock),
		HasDepth:       raw.HasColumn(schema.ColDepthPct),
		HasWallNominal: raw.HasColumn(schema.ColWallNominal),
		HasSurfaceLoc:  raw.HasColumn(schema.ColSurfaceLoc),
	}

	lastJoint := schema.Missing()
	for i := range raw.NumRows() {
		if jn := raw.Float(i, schema.ColJointNumber); !schema.IsMissing(jn) {
			lastJoint = jn
		}

		length := raw.Float(i, schema.ColLengthMM)
		width := raw.Float(i, schema.ColWidthMM)
		if schema.IsMissing(length) || schema.IsMissing(width) {
			continue
		}

		d := schema.Defect{
			ID:          len(set.Defects),
			LogDist:     raw.Float(i, schema.ColLogDist),
			AnomalyType: raw.Cell(i, schema.ColAnomaly),
			JointNumber: lastJoint,
			UpWeldDist:  raw.Float(i, schema.ColUpWeldDist),
			DepthPct:    raw.Float(i, schema.ColDepthPct),
			LengthMM:    length,
			WidthMM:     width,
			WallNominal: raw.Float(i, schema.ColWallNominal),
		}
		if set.HasClock {
			d.Clock = raw.Cell(i, schema.ColClock)
			d.ClockFloat = schema.ClockToDecimal(d.Clock)
		} else {
			d.ClockFloat = schema.Missing()
		}
		if set.HasSurfaceLoc {
			d.SurfaceLoc = schema.NormalizeSurfaceLocation(raw.Cell(i, schema.ColSurfaceLoc))
		}
		if !set.HasJointNumber {
			d.JointNumber = schema.Missing()
		}
		set.Defects = append(set.Defects, d)
	}
	return set
}
