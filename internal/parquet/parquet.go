// Package parquet exports correlation results to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/pipewise/ilitrack/schema"
)

// MatchRecord is the flattened Parquet shape of one matched defect pair.
// Growth columns are optional because growth depends on the input surveys.
type MatchRecord struct {
	// NewDefectID identifies the defect in the newer survey
	NewDefectID int32 `parquet:"new_defect_id,snappy"`

	// OldDefectID identifies the defect in the older survey
	OldDefectID int32 `parquet:"old_defect_id,snappy"`

	// LogDist is the position of the new defect along the pipeline in meters
	LogDist float64 `parquet:"log_dist_m,snappy"`

	// OldLogDist is the position of the old defect along the pipeline in meters
	OldLogDist float64 `parquet:"old_log_dist_m,snappy"`

	// DistanceDiff is the absolute separation of the pair in meters
	DistanceDiff float64 `parquet:"distance_diff_m,snappy"`

	// DefectType is the anomaly type of the new defect
	DefectType string `parquet:"defect_type,snappy"`

	// OldDepthPct is the depth reading of the old defect (nullable)
	OldDepthPct *float64 `parquet:"old_depth_pct,optional,snappy"`

	// NewDepthPct is the depth reading of the new defect (nullable)
	NewDepthPct *float64 `parquet:"new_depth_pct,optional,snappy"`

	// GrowthRatePctPerYear is the depth growth rate (nullable)
	GrowthRatePctPerYear *float64 `parquet:"growth_rate_pct_per_year,optional,snappy"`

	// GrowthRateMMPerYear is the wall-converted growth rate (nullable)
	GrowthRateMMPerYear *float64 `parquet:"growth_rate_mm_per_year,optional,snappy"`

	// IsNegativeGrowth flags physically implausible depth decreases (nullable)
	IsNegativeGrowth *bool `parquet:"is_negative_growth,optional,snappy"`
}

// DefectRecord is the flattened Parquet shape of one defect row.
type DefectRecord struct {
	// DefectID is the sequential per-survey id
	DefectID int32 `parquet:"defect_id,snappy"`

	// LogDist is the position along the pipeline in meters (nullable)
	LogDist *float64 `parquet:"log_dist_m,optional,snappy"`

	// AnomalyType is the reported anomaly category
	AnomalyType string `parquet:"anomaly_type,snappy"`

	// JointNumber is the forward-filled joint association (nullable)
	JointNumber *float64 `parquet:"joint_number,optional,snappy"`

	// Clock is the circumferential position as H:MM text
	Clock string `parquet:"clock,snappy"`

	// DepthPct is the depth reading in percent of wall (nullable)
	DepthPct *float64 `parquet:"depth_pct,optional,snappy"`

	// LengthMM is the axial extent in millimeters (nullable)
	LengthMM *float64 `parquet:"length_mm,optional,snappy"`

	// WidthMM is the circumferential extent in millimeters (nullable)
	WidthMM *float64 `parquet:"width_mm,optional,snappy"`

	// SurfaceLoc is the normalized surface category
	SurfaceLoc string `parquet:"surface_location,snappy"`
}

// optFloat maps the missing sentinel to a Parquet null.
func optFloat(v float64) *float64 {
	if schema.IsMissing(v) {
		return nil
	}
	return &v
}

// MatchRecordsFrom flattens matches into their Parquet shape.
func MatchRecordsFrom(matches []schema.Match) []MatchRecord {
	records := make([]MatchRecord, len(matches))
	for i, m := range matches {
		rec := MatchRecord{
			NewDefectID:  int32(m.NewDefectID),
			OldDefectID:  int32(m.OldDefectID),
			LogDist:      m.LogDist,
			OldLogDist:   m.OldLogDist,
			DistanceDiff: m.DistanceDiff,
			DefectType:   m.DefectType,
		}
		if m.DepthGrowth != nil {
			rec.OldDepthPct = optFloat(m.OldDepthPct)
			rec.NewDepthPct = optFloat(m.NewDepthPct)
			rec.GrowthRatePctPerYear = optFloat(m.GrowthRatePctPerYear)
			neg := m.IsNegativeGrowth
			rec.IsNegativeGrowth = &neg
		}
		if m.WallGrowth != nil {
			rec.GrowthRateMMPerYear = optFloat(m.GrowthRateMMPerYear)
		}
		records[i] = rec
	}
	return records
}

// DefectRecordsFrom flattens defects into their Parquet shape.
func DefectRecordsFrom(defects []schema.Defect) []DefectRecord {
	records := make([]DefectRecord, len(defects))
	for i, d := range defects {
		records[i] = DefectRecord{
			DefectID:    int32(d.ID),
			LogDist:     optFloat(d.LogDist),
			AnomalyType: d.AnomalyType,
			JointNumber: optFloat(d.JointNumber),
			Clock:       d.Clock,
			DepthPct:    optFloat(d.DepthPct),
			LengthMM:    optFloat(d.LengthMM),
			WidthMM:     optFloat(d.WidthMM),
			SurfaceLoc:  d.SurfaceLoc,
		}
	}
	return records
}

// WriteMatchesParquet writes matched defect pairs to a Parquet file.
func WriteMatchesParquet(matches []schema.Match, outputPath string) error {
	return writeRecords(MatchRecordsFrom(matches), outputPath)
}

// WriteDefectsParquet writes defect rows to a Parquet file.
func WriteDefectsParquet(defects []schema.Defect, outputPath string) error {
	return writeRecords(DefectRecordsFrom(defects), outputPath)
}

func writeRecords[T any](records []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Struct tags drive the Parquet schema.
	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
