// Package schema has models, enums and shared helpers for all parts of ilitrack.
package schema

import (
	"math"
	"time"
)

// Joint represents one physical pipe segment between two girth welds.
// Optional numeric attributes use NaN when the source survey did not report them.
type Joint struct {
	JointNumber float64 `json:"joint_number"` // Sequential joint identifier, unique per survey
	LogDist     float64 `json:"log_dist_m"`   // Position of the joint start along the pipeline
	JointLength float64 `json:"joint_length_m"`
	WallNominal float64 `json:"wt_nom_mm"` // Nominal wall thickness
}

// Defect represents one anomaly record from an inspection run.
// Optional numeric attributes use NaN when missing; optional string attributes
// are empty when missing.
type Defect struct {
	ID          int     `json:"defect_id"` // Sequential per-survey id assigned at split time
	LogDist     float64 `json:"log_dist_m"`
	AnomalyType string  `json:"anomaly_type"`
	JointNumber float64 `json:"joint_number"` // Forward-filled from the nearest preceding joint marker
	UpWeldDist  float64 `json:"up_weld_dist_m"`
	Clock       string  `json:"clock"`       // "H:MM" circumferential position
	ClockFloat  float64 `json:"clock_float"` // Decimal-hour equivalent of Clock
	DepthPct    float64 `json:"depth_pct"`
	LengthMM    float64 `json:"length_mm"`
	WidthMM     float64 `json:"width_mm"`
	WallNominal float64 `json:"wt_nom_mm"`
	SurfaceLoc  string  `json:"surface_location"` // "INT", "NON-INT", raw passthrough, or empty
}

// JointSet holds the joints table of one survey.
type JointSet struct {
	Joints []Joint `json:"joints"`

	HasJointLength bool `json:"has_joint_length"`
	HasWallNominal bool `json:"has_wall_nominal"`
}

// DefectSet holds the defects table of one survey, plus column-presence flags.
// The flags drive the conditional output shape of the correlation engine:
// consumers must check them before reading the corresponding Defect fields.
type DefectSet struct {
	Defects []Defect `json:"defects"`

	HasLogDist     bool `json:"has_log_dist"`
	HasAnomalyType bool `json:"has_anomaly_type"`
	HasJointNumber bool `json:"has_joint_number"`
	HasUpWeldDist  bool `json:"has_up_weld_dist"`
	HasClock       bool `json:"has_clock"`
	HasDepth       bool `json:"has_depth"`
	HasWallNominal bool `json:"has_wall_nominal"`
	HasSurfaceLoc  bool `json:"has_surface_loc"`
}

// Survey is one loaded inspection year: its joints and defects tables plus
// load metadata. Surveys are immutable once built.
type Survey struct {
	Year       int       `json:"year"`
	SourceFile string    `json:"source_file"`
	LoadedAt   time.Time `json:"loaded_at"`
	Joints     JointSet  `json:"joints"`
	Defects    DefectSet `json:"defects"`
}

// SurveyInfo is the listing row for one stored survey.
type SurveyInfo struct {
	Year        int       `json:"year"`
	SourceFile  string    `json:"source_file"`
	LoadedAt    time.Time `json:"loaded_at"`
	JointCount  int       `json:"joint_count"`
	DefectCount int       `json:"defect_count"`
}

// StoreStatus reports health information about the survey store backend.
type StoreStatus struct {
	Backend     DatabaseBackend `json:"backend"`
	Location    string          `json:"location"` // file path or DSN host, empty for in-memory
	SurveyCount int             `json:"survey_count"`
	JointRows   int             `json:"joint_rows"`
	DefectRows  int             `json:"defect_rows"`
}

// IsMissing reports whether an optional numeric cell is absent.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Missing is the sentinel for absent numeric cells.
func Missing() float64 {
	return math.NaN()
}
