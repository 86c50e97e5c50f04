package schema

// Match pairs one defect from the newer survey with one defect from the older
// survey. Each old id and each new id appears in at most one Match.
type Match struct {
	NewDefectID  int     `json:"new_defect_id"`
	OldDefectID  int     `json:"old_defect_id"`
	DistanceDiff float64 `json:"distance_diff"` // Absolute separation along the pipeline
	LogDist      float64 `json:"log_dist"`      // Position of the new defect
	OldLogDist   float64 `json:"old_log_dist"`
	DefectType   string  `json:"defect_type"` // Anomaly type of the new defect

	*DepthGrowth `json:"depth_growth,omitempty"`
	*WallGrowth  `json:"wall_growth,omitempty"`
}

// DepthGrowth holds percentage-depth evolution for a Match. Present only when
// both surveys carry a depth channel and the year pair is chronological.
type DepthGrowth struct {
	OldDepthPct          float64 `json:"old_depth_pct"`
	NewDepthPct          float64 `json:"new_depth_pct"`
	DepthChangePct       float64 `json:"depth_change_pct"`
	GrowthRatePctPerYear float64 `json:"growth_rate_pct_per_year"`
	IsNegativeGrowth     bool    `json:"is_negative_growth"` // Depth decreased; flagged for manual review
}

// WallGrowth holds millimeter-denominated depth evolution, converted with the
// average of the two nominal wall thicknesses at the matched location.
type WallGrowth struct {
	OldDepthMM          float64 `json:"old_depth_mm"`
	NewDepthMM          float64 `json:"new_depth_mm"`
	DepthChangeMM       float64 `json:"depth_change_mm"`
	GrowthRateMMPerYear float64 `json:"growth_rate_mm_per_year"`
}

// TypeCount is one row of the new-defect type distribution.
type TypeCount struct {
	DefectType string  `json:"defect_type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// GrowthStats summarizes growth rates over all matches of a comparison.
// Positive-growth aggregates exclude matches flagged as negative growth.
type GrowthStats struct {
	TotalMatchedDefects  int     `json:"total_matched_defects"`
	NegativeGrowthCount  int     `json:"negative_growth_count"`
	PctNegativeGrowth    float64 `json:"pct_negative_growth"`
	AvgGrowthRatePct     float64 `json:"avg_growth_rate_pct"`
	AvgPositiveGrowthPct float64 `json:"avg_positive_growth_rate_pct"`
	MaxGrowthRatePct     float64 `json:"max_growth_rate_pct"`

	*GrowthStatsMM `json:"mm,omitempty"`
}

// GrowthStatsMM mirrors GrowthStats in mm/year units. mm is preferred for
// display whenever wall-thickness data made the conversion possible.
type GrowthStatsMM struct {
	AvgGrowthRateMM     float64 `json:"avg_growth_rate_mm"`
	AvgPositiveGrowthMM float64 `json:"avg_positive_growth_rate_mm"`
	MaxGrowthRateMM     float64 `json:"max_growth_rate_mm"`
}

// ComparisonResult aggregates everything the correlation engine derives for
// one (old year, new year) pair. Growth fields are nil unless the capability
// flags say otherwise; callers must check the flags first.
type ComparisonResult struct {
	OldYear   int     `json:"old_year,omitempty"`
	NewYear   int     `json:"new_year,omitempty"`
	Tolerance float64 `json:"tolerance_m"`

	Matches    []Match  `json:"matches"`
	NewDefects []Defect `json:"new_defects"`

	TotalDefects       int     `json:"total_defects"`
	CommonDefectsCount int     `json:"common_defects_count"`
	NewDefectsCount    int     `json:"new_defects_count"`
	PctCommon          float64 `json:"pct_common"`
	PctNew             float64 `json:"pct_new"`

	TypeDistribution []TypeCount  `json:"defect_type_distribution"`
	GrowthStats      *GrowthStats `json:"growth_stats,omitempty"`

	HasDepthData    bool `json:"has_depth_data"`
	HasWTData       bool `json:"has_wt_data"`
	CalculateGrowth bool `json:"calculate_growth"`
}

// NearMiss is one row of the matching diagnostics view: an (old, new) defect
// pair within twice the configured tolerance, regardless of consumption.
type NearMiss struct {
	NewDist      float64 `json:"new_dist"`
	OldDist      float64 `json:"old_dist"`
	DistanceDiff float64 `json:"distance_diff"`
	DefectType   string  `json:"defect_type"`
	WouldMatch   bool    `json:"would_match"` // Within the original tolerance

	NewDepthPct float64 `json:"new_depth_pct,omitempty"`
	OldDepthPct float64 `json:"old_depth_pct,omitempty"`
	NewClock    string  `json:"new_clock,omitempty"`
	OldClock    string  `json:"old_clock,omitempty"`
	NewLengthMM float64 `json:"new_length_mm,omitempty"`
	OldLengthMM float64 `json:"old_length_mm,omitempty"`
	NewWidthMM  float64 `json:"new_width_mm,omitempty"`
	OldWidthMM  float64 `json:"old_width_mm,omitempty"`
}

// DiagnosticView is the read-only near-miss report. It never consumes
// candidates, so one old defect may appear against several new defects.
type DiagnosticView struct {
	Tolerance float64    `json:"tolerance_m"`
	Rows      []NearMiss `json:"rows"`

	HasDepth  bool `json:"has_depth"`
	HasClock  bool `json:"has_clock"`
	HasLength bool `json:"has_length"`
	HasWidth  bool `json:"has_width"`
}

// DimensionStats is one row of the defect dimension summary.
type DimensionStats struct {
	Dimension string  `json:"dimension"`
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	StdDev    float64 `json:"std_dev"`
	Count     int     `json:"count"`
}

// JointSeverity ranks one joint by its worst defect. Severity is the maximum
// depth percentage when a depth channel exists, else the defect count.
type JointSeverity struct {
	JointNumber float64 `json:"joint_number"`
	DefectCount int     `json:"defect_count"`
	Severity    float64 `json:"severity"`
	Rank        int     `json:"rank"`
}

// TrendPoint is one step of a multi-survey trend: the comparison of two
// consecutive loaded years reduced to its headline numbers.
type TrendPoint struct {
	OldYear            int     `json:"old_year"`
	NewYear            int     `json:"new_year"`
	TotalDefects       int     `json:"total_defects"`
	CommonDefectsCount int     `json:"common_defects_count"`
	NewDefectsCount    int     `json:"new_defects_count"`
	PctNew             float64 `json:"pct_new"`
	AvgGrowthRatePct   float64 `json:"avg_growth_rate_pct,omitempty"`
	AvgGrowthRateMM    float64 `json:"avg_growth_rate_mm,omitempty"`
	HasGrowth          bool    `json:"has_growth"`
	HasMM              bool    `json:"has_mm"`
}

// TrendResult holds the full multi-survey trend.
type TrendResult struct {
	Points []TrendPoint `json:"points"`
}
