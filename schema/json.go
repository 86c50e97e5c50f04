package schema

import "encoding/json"

// optFloat maps the missing sentinel to a JSON null.
func optFloat(v float64) *float64 {
	if IsMissing(v) {
		return nil
	}
	return &v
}

// MarshalJSON renders missing numeric cells as null. encoding/json rejects
// NaN outright, so the sentinel must never reach the encoder.
func (j Joint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		JointNumber float64  `json:"joint_number"`
		LogDist     *float64 `json:"log_dist_m"`
		JointLength *float64 `json:"joint_length_m"`
		WallNominal *float64 `json:"wt_nom_mm"`
	}{
		JointNumber: j.JointNumber,
		LogDist:     optFloat(j.LogDist),
		JointLength: optFloat(j.JointLength),
		WallNominal: optFloat(j.WallNominal),
	})
}

// MarshalJSON renders missing numeric cells as null.
func (d Defect) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          int      `json:"defect_id"`
		LogDist     *float64 `json:"log_dist_m"`
		AnomalyType string   `json:"anomaly_type"`
		JointNumber *float64 `json:"joint_number"`
		UpWeldDist  *float64 `json:"up_weld_dist_m"`
		Clock       string   `json:"clock"`
		ClockFloat  *float64 `json:"clock_float"`
		DepthPct    *float64 `json:"depth_pct"`
		LengthMM    *float64 `json:"length_mm"`
		WidthMM     *float64 `json:"width_mm"`
		WallNominal *float64 `json:"wt_nom_mm"`
		SurfaceLoc  string   `json:"surface_location"`
	}{
		ID:          d.ID,
		LogDist:     optFloat(d.LogDist),
		AnomalyType: d.AnomalyType,
		JointNumber: optFloat(d.JointNumber),
		UpWeldDist:  optFloat(d.UpWeldDist),
		Clock:       d.Clock,
		ClockFloat:  optFloat(d.ClockFloat),
		DepthPct:    optFloat(d.DepthPct),
		LengthMM:    optFloat(d.LengthMM),
		WidthMM:     optFloat(d.WidthMM),
		WallNominal: optFloat(d.WallNominal),
		SurfaceLoc:  d.SurfaceLoc,
	})
}

// MarshalJSON renders missing numeric cells as null.
func (n NearMiss) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		NewDist      float64  `json:"new_dist"`
		OldDist      float64  `json:"old_dist"`
		DistanceDiff float64  `json:"distance_diff"`
		DefectType   string   `json:"defect_type"`
		WouldMatch   bool     `json:"would_match"`
		NewDepthPct  *float64 `json:"new_depth_pct,omitempty"`
		OldDepthPct  *float64 `json:"old_depth_pct,omitempty"`
		NewClock     string   `json:"new_clock,omitempty"`
		OldClock     string   `json:"old_clock,omitempty"`
		NewLengthMM  *float64 `json:"new_length_mm,omitempty"`
		OldLengthMM  *float64 `json:"old_length_mm,omitempty"`
		NewWidthMM   *float64 `json:"new_width_mm,omitempty"`
		OldWidthMM   *float64 `json:"old_width_mm,omitempty"`
	}{
		NewDist:      n.NewDist,
		OldDist:      n.OldDist,
		DistanceDiff: n.DistanceDiff,
		DefectType:   n.DefectType,
		WouldMatch:   n.WouldMatch,
		NewDepthPct:  optFloat(n.NewDepthPct),
		OldDepthPct:  optFloat(n.OldDepthPct),
		NewClock:     n.NewClock,
		OldClock:     n.OldClock,
		NewLengthMM:  optFloat(n.NewLengthMM),
		OldLengthMM:  optFloat(n.OldLengthMM),
		NewWidthMM:   optFloat(n.NewWidthMM),
		OldWidthMM:   optFloat(n.OldWidthMM),
	})
}
