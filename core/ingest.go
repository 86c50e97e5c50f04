package core

import (
	"time"

	"github.com/pipewise/ilitrack/internal/table"
	"github.com/pipewise/ilitrack/schema"
)

// headerAliases maps known vendor header variants onto the canonical names.
// Keys are already lowercased; matching is exact after trimming, fuzzy header
// mapping stays with the operator.
var headerAliases = map[string]string{
	"log dist [m]":         schema.ColLogDist,
	"log distance [m]":     schema.ColLogDist,
	"odometer [m]":         schema.ColLogDist,
	"anomaly":              schema.ColAnomaly,
	"feature type":         schema.ColAnomaly,
	"joint no.":            schema.ColJointNumber,
	"joint no":             schema.ColJointNumber,
	"joint length":         schema.ColJointLength,
	"wt [mm]":              schema.ColWallNominal,
	"wall thickness [mm]":  schema.ColWallNominal,
	"up weld dist [m]":     schema.ColUpWeldDist,
	"o'clock":              schema.ColClock,
	"clock position":       schema.ColClock,
	"depth":                schema.ColDepthPct,
	"peak depth [%]":       schema.ColDepthPct,
	"length":               schema.ColLengthMM,
	"width":                schema.ColWidthMM,
	"surface":              schema.ColSurfaceLoc,
	"int/ext":              schema.ColSurfaceLoc,
	"internal / external?": schema.ColSurfaceLoc,
}

// LoadSurveyFile reads one raw inspection export and builds the survey for a
// year. Headers are canonicalized through the alias map, spreadsheet-fraction
// clock columns are converted to H:MM text, and the raw table is split into
// joints and defects.
func LoadSurveyFile(path string, year int) (*schema.Survey, error) {
	raw, err := table.ReadCSVFile(path)
	if err != nil {
		return nil, err
	}
	return buildSurvey(raw, path, year), nil
}

func buildSurvey(raw *table.Table, sourceFile string, year int) *schema.Survey {
	for from, to := range headerAliases {
		raw.RenameColumn(from, to)
	}
	convertFractionClock(raw)

	joints, defects := Split(raw)
	return &schema.Survey{
		Year:       year,
		SourceFile: sourceFile,
		LoadedAt:   time.Now().UTC(),
		Joints:     joints,
		Defects:    defects,
	}
}

// convertFractionClock rewrites a clock column that arrived as spreadsheet
// time fractions (every non-empty value numeric in [0,1)) into H:MM text.
// Columns already holding H:MM text parse as NaN and are left alone.
func convertFractionClock(raw *table.Table) {
	if !raw.HasColumn(schema.ColClock) {
		return
	}

	sawValue := false
	for i := range raw.NumRows() {
		cell := raw.Cell(i, schema.ColClock)
		if cell == "" {
			continue
		}
		v := table.ParseFloat(cell)
		if schema.IsMissing(v) || v < 0 || v >= 1 {
			return
		}
		sawValue = true
	}
	if !sawValue {
		return
	}

	for i := range raw.NumRows() {
		cell := raw.Cell(i, schema.ColClock)
		if cell == "" {
			continue
		}
		raw.SetCell(i, schema.ColClock, schema.FloatToClock(table.ParseFloat(cell)))
	}
}
