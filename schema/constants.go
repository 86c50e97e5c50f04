package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the survey store.
	DatabaseBackend string

	// SurfaceLocation represents a normalized defect surface category.
	SurfaceLocation string

	// TableKind selects which per-survey table a command operates on.
	TableKind string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All survey store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Normalized surface categories. Raw labels outside the known synonym sets
// pass through unchanged, so consumers must tolerate other values too.
const (
	InternalSurface SurfaceLocation = "INT"
	ExternalSurface SurfaceLocation = "NON-INT"
)

// All per-survey table kinds.
const (
	JointsTable  TableKind = "joints"
	DefectsTable TableKind = "defects" // default
)

// Canonical column names for raw inspection exports. These follow the header
// vocabulary used by the major ILI vendors, so a well-formed export loads
// without any remapping.
const (
	ColLogDist     = "log dist. [m]"
	ColAnomaly     = "component / anomaly identification"
	ColJointNumber = "joint number"
	ColJointLength = "joint length [m]"
	ColWallNominal = "wt nom [mm]"
	ColUpWeldDist  = "up weld dist. [m]"
	ColClock       = "clock"
	ColDepthPct    = "depth [%]"
	ColLengthMM    = "length [mm]"
	ColWidthMM     = "width [mm]"
	ColSurfaceLoc  = "surface location"
	ColERF         = "erf"
)

// NumericColumns are the raw columns coerced to float64 during splitting.
// Values that fail to parse become NaN, never an error.
var NumericColumns = []string{
	ColJointNumber,
	ColJointLength,
	ColWallNominal,
	ColUpWeldDist,
	ColDepthPct,
	ColLengthMM,
	ColWidthMM,
}

// DefectColumns is the projection used for the defects table, in display order.
// Only the columns present in the raw table are kept.
var DefectColumns = []string{
	ColLogDist,
	ColAnomaly,
	ColJointNumber,
	ColUpWeldDist,
	ColClock,
	ColDepthPct,
	ColLengthMM,
	ColWidthMM,
	ColSurfaceLoc,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid survey store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidTableKinds lists all valid per-survey table kinds.
var ValidTableKinds = map[TableKind]struct{}{
	JointsTable:  {},
	DefectsTable: {},
}
