package surveystore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pipewise/ilitrack/internal/contract"
	"github.com/pipewise/ilitrack/schema"
)

// SaveSurvey persists one survey in a transaction, replacing any prior
// dataset for its year.
func (ss *SQLStoreImpl) SaveSurvey(survey *schema.Survey) error {
	tx, err := ss.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := ss.deleteYear(tx, survey.Year); err != nil {
		return err
	}

	surveyQuery := fmt.Sprintf(`INSERT INTO %s (
		survey_year, source_file, loaded_at,
		has_joint_length, has_joint_wall,
		has_log_dist, has_anomaly_type, has_joint_number, has_up_weld_dist,
		has_clock, has_depth, has_wall_nominal, has_surface_loc
	) VALUES (%s)`, quoteTableName(surveysTable, ss.backend), placeholders(ss.backend, 13))
	if _, err := tx.Exec(surveyQuery,
		survey.Year, survey.SourceFile, survey.LoadedAt.Unix(),
		boolToInt(survey.Joints.HasJointLength), boolToInt(survey.Joints.HasWallNominal),
		boolToInt(survey.Defects.HasLogDist), boolToInt(survey.Defects.HasAnomalyType),
		boolToInt(survey.Defects.HasJointNumber), boolToInt(survey.Defects.HasUpWeldDist),
		boolToInt(survey.Defects.HasClock), boolToInt(survey.Defects.HasDepth),
		boolToInt(survey.Defects.HasWallNominal), boolToInt(survey.Defects.HasSurfaceLoc),
	); err != nil {
		return fmt.Errorf("failed to insert survey %d: %w", survey.Year, err)
	}

	jointQuery := fmt.Sprintf(`INSERT INTO %s (
		survey_year, seq, joint_number, log_dist, joint_length, wall_nominal
	) VALUES (%s)`, quoteTableName(jointsTable, ss.backend), placeholders(ss.backend, 6))
	for i, j := range survey.Joints.Joints {
		if _, err := tx.Exec(jointQuery,
			survey.Year, i, j.JointNumber,
			nullFloat(j.LogDist), nullFloat(j.JointLength), nullFloat(j.WallNominal),
		); err != nil {
			return fmt.Errorf("failed to insert joint %d of survey %d: %w", i, survey.Year, err)
		}
	}

	defectQuery := fmt.Sprintf(`INSERT INTO %s (
		survey_year, defect_id, log_dist, anomaly_type, joint_number, up_weld_dist,
		clock, clock_float, depth_pct, length_mm, width_mm, wall_nominal, surface_loc
	) VALUES (%s)`, quoteTableName(defectsTable, ss.backend), placeholders(ss.backend, 13))
	for _, d := range survey.Defects.Defects {
		if _, err := tx.Exec(defectQuery,
			survey.Year, d.ID, nullFloat(d.LogDist), nullString(d.AnomalyType),
			nullFloat(d.JointNumber), nullFloat(d.UpWeldDist),
			nullString(d.Clock), nullFloat(d.ClockFloat), nullFloat(d.DepthPct),
			nullFloat(d.LengthMM), nullFloat(d.WidthMM), nullFloat(d.WallNominal),
			nullString(d.SurfaceLoc),
		); err != nil {
			return fmt.Errorf("failed to insert defect %d of survey %d: %w", d.ID, survey.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit survey %d: %w", survey.Year, err)
	}
	return nil
}

func (ss *SQLStoreImpl) deleteYear(tx *sql.Tx, year int) error {
	for _, table := range []string{defectsTable, jointsTable, surveysTable} {
		query := fmt.Sprintf("DELETE FROM %s WHERE survey_year = %s",
			quoteTableName(table, ss.backend), placeholder(ss.backend))
		if _, err := tx.Exec(query, year); err != nil {
			return fmt.Errorf("failed to clear %s for year %d: %w", table, year, err)
		}
	}
	return nil
}

// GetSurvey returns the survey for a year, or ErrSurveyNotFound when absent.
func (ss *SQLStoreImpl) GetSurvey(year int) (*schema.Survey, error) {
	query := fmt.Sprintf(`SELECT source_file, loaded_at,
		has_joint_length, has_joint_wall,
		has_log_dist, has_anomaly_type, has_joint_number, has_up_weld_dist,
		has_clock, has_depth, has_wall_nominal, has_surface_loc
		FROM %s WHERE survey_year = %s`,
		quoteTableName(surveysTable, ss.backend), placeholder(ss.backend))

	survey := &schema.Survey{Year: year}
	var loadedAt int64
	var jointLen, jointWall int
	var logDist, anomaly, jointNum, upWeld, clock, depth, wall, surface int
	err := ss.db.QueryRow(query, year).Scan(
		&survey.SourceFile, &loadedAt,
		&jointLen, &jointWall,
		&logDist, &anomaly, &jointNum, &upWeld,
		&clock, &depth, &wall, &surface,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: year %d", contract.ErrSurveyNotFound, year)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load survey %d: %w", year, err)
	}
	survey.LoadedAt = time.Unix(loadedAt, 0).UTC()
	survey.Joints.HasJointLength = jointLen == 1
	survey.Joints.HasWallNominal = jointWall == 1
	survey.Defects.HasLogDist = logDist == 1
	survey.Defects.HasAnomalyType = anomaly == 1
	survey.Defects.HasJointNumber = jointNum == 1
	survey.Defects.HasUpWeldDist = upWeld == 1
	survey.Defects.HasClock = clock == 1
	survey.Defects.HasDepth = depth == 1
	survey.Defects.HasWallNominal = wall == 1
	survey.Defects.HasSurfaceLoc = surface == 1

	if err := ss.loadJoints(survey); err != nil {
		return nil, err
	}
	if err := ss.loadDefects(survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (ss *SQLStoreImpl) loadJoints(survey *schema.Survey) error {
	query := fmt.Sprintf(`SELECT joint_number, log_dist, joint_length, wall_nominal
		FROM %s WHERE survey_year = %s ORDER BY seq`,
		quoteTableName(jointsTable, ss.backend), placeholder(ss.backend))

	rows, err := ss.db.Query(query, survey.Year)
	if err != nil {
		return fmt.Errorf("failed to query joints for year %d: %w", survey.Year, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var j schema.Joint
		var logDist, jointLength, wallNominal sql.NullFloat64
		if err := rows.Scan(&j.JointNumber, &logDist, &jointLength, &wallNominal); err != nil {
			return fmt.Errorf("failed to scan joint row: %w", err)
		}
		j.LogDist = floatOrMissing(logDist)
		j.JointLength = floatOrMissing(jointLength)
		j.WallNominal = floatOrMissing(wallNominal)
		survey.Joints.Joints = append(survey.Joints.Joints, j)
	}
	return rows.Err()
}

func (ss *SQLStoreImpl) loadDefects(survey *schema.Survey) error {
	query := fmt.Sprintf(`SELECT defect_id, log_dist, anomaly_type, joint_number, up_weld_dist,
		clock, clock_float, depth_pct, length_mm, width_mm, wall_nominal, surface_loc
		FROM %s WHERE survey_year = %s ORDER BY defect_id`,
		quoteTableName(defectsTable, ss.backend), placeholder(ss.backend))

	rows, err := ss.db.Query(query, survey.Year)
	if err != nil {
		return fmt.Errorf("failed to query defects for year %d: %w", survey.Year, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var d schema.Defect
		var logDist, jointNumber, upWeld, clockFloat, depth, length, width, wall sql.NullFloat64
		var anomalyType, clock, surfaceLoc sql.NullString
		if err := rows.Scan(&d.ID, &logDist, &anomalyType, &jointNumber, &upWeld,
			&clock, &clockFloat, &depth, &length, &width, &wall, &surfaceLoc); err != nil {
			return fmt.Errorf("failed to scan defect row: %w", err)
		}
		d.LogDist = floatOrMissing(logDist)
		d.AnomalyType = stringOrEmpty(anomalyType)
		d.JointNumber = floatOrMissing(jointNumber)
		d.UpWeldDist = floatOrMissing(upWeld)
		d.Clock = stringOrEmpty(clock)
		d.ClockFloat = floatOrMissing(clockFloat)
		d.DepthPct = floatOrMissing(depth)
		d.LengthMM = floatOrMissing(length)
		d.WidthMM = floatOrMissing(width)
		d.WallNominal = floatOrMissing(wall)
		d.SurfaceLoc = stringOrEmpty(surfaceLoc)
		survey.Defects.Defects = append(survey.Defects.Defects, d)
	}
	return rows.Err()
}

// ListSurveys returns summary rows for all stored surveys, ordered by year.
func (ss *SQLStoreImpl) ListSurveys() ([]schema.SurveyInfo, error) {
	sq := quoteTableName(surveysTable, ss.backend)
	jq := quoteTableName(jointsTable, ss.backend)
	dq := quoteTableName(defectsTable, ss.backend)
	query := fmt.Sprintf(`SELECT s.survey_year, s.source_file, s.loaded_at,
		(SELECT COUNT(*) FROM %s j WHERE j.survey_year = s.survey_year),
		(SELECT COUNT(*) FROM %s d WHERE d.survey_year = s.survey_year)
		FROM %s s ORDER BY s.survey_year`, jq, dq, sq)

	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []schema.SurveyInfo
	for rows.Next() {
		var info schema.SurveyInfo
		var loadedAt int64
		if err := rows.Scan(&info.Year, &info.SourceFile, &loadedAt, &info.JointCount, &info.DefectCount); err != nil {
			return nil, fmt.Errorf("failed to scan survey row: %w", err)
		}
		info.LoadedAt = time.Unix(loadedAt, 0).UTC()
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// ClearAll removes every stored survey.
func (ss *SQLStoreImpl) ClearAll() error {
	for _, table := range []string{defectsTable, jointsTable, surveysTable} {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, ss.backend))
		if _, err := ss.db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// GetStatus returns status information about the store.
func (ss *SQLStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:  ss.backend,
		Location: ss.location,
	}
	counts := []struct {
		table string
		dest  *int
	}{
		{surveysTable, &status.SurveyCount},
		{jointsTable, &status.JointRows},
		{defectsTable, &status.DefectRows},
	}
	for _, c := range counts {
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(c.table, ss.backend))
		if err := ss.db.QueryRow(query).Scan(c.dest); err != nil {
			return status, fmt.Errorf("failed to count rows in %s: %w", c.table, err)
		}
	}
	return status, nil
}

// Close closes the underlying DB connection.
func (ss *SQLStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}
