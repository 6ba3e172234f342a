package database

import (
	"database/sql"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
)

// RoutineRepository handles choreography routine database operations
type RoutineRepository struct {
	db *sql.DB
}

// NewRoutineRepository creates a new routine repository
func NewRoutineRepository(db *sql.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

const routineColumns = `routine_id, video_id,
	COALESCE(version_name, 'Original') as version_name,
	move_sequence_json,
	COALESCE(is_default, 0) as is_default,
	created_at`

// GetByVideoID returns all routine versions for a song, default first
func (r *RoutineRepository) GetByVideoID(videoID string) ([]models.Routine, error) {
	query := `SELECT ` + routineColumns + ` FROM routines
		WHERE video_id = ? ORDER BY is_default DESC, created_at`

	rows, err := r.db.Query(query, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		var rt models.Routine
		err := rows.Scan(
			&rt.RoutineID, &rt.VideoID, &rt.VersionName,
			&rt.MoveSequenceJSON, &rt.IsDefault, &rt.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		routines = append(routines, rt)
	}

	return routines, nil
}

// GetByID returns a routine by its ID
func (r *RoutineRepository) GetByID(routineID int) (*models.Routine, error) {
	query := `SELECT ` + routineColumns + ` FROM routines WHERE routine_id = ?`

	var rt models.Routine
	err := r.db.QueryRow(query, routineID).Scan(
		&rt.RoutineID, &rt.VideoID, &rt.VersionName,
		&rt.MoveSequenceJSON, &rt.IsDefault, &rt.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &rt, nil
}

// GetDefault returns the default routine for a song
func (r *RoutineRepository) GetDefault(videoID string) (*models.Routine, error) {
	query := `SELECT ` + routineColumns + ` FROM routines
		WHERE video_id = ? AND is_default = 1`

	var rt models.Routine
	err := r.db.QueryRow(query, videoID).Scan(
		&rt.RoutineID, &rt.VideoID, &rt.VersionName,
		&rt.MoveSequenceJSON, &rt.IsDefault, &rt.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &rt, nil
}

// Create creates a new routine version
func (r *RoutineRepository) Create(rt *models.Routine) error {
	query := `INSERT INTO routines (video_id, version_name, move_sequence_json, is_default)
		VALUES (?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		rt.VideoID, rt.VersionName, rt.MoveSequenceJSON, rt.IsDefault,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	rt.RoutineID = int(id)
	return nil
}

// Update updates a routine's name and move sequence
func (r *RoutineRepository) Update(rt *models.Routine) error {
	query := `UPDATE routines SET version_name=?, move_sequence_json=? WHERE routine_id=?`

	_, err := r.db.Exec(query, rt.VersionName, rt.MoveSequenceJSON, rt.RoutineID)
	return err
}

// SetDefault marks one routine as the song's default, clearing the flag
// on every other version.
func (r *RoutineRepository) SetDefault(videoID string, routineID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE routines SET is_default=0 WHERE video_id=?", videoID); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE routines SET is_default=1 WHERE routine_id=? AND video_id=?", routineID, videoID); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete deletes a routine version
func (r *RoutineRepository) Delete(routineID int) error {
	_, err := r.db.Exec("DELETE FROM routines WHERE routine_id=?", routineID)
	return err
}

// CountByVideoID returns the number of routine versions for a song
func (r *RoutineRepository) CountByVideoID(videoID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM routines WHERE video_id=?", videoID).Scan(&count)
	return count, err
}
