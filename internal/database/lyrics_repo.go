package database

import (
	"database/sql"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
)

// LyricsRepository handles lyrics database operations
type LyricsRepository struct {
	db *sql.DB
}

// NewLyricsRepository creates a new lyrics repository
func NewLyricsRepository(db *sql.DB) *LyricsRepository {
	return &LyricsRepository{db: db}
}

// GetByVideoID returns the lyrics record for a song
func (r *LyricsRepository) GetByVideoID(videoID string) (*models.LyricsRecord, error) {
	query := `SELECT video_id, segments_json,
		COALESCE(structure_json, '') as structure_json,
		COALESCE(language, '') as language,
		COALESCE(source, 'whisper') as source,
		updated_at
		FROM lyrics WHERE video_id = ?`

	var l models.LyricsRecord
	err := r.db.QueryRow(query, videoID).Scan(
		&l.VideoID, &l.SegmentsJSON, &l.StructureJSON,
		&l.Language, &l.Source, &l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &l, nil
}

// Save inserts or replaces the lyrics record for a song
func (r *LyricsRepository) Save(l *models.LyricsRecord) error {
	query := `INSERT INTO lyrics (video_id, segments_json, structure_json, language, source)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			segments_json=excluded.segments_json,
			structure_json=excluded.structure_json,
			language=excluded.language,
			source=excluded.source,
			updated_at=CURRENT_TIMESTAMP`

	_, err := r.db.Exec(query,
		l.VideoID, l.SegmentsJSON, l.StructureJSON, l.Language, l.Source,
	)
	return err
}

// UpdateSegments replaces only the timed segments, leaving structure
// intact until the caller re-runs analysis.
func (r *LyricsRepository) UpdateSegments(videoID, segmentsJSON, source string) error {
	_, err := r.db.Exec(
		`UPDATE lyrics SET segments_json=?, source=?, updated_at=CURRENT_TIMESTAMP WHERE video_id=?`,
		segmentsJSON, source, videoID,
	)
	return err
}

// UpdateStructure replaces only the inferred structure
func (r *LyricsRepository) UpdateStructure(videoID, structureJSON string) error {
	_, err := r.db.Exec(
		`UPDATE lyrics SET structure_json=?, updated_at=CURRENT_TIMESTAMP WHERE video_id=?`,
		structureJSON, videoID,
	)
	return err
}

// Delete removes the lyrics record for a song
func (r *LyricsRepository) Delete(videoID string) error {
	_, err := r.db.Exec("DELETE FROM lyrics WHERE video_id=?", videoID)
	return err
}
