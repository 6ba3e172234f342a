package database

import (
	"database/sql"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
)

// SongRepository handles song database operations
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new song repository
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

const songColumns = `video_id, title, artist, youtube_url,
	COALESCE(genre, '') as genre,
	COALESCE(duration_seconds, 0) as duration_seconds,
	COALESCE(bpm, 0) as bpm,
	COALESCE(thumbnail_url, '') as thumbnail_url,
	COALESCE(difficulty, 2) as difficulty,
	COALESCE(published, 0) as published,
	created_at, updated_at`

func scanSong(scan func(dest ...interface{}) error) (*models.Song, error) {
	var s models.Song
	err := scan(
		&s.VideoID, &s.Title, &s.Artist, &s.YoutubeURL,
		&s.Genre, &s.DurationSeconds, &s.BPM, &s.ThumbnailURL,
		&s.Difficulty, &s.Published,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetAll returns all songs
func (r *SongRepository) GetAll() ([]models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		s, err := scanSong(rows.Scan)
		if err != nil {
			return nil, err
		}
		songs = append(songs, *s)
	}

	return songs, nil
}

// GetPublished returns all published songs
func (r *SongRepository) GetPublished() ([]models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE published = 1 ORDER BY title`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		s, err := scanSong(rows.Scan)
		if err != nil {
			return nil, err
		}
		songs = append(songs, *s)
	}

	return songs, nil
}

// GetByVideoID returns a song by its YouTube video ID
func (r *SongRepository) GetByVideoID(videoID string) (*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE video_id = ?`

	s, err := scanSong(r.db.QueryRow(query, videoID).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Upsert creates a song or replaces its metadata when it already exists.
// The published flag is preserved on replace so reprocessing never
// unpublishes a song.
func (r *SongRepository) Upsert(song *models.Song) error {
	query := `INSERT INTO songs (video_id, title, artist, youtube_url, genre,
		duration_seconds, bpm, thumbnail_url, difficulty, published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			title=excluded.title, artist=excluded.artist,
			youtube_url=excluded.youtube_url, genre=excluded.genre,
			duration_seconds=excluded.duration_seconds, bpm=excluded.bpm,
			thumbnail_url=excluded.thumbnail_url, difficulty=excluded.difficulty,
			updated_at=CURRENT_TIMESTAMP`

	_, err := r.db.Exec(query,
		song.VideoID, song.Title, song.Artist, song.YoutubeURL, song.Genre,
		song.DurationSeconds, song.BPM, song.ThumbnailURL, song.Difficulty,
		song.Published,
	)
	return err
}

// Update updates a song's editable metadata
func (r *SongRepository) Update(song *models.Song) error {
	query := `UPDATE songs SET title=?, artist=?, genre=?, difficulty=?,
		bpm=?, thumbnail_url=?, updated_at=CURRENT_TIMESTAMP
		WHERE video_id=?`

	_, err := r.db.Exec(query,
		song.Title, song.Artist, song.Genre, song.Difficulty,
		song.BPM, song.ThumbnailURL,
		song.VideoID,
	)
	return err
}

// SetPublished sets the published flag
func (r *SongRepository) SetPublished(videoID string, published bool) error {
	_, err := r.db.Exec(
		"UPDATE songs SET published=?, updated_at=CURRENT_TIMESTAMP WHERE video_id=?",
		published, videoID,
	)
	return err
}

// Delete deletes a song and its dependent rows
func (r *SongRepository) Delete(videoID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM routines WHERE video_id=?",
		"DELETE FROM lyrics WHERE video_id=?",
		"DELETE FROM songs WHERE video_id=?",
	} {
		if _, err := tx.Exec(stmt, videoID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
