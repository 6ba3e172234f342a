package database

import (
	"database/sql"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
)

// QueueRepository handles queue database operations
type QueueRepository struct {
	db *sql.DB
}

// NewQueueRepository creates a new queue repository
func NewQueueRepository(db *sql.DB) *QueueRepository {
	return &QueueRepository{db: db}
}

const queueColumns = `id, video_id, youtube_url,
	COALESCE(lyrics_mode, 'auto') as lyrics_mode,
	COALESCE(manual_lyrics, '') as manual_lyrics,
	status, priority,
	COALESCE(current_step, '') as current_step,
	COALESCE(progress, 0) as progress,
	COALESCE(error_message, '') as error_message,
	COALESCE(retry_count, 0) as retry_count,
	queued_at, started_at, completed_at`

func scanQueueItem(scan func(dest ...interface{}) error) (*models.QueueItem, error) {
	var item models.QueueItem
	err := scan(
		&item.ID, &item.VideoID, &item.YoutubeURL,
		&item.LyricsMode, &item.ManualLyrics,
		&item.Status, &item.Priority,
		&item.CurrentStep, &item.Progress, &item.ErrorMessage, &item.RetryCount,
		&item.QueuedAt, &item.StartedAt, &item.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetAll returns all queue items
func (r *QueueRepository) GetAll() ([]models.QueueItem, error) {
	query := `SELECT ` + queueColumns + ` FROM queue ORDER BY priority DESC, queued_at ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.QueueItem
	for rows.Next() {
		item, err := scanQueueItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, nil
}

// GetByID returns a queue item by ID
func (r *QueueRepository) GetByID(id int) (*models.QueueItem, error) {
	query := `SELECT ` + queueColumns + ` FROM queue WHERE id = ?`

	item, err := scanQueueItem(r.db.QueryRow(query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

// GetActiveByVideoID returns a queued or processing item for a video,
// used to reject duplicate enqueues.
func (r *QueueRepository) GetActiveByVideoID(videoID string) (*models.QueueItem, error) {
	query := `SELECT ` + queueColumns + ` FROM queue
		WHERE video_id = ? AND status IN (?, ?) LIMIT 1`

	item, err := scanQueueItem(
		r.db.QueryRow(query, videoID, models.StatusQueued, models.StatusProcessing).Scan,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

// Create creates a new queue item
func (r *QueueRepository) Create(item *models.QueueItem) error {
	query := `INSERT INTO queue (video_id, youtube_url, lyrics_mode, manual_lyrics, status, priority)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		item.VideoID, item.YoutubeURL, item.LyricsMode, item.ManualLyrics,
		item.Status, item.Priority,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	item.ID = int(id)
	return nil
}

// Update updates an existing queue item
func (r *QueueRepository) Update(item *models.QueueItem) error {
	query := `UPDATE queue SET status=?, priority=?,
		current_step=?, progress=?, error_message=?, retry_count=?,
		started_at=?, completed_at=?
		WHERE id=?`

	_, err := r.db.Exec(query,
		item.Status, item.Priority,
		item.CurrentStep, item.Progress, item.ErrorMessage, item.RetryCount,
		item.StartedAt, item.CompletedAt,
		item.ID,
	)
	return err
}

// Delete removes a queue item
func (r *QueueRepository) Delete(id int) error {
	_, err := r.db.Exec("DELETE FROM queue WHERE id=?", id)
	return err
}

// GetNextPending returns the next pending queue item
func (r *QueueRepository) GetNextPending() (*models.QueueItem, error) {
	query := `SELECT ` + queueColumns + ` FROM queue
		WHERE status = ?
		ORDER BY priority DESC, queued_at ASC
		LIMIT 1`

	item, err := scanQueueItem(r.db.QueryRow(query, models.StatusQueued).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}
