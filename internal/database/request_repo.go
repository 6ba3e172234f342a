package database

import (
	"database/sql"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
)

// RequestRepository handles song request database operations
type RequestRepository struct {
	db *sql.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// GetAll returns all song requests, newest first
func (r *RequestRepository) GetAll() ([]models.SongRequest, error) {
	query := `SELECT request_id, youtube_url,
		COALESCE(user_note, '') as user_note,
		COALESCE(status, 'pending') as status,
		created_at
		FROM song_requests ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.SongRequest
	for rows.Next() {
		var req models.SongRequest
		err := rows.Scan(&req.RequestID, &req.YoutubeURL, &req.UserNote, &req.Status, &req.CreatedAt)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// GetByID returns a song request by ID
func (r *RequestRepository) GetByID(requestID int) (*models.SongRequest, error) {
	query := `SELECT request_id, youtube_url,
		COALESCE(user_note, '') as user_note,
		COALESCE(status, 'pending') as status,
		created_at
		FROM song_requests WHERE request_id = ?`

	var req models.SongRequest
	err := r.db.QueryRow(query, requestID).Scan(
		&req.RequestID, &req.YoutubeURL, &req.UserNote, &req.Status, &req.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &req, nil
}

// Create creates a new song request
func (r *RequestRepository) Create(req *models.SongRequest) error {
	result, err := r.db.Exec(
		"INSERT INTO song_requests (youtube_url, user_note, status) VALUES (?, ?, ?)",
		req.YoutubeURL, req.UserNote, models.RequestPending,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	req.RequestID = int(id)
	req.Status = models.RequestPending
	return nil
}

// UpdateStatus updates a request's status
func (r *RequestRepository) UpdateStatus(requestID int, status string) error {
	_, err := r.db.Exec("UPDATE song_requests SET status=? WHERE request_id=?", status, requestID)
	return err
}

// Delete deletes a song request
func (r *RequestRepository) Delete(requestID int) error {
	_, err := r.db.Exec("DELETE FROM song_requests WHERE request_id=?", requestID)
	return err
}
