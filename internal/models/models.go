package models

import "time"

// Song represents a processed song in the library
type Song struct {
	VideoID         string    `json:"video_id" db:"video_id"`
	Title           string    `json:"title" db:"title"`
	Artist          string    `json:"artist" db:"artist"`
	YoutubeURL      string    `json:"youtube_url" db:"youtube_url"`
	Genre           string    `json:"genre" db:"genre"`
	DurationSeconds float64   `json:"duration_seconds" db:"duration_seconds"`
	BPM             float64   `json:"bpm" db:"bpm"`
	ThumbnailURL    string    `json:"thumbnail_url" db:"thumbnail_url"`
	Difficulty      int       `json:"difficulty" db:"difficulty"`
	Published       bool      `json:"published" db:"published"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// LyricsRecord holds the timed lyrics and inferred structure for a song.
// SegmentsJSON and StructureJSON are stored as raw JSON so the web layer
// can serve them without re-encoding.
type LyricsRecord struct {
	VideoID       string    `json:"video_id" db:"video_id"`
	SegmentsJSON  string    `json:"segments_json" db:"segments_json"`
	StructureJSON string    `json:"structure_json" db:"structure_json"`
	Language      string    `json:"language" db:"language"`
	Source        string    `json:"source" db:"source"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Routine represents a choreography version for a song
type Routine struct {
	RoutineID        int       `json:"routine_id" db:"routine_id"`
	VideoID          string    `json:"video_id" db:"video_id"`
	VersionName      string    `json:"version_name" db:"version_name"`
	MoveSequenceJSON string    `json:"move_sequence_json" db:"move_sequence_json"`
	IsDefault        bool      `json:"is_default" db:"is_default"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// ChoreoMove is one entry in a routine's move sequence. Timestamp is
// seconds from the start of the song.
type ChoreoMove struct {
	MoveID    string  `json:"moveId"`
	Timestamp float64 `json:"timestamp"`
	Beats     int     `json:"beats"`
}

// SongRequest represents a user-submitted request for a new song
type SongRequest struct {
	RequestID  int       `json:"request_id" db:"request_id"`
	YoutubeURL string    `json:"youtube_url" db:"youtube_url"`
	UserNote   string    `json:"user_note" db:"user_note"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// QueueItem represents a job in the processing queue
type QueueItem struct {
	ID           int    `json:"id" db:"id"`
	VideoID      string `json:"video_id" db:"video_id"`
	YoutubeURL   string `json:"youtube_url" db:"youtube_url"`
	LyricsMode   string `json:"lyrics_mode" db:"lyrics_mode"`
	ManualLyrics string `json:"manual_lyrics" db:"manual_lyrics"`
	Status       string `json:"status" db:"status"`
	Priority     int    `json:"priority" db:"priority"`

	CurrentStep  string `json:"current_step" db:"current_step"`
	Progress     int    `json:"progress" db:"progress"`
	ErrorMessage string `json:"error_message" db:"error_message"`
	RetryCount   int    `json:"retry_count" db:"retry_count"`

	QueuedAt    time.Time  `json:"queued_at" db:"queued_at"`
	StartedAt   *time.Time `json:"started_at" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
}

// Queue status constants
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Lyrics mode constants
const (
	LyricsModeAuto   = "auto"
	LyricsModeManual = "manual"
)

// Song request status constants
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
	RequestDone     = "done"
)
