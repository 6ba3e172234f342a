package handlers

import (
	"net/http"
	"strconv"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/database"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/youtube"
	"github.com/gin-gonic/gin"
)

// QueueHandler handles processing queue requests
type QueueHandler struct {
	queueRepo *database.QueueRepository
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(queueRepo *database.QueueRepository) *QueueHandler {
	return &QueueHandler{queueRepo: queueRepo}
}

// processRequest enqueues a song for the full processing pipeline
type processRequest struct {
	YoutubeURL   string `json:"youtube_url" binding:"required"`
	LyricsMode   string `json:"lyrics_mode" binding:"omitempty,oneof=auto manual"`
	ManualLyrics string `json:"manual_lyrics"`
	Priority     int    `json:"priority"`
}

// Process enqueues a new song for processing (admin). The worker picks
// it up and runs transcription, structure analysis and choreography.
func (h *QueueHandler) Process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	videoID := youtube.ExtractVideoID(req.YoutubeURL)
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid YouTube URL"})
		return
	}

	if req.LyricsMode == "" {
		req.LyricsMode = models.LyricsModeAuto
	}
	if req.LyricsMode == models.LyricsModeManual && req.ManualLyrics == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Manual lyrics required when using manual mode"})
		return
	}

	active, err := h.queueRepo.GetActiveByVideoID(videoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if active != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Song is already queued", "queue_id": active.ID})
		return
	}

	item := &models.QueueItem{
		VideoID:      videoID,
		YoutubeURL:   req.YoutubeURL,
		LyricsMode:   req.LyricsMode,
		ManualLyrics: req.ManualLyrics,
		Status:       models.StatusQueued,
		Priority:     req.Priority,
	}
	if err := h.queueRepo.Create(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"success": true, "queue_id": item.ID, "video_id": videoID})
}

// GetAll returns the full processing queue (admin)
func (h *QueueHandler) GetAll(c *gin.Context) {
	items, err := h.queueRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"queue": items})
}

// GetByID returns one queue item (admin)
func (h *QueueHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	item, err := h.queueRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Queue item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Retry re-queues a failed item (admin)
func (h *QueueHandler) Retry(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	item, err := h.queueRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Queue item not found"})
		return
	}
	if item.Status != models.StatusFailed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only failed items can be retried"})
		return
	}

	item.Status = models.StatusQueued
	item.ErrorMessage = ""
	item.Progress = 0
	item.CurrentStep = ""
	item.StartedAt = nil
	item.CompletedAt = nil
	if err := h.queueRepo.Update(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete removes a queue item (admin)
func (h *QueueHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	if err := h.queueRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
