package handlers

import (
	"net/http"
	"strconv"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/database"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/youtube"
	"github.com/gin-gonic/gin"
)

// RequestHandler handles song request submissions
type RequestHandler struct {
	requestRepo *database.RequestRepository
	songRepo    *database.SongRepository
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestRepo *database.RequestRepository, songRepo *database.SongRepository) *RequestHandler {
	return &RequestHandler{
		requestRepo: requestRepo,
		songRepo:    songRepo,
	}
}

// submitRequest is the public song request payload
type submitRequest struct {
	YoutubeURL string `json:"youtube_url" binding:"required"`
	UserNote   string `json:"user_note"`
}

// Submit accepts a song request from the public player
func (h *RequestHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "YouTube URL required"})
		return
	}

	videoID := youtube.ExtractVideoID(req.YoutubeURL)
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid YouTube URL"})
		return
	}

	existing, err := h.songRepo.GetByVideoID(videoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Song already in library"})
		return
	}

	request := &models.SongRequest{
		YoutubeURL: req.YoutubeURL,
		UserNote:   req.UserNote,
	}
	if err := h.requestRepo.Create(request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "request": request})
}

// GetAll returns all song requests (admin)
func (h *RequestHandler) GetAll(c *gin.Context) {
	requests, err := h.requestRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// updateRequestStatus carries a request status change
type updateRequestStatus struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected done"`
}

// UpdateStatus updates a song request's status (admin)
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var req updateRequestStatus
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	existing, err := h.requestRepo.GetByID(requestID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	if err := h.requestRepo.UpdateStatus(requestID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
