package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/database"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/lyrics"
	"github.com/gin-gonic/gin"
)

// LyricsHandler handles lyrics-related requests
type LyricsHandler struct {
	songRepo   *database.SongRepository
	lyricsRepo *database.LyricsRepository
}

// NewLyricsHandler creates a new lyrics handler
func NewLyricsHandler(songRepo *database.SongRepository, lyricsRepo *database.LyricsRepository) *LyricsHandler {
	return &LyricsHandler{
		songRepo:   songRepo,
		lyricsRepo: lyricsRepo,
	}
}

// Get returns the lyrics and structure for a song
func (h *LyricsHandler) Get(c *gin.Context) {
	videoID := c.Param("video_id")

	record, err := h.lyricsRepo.GetByVideoID(videoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lyrics not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// updateLyricsRequest carries a full lyrics replacement
type updateLyricsRequest struct {
	Segments []lyrics.Segment `json:"segments" binding:"required"`
	Language string           `json:"language"`
}

// Update replaces a song's lyric segments and re-runs structure
// analysis (admin). Routines are untouched.
func (h *LyricsHandler) Update(c *gin.Context) {
	videoID := c.Param("video_id")

	song, err := h.songRepo.GetByVideoID(videoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if song == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
		return
	}

	var req updateLyricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	structure := lyrics.AnalyzeStructure(req.Segments, song.DurationSeconds)
	structure.EstimatedBPM = song.BPM

	segmentsJSON, err := json.Marshal(req.Segments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	structureJSON, err := json.Marshal(structure)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	record := &models.LyricsRecord{
		VideoID:       videoID,
		SegmentsJSON:  string(segmentsJSON),
		StructureJSON: string(structureJSON),
		Language:      req.Language,
		Source:        "manual",
	}
	if err := h.lyricsRepo.Save(record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Lyrics updated for %s: %d segments, %d sections",
		videoID, len(req.Segments), len(structure.Sections))

	c.JSON(http.StatusOK, gin.H{"success": true, "lyrics": record})
}

// updateTimestampsRequest carries retimed segments with an optional
// bulk offset in seconds.
type updateTimestampsRequest struct {
	Segments []lyrics.Segment `json:"segments" binding:"required"`
	Offset   float64          `json:"offset"`
}

// UpdateTimestamps retimes a song's lyric segments (admin). Lyrics are
// stored separately from routines so this never touches choreography.
func (h *LyricsHandler) UpdateTimestamps(c *gin.Context) {
	videoID := c.Param("video_id")

	song, err := h.songRepo.GetByVideoID(videoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if song == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
		return
	}

	var req updateTimestampsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Offset != 0 {
		for i := range req.Segments {
			req.Segments[i].Start = max0(req.Segments[i].Start + req.Offset)
			req.Segments[i].End = max0(req.Segments[i].End + req.Offset)
		}
	}

	segmentsJSON, err := json.Marshal(req.Segments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.lyricsRepo.UpdateSegments(videoID, string(segmentsJSON), "manual"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Updated %d lyrics timestamps for %s (offset %+.1fs)",
		len(req.Segments), videoID, req.Offset)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"segments": req.Segments,
		"count":    len(req.Segments),
	})
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
