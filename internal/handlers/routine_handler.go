package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/database"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/models"
	"github.com/AndrewDonelson/dance-card-orchestrator/internal/services/ai"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/lyrics"
	"github.com/gin-gonic/gin"
)

// RoutineHandler handles choreography routine requests
type RoutineHandler struct {
	songRepo    *database.SongRepository
	lyricsRepo  *database.LyricsRepository
	routineRepo *database.RoutineRepository
	aiClient    *ai.Client
}

// NewRoutineHandler creates a new routine handler
func NewRoutineHandler(
	songRepo *database.SongRepository,
	lyricsRepo *database.LyricsRepository,
	routineRepo *database.RoutineRepository,
	aiClient *ai.Client,
) *RoutineHandler {
	return &RoutineHandler{
		songRepo:    songRepo,
		lyricsRepo:  lyricsRepo,
		routineRepo: routineRepo,
		aiClient:    aiClient,
	}
}

// GetAll returns all choreography versions for a song
func (h *RoutineHandler) GetAll(c *gin.Context) {
	videoID := c.Param("video_id")

	routines, err := h.routineRepo.GetByVideoID(videoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"routines": routines, "count": len(routines)})
}

// createRoutineRequest carries a new choreography version
type createRoutineRequest struct {
	Moves       []models.ChoreoMove `json:"moves" binding:"required,min=1"`
	VersionName string              `json:"version_name"`
	IsDefault   bool                `json:"is_default"`
}

// Create creates a new choreography version for a song (admin)
func (h *RoutineHandler) Create(c *gin.Context) {
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

	var req createRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.VersionName == "" {
		req.VersionName = "New Version"
	}

	movesJSON, err := json.Marshal(req.Moves)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	routine := &models.Routine{
		VideoID:          videoID,
		VersionName:      req.VersionName,
		MoveSequenceJSON: string(movesJSON),
		IsDefault:        req.IsDefault,
	}
	if err := h.routineRepo.Create(routine); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.IsDefault {
		if err := h.routineRepo.SetDefault(videoID, routine.RoutineID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	log.Printf("Created routine version %q for %s: %d moves", req.VersionName, videoID, len(req.Moves))
	c.JSON(http.StatusCreated, gin.H{"success": true, "routine": routine})
}

// updateRoutineRequest carries partial routine changes
type updateRoutineRequest struct {
	Moves       []models.ChoreoMove `json:"moves"`
	VersionName *string             `json:"version_name"`
}

// Update updates a routine's name or move sequence (admin)
func (h *RoutineHandler) Update(c *gin.Context) {
	routineID, err := strconv.Atoi(c.Param("routine_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid routine ID"})
		return
	}

	routine, err := h.routineRepo.GetByID(routineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if routine == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Routine not found"})
		return
	}

	var req updateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Moves != nil {
		movesJSON, err := json.Marshal(req.Moves)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		routine.MoveSequenceJSON = string(movesJSON)
	}
	if req.VersionName != nil {
		routine.VersionName = *req.VersionName
	}

	if err := h.routineRepo.Update(routine); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "routine": routine})
}

// Delete deletes a routine version (admin)
func (h *RoutineHandler) Delete(c *gin.Context) {
	routineID, err := strconv.Atoi(c.Param("routine_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid routine ID"})
		return
	}

	routine, err := h.routineRepo.GetByID(routineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if routine == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Routine not found"})
		return
	}

	if err := h.routineRepo.Delete(routineID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetDefault marks a routine as its song's default (admin)
func (h *RoutineHandler) SetDefault(c *gin.Context) {
	routineID, err := strconv.Atoi(c.Param("routine_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid routine ID"})
		return
	}

	routine, err := h.routineRepo.GetByID(routineID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if routine == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Routine not found"})
		return
	}

	if err := h.routineRepo.SetDefault(routine.VideoID, routineID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// regenerateRequest configures choreography regeneration
type regenerateRequest struct {
	VersionName  string `json:"version_name"`
	SetAsDefault bool   `json:"set_as_default"`
}

// Regenerate creates a new AI-generated choreography version from the
// song's stored lyrics and structure (admin). Lyrics are preserved.
func (h *RoutineHandler) Regenerate(c *gin.Context) {
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

	record, err := h.lyricsRepo.GetByVideoID(videoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No lyrics found for this song"})
		return
	}

	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.VersionName == "" {
		req.VersionName = "Regenerated"
	}

	var segments []lyrics.Segment
	if err := json.Unmarshal([]byte(record.SegmentsJSON), &segments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("corrupt segments: %v", err)})
		return
	}

	structure := &lyrics.StructureResult{}
	if record.StructureJSON != "" {
		if err := json.Unmarshal([]byte(record.StructureJSON), structure); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("corrupt structure: %v", err)})
			return
		}
	}
	if len(structure.Sections) == 0 {
		structure = lyrics.AnalyzeStructure(segments, song.DurationSeconds)
	}

	moves, err := h.aiClient.GenerateRoutine(song, segments, structure, song.DurationSeconds)
	if err != nil {
		log.Printf("Warning: regeneration fell back to basic routine for %s: %v", videoID, err)
	}

	movesJSON, err := json.Marshal(moves)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	routine := &models.Routine{
		VideoID:          videoID,
		VersionName:      req.VersionName,
		MoveSequenceJSON: string(movesJSON),
	}
	if err := h.routineRepo.Create(routine); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.SetAsDefault {
		if err := h.routineRepo.SetDefault(videoID, routine.RoutineID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		routine.IsDefault = true
	}

	log.Printf("Regenerated choreography for %s: version %q, %d moves",
		videoID, req.VersionName, len(moves))
	c.JSON(http.StatusCreated, gin.H{"success": true, "routine": routine})
}
