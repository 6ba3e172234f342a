package handlers

import (
	"net/http"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/database"
	"github.com/gin-gonic/gin"
)

// SongHandler handles song-related requests
type SongHandler struct {
	songRepo    *database.SongRepository
	lyricsRepo  *database.LyricsRepository
	routineRepo *database.RoutineRepository
}

// NewSongHandler creates a new song handler
func NewSongHandler(
	songRepo *database.SongRepository,
	lyricsRepo *database.LyricsRepository,
	routineRepo *database.RoutineRepository,
) *SongHandler {
	return &SongHandler{
		songRepo:    songRepo,
		lyricsRepo:  lyricsRepo,
		routineRepo: routineRepo,
	}
}

// GetLibrary returns all published songs for the player
func (h *SongHandler) GetLibrary(c *gin.Context) {
	songs, err := h.songRepo.GetPublished()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

// GetAll returns all songs including unpublished ones (admin)
func (h *SongHandler) GetAll(c *gin.Context) {
	songs, err := h.songRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

// GetByVideoID returns one song with its lyrics and default routine
func (h *SongHandler) GetByVideoID(c *gin.Context) {
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

	response := gin.H{"song": song}

	if record, err := h.lyricsRepo.GetByVideoID(videoID); err == nil && record != nil {
		response["lyrics"] = record
	}
	if routine, err := h.routineRepo.GetDefault(videoID); err == nil && routine != nil {
		response["routine"] = routine
	}

	c.JSON(http.StatusOK, response)
}

// updateSongRequest is the editable subset of song metadata
type updateSongRequest struct {
	Title      *string  `json:"title"`
	Artist     *string  `json:"artist"`
	Genre      *string  `json:"genre"`
	Difficulty *int     `json:"difficulty" binding:"omitempty,min=1,max=3"`
	BPM        *float64 `json:"bpm" binding:"omitempty,gt=0"`
}

// Update updates a song's editable metadata (admin)
func (h *SongHandler) Update(c *gin.Context) {
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

	var req updateSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		song.Title = *req.Title
	}
	if req.Artist != nil {
		song.Artist = *req.Artist
	}
	if req.Genre != nil {
		song.Genre = *req.Genre
	}
	if req.Difficulty != nil {
		song.Difficulty = *req.Difficulty
	}
	if req.BPM != nil {
		song.BPM = *req.BPM
	}

	if err := h.songRepo.Update(song); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, song)
}

// Publish makes a song visible in the public library (admin)
func (h *SongHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

// Unpublish hides a song from the public library (admin)
func (h *SongHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *SongHandler) setPublished(c *gin.Context, published bool) {
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

	if err := h.songRepo.SetPublished(videoID, published); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"video_id": videoID, "published": published})
}

// Delete deletes a song along with its lyrics and routines (admin)
func (h *SongHandler) Delete(c *gin.Context) {
	videoID := c.Param("video_id")

	if err := h.songRepo.Delete(videoID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Song deleted"})
}
