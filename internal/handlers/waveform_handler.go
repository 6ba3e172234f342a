package handlers

import (
	"log"
	"net/http"

	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/audio"
	"github.com/AndrewDonelson/dance-card-orchestrator/pkg/youtube"
	"github.com/gin-gonic/gin"
)

// WaveformHandler serves waveform data for the lyrics timing editor
type WaveformHandler struct {
	downloader *youtube.Downloader
}

// NewWaveformHandler creates a new waveform handler
func NewWaveformHandler(downloader *youtube.Downloader) *WaveformHandler {
	return &WaveformHandler{downloader: downloader}
}

// Get returns normalized amplitude samples for a song's cached audio
func (h *WaveformHandler) Get(c *gin.Context) {
	videoID := c.Param("video_id")

	audioPath := h.downloader.CachedAudioPath(videoID)
	if audioPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audio file not found", "samples": []float64{}})
		return
	}

	waveform, err := audio.ExtractWaveform(audioPath)
	if err != nil {
		log.Printf("Error generating waveform for %s: %v", videoID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "samples": []float64{}})
		return
	}

	log.Printf("Generated %d waveform samples for %.1fs audio (%s)",
		len(waveform.Samples), waveform.Duration, videoID)
	c.JSON(http.StatusOK, waveform)
}
