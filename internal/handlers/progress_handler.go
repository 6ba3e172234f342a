package handlers

import (
	"io"
	"log"
	"strconv"
	"time"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/services"
	"github.com/gin-gonic/gin"
)

// ProgressHandler handles progress streaming
type ProgressHandler struct {
	broadcaster *services.ProgressBroadcaster
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(broadcaster *services.ProgressBroadcaster) *ProgressHandler {
	return &ProgressHandler{broadcaster: broadcaster}
}

// StreamProgress streams progress updates via Server-Sent Events
func (h *ProgressHandler) StreamProgress(c *gin.Context) {
	// Set headers for SSE
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")

	// Subscribe to progress updates
	clientChan := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(clientChan)

	clientGone := c.Request.Context().Done()

	// Send initial connection confirmation
	c.Writer.Write([]byte("data: {\"message\":\"connected\",\"timestamp\":\"" + time.Now().Format(time.RFC3339) + "\"}\n\n"))
	c.Writer.Flush()

	for {
		select {
		case <-clientGone:
			log.Println("Client disconnected from progress stream")
			return
		case update := <-clientChan:
			data := services.FormatSSE(update)
			if data != "" {
				_, err := c.Writer.Write([]byte(data))
				if err != nil {
					if err != io.EOF {
						log.Printf("Error writing SSE data: %v", err)
					}
					return
				}
				c.Writer.Flush()
			}
		case <-time.After(30 * time.Second):
			// Keepalive ping
			c.Writer.Write([]byte(": keepalive\n\n"))
			c.Writer.Flush()
		}
	}
}

// StreamQueueProgress streams progress for a specific queue item
func (h *ProgressHandler) StreamQueueProgress(c *gin.Context) {
	queueID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")

	clientChan := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(clientChan)

	clientGone := c.Request.Context().Done()

	c.Writer.Write([]byte("data: {\"message\":\"connected\",\"queue_id\":" + strconv.Itoa(queueID) + ",\"timestamp\":\"" + time.Now().Format(time.RFC3339) + "\"}\n\n"))
	c.Writer.Flush()

	for {
		select {
		case <-clientGone:
			log.Printf("Client disconnected from queue %d progress stream", queueID)
			return
		case update := <-clientChan:
			if update.QueueID != queueID {
				continue
			}
			data := services.FormatSSE(update)
			if data != "" {
				_, err := c.Writer.Write([]byte(data))
				if err != nil {
					if err != io.EOF {
						log.Printf("Error writing SSE data: %v", err)
					}
					return
				}
				c.Writer.Flush()
			}
		case <-time.After(30 * time.Second):
			c.Writer.Write([]byte(": keepalive\n\n"))
			c.Writer.Flush()
		}
	}
}

// GetStats returns broadcaster statistics
func (h *ProgressHandler) GetStats(c *gin.Context) {
	c.JSON(200, gin.H{
		"connected_clients": h.broadcaster.ClientCount(),
		"timestamp":         time.Now(),
	})
}
