package handlers

import (
	"net/http"

	"github.com/AndrewDonelson/dance-card-orchestrator/internal/database"
	"github.com/gin-gonic/gin"
)

// MoveHandler serves the dance move catalog
type MoveHandler struct {
	moveRepo *database.MoveRepository
}

// NewMoveHandler creates a new move handler
func NewMoveHandler(moveRepo *database.MoveRepository) *MoveHandler {
	return &MoveHandler{moveRepo: moveRepo}
}

// GetAll returns the full move catalog
func (h *MoveHandler) GetAll(c *gin.Context) {
	catalog, err := h.moveRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"moves": catalog})
}

// GetByID returns one move by its catalog ID
func (h *MoveHandler) GetByID(c *gin.Context) {
	move, err := h.moveRepo.GetByID(c.Param("move_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if move == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Move not found"})
		return
	}

	c.JSON(http.StatusOK, move)
}
