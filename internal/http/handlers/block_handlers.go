package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
	"github.com/Abdulaziz20007/Phono-Backend/internal/http/middleware"
)

// BlockHandlers handles account suspensions
type BlockHandlers struct {
	blockSvc domain.BlockService
	log      *zap.Logger
}

func NewBlockHandlers(blockSvc domain.BlockService, log *zap.Logger) *BlockHandlers {
	return &BlockHandlers{blockSvc: blockSvc, log: log.Named("blocks")}
}

// CreateBlockRequest represents block creation request
type CreateBlockRequest struct {
	UserID     uint      `json:"user_id" binding:"required"`
	Reason     string    `json:"reason" binding:"max=255"`
	ExpireDate time.Time `json:"expire_date" binding:"required"`
}

// Create suspends a user until expire_date
func (h *BlockHandlers) Create(c *gin.Context) {
	var req CreateBlockRequest
	if !bindJSON(c, &req) {
		return
	}
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, h.log, domain.ErrUnauthenticated)
		return
	}

	block, err := h.blockSvc.Create(c.Request.Context(), identity.ID, req.UserID, req.Reason, req.ExpireDate)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": blockView(block)})
}

// List returns the caller's blocks: received for users, issued for admins
func (h *BlockHandlers) List(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	blocks, err := h.blockSvc.List(c.Request.Context(), identity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	views := make([]gin.H, 0, len(blocks))
	for _, b := range blocks {
		views = append(views, blockView(b))
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

// UpdateBlockRequest represents a partial block update
type UpdateBlockRequest struct {
	Reason     *string    `json:"reason" binding:"omitempty,max=255"`
	ExpireDate *time.Time `json:"expire_date"`
}

// Get returns one block; users only see their own
func (h *BlockHandlers) Get(c *gin.Context) {
	id, ok := blockID(c)
	if !ok {
		return
	}
	identity, _ := middleware.CurrentIdentity(c)

	block, err := h.blockSvc.Get(c.Request.Context(), id, identity)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": blockView(block)})
}

// Update changes the reason or the expiry of a block
func (h *BlockHandlers) Update(c *gin.Context) {
	id, ok := blockID(c)
	if !ok {
		return
	}
	var req UpdateBlockRequest
	if !bindJSON(c, &req) {
		return
	}
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, h.log, domain.ErrUnauthenticated)
		return
	}

	block, err := h.blockSvc.Update(c.Request.Context(), identity.ID, id, domain.UpdateBlockRequest{
		Reason:    req.Reason,
		ExpiresAt: req.ExpireDate,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": blockView(block)})
}

// Remove lifts a block
func (h *BlockHandlers) Remove(c *gin.Context) {
	id, ok := blockID(c)
	if !ok {
		return
	}

	if err := h.blockSvc.Remove(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func blockID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid block ID"})
		return 0, false
	}
	return uint(id), true
}

func blockView(b *domain.Block) gin.H {
	return gin.H{
		"id":          b.ID,
		"user_id":     b.UserID,
		"admin_id":    b.AdminID,
		"reason":      b.Reason,
		"expire_date": b.ExpiresAt,
		"created_at":  b.CreatedAt,
	}
}
