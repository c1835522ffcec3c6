package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// AdminHandlers handles administrator provisioning
type AdminHandlers struct {
	adminSvc domain.AdminService
	log      *zap.Logger
}

func NewAdminHandlers(adminSvc domain.AdminService, log *zap.Logger) *AdminHandlers {
	return &AdminHandlers{adminSvc: adminSvc, log: log.Named("admins")}
}

// CreateAdminRequest represents admin creation request
type CreateAdminRequest struct {
	Phone     string `json:"phone" binding:"required,uzphone"`
	Password  string `json:"password" binding:"required"`
	Name      string `json:"name" binding:"max=64"`
	Surname   string `json:"surname" binding:"max=64"`
	IsCreator bool   `json:"is_creator"`
}

// Create provisions a new admin
func (h *AdminHandlers) Create(c *gin.Context) {
	var req CreateAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.adminSvc.Create(c.Request.Context(), domain.CreateAdminRequest{
		Phone:     req.Phone,
		Password:  req.Password,
		Name:      req.Name,
		Surname:   req.Surname,
		IsCreator: req.IsCreator,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": adminView(admin)})
}
