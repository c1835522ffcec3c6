package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// PolicyHandlers exposes the route to role table
type PolicyHandlers struct {
	policySvc domain.PolicyService
	log       *zap.Logger
}

func NewPolicyHandlers(policySvc domain.PolicyService, log *zap.Logger) *PolicyHandlers {
	return &PolicyHandlers{policySvc: policySvc, log: log.Named("policies")}
}

type policyReq struct {
	Role   string `json:"role" binding:"required,oneof=USER ADMIN SUPERADMIN PUBLIC"`
	Route  string `json:"route" binding:"required,startswith=/"`
	Method string `json:"method" binding:"required,oneof=GET POST PUT PATCH DELETE"`
}

func (h *PolicyHandlers) List(c *gin.Context) {
	policies, err := h.policySvc.GetPolicies()
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	views := make([]gin.H, 0, len(policies))
	for _, p := range policies {
		if len(p) < 3 {
			continue
		}
		views = append(views, gin.H{"role": p[0], "route": p[1], "method": p[2]})
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

func (h *PolicyHandlers) Add(c *gin.Context) {
	var r policyReq
	if !bindJSON(c, &r) {
		return
	}
	if err := h.policySvc.AddPolicy(domain.Role(r.Role), r.Route, r.Method); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r policyReq
	if !bindJSON(c, &r) {
		return
	}
	if err := h.policySvc.RemovePolicy(domain.Role(r.Role), r.Route, r.Method); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
