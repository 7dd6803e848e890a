package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentflow/internal/services"
)

type TenantHandler struct {
	tenants *services.TenantService
}

func NewTenantHandler(tenants *services.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

func (h *TenantHandler) Create(c *gin.Context) {
	var req services.TenantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.OrganizationID = orgFromBody(c, req.OrganizationID)

	t, err := h.tenants.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TenantHandler) GetByID(c *gin.Context) {
	t, err := h.tenants.GetByID(c.Param("id"), orgFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TenantHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	rows, err := h.tenants.List(orgFromQuery(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *TenantHandler) Update(c *gin.Context) {
	var req services.TenantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.OrganizationID = orgFromBody(c, req.OrganizationID)

	t, err := h.tenants.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TenantHandler) Delete(c *gin.Context) {
	if err := h.tenants.Delete(c.Param("id"), orgFromQuery(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tenant deleted"})
}
