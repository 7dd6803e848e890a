package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentflow/internal/services"
)

type PropertyHandler struct {
	properties *services.PropertyService
}

func NewPropertyHandler(properties *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var req services.PropertyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.OrganizationID = orgFromBody(c, req.OrganizationID)

	p, err := h.properties.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PropertyHandler) GetByID(c *gin.Context) {
	p, err := h.properties.GetByID(c.Param("id"), orgFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PropertyHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	rows, err := h.properties.List(orgFromQuery(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	var req services.PropertyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.OrganizationID = orgFromBody(c, req.OrganizationID)

	p, err := h.properties.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	if err := h.properties.Delete(c.Param("id"), orgFromQuery(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "property deleted"})
}
