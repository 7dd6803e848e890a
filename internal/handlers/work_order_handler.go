package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentflow/internal/services"
)

type WorkOrderHandler struct {
	orders *services.WorkOrderService
}

func NewWorkOrderHandler(orders *services.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{orders: orders}
}

func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req services.CreateWorkOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.OrganizationID = orgFromBody(c, req.OrganizationID)

	wo, err := h.orders.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wo)
}

func (h *WorkOrderHandler) GetByID(c *gin.Context) {
	wo, err := h.orders.GetByID(c.Param("id"), orgFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

func (h *WorkOrderHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	rows, err := h.orders.List(orgFromQuery(c), c.Query("propertyId"), c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type workOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *WorkOrderHandler) UpdateStatus(c *gin.Context) {
	var req workOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wo, err := h.orders.UpdateStatus(c.Param("id"), orgFromQuery(c), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

type assignVendorRequest struct {
	VendorID string `json:"vendorId" binding:"required"`
}

func (h *WorkOrderHandler) AssignVendor(c *gin.Context) {
	var req assignVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wo, err := h.orders.AssignVendor(c.Param("id"), orgFromQuery(c), req.VendorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

func (h *WorkOrderHandler) CreateVendor(c *gin.Context) {
	var req services.VendorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.OrganizationID = orgFromBody(c, req.OrganizationID)

	v, err := h.orders.CreateVendor(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *WorkOrderHandler) ListVendors(c *gin.Context) {
	rows, err := h.orders.ListVendors(orgFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
