package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentflow/internal/services"
)

type LeaseHandler struct {
	leases *services.LeaseService
}

func NewLeaseHandler(leases *services.LeaseService) *LeaseHandler {
	return &LeaseHandler{leases: leases}
}

type createLeaseRequest struct {
	PropertyID     string   `json:"propertyId"`
	TenantID       string   `json:"tenantId"`
	UnitLabel      string   `json:"unitLabel"`
	RentAmount     *float64 `json:"rentAmount"`
	StartDate      *string  `json:"startDate"`
	EndDate        *string  `json:"endDate"`
	OrganizationID string   `json:"organizationId"`
}

func (h *LeaseHandler) Create(c *gin.Context) {
	var req createLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDatePtr(req.StartDate, "startDate")
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := parseDatePtr(req.EndDate, "endDate")
	if err != nil {
		respondError(c, err)
		return
	}

	lease, err := h.leases.Create(services.CreateLeaseInput{
		PropertyID:     req.PropertyID,
		TenantID:       req.TenantID,
		UnitLabel:      req.UnitLabel,
		RentAmount:     req.RentAmount,
		StartDate:      start,
		EndDate:        end,
		OrganizationID: orgFromBody(c, req.OrganizationID),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lease)
}

func (h *LeaseHandler) GetByID(c *gin.Context) {
	lease, err := h.leases.GetByID(c.Param("id"), orgFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lease)
}

func (h *LeaseHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	rows, err := h.leases.List(orgFromQuery(c), c.Query("propertyId"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type updateLeaseStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *LeaseHandler) UpdateStatus(c *gin.Context) {
	var req updateLeaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lease, err := h.leases.UpdateStatus(c.Param("id"), orgFromQuery(c), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lease)
}
