package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentflow/internal/services"
)

type ChangeRequestHandler struct {
	requests *services.ChangeRequestService
}

func NewChangeRequestHandler(requests *services.ChangeRequestService) *ChangeRequestHandler {
	return &ChangeRequestHandler{requests: requests}
}

func (h *ChangeRequestHandler) List(c *gin.Context) {
	org := orgFromQuery(c)
	status := c.Query("status")

	rows, err := h.requests.List(org, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type createChangeRequestBody struct {
	ScheduleID      string  `json:"scheduleId"`
	TenantID        *string `json:"tenantId"`
	RequestedDueDay *int    `json:"requestedDueDay"`
	RequestedStart  *string `json:"requestedStartDate"`
	Reason          string  `json:"reason"`
	OrganizationID  string  `json:"organizationId"`
}

func (h *ChangeRequestHandler) Create(c *gin.Context) {
	var req createChangeRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDatePtr(req.RequestedStart, "requestedStartDate")
	if err != nil {
		respondError(c, err)
		return
	}

	cr, err := h.requests.Create(services.CreateChangeRequestInput{
		ScheduleID:         req.ScheduleID,
		TenantID:           req.TenantID,
		RequestedDueDay:    req.RequestedDueDay,
		RequestedStartDate: start,
		Reason:             req.Reason,
		OrganizationID:     orgFromBody(c, req.OrganizationID),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cr)
}

type decideChangeRequestBody struct {
	Action      string `json:"action" binding:"required"`
	ManagerNote string `json:"managerNote"`
}

// Decide approves or denies a pending request. Approval rewrites the
// schedule terms in the same transaction.
func (h *ChangeRequestHandler) Decide(c *gin.Context) {
	var req decideChangeRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cr, err := h.requests.Decide(c.Param("id"), orgFromQuery(c), req.Action, req.ManagerNote)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cr)
}
