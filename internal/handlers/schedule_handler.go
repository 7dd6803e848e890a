package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentflow/internal/services"
)

type ScheduleHandler struct {
	schedules *services.ScheduleService
}

func NewScheduleHandler(schedules *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// List returns the deduplicated payment schedules for a lease (or for the
// whole organization when leaseId is omitted).
func (h *ScheduleHandler) List(c *gin.Context) {
	org := orgFromQuery(c)
	leaseID := c.Query("leaseId")

	rows, err := h.schedules.List(org, leaseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type createScheduleRequest struct {
	LeaseID        string  `json:"leaseId"`
	RentAmount     *float64 `json:"rentAmount"`
	DueDay         *int     `json:"dueDay"`
	StartDate      *string  `json:"startDate"`
	EndDate        *string  `json:"endDate"`
	IsActive       *bool    `json:"isActive"`
	OrganizationID string   `json:"organizationId"`
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req createScheduleRequest
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

	created, err := h.schedules.Create(services.CreateScheduleInput{
		LeaseID:        req.LeaseID,
		RentAmount:     req.RentAmount,
		DueDay:         req.DueDay,
		StartDate:      start,
		EndDate:        end,
		IsActive:       req.IsActive,
		OrganizationID: orgFromBody(c, req.OrganizationID),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type weeklyPlanRequest struct {
	LeaseID        string   `json:"leaseId"`
	MonthlyRent    *float64 `json:"monthlyRent"`
	StartDate      *string  `json:"startDate"`
	OrganizationID string   `json:"organizationId"`
}

func (h *ScheduleHandler) GenerateWeeklyPlan(c *gin.Context) {
	var req weeklyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDatePtr(req.StartDate, "startDate")
	if err != nil {
		respondError(c, err)
		return
	}

	plan, err := h.schedules.GenerateWeeklyPlan(services.WeeklyPlanInput{
		LeaseID:        req.LeaseID,
		MonthlyRent:    req.MonthlyRent,
		StartDate:      start,
		OrganizationID: orgFromBody(c, req.OrganizationID),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"schedules": plan})
}
