package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentflow/internal/services"
)

// PaymentsHandler covers proration math and dunning configuration.
type PaymentsHandler struct {
	proration *services.ProrationService
	dunning   *services.DunningService
}

func NewPaymentsHandler(proration *services.ProrationService, dunning *services.DunningService) *PaymentsHandler {
	return &PaymentsHandler{proration: proration, dunning: dunning}
}

type prorateRequest struct {
	StartDate       *string  `json:"startDate"`
	EndDate         *string  `json:"endDate"`
	MonthlyRent     *float64 `json:"monthlyRent"`
	ProrationMethod string   `json:"prorationMethod"`
	LeaseID         string   `json:"leaseId"`
	OrganizationID  string   `json:"organizationId"`
}

func (h *PaymentsHandler) Prorate(c *gin.Context) {
	var req prorateRequest
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

	result, err := h.proration.Calculate(services.ProrationInput{
		StartDate:       start,
		EndDate:         end,
		MonthlyRent:     req.MonthlyRent,
		ProrationMethod: req.ProrationMethod,
		LeaseID:         req.LeaseID,
		OrganizationID:  orgFromBody(c, req.OrganizationID),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PaymentsHandler) SetProrationRule(c *gin.Context) {
	var req services.ProrationRuleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.OrganizationID = orgFromBody(c, req.OrganizationID)

	rule, err := h.proration.SetRule(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (h *PaymentsHandler) GetDunningSettings(c *gin.Context) {
	settings, err := h.dunning.GetSettings(orgFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *PaymentsHandler) UpdateDunningSettings(c *gin.Context) {
	var req services.DunningSettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.OrganizationID = orgFromBody(c, req.OrganizationID)

	settings, err := h.dunning.UpdateSettings(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
