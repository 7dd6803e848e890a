package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentflow/internal/services"
)

type InvoiceHandler struct {
	invoices *services.InvoiceService
	billing  *services.BillingService
}

func NewInvoiceHandler(invoices *services.InvoiceService, billing *services.BillingService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, billing: billing}
}

type createInvoiceRequest struct {
	LeaseID        string   `json:"leaseId"`
	Amount         *float64 `json:"amount"`
	Description    string   `json:"description"`
	DueDate        *string  `json:"dueDate"`
	OrganizationID string   `json:"organizationId"`
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	due, err := parseDatePtr(req.DueDate, "dueDate")
	if err != nil {
		respondError(c, err)
		return
	}

	inv, err := h.invoices.Create(services.CreateInvoiceInput{
		LeaseID:        req.LeaseID,
		Amount:         req.Amount,
		Description:    req.Description,
		DueDate:        due,
		OrganizationID: orgFromBody(c, req.OrganizationID),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *InvoiceHandler) GetByID(c *gin.Context) {
	inv, err := h.invoices.GetByID(c.Param("id"), orgFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	rows, err := h.invoices.List(orgFromQuery(c), c.Query("leaseId"), c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	inv, err := h.invoices.MarkPaid(c.Param("id"), orgFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// CreatePaymentIntent opens a card payment for the invoice through the
// billing provider and returns the client secret.
func (h *InvoiceHandler) CreatePaymentIntent(c *gin.Context) {
	intent, err := h.billing.OpenPayment(c.Param("id"), orgFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, intent)
}

func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id := c.Param("id")
	data, err := h.invoices.RenderPDF(id, orgFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", data)
}
