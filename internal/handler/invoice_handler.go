package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/service"
	"backoffice/pkg/pagination"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

type CreateInvoicePayload struct {
	InvoiceNumber          string           `json:"invoice_number"`
	ProjectCode            string           `json:"project_code" binding:"required"`
	AdditionalProjectCodes []string         `json:"additional_project_codes"`
	PercentageOfTotal      decimal.Decimal  `json:"percentage_of_total"`
	Amount                 decimal.Decimal  `json:"amount"`
	Currency               string           `json:"currency" binding:"omitempty,len=3"`
	CustomRate             *decimal.Decimal `json:"custom_rate"`
	InvoiceDate            string           `json:"invoice_date" binding:"required"`
	DueDate                *string          `json:"due_date"`
	Description            string           `json:"description"`
	FileURL                string           `json:"file_url" binding:"omitempty,url"`
}

type UpdateInvoicePayload struct {
	PercentageOfTotal *decimal.Decimal `json:"percentage_of_total"`
	Amount            *decimal.Decimal `json:"amount"`
	Currency          *string          `json:"currency" binding:"omitempty,len=3"`
	CustomRate        *decimal.Decimal `json:"custom_rate"`
	InvoiceDate       *string          `json:"invoice_date"`
	DueDate           *string          `json:"due_date"`
	Description       *string          `json:"description"`
	FileURL           *string          `json:"file_url"`
}

type UpdateInvoiceStatusPayload struct {
	Status string `json:"status" binding:"required,oneof=pending sent paid cancelled"`
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	invoices := router.Group("/api/invoices")
	{
		invoices.GET("", auth.RequirePermission(service.PermInvoicesRead), h.ListInvoices)
		invoices.GET("/:id", auth.RequirePermission(service.PermInvoicesRead), h.GetInvoice)
		invoices.POST("", auth.RequirePermission(service.PermInvoicesWrite), h.CreateInvoice)
		invoices.PUT("/:id", auth.RequirePermission(service.PermInvoicesWrite), h.UpdateInvoice)
		invoices.PATCH("/:id/status", auth.RequirePermission(service.PermInvoicesWrite), h.UpdateInvoiceStatus)
		invoices.DELETE("/:id", auth.RequirePermission(service.PermInvoicesWrite), h.DeleteInvoice)
	}
}

// ListInvoices returns paginated invoices ordered by project and sequence
// @Summary      List invoices
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        page          query     int     false  "Page number (default: 1)"
// @Param        limit         query     int     false  "Items per page (default: 20)"
// @Param        project_code  query     string  false  "Filter by project code"
// @Param        status        query     string  false  "Filter by status: pending, sent, paid, cancelled"
// @Success      200           {object}  response.Response
// @Router       /api/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	p := pagination.Parse(c)
	invoices, total, err := h.invoiceService.List(c.Request.Context(), service.InvoiceFilter{
		ProjectCode: c.Query("project_code"),
		Status:      c.Query("status"),
		Page:        p.Page,
		Limit:       p.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, invoices, p.Page, p.Limit, total))
}

// GetInvoice returns an invoice by id
// @Summary      Get invoice
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// CreateInvoice issues the next invoice in a project's billing chain
// @Summary      Create invoice
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateInvoicePayload  true  "Invoice payload"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	invoiceDate, err := parseDate("invoice_date", req.InvoiceDate)
	if err != nil {
		respondError(c, err)
		return
	}
	due, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.invoiceService.Create(c.Request.Context(), userIDFrom(c), service.CreateInvoiceInput{
		InvoiceNumber:          req.InvoiceNumber,
		ProjectCode:            req.ProjectCode,
		AdditionalProjectCodes: req.AdditionalProjectCodes,
		PercentageOfTotal:      req.PercentageOfTotal,
		Amount:                 req.Amount,
		Currency:               req.Currency,
		CustomRate:             req.CustomRate,
		InvoiceDate:            invoiceDate,
		DueDate:                due,
		Description:            req.Description,
		FileURL:                req.FileURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// UpdateInvoice edits an unpaid invoice and recomputes the project's chain
// @Summary      Update invoice
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Invoice ID"
// @Param        payload  body      UpdateInvoicePayload  true  "Update payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	var req UpdateInvoicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	invoiceDate, err := parseOptionalDate("invoice_date", req.InvoiceDate)
	if err != nil {
		respondError(c, err)
		return
	}
	due, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.invoiceService.Update(c.Request.Context(), userIDFrom(c), id, service.UpdateInvoiceInput{
		PercentageOfTotal: req.PercentageOfTotal,
		Amount:            req.Amount,
		Currency:          req.Currency,
		CustomRate:        req.CustomRate,
		InvoiceDate:       invoiceDate,
		DueDate:           due,
		Description:       req.Description,
		FileURL:           req.FileURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// UpdateInvoiceStatus moves an invoice through pending, sent, paid or cancelled
// @Summary      Update invoice status
// @Tags         invoices
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Invoice ID"
// @Param        payload  body      UpdateInvoiceStatusPayload  true  "Status payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateInvoiceStatus(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	var req UpdateInvoiceStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(c.Request.Context(), userIDFrom(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// DeleteInvoice deletes an unpaid invoice
// @Summary      Delete invoice
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	if err := h.invoiceService.Delete(c.Request.Context(), userIDFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Invoice deleted successfully"}))
}
