package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/service"
	"backoffice/pkg/pagination"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorHandler serves purchase orders issued to vendors and the invoices
// received against them.
type VendorHandler struct {
	issuedPOService        service.IssuedPOService
	receivedInvoiceService service.ReceivedInvoiceService
}

func NewVendorHandler(issuedPOService service.IssuedPOService, receivedInvoiceService service.ReceivedInvoiceService) *VendorHandler {
	return &VendorHandler{issuedPOService: issuedPOService, receivedInvoiceService: receivedInvoiceService}
}

type CreateIssuedPOPayload struct {
	PONumber    string           `json:"po_number" binding:"required"`
	ProjectCode string           `json:"project_code"`
	VendorID    *uuid.UUID       `json:"vendor_id"`
	VendorName  string           `json:"vendor_name"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Currency    string           `json:"currency" binding:"omitempty,len=3"`
	CustomRate  *decimal.Decimal `json:"custom_rate"`
	IssueDate   string           `json:"issue_date" binding:"required"`
	FileURL     string           `json:"file_url" binding:"omitempty,url"`
}

type CreateReceivedInvoicePayload struct {
	InvoiceNumber string           `json:"invoice_number" binding:"required"`
	IssuedPOID    uuid.UUID        `json:"issued_po_id" binding:"required"`
	Amount        decimal.Decimal  `json:"amount"`
	Currency      string           `json:"currency" binding:"omitempty,len=3"`
	CustomRate    *decimal.Decimal `json:"custom_rate"`
	ReceivedDate  string           `json:"received_date" binding:"required"`
}

type UpdateReceivedInvoiceStatusPayload struct {
	Status        string `json:"status" binding:"required,oneof=pending verified paid disputed"`
	DisputeReason string `json:"dispute_reason"`
}

func (h *VendorHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	issued := router.Group("/api/issued-pos")
	{
		issued.GET("", auth.RequirePermission(service.PermVendorRead), h.ListIssuedPOs)
		issued.GET("/:id", auth.RequirePermission(service.PermVendorRead), h.GetIssuedPO)
		issued.POST("", auth.RequirePermission(service.PermVendorWrite), h.CreateIssuedPO)
	}

	received := router.Group("/api/received-invoices")
	{
		received.GET("", auth.RequirePermission(service.PermVendorRead), h.ListReceivedInvoices)
		received.GET("/:id", auth.RequirePermission(service.PermVendorRead), h.GetReceivedInvoice)
		received.POST("", auth.RequirePermission(service.PermVendorWrite), h.CreateReceivedInvoice)
		received.PATCH("/:id/status", auth.RequirePermission(service.PermVendorWrite), h.UpdateReceivedInvoiceStatus)
	}
}

// ListIssuedPOs returns paginated vendor purchase orders
// @Summary      List issued purchase orders
// @Tags         vendor
// @Security     BearerAuth
// @Produce      json
// @Param        page          query     int     false  "Page number (default: 1)"
// @Param        limit         query     int     false  "Items per page (default: 20)"
// @Param        project_code  query     string  false  "Filter by project code"
// @Param        status        query     string  false  "Filter by status: issued, received, completed"
// @Success      200           {object}  response.Response
// @Router       /api/issued-pos [get]
func (h *VendorHandler) ListIssuedPOs(c *gin.Context) {
	p := pagination.Parse(c)
	pos, total, err := h.issuedPOService.List(c.Request.Context(), c.Query("project_code"), c.Query("status"), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, pos, p.Page, p.Limit, total))
}

// GetIssuedPO returns an issued purchase order
// @Summary      Get issued purchase order
// @Tags         vendor
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Issued PO ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/issued-pos/{id} [get]
func (h *VendorHandler) GetIssuedPO(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	po, err := h.issuedPOService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, po))
}

// CreateIssuedPO records a purchase order sent to a vendor
// @Summary      Create issued purchase order
// @Tags         vendor
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateIssuedPOPayload  true  "Issued PO payload"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/issued-pos [post]
func (h *VendorHandler) CreateIssuedPO(c *gin.Context) {
	var req CreateIssuedPOPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	issueDate, err := parseDate("issue_date", req.IssueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	po, err := h.issuedPOService.Create(c.Request.Context(), userIDFrom(c), service.CreateIssuedPOInput{
		PONumber:    req.PONumber,
		ProjectCode: req.ProjectCode,
		VendorID:    req.VendorID,
		VendorName:  req.VendorName,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		CustomRate:  req.CustomRate,
		IssueDate:   issueDate,
		FileURL:     req.FileURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, po))
}

// ListReceivedInvoices returns paginated vendor invoices
// @Summary      List received invoices
// @Tags         vendor
// @Security     BearerAuth
// @Produce      json
// @Param        page          query     int     false  "Page number (default: 1)"
// @Param        limit         query     int     false  "Items per page (default: 20)"
// @Param        issued_po_id  query     string  false  "Filter by issued PO"
// @Param        status        query     string  false  "Filter by status: pending, verified, paid, disputed"
// @Success      200           {object}  response.Response
// @Router       /api/received-invoices [get]
func (h *VendorHandler) ListReceivedInvoices(c *gin.Context) {
	p := pagination.Parse(c)
	var issuedPOID *uuid.UUID
	if raw := c.Query("issued_po_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid issued_po_id"))
			return
		}
		issuedPOID = &parsed
	}

	invoices, total, err := h.receivedInvoiceService.List(c.Request.Context(), issuedPOID, c.Query("status"), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, invoices, p.Page, p.Limit, total))
}

// GetReceivedInvoice returns a vendor invoice
// @Summary      Get received invoice
// @Tags         vendor
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Received invoice ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/received-invoices/{id} [get]
func (h *VendorHandler) GetReceivedInvoice(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	invoice, err := h.receivedInvoiceService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// CreateReceivedInvoice records a vendor invoice against an issued PO
// @Summary      Create received invoice
// @Tags         vendor
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateReceivedInvoicePayload  true  "Received invoice payload"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/received-invoices [post]
func (h *VendorHandler) CreateReceivedInvoice(c *gin.Context) {
	var req CreateReceivedInvoicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	receivedDate, err := parseDate("received_date", req.ReceivedDate)
	if err != nil {
		respondError(c, err)
		return
	}

	invoice, err := h.receivedInvoiceService.Create(c.Request.Context(), userIDFrom(c), service.CreateReceivedInvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		IssuedPOID:    req.IssuedPOID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		CustomRate:    req.CustomRate,
		ReceivedDate:  receivedDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, invoice))
}

// UpdateReceivedInvoiceStatus verifies, pays or disputes a vendor invoice
// @Summary      Update received invoice status
// @Tags         vendor
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                              true  "Received invoice ID"
// @Param        payload  body      UpdateReceivedInvoiceStatusPayload  true  "Status payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/received-invoices/{id}/status [patch]
func (h *VendorHandler) UpdateReceivedInvoiceStatus(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	var req UpdateReceivedInvoiceStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invoice, err := h.receivedInvoiceService.UpdateStatus(c.Request.Context(), userIDFrom(c), id, service.UpdateReceivedInvoiceStatusInput{
		Status:        req.Status,
		DisputeReason: req.DisputeReason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}
