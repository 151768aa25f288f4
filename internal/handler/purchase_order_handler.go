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

type PurchaseOrderHandler struct {
	poService service.PurchaseOrderService
}

func NewPurchaseOrderHandler(poService service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{poService: poService}
}

type CreatePurchaseOrderPayload struct {
	PONumber     string           `json:"po_number" binding:"required"`
	ProjectCode  string           `json:"project_code" binding:"required"`
	Description  string           `json:"description"`
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency" binding:"omitempty,len=3"`
	CustomRate   *decimal.Decimal `json:"custom_rate"`
	ReceivedDate string           `json:"received_date" binding:"required"`
	DueDate      *string          `json:"due_date"`
	FileURL      string           `json:"file_url" binding:"omitempty,url"`
}

type RevisePurchaseOrderPayload struct {
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency" binding:"omitempty,len=3"`
	CustomRate   *decimal.Decimal `json:"custom_rate"`
	RevisionDate string           `json:"revision_date" binding:"required"`
	Reason       string           `json:"revision_reason" binding:"required"`
	Description  *string          `json:"description"`
	DueDate      *string          `json:"due_date"`
	FileURL      string           `json:"file_url" binding:"omitempty,url"`
}

type UpdatePurchaseOrderPayload struct {
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	Currency     *string          `json:"currency" binding:"omitempty,len=3"`
	CustomRate   *decimal.Decimal `json:"custom_rate"`
	ReceivedDate *string          `json:"received_date"`
	DueDate      *string          `json:"due_date"`
	Status       *string          `json:"status" binding:"omitempty,oneof=received invoiced paid"`
	FileURL      *string          `json:"file_url"`
}

type AdjustPurchaseOrderPayload struct {
	AdjustedAmount decimal.Decimal `json:"amount_myr_adjusted"`
	Reason         string          `json:"adjustment_reason" binding:"required"`
}

func (h *PurchaseOrderHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	pos := router.Group("/api/purchase-orders")
	{
		pos.GET("", auth.RequirePermission(service.PermPurchaseOrdersRead), h.ListPurchaseOrders)
		pos.GET("/:id", auth.RequirePermission(service.PermPurchaseOrdersRead), h.GetPurchaseOrder)
		pos.GET("/history/:base", auth.RequirePermission(service.PermPurchaseOrdersRead), h.RevisionHistory)
		pos.GET("/active/:base", auth.RequirePermission(service.PermPurchaseOrdersRead), h.ActiveRevision)
		pos.POST("", auth.RequirePermission(service.PermPurchaseOrdersEdit), h.CreatePurchaseOrder)
		pos.POST("/:id/revisions", auth.RequirePermission(service.PermPurchaseOrdersEdit), h.CreateRevision)
		pos.PUT("/:id", auth.RequirePermission(service.PermPurchaseOrdersEdit), h.UpdatePurchaseOrder)
		pos.DELETE("/:id", auth.RequirePermission(service.PermPurchaseOrdersEdit), h.DeletePurchaseOrder)
		pos.DELETE("/:id/file", auth.RequirePermission(service.PermPurchaseOrdersEdit), h.ClearFile)
		pos.PUT("/:id/adjustment", auth.RequirePermission(service.PermPurchaseOrdersAdj), h.AdjustMYRAmount)
		pos.DELETE("/:id/adjustment", auth.RequirePermission(service.PermPurchaseOrdersAdj), h.ClearAdjustment)
	}
}

// ListPurchaseOrders returns paginated purchase orders
// @Summary      List purchase orders
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        page          query     int     false  "Page number (default: 1)"
// @Param        limit         query     int     false  "Items per page (default: 20)"
// @Param        project_code  query     string  false  "Filter by project code"
// @Param        status        query     string  false  "Filter by status: received, invoiced, paid"
// @Param        active_only   query     bool    false  "Only active revisions"
// @Success      200           {object}  response.Response
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) ListPurchaseOrders(c *gin.Context) {
	p := pagination.Parse(c)
	pos, total, err := h.poService.List(c.Request.Context(), service.PurchaseOrderFilter{
		ProjectCode: c.Query("project_code"),
		Status:      c.Query("status"),
		ActiveOnly:  c.Query("active_only") == "true",
		Page:        p.Page,
		Limit:       p.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, pos, p.Page, p.Limit, total))
}

// GetPurchaseOrder returns a purchase order by id
// @Summary      Get purchase order
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Purchase order ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetPurchaseOrder(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	po, err := h.poService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, po))
}

// RevisionHistory lists every revision sharing a base PO number, oldest first
// @Summary      Purchase order revision history
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        base  path      string  true  "Base PO number"
// @Success      200   {object}  response.Response
// @Router       /api/purchase-orders/history/{base} [get]
func (h *PurchaseOrderHandler) RevisionHistory(c *gin.Context) {
	history, err := h.poService.RevisionHistory(c.Request.Context(), c.Param("base"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, history))
}

// ActiveRevision returns the active revision for a base PO number
// @Summary      Active purchase order revision
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        base  path      string  true  "Base PO number"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /api/purchase-orders/active/{base} [get]
func (h *PurchaseOrderHandler) ActiveRevision(c *gin.Context) {
	po, err := h.poService.ActiveRevision(c.Request.Context(), c.Param("base"))
	if err != nil {
		respondError(c, err)
		return
	}
	if po == nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "No active revision for "+c.Param("base")))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, po))
}

// CreatePurchaseOrder records a received purchase order
// @Summary      Create purchase order
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      CreatePurchaseOrderPayload  true  "Purchase order payload"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) CreatePurchaseOrder(c *gin.Context) {
	var req CreatePurchaseOrderPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	received, err := parseDate("received_date", req.ReceivedDate)
	if err != nil {
		respondError(c, err)
		return
	}
	due, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.poService.Create(c.Request.Context(), userIDFrom(c), service.CreatePurchaseOrderInput{
		PONumber:     req.PONumber,
		ProjectCode:  req.ProjectCode,
		Description:  req.Description,
		Amount:       req.Amount,
		Currency:     req.Currency,
		CustomRate:   req.CustomRate,
		ReceivedDate: received,
		DueDate:      due,
		FileURL:      req.FileURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// CreateRevision supersedes a purchase order with a new revision
// @Summary      Revise purchase order
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Purchase order ID being revised"
// @Param        payload  body      RevisePurchaseOrderPayload  true  "Revision payload"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/purchase-orders/{id}/revisions [post]
func (h *PurchaseOrderHandler) CreateRevision(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	var req RevisePurchaseOrderPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	revisionDate, err := parseDate("revision_date", req.RevisionDate)
	if err != nil {
		respondError(c, err)
		return
	}
	due, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.poService.CreateRevision(c.Request.Context(), userIDFrom(c), id, service.RevisePurchaseOrderInput{
		Amount:       req.Amount,
		Currency:     req.Currency,
		CustomRate:   req.CustomRate,
		RevisionDate: revisionDate,
		Reason:       req.Reason,
		Description:  req.Description,
		DueDate:      due,
		FileURL:      req.FileURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// UpdatePurchaseOrder edits a purchase order in place
// @Summary      Update purchase order
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Purchase order ID"
// @Param        payload  body      UpdatePurchaseOrderPayload  true  "Update payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) UpdatePurchaseOrder(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	var req UpdatePurchaseOrderPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	received, err := parseOptionalDate("received_date", req.ReceivedDate)
	if err != nil {
		respondError(c, err)
		return
	}
	due, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	po, err := h.poService.Update(c.Request.Context(), userIDFrom(c), id, service.UpdatePurchaseOrderInput{
		Description:  req.Description,
		Amount:       req.Amount,
		Currency:     req.Currency,
		CustomRate:   req.CustomRate,
		ReceivedDate: received,
		DueDate:      due,
		Status:       req.Status,
		FileURL:      req.FileURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, po))
}

// DeletePurchaseOrder deletes a purchase order and reactivates its predecessor
// @Summary      Delete purchase order
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Purchase order ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/purchase-orders/{id} [delete]
func (h *PurchaseOrderHandler) DeletePurchaseOrder(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	change, err := h.poService.Delete(c.Request.Context(), userIDFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"message":        "Purchase order deleted successfully",
		"project_status": change,
	}))
}

// ClearFile detaches the uploaded document from a purchase order
// @Summary      Clear purchase order file
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Purchase order ID"
// @Success      200  {object}  response.Response
// @Router       /api/purchase-orders/{id}/file [delete]
func (h *PurchaseOrderHandler) ClearFile(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	po, err := h.poService.ClearFile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, po))
}

// AdjustMYRAmount overrides the converted MYR amount within 50% of the original
// @Summary      Adjust purchase order MYR amount
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Purchase order ID"
// @Param        payload  body      AdjustPurchaseOrderPayload  true  "Adjustment payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/purchase-orders/{id}/adjustment [put]
func (h *PurchaseOrderHandler) AdjustMYRAmount(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	var req AdjustPurchaseOrderPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	po, err := h.poService.AdjustMYRAmount(c.Request.Context(), userIDFrom(c), id, service.AdjustPurchaseOrderInput{
		AdjustedAmount: req.AdjustedAmount,
		Reason:         req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, po))
}

// ClearAdjustment removes a manual MYR adjustment
// @Summary      Clear purchase order adjustment
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Purchase order ID"
// @Success      200  {object}  response.Response
// @Router       /api/purchase-orders/{id}/adjustment [delete]
func (h *PurchaseOrderHandler) ClearAdjustment(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}
	po, err := h.poService.ClearAdjustment(c.Request.Context(), userIDFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, po))
}
