package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

type UpdateSettingsPayload struct {
	CompanyName    *string `json:"company_name"`
	RegistrationNo *string `json:"registration_no"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email" binding:"omitempty,email"`
	BankName       *string `json:"bank_name"`
	BankAccount    *string `json:"bank_account"`
	InvoicePrefix  *string `json:"invoice_prefix" binding:"omitempty,max=10"`
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	settings := router.Group("/api/settings")
	{
		settings.GET("", h.GetSettings)
		settings.PUT("", auth.RequirePermission(service.PermSettingsManage), h.UpdateSettings)
	}
}

// GetSettings returns the company settings
// @Summary      Get company settings
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// UpdateSettings updates company settings, including the invoice number prefix
// @Summary      Update company settings
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      UpdateSettingsPayload  true  "Settings payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), userIDFrom(c), service.UpdateSettingsInput{
		CompanyName:    req.CompanyName,
		RegistrationNo: req.RegistrationNo,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		BankName:       req.BankName,
		BankAccount:    req.BankAccount,
		InvoicePrefix:  req.InvoicePrefix,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}
