package handler

import (
	"backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers groups every API handler for registration.
type Handlers struct {
	Project       *ProjectHandler
	PurchaseOrder *PurchaseOrderHandler
	Invoice       *InvoiceHandler
	Vendor        *VendorHandler
	Company       *CompanyHandler
	Settings      *SettingsHandler
	Audit         *AuditHandler
	User          *UserHandler
	Statistics    *StatisticsHandler
}

// RegisterRoutes mounts every handler behind authentication.
func (h Handlers) RegisterRoutes(router *gin.Engine, auth *middleware.Auth) {
	api := router.Group("", auth.Authenticate())

	h.Project.RegisterRoutes(api, auth)
	h.PurchaseOrder.RegisterRoutes(api, auth)
	h.Invoice.RegisterRoutes(api, auth)
	h.Vendor.RegisterRoutes(api, auth)
	h.Company.RegisterRoutes(api, auth)
	h.Settings.RegisterRoutes(api, auth)
	h.Audit.RegisterRoutes(api, auth)
	h.User.RegisterRoutes(api, auth)
	h.Statistics.RegisterRoutes(api, auth)
}
