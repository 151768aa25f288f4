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

type ProjectHandler struct {
	projectService service.ProjectService
	exportService  service.ExportService
}

func NewProjectHandler(projectService service.ProjectService, exportService service.ExportService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, exportService: exportService}
}

type CreateProjectPayload struct {
	Title        string          `json:"title" binding:"required"`
	CompanyID    *uuid.UUID      `json:"company_id"`
	ManagerID    *uuid.UUID      `json:"manager_id"`
	BillingType  string          `json:"billing_type" binding:"omitempty,oneof=hourly lump_sum"`
	PlannedHours decimal.Decimal `json:"planned_hours"`
	ParentCode   string          `json:"parent_code"`
}

type UpdateProjectPayload struct {
	Title        *string          `json:"title"`
	CompanyID    *uuid.UUID       `json:"company_id"`
	ManagerID    *uuid.UUID       `json:"manager_id"`
	BillingType  *string          `json:"billing_type" binding:"omitempty,oneof=hourly lump_sum"`
	PlannedHours *decimal.Decimal `json:"planned_hours"`
	ActualHours  *decimal.Decimal `json:"actual_hours"`
}

type UpdateProjectStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

func (h *ProjectHandler) RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth) {
	projects := router.Group("/api/projects")
	{
		projects.GET("", auth.RequirePermission(service.PermProjectsRead), h.ListProjects)
		projects.GET("/:code", auth.RequirePermission(service.PermProjectsRead), h.GetProject)
		projects.GET("/:code/ledger.xlsx", auth.RequirePermission(service.PermProjectsRead, service.PermInvoicesRead), h.ExportLedger)
		projects.POST("", auth.RequirePermission(service.PermProjectsWrite), h.CreateProject)
		projects.PUT("/:code", auth.RequirePermission(service.PermProjectsWrite), h.UpdateProject)
		projects.PATCH("/:code/status", auth.RequirePermission(service.PermProjectsWrite), h.UpdateStatus)
		projects.POST("/:code/resync", auth.RequirePermission(service.PermProjectsWrite), h.ResyncStatus)
		projects.DELETE("/:code", auth.RequirePermission(service.PermProjectsWrite), h.DeleteProject)
	}
}

// ListProjects returns paginated projects
// @Summary      List projects
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 20)"
// @Param        status  query     string  false  "Filter by status: pre-lim, ongoing, completed"
// @Param        search  query     string  false  "Search by code or title"
// @Success      200     {object}  response.Response
// @Router       /api/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	p := pagination.Parse(c)
	projects, total, err := h.projectService.List(c.Request.Context(), service.ProjectFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   p.Page,
		Limit:  p.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, projects, p.Page, p.Limit, total))
}

// GetProject returns a project by code
// @Summary      Get project
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Param        code  path      string  true  "Project code"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /api/projects/{code} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

// CreateProject creates a project, or a variation order when parent_code is set
// @Summary      Create project
// @Tags         projects
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateProjectPayload  true  "Project payload"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.projectService.Create(c.Request.Context(), userIDFrom(c), service.CreateProjectInput{
		Title:        req.Title,
		CompanyID:    req.CompanyID,
		ManagerID:    req.ManagerID,
		BillingType:  req.BillingType,
		PlannedHours: req.PlannedHours,
		ParentCode:   req.ParentCode,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// UpdateProject updates project details
// @Summary      Update project
// @Tags         projects
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        code     path      string                true  "Project code"
// @Param        payload  body      UpdateProjectPayload  true  "Update payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/projects/{code} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req UpdateProjectPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.projectService.Update(c.Request.Context(), userIDFrom(c), c.Param("code"), service.UpdateProjectInput{
		Title:        req.Title,
		CompanyID:    req.CompanyID,
		ManagerID:    req.ManagerID,
		BillingType:  req.BillingType,
		PlannedHours: req.PlannedHours,
		ActualHours:  req.ActualHours,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// UpdateStatus reports the derived status; the requested value is never written
// @Summary      Request project status change
// @Tags         projects
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        code     path      string                      true  "Project code"
// @Param        payload  body      UpdateProjectStatusPayload  true  "Requested status"
// @Success      200      {object}  response.Response
// @Router       /api/projects/{code}/status [patch]
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	var req UpdateProjectStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.projectService.UpdateStatus(c.Request.Context(), c.Param("code"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ResyncStatus re-derives the project status from its documents
// @Summary      Resync project status
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Param        code  path      string  true  "Project code"
// @Success      200   {object}  response.Response
// @Router       /api/projects/{code}/resync [post]
func (h *ProjectHandler) ResyncStatus(c *gin.Context) {
	change, err := h.projectService.Resync(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, change))
}

// DeleteProject deletes a project without purchase orders, invoices or variation orders
// @Summary      Delete project
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Param        code  path      string  true  "Project code"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /api/projects/{code} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectService.Delete(c.Request.Context(), userIDFrom(c), c.Param("code")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Project deleted successfully"}))
}

// ExportLedger downloads the project's purchase order and invoice ledger
// @Summary      Export project ledger
// @Tags         projects
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        code  path  string  true  "Project code"
// @Success      200
// @Failure      404   {object}  response.Response
// @Router       /api/projects/{code}/ledger.xlsx [get]
func (h *ProjectHandler) ExportLedger(c *gin.Context) {
	f, filename, err := h.exportService.ProjectLedger(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
