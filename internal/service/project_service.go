package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/lock"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	projectCodeLockTTL = 10 * time.Second
	maxYearlyProjects  = 999
)

// StatusNotSettableMessage explains why PATCH status never writes.
const StatusNotSettableMessage = "project status is derived from purchase orders and invoices and cannot be set directly"

// --- DTOs ---

type CreateProjectInput struct {
	Title        string
	CompanyID    *uuid.UUID
	ManagerID    *uuid.UUID
	BillingType  string
	PlannedHours decimal.Decimal
	// ParentCode creates a variation order of that project when set.
	ParentCode string
}

type UpdateProjectInput struct {
	Title        *string
	CompanyID    *uuid.UUID
	ManagerID    *uuid.UUID
	BillingType  *string
	PlannedHours *decimal.Decimal
	ActualHours  *decimal.Decimal
}

type ProjectFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

type ProjectResponse struct {
	ID               uuid.UUID       `json:"id"`
	Code             string          `json:"code"`
	Title            string          `json:"title"`
	CompanyID        *uuid.UUID      `json:"company_id"`
	CompanyName      string          `json:"company_name,omitempty"`
	ManagerID        *uuid.UUID      `json:"manager_id"`
	Status           string          `json:"status"`
	BillingType      string          `json:"billing_type"`
	PlannedHours     decimal.Decimal `json:"planned_hours"`
	ActualHours      decimal.Decimal `json:"actual_hours"`
	POReceivedDate   *time.Time      `json:"po_received_date"`
	CompletionDate   *time.Time      `json:"completion_date"`
	ParentProjectID  *uuid.UUID      `json:"parent_project_id"`
	VONumber         *int            `json:"vo_number"`
	IsVariationOrder bool            `json:"is_variation_order"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProjectResult carries the newly assigned manager, if any, for notification.
type ProjectResult struct {
	Project              ProjectResponse `json:"project"`
	NewlyAssignedManager *uuid.UUID      `json:"newly_assigned_manager,omitempty"`
}

type StatusUpdateResult struct {
	ProjectCode string `json:"project_code"`
	Status      string `json:"status"`
	Message     string `json:"message"`
}

// --- Interface ---

type ProjectService interface {
	Create(ctx context.Context, userID string, in CreateProjectInput) (ProjectResult, error)
	Update(ctx context.Context, userID string, code string, in UpdateProjectInput) (ProjectResult, error)
	UpdateStatus(ctx context.Context, code string, requested string) (StatusUpdateResult, error)
	Resync(ctx context.Context, code string) (StatusChange, error)
	Get(ctx context.Context, code string) (ProjectResponse, error)
	List(ctx context.Context, filter ProjectFilter) ([]ProjectResponse, int64, error)
	Delete(ctx context.Context, userID string, code string) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	poRepo      repository.PurchaseOrderRepository
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	deriver     *StatusDeriver
	locker      lock.Locker
	notifier    Notifier
	log         *logrus.Logger
	now         func() time.Time
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	poRepo repository.PurchaseOrderRepository,
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	deriver *StatusDeriver,
	locker lock.Locker,
	notifier Notifier,
	log *logrus.Logger,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		poRepo:      poRepo,
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		deriver:     deriver,
		locker:      locker,
		notifier:    orNop(notifier),
		log:         log,
		now:         time.Now,
	}
}

var validBillingTypes = map[string]bool{
	model.BillingTypeHourly:  true,
	model.BillingTypeLumpSum: true,
}

// nextProjectCode returns J<yy><nnn> following the highest existing sequence
// for the year. Codes that do not fit the pattern are ignored.
func nextProjectCode(prefix string, existing []string) (string, error) {
	max := 0
	for _, code := range existing {
		suffix := strings.TrimPrefix(code, prefix)
		if len(suffix) != 3 {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	if max >= maxYearlyProjects {
		return "", apperror.Validation("project codes for %s are exhausted", prefix)
	}
	return fmt.Sprintf("%s%03d", prefix, max+1), nil
}

func (s *projectService) checkRefs(ctx context.Context, companyID, managerID *uuid.UUID) error {
	if companyID != nil {
		company, err := s.companyRepo.FindByID(ctx, *companyID)
		if err != nil {
			return lookupErr(err, "company %s not found", *companyID)
		}
		if company.Type == model.CompanyTypeVendor {
			return apperror.Validation("company %s is a vendor, not a client", company.Name)
		}
	}
	if managerID != nil {
		if _, err := s.userRepo.GetByID(ctx, *managerID); err != nil {
			return lookupErr(err, "user %s not found", *managerID)
		}
	}
	return nil
}

// --- Implementation ---

func (s *projectService) Create(ctx context.Context, userID string, in CreateProjectInput) (ProjectResult, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return ProjectResult{}, apperror.Validation("title is required")
	}
	billingType := in.BillingType
	if billingType == "" {
		billingType = model.BillingTypeLumpSum
	}
	if !validBillingTypes[billingType] {
		return ProjectResult{}, apperror.Validation("billing_type must be one of: hourly, lump_sum")
	}
	if in.PlannedHours.IsNegative() {
		return ProjectResult{}, apperror.Validation("planned_hours cannot be negative")
	}
	if err := s.checkRefs(ctx, in.CompanyID, in.ManagerID); err != nil {
		return ProjectResult{}, err
	}

	parentCode := strings.TrimSpace(in.ParentCode)
	lockKey := "project-code:J" + s.now().Format("06")
	if parentCode != "" {
		lockKey = "project-vo:" + parentCode
	}
	lk, err := s.locker.Obtain(ctx, lockKey, projectCodeLockTTL)
	if errors.Is(err, lock.ErrNotObtained) {
		return ProjectResult{}, apperror.Concurrency("another project is being created, retry")
	}
	if err != nil {
		if s.log != nil {
			s.log.WithField("module", "project").Warn("project code lock unavailable: " + err.Error())
		}
	} else {
		defer func() { _ = lk.Release(context.WithoutCancel(ctx)) }()
	}

	project := model.Project{
		Title:        title,
		CompanyID:    in.CompanyID,
		ManagerID:    in.ManagerID,
		Status:       model.ProjectStatusPreLim,
		BillingType:  billingType,
		PlannedHours: in.PlannedHours,
		CreatedBy:    parseUserID(userID),
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if parentCode != "" {
			parent, err := s.projectRepo.FindByCode(txCtx, parentCode)
			if err != nil {
				return lookupErr(err, "parent project %s not found", parentCode)
			}
			if parent.IsVariationOrder() {
				return apperror.Validation("%s is a variation order and cannot have variation orders", parent.Code)
			}
			maxVO, err := s.projectRepo.MaxVONumber(txCtx, parent.ID)
			if err != nil {
				return fmt.Errorf("failed to read variation orders of %s: %w", parent.Code, err)
			}
			vo := maxVO + 1
			project.Code = fmt.Sprintf("%s_%d", parent.Code, vo)
			project.ParentProjectID = &parent.ID
			project.VONumber = &vo
			if project.CompanyID == nil {
				project.CompanyID = parent.CompanyID
			}
		} else {
			prefix := "J" + s.now().Format("06")
			codes, err := s.projectRepo.ListRootCodesWithPrefix(txCtx, prefix)
			if err != nil {
				return fmt.Errorf("failed to read project codes: %w", err)
			}
			project.Code, err = nextProjectCode(prefix, codes)
			if err != nil {
				return err
			}
		}

		if err := s.projectRepo.Create(txCtx, &project); err != nil {
			if repository.IsDuplicateKey(err) {
				return apperror.Concurrency("project code %s was taken concurrently, retry", project.Code)
			}
			return fmt.Errorf("failed to create project: %w", err)
		}

		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreateProject, project.ID.String(), project.Code, in)
	})
	if err != nil {
		return ProjectResult{}, err
	}

	publishAssignment(s.notifier, project.Code, project.ManagerID)
	return ProjectResult{Project: toProjectResponse(project), NewlyAssignedManager: project.ManagerID}, nil
}

func (s *projectService) Update(ctx context.Context, userID string, code string, in UpdateProjectInput) (ProjectResult, error) {
	if in.BillingType != nil && !validBillingTypes[*in.BillingType] {
		return ProjectResult{}, apperror.Validation("billing_type must be one of: hourly, lump_sum")
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return ProjectResult{}, apperror.Validation("title cannot be empty")
	}
	if (in.PlannedHours != nil && in.PlannedHours.IsNegative()) || (in.ActualHours != nil && in.ActualHours.IsNegative()) {
		return ProjectResult{}, apperror.Validation("hours cannot be negative")
	}
	if err := s.checkRefs(ctx, in.CompanyID, in.ManagerID); err != nil {
		return ProjectResult{}, err
	}

	var (
		project       *model.Project
		newlyAssigned *uuid.UUID
	)
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		project, err = s.projectRepo.FindByCodeForUpdate(txCtx, code)
		if err != nil {
			return lookupErr(err, "project %s not found", code)
		}

		if in.BillingType != nil && *in.BillingType != project.BillingType {
			pos, err := s.poRepo.ListByProject(txCtx, project.Code)
			if err != nil {
				return fmt.Errorf("failed to load purchase orders for %s: %w", project.Code, err)
			}
			if len(pos) > 0 {
				return apperror.Validation("billing type of %s cannot change after a purchase order exists", project.Code)
			}
			project.BillingType = *in.BillingType
		}

		if in.ManagerID != nil && (project.ManagerID == nil || *project.ManagerID != *in.ManagerID) {
			project.ManagerID = in.ManagerID
			newlyAssigned = in.ManagerID
		}
		if in.Title != nil {
			project.Title = strings.TrimSpace(*in.Title)
		}
		if in.CompanyID != nil {
			project.CompanyID = in.CompanyID
		}
		if in.PlannedHours != nil {
			project.PlannedHours = *in.PlannedHours
		}
		if in.ActualHours != nil {
			project.ActualHours = *in.ActualHours
		}

		if err := s.projectRepo.Update(txCtx, project); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateProject, project.ID.String(), project.Code, in)
	})
	if err != nil {
		return ProjectResult{}, err
	}

	publishAssignment(s.notifier, project.Code, newlyAssigned)
	return ProjectResult{Project: toProjectResponse(*project), NewlyAssignedManager: newlyAssigned}, nil
}

// UpdateStatus never writes; it reports the current derived status.
func (s *projectService) UpdateStatus(ctx context.Context, code string, requested string) (StatusUpdateResult, error) {
	project, err := s.projectRepo.FindByCode(ctx, code)
	if err != nil {
		return StatusUpdateResult{}, lookupErr(err, "project %s not found", code)
	}
	if s.log != nil && requested != "" && requested != project.Status {
		s.log.WithFields(logrus.Fields{
			"module":       "project",
			"project_code": project.Code,
			"requested":    requested,
		}).Info("ignored manual status change")
	}
	return StatusUpdateResult{
		ProjectCode: project.Code,
		Status:      project.Status,
		Message:     StatusNotSettableMessage,
	}, nil
}

func (s *projectService) Resync(ctx context.Context, code string) (StatusChange, error) {
	var change StatusChange
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		change, err = s.deriver.Derive(txCtx, code)
		return err
	})
	if err != nil {
		return StatusChange{}, err
	}
	publishStatusChange(s.notifier, change)
	return change, nil
}

func (s *projectService) Get(ctx context.Context, code string) (ProjectResponse, error) {
	project, err := s.projectRepo.FindByCode(ctx, code)
	if err != nil {
		return ProjectResponse{}, lookupErr(err, "project %s not found", code)
	}
	return toProjectResponse(*project), nil
}

func (s *projectService) List(ctx context.Context, filter ProjectFilter) ([]ProjectResponse, int64, error) {
	page, limit := normalizePaging(filter.Page, filter.Limit)
	projects, total, err := s.projectRepo.List(ctx, repository.ProjectListFilter{
		Status: filter.Status,
		Search: filter.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch projects: %w", err)
	}

	res := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		res = append(res, toProjectResponse(p))
	}
	return res, total, nil
}

// Delete removes a project with no purchase orders, invoices or variation orders.
func (s *projectService) Delete(ctx context.Context, userID string, code string) error {
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		project, err := s.projectRepo.FindByCodeForUpdate(txCtx, code)
		if err != nil {
			return lookupErr(err, "project %s not found", code)
		}

		pos, err := s.poRepo.ListByProject(txCtx, project.Code)
		if err != nil {
			return fmt.Errorf("failed to load purchase orders for %s: %w", project.Code, err)
		}
		if len(pos) > 0 {
			return apperror.InvalidState("project %s has purchase orders and cannot be deleted", project.Code)
		}
		invoices, err := s.invoiceRepo.CountByProject(txCtx, project.Code)
		if err != nil {
			return fmt.Errorf("failed to count invoices for %s: %w", project.Code, err)
		}
		if invoices > 0 {
			return apperror.InvalidState("project %s has invoices and cannot be deleted", project.Code)
		}
		vos, err := s.projectRepo.MaxVONumber(txCtx, project.ID)
		if err != nil {
			return fmt.Errorf("failed to read variation orders of %s: %w", project.Code, err)
		}
		if vos > 0 {
			return apperror.InvalidState("project %s has variation orders and cannot be deleted", project.Code)
		}

		if err := s.projectRepo.Delete(txCtx, project.ID); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionDeleteProject, project.ID.String(), project.Code, nil)
	})
}

// --- Mapping ---

func toProjectResponse(p model.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:               p.ID,
		Code:             p.Code,
		Title:            p.Title,
		CompanyID:        p.CompanyID,
		ManagerID:        p.ManagerID,
		Status:           p.Status,
		BillingType:      p.BillingType,
		PlannedHours:     p.PlannedHours,
		ActualHours:      p.ActualHours,
		POReceivedDate:   p.POReceivedDate,
		CompletionDate:   p.CompletionDate,
		ParentProjectID:  p.ParentProjectID,
		VONumber:         p.VONumber,
		IsVariationOrder: p.IsVariationOrder(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Company != nil {
		resp.CompanyName = p.Company.Name
	}
	return resp
}
