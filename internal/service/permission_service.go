package service

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/cache"
	"backoffice/internal/model"
	"backoffice/internal/repository"
)

const permissionCacheTTL = 5 * time.Minute

// Permission codes checked by the HTTP layer.
const (
	PermProjectsRead       = "projects.read"
	PermProjectsWrite      = "projects.write"
	PermPurchaseOrdersRead = "purchase_orders.read"
	PermPurchaseOrdersEdit = "purchase_orders.write"
	PermPurchaseOrdersAdj  = "purchase_orders.adjust"
	PermInvoicesRead       = "invoices.read"
	PermInvoicesWrite      = "invoices.write"
	PermVendorRead         = "vendor.read"
	PermVendorWrite        = "vendor.write"
	PermCompaniesRead      = "companies.read"
	PermCompaniesWrite     = "companies.write"
	PermSettingsManage     = "settings.manage"
	PermAuditRead          = "audit.read"
	PermUsersRead          = "users.read"
	PermDashboardRead      = "dashboard.read"
)

var defaultPermissions = []model.Permission{
	{Code: PermProjectsRead, Name: "View projects", Group: "projects"},
	{Code: PermProjectsWrite, Name: "Manage projects", Group: "projects"},
	{Code: PermPurchaseOrdersRead, Name: "View purchase orders", Group: "purchase_orders"},
	{Code: PermPurchaseOrdersEdit, Name: "Manage purchase orders and revisions", Group: "purchase_orders"},
	{Code: PermPurchaseOrdersAdj, Name: "Adjust purchase order MYR amounts", Group: "purchase_orders"},
	{Code: PermInvoicesRead, Name: "View invoices", Group: "invoices"},
	{Code: PermInvoicesWrite, Name: "Manage invoices", Group: "invoices"},
	{Code: PermVendorRead, Name: "View issued POs and vendor invoices", Group: "vendor"},
	{Code: PermVendorWrite, Name: "Manage issued POs and vendor invoices", Group: "vendor"},
	{Code: PermCompaniesRead, Name: "View companies", Group: "crm"},
	{Code: PermCompaniesWrite, Name: "Manage companies", Group: "crm"},
	{Code: PermSettingsManage, Name: "Manage company settings", Group: "settings"},
	{Code: PermAuditRead, Name: "View audit log", Group: "audit"},
	{Code: PermUsersRead, Name: "View staff", Group: "users"},
	{Code: PermDashboardRead, Name: "View dashboard statistics", Group: "dashboard"},
}

// defaultRoleGrants maps role names to permission codes; admin gets every code.
var defaultRoleGrants = map[string][]string{
	"manager": {
		PermProjectsRead, PermProjectsWrite, PermPurchaseOrdersRead, PermPurchaseOrdersEdit,
		PermInvoicesRead, PermVendorRead, PermCompaniesRead, PermCompaniesWrite, PermUsersRead, PermDashboardRead,
	},
	"finance": {
		PermProjectsRead, PermPurchaseOrdersRead, PermPurchaseOrdersEdit, PermPurchaseOrdersAdj,
		PermInvoicesRead, PermInvoicesWrite, PermVendorRead, PermVendorWrite, PermCompaniesRead, PermAuditRead, PermDashboardRead,
	},
	"engineer": {
		PermProjectsRead, PermPurchaseOrdersRead, PermInvoicesRead, PermCompaniesRead,
	},
}

type PermissionService interface {
	PermissionsForRole(ctx context.Context, roleName string) ([]string, error)
	ClearCache(ctx context.Context, roleName string) error
	SeedDefaultRolesAndPermissions(ctx context.Context) error
}

type permissionService struct {
	roleRepo  repository.RoleRepository
	txManager repository.TransactionManager
	store     cache.Store
}

func NewPermissionService(roleRepo repository.RoleRepository, txManager repository.TransactionManager, store cache.Store) PermissionService {
	return &permissionService{roleRepo: roleRepo, txManager: txManager, store: store}
}

func permissionCacheKey(roleName string) string {
	return "perm:role:" + roleName
}

func (s *permissionService) PermissionsForRole(ctx context.Context, roleName string) ([]string, error) {
	return cache.GetOrLoad(ctx, s.store, permissionCacheKey(roleName), permissionCacheTTL, func(ctx context.Context) ([]string, error) {
		codes, err := s.roleRepo.GetPermissionsByRoleName(ctx, roleName)
		if err != nil {
			return nil, fmt.Errorf("failed to load permissions for role %s: %w", roleName, err)
		}
		return codes, nil
	})
}

func (s *permissionService) ClearCache(ctx context.Context, roleName string) error {
	return s.store.Delete(ctx, permissionCacheKey(roleName))
}

// SeedDefaultRolesAndPermissions creates the default permissions and roles if not already present
func (s *permissionService) SeedDefaultRolesAndPermissions(ctx context.Context) error {
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		byCode := make(map[string]model.Permission, len(defaultPermissions))
		all := make([]model.Permission, 0, len(defaultPermissions))
		for _, p := range defaultPermissions {
			perm := p
			if err := s.roleRepo.FindOrCreatePermission(txCtx, &perm); err != nil {
				return fmt.Errorf("failed to seed permission '%s': %w", perm.Code, err)
			}
			byCode[perm.Code] = perm
			all = append(all, perm)
		}

		admin := &model.Role{Name: "admin", Description: "Full access"}
		if err := s.roleRepo.EnsureRole(txCtx, admin, all); err != nil {
			return fmt.Errorf("failed to seed role 'admin': %w", err)
		}

		for name, codes := range defaultRoleGrants {
			perms := make([]model.Permission, 0, len(codes))
			for _, code := range codes {
				perms = append(perms, byCode[code])
			}
			role := &model.Role{Name: name}
			if err := s.roleRepo.EnsureRole(txCtx, role, perms); err != nil {
				return fmt.Errorf("failed to seed role '%s': %w", name, err)
			}
		}
		return nil
	})
}
