package repository

import (
	"context"

	"backoffice/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	GetPermissionsByRoleName(ctx context.Context, roleName string) ([]string, error)
	FindOrCreatePermission(ctx context.Context, perm *model.Permission) error
	// EnsureRole creates the role when missing and appends perms not yet granted.
	EnsureRole(ctx context.Context, role *model.Role, perms []model.Permission) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) GetPermissionsByRoleName(ctx context.Context, roleName string) ([]string, error) {
	var codes []string
	err := GetDB(ctx, r.db).Raw(`
		SELECT p.code FROM permissions p
		INNER JOIN role_permissions rp ON rp.permission_id = p.id
		INNER JOIN roles r ON r.id = rp.role_id
		WHERE r.name = ?
	`, roleName).Pluck("code", &codes).Error
	return codes, err
}

func (r *roleRepository) FindOrCreatePermission(ctx context.Context, perm *model.Permission) error {
	return GetDB(ctx, r.db).
		Where("code = ?", perm.Code).
		FirstOrCreate(perm).Error
}

func (r *roleRepository) EnsureRole(ctx context.Context, role *model.Role, perms []model.Permission) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("name = ?", role.Name).FirstOrCreate(role).Error; err != nil {
		return err
	}
	if len(perms) == 0 {
		return nil
	}
	return db.Model(role).Association("Permissions").Append(perms)
}
