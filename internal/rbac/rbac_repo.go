package rbac

import "gorm.io/gorm"

type EmployeeRole struct {
	EmployeeID string
	RoleID     string
}

type RolePermission struct {
	RoleID   string
	Resource string
	Action   string
}

type Repository interface {
	GetEmployeeRoles(companyID string) ([]EmployeeRole, error)
	GetRolePermissions(companyID string) ([]RolePermission, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetEmployeeRoles(companyID string) ([]EmployeeRole, error) {
	var rows []EmployeeRole
	err := r.db.
		Table("employee_roles").
		Select("employee_id::text AS employee_id, role_id::text AS role_id").
		Where("company_id = ?", companyID).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) GetRolePermissions(companyID string) ([]RolePermission, error) {
	var rows []RolePermission
	err := r.db.
		Table("role_permissions rp").
		Select("rp.role_id::text AS role_id, p.resource, p.action").
		Joins("JOIN permissions p ON p.id = rp.permission_id").
		Joins("JOIN roles ro ON ro.id = rp.role_id").
		Where("ro.company_id = ?", companyID).
		Scan(&rows).Error
	return rows, err
}
