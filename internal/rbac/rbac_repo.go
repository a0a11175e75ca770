package rbac

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions() ([]RolePermissionRow, error)
}

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

// DefaultRolePermissions: admin mengelola laporan & guru, guru melakukan absensi.
var DefaultRolePermissions = []RolePermissionRow{
	{Role: "ADMIN", Resource: "report", Action: "read"},
	{Role: "ADMIN", Resource: "report", Action: "export"},
	{Role: "ADMIN", Resource: "user", Action: "read"},
	{Role: "ADMIN", Resource: "user", Action: "delete"},
	{Role: "ADMIN", Resource: "attendance", Action: "read"},
	{Role: "ADMIN", Resource: "motivation", Action: "read"},

	{Role: "TEACHER", Resource: "attendance", Action: "read"},
	{Role: "TEACHER", Resource: "attendance", Action: "create"},
	{Role: "TEACHER", Resource: "motivation", Action: "read"},
}

type repository struct {
	rows []RolePermissionRow
}

// NewRepository tanpa argumen memakai DefaultRolePermissions.
func NewRepository(rows ...RolePermissionRow) Repository {
	if len(rows) == 0 {
		rows = DefaultRolePermissions
	}
	return &repository{rows: rows}
}

func (r *repository) GetRolePermissions() ([]RolePermissionRow, error) {
	out := make([]RolePermissionRow, len(r.rows))
	copy(out, r.rows)
	return out, nil
}
