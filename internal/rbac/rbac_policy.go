package rbac

const (
	RoleStaff = "staff"
	RoleAdmin = "admin"

	ResourceStaff = "staff"
)

// DefaultPermissions is the built-in policy. Staff directory management is
// reserved to administrators.
func DefaultPermissions() []Permission {
	return []Permission{
		{Role: RoleAdmin, Resource: ResourceStaff, Action: "create"},
		{Role: RoleAdmin, Resource: ResourceStaff, Action: "read"},
		{Role: RoleAdmin, Resource: ResourceStaff, Action: "update"},
		{Role: RoleAdmin, Resource: ResourceStaff, Action: "delete"},
	}
}

func DefaultInheritance() []RoleInheritance {
	return []RoleInheritance{
		{Member: RoleAdmin, Parent: RoleStaff},
	}
}
