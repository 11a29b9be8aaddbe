package rbac

type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

// Permission is one allow rule: Role may perform Action on Resource.
type Permission struct {
	Role     string
	Resource string
	Action   string
}

// RoleInheritance grants Member every permission of Parent.
type RoleInheritance struct {
	Member string
	Parent string
}
