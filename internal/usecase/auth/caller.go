package auth

type Role string

const (
	RoleVendor   Role = "vendor"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleVendor || r == RoleCustomer
}

// Caller is the authenticated principal of a request. Engines receive it as
// an argument; nothing reads identity from ambient request state.
type Caller struct {
	ID   int64
	Role Role
}

func (c Caller) IsVendor() bool   { return c.Role == RoleVendor && c.ID > 0 }
func (c Caller) IsCustomer() bool { return c.Role == RoleCustomer && c.ID > 0 }
