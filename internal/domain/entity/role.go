package entity

// Role represents the type of account a user holds in the marketplace.
type Role string

const (
	// RoleCustomer indicates a buyer who joins purchase pools.
	RoleCustomer Role = "customer"
	// RoleSeller indicates a seller who lists products and fulfills locked pools.
	RoleSeller Role = "seller"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSeller:
		return true
	default:
		return false
	}
}
