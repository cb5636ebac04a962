package model

// Role is the closed set of account kinds. Admin is an operator account and
// never takes part in partner browsing.
type Role string

const (
	RoleRetailer     Role = "retailer"
	RoleDistributor  Role = "distributor"
	RoleManufacturer Role = "manufacturer"
	RoleAdmin        Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleRetailer, RoleDistributor, RoleManufacturer, RoleAdmin:
		return true
	}
	return false
}

// IsBusiness is true for the three trading roles.
func (r Role) IsBusiness() bool {
	return r == RoleRetailer || r == RoleDistributor || r == RoleManufacturer
}

var visiblePartnerRoles = map[Role][]Role{
	RoleRetailer:     {RoleDistributor},
	RoleDistributor:  {RoleRetailer, RoleManufacturer},
	RoleManufacturer: {RoleDistributor},
}

// VisiblePartnerRoles returns the counterpart roles r may browse.
// Unknown roles (and admin) get an empty slice.
func VisiblePartnerRoles(r Role) []Role {
	roles := visiblePartnerRoles[r]
	out := make([]Role, len(roles))
	copy(out, roles)
	return out
}
