package domain

import "encoding/json"

type Role string

const (
	RoleCustomer     Role = "customer"
	RoleManager      Role = "manager"
	RoleDeliveryCrew Role = "delivery_crew"
)

const (
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery crew"
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleManager:
		return RoleManager
	case RoleDeliveryCrew:
		return RoleDeliveryCrew
	default:
		return RoleCustomer
	}
}

func (r Role) IsManager() bool      { return r == RoleManager }
func (r Role) IsDeliveryCrew() bool { return r == RoleDeliveryCrew }

// Groups is the coarse group view of the role.
func (r Role) Groups() []string {
	switch r {
	case RoleManager:
		return []string{GroupManager}
	case RoleDeliveryCrew:
		return []string{GroupDeliveryCrew}
	default:
		return []string{}
	}
}

// Identity is the authenticated caller of a service operation. The zero
// value is an anonymous caller.
type Identity struct {
	UserID   int
	Username string
	Admin    bool
	Role     Role
}

func (i Identity) Authenticated() bool { return i.UserID > 0 }

func (p UserProfile) MarshalJSON() ([]byte, error) {
	role := p.Role
	if role == "" {
		role = RoleCustomer
	}
	return json.Marshal(struct {
		UserID         int      `json:"user_id"`
		Role           Role     `json:"role"`
		IsManager      bool     `json:"is_manager"`
		IsDeliveryCrew bool     `json:"is_delivery_crew"`
		Groups         []string `json:"groups"`
		Address        string   `json:"address"`
	}{
		UserID:         p.UserID,
		Role:           role,
		IsManager:      role.IsManager(),
		IsDeliveryCrew: role.IsDeliveryCrew(),
		Groups:         role.Groups(),
		Address:        p.Address,
	})
}
