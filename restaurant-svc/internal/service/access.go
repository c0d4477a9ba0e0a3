package service

import (
	"fmt"

	"restaurant-api/restaurant-svc/internal/domain"
)

type Capability int

const (
	CapAuthenticated Capability = iota
	CapManager
	CapDeliveryCrew
	CapAdmin
)

func (c Capability) String() string {
	switch c {
	case CapManager:
		return "manager"
	case CapDeliveryCrew:
		return "delivery crew"
	case CapAdmin:
		return "administrator"
	default:
		return "authenticated"
	}
}

// Can reports whether id holds capability c. Administrators hold the
// manager capability as well.
func Can(id domain.Identity, c Capability) bool {
	if !id.Authenticated() {
		return false
	}
	switch c {
	case CapAuthenticated:
		return true
	case CapManager:
		return id.Admin || id.Role.IsManager()
	case CapDeliveryCrew:
		return id.Role.IsDeliveryCrew()
	case CapAdmin:
		return id.Admin
	}
	return false
}

func Require(id domain.Identity, c Capability) error {
	if !id.Authenticated() {
		return domain.ErrUnauthorized
	}
	if !Can(id, c) {
		return fmt.Errorf("%w: %s privilege required", domain.ErrForbidden, c)
	}
	return nil
}
