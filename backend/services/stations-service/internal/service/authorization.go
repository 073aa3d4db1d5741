package service

import (
	"fmt"

	"stationhub/backend/services/stations-service/internal/models"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Authorize decides whether actor may mutate a resource owned by ownerID.
func Authorize(actor models.User, ownerID int64) Decision {
	if actor.ID == ownerID || actor.IsAdmin() {
		return Allow
	}
	return Deny
}

func requireOwnerOrAdmin(actor models.User, station *models.Station) error {
	if Authorize(actor, station.OwnerID) == Deny {
		return fmt.Errorf("%w: user %d may not modify station %s", ErrForbidden, actor.ID, station.ID)
	}
	return nil
}
