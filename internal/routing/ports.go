package routing

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks UnitLookup

import (
	"context"

	"fordeling/internal/routing/models"
	"fordeling/internal/routing/units"
)

// UnitLookup is the organizational lookup used by dynamic overlays. It
// reports false when there is no usable match for any reason, including
// transport failures; it never returns an error to the router.
type UnitLookup interface {
	FindUnit(ctx context.Context, req models.RoutingRequest, residency models.ResidencyClass) (units.Unit, bool)
}
