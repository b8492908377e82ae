package routing

import "fordeling/internal/routing/models"

// Gate decides, per request, whether a category's dynamic overlay runs.
type Gate func(req models.RoutingRequest, residency models.ResidencyClass) bool

type policyKind int

const (
	kindStaticOnly policyKind = iota
	kindDynamicOverlay
)

// Policy says how a category is routed: from the static table only, or from
// the static table overlaid by the organizational lookup when a gate holds.
type Policy struct {
	kind policyKind
	gate Gate
}

// StaticOnly routes from the static table alone.
func StaticOnly() Policy {
	return Policy{kind: kindStaticOnly}
}

// StaticWithDynamicOverlay consults the organizational lookup when gate
// holds. A nil gate always holds.
func StaticWithDynamicOverlay(gate Gate) Policy {
	if gate == nil {
		gate = Always
	}
	return Policy{kind: kindDynamicOverlay, gate: gate}
}

// HasOverlay reports whether the policy can ever consult the lookup.
func (p Policy) HasOverlay() bool { return p.kind == kindDynamicOverlay }

// UsesLookup reports whether the lookup runs for this request.
func (p Policy) UsesLookup(req models.RoutingRequest, residency models.ResidencyClass) bool {
	return p.kind == kindDynamicOverlay && p.gate(req, residency)
}

// Always is a gate that always holds.
func Always(models.RoutingRequest, models.ResidencyClass) bool { return true }

// ActiveDomesticCase holds when the underlying case is not closed and the
// claimant lives in the domestic country.
func ActiveDomesticCase(req models.RoutingRequest, residency models.ResidencyClass) bool {
	return req.CaseStatus != models.CaseStatusClosed && residency == models.ResidencyDomestic
}

// DefaultPolicies is the category policy table. Categories not listed are
// static only.
func DefaultPolicies() map[models.CaseCategory]Policy {
	return map[models.CaseCategory]Policy{
		models.CategoryOldAgeClaim:     StaticWithDynamicOverlay(Always),
		models.CategoryClaimInitiation: StaticWithDynamicOverlay(Always),
		models.CategorySurvivorClaim:   StaticWithDynamicOverlay(ActiveDomesticCase),
	}
}
