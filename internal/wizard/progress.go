// Package wizard holds the progress codec and step resolvers for the
// property and tenant onboarding flows. Everything here is pure: wizard
// progress lives in URL query parameters, never in a server session, and
// the persisted draft (re-resolved on each entry) is the only authority
// over what is actually done.
package wizard

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
)

// Query parameter names shared by every step link.
const (
	ParamPropertyID     = "propertyId"
	ParamCompletedSteps = "completedSteps"
	ParamUnitType       = "unitType"
)

// Property wizard step indices.
const (
	StepAddress      = 1
	StepPropertyType = 2
	StepUnitDetails  = 3
)

// Progress is the wizard state a step link carries. It is advisory: a
// stale or hand-edited URL may understate or overstate it, so consumers
// go through DisplayedCompleted and re-derive truth from the draft.
type Progress struct {
	PropertyID     uuid.UUID
	CompletedSteps int
	UnitType       models.UnitType
}

// ParseProgress decodes wizard progress from a query string. It is
// deliberately lenient: malformed values degrade to their zero form
// rather than erroring, because the URL is a hint, not a contract.
func ParseProgress(q url.Values) Progress {
	var p Progress

	if id, err := uuid.Parse(q.Get(ParamPropertyID)); err == nil {
		p.PropertyID = id
	}
	if n, err := strconv.Atoi(q.Get(ParamCompletedSteps)); err == nil && n > 0 {
		p.CompletedSteps = n
	}
	p.UnitType = models.ParseUnitType(q.Get(ParamUnitType))

	return p
}

// Encode renders the progress back into query parameters. Zero-valued
// fields are omitted so fresh entry links stay clean.
func (p Progress) Encode() url.Values {
	q := url.Values{}
	if p.PropertyID != uuid.Nil {
		q.Set(ParamPropertyID, p.PropertyID.String())
	}
	if p.CompletedSteps > 0 {
		q.Set(ParamCompletedSteps, strconv.Itoa(p.CompletedSteps))
	}
	if p.UnitType != "" {
		q.Set(ParamUnitType, string(p.UnitType))
	}
	return q
}

// DisplayedCompleted returns the completed-step count a step page should
// show. Being on step N implies N-1 steps are done, so the URL is never
// trusted to understate that; it is not clamped upward beyond its own
// claim because display is cosmetic and the resolver re-derives truth.
func (p Progress) DisplayedCompleted(currentStep int) int {
	if implied := currentStep - 1; p.CompletedSteps < implied {
		return implied
	}
	return p.CompletedSteps
}

// CanLinkForward reports whether links to steps beyond the address step
// may be rendered at all. Without a draft id the resume chain is broken
// and forward links must stay disabled.
func (p Progress) CanLinkForward() bool {
	return p.PropertyID != uuid.Nil
}

// Destination is a resolved wizard target: a route path plus the query
// parameters that step needs.
type Destination struct {
	Path  string
	Query url.Values
}

// Href renders the destination as a relative URL.
func (d Destination) Href() string {
	if len(d.Query) == 0 {
		return d.Path
	}
	return d.Path + "?" + d.Query.Encode()
}
