package query

import (
	"fmt"
	"strings"
	"time"
)

// Op tags the kind of predicate applied to a column.
type Op int

const (
	// OpEquals matches rows where the column equals the value.
	OpEquals Op = iota
	// OpRangeFrom matches rows where the column is >= the value (inclusive).
	OpRangeFrom
	// OpRangeTo matches rows where the column is <= the value (inclusive).
	OpRangeTo
)

// Predicate is one filter condition over a named column. All predicates in
// a FilterSpec combine with AND; there is no OR or negation.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

// ForbiddenError reports a tenant override naming a tenant other than the
// authenticated one. Both names are included: tenant identities are not
// secret, only their data is.
type ForbiddenError struct {
	Requested     string
	Authenticated string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("no permission to read logs of %q; authenticated as %q", e.Requested, e.Authenticated)
}

// Params are the raw optional filter fields of a list request. Nil or empty
// fields are absent. Severity is not validated against the recognized enum;
// any string filters by equality.
type Params struct {
	EventTimeStart  *time.Time
	EventTimeEnd    *time.Time
	ReceivedAtStart *time.Time
	ReceivedAtEnd   *time.Time
	Severity        string
	Tenant          string // optional override; must match the authenticated tenant
}

// FilterSpec is an immutable set of predicates scoped to one tenant, valid
// for the duration of a single query request.
type FilterSpec struct {
	tenant string
	preds  []Predicate
}

// Build normalizes raw params into a FilterSpec scoped to the authenticated
// tenant. A tenant override equal to the authenticated tenant is a redundant
// no-op; any other override returns a ForbiddenError.
func Build(p Params, authenticatedTenant string) (FilterSpec, error) {
	if p.Tenant != "" && p.Tenant != authenticatedTenant {
		return FilterSpec{}, &ForbiddenError{Requested: p.Tenant, Authenticated: authenticatedTenant}
	}
	spec := FilterSpec{tenant: authenticatedTenant}
	if p.EventTimeStart != nil {
		spec.preds = append(spec.preds, Predicate{Column: "event_time", Op: OpRangeFrom, Value: *p.EventTimeStart})
	}
	if p.EventTimeEnd != nil {
		spec.preds = append(spec.preds, Predicate{Column: "event_time", Op: OpRangeTo, Value: *p.EventTimeEnd})
	}
	if p.ReceivedAtStart != nil {
		spec.preds = append(spec.preds, Predicate{Column: "received_at", Op: OpRangeFrom, Value: *p.ReceivedAtStart})
	}
	if p.ReceivedAtEnd != nil {
		spec.preds = append(spec.preds, Predicate{Column: "received_at", Op: OpRangeTo, Value: *p.ReceivedAtEnd})
	}
	if p.Severity != "" {
		spec.preds = append(spec.preds, Predicate{Column: "severity", Op: OpEquals, Value: p.Severity})
	}
	return spec, nil
}

// Tenant returns the tenant the spec is scoped to.
func (s FilterSpec) Tenant() string { return s.tenant }

// Predicates returns the optional predicates, in build order.
func (s FilterSpec) Predicates() []Predicate { return s.preds }

// SQL renders the spec as a parameterized WHERE clause and its arguments.
// The tenant equality predicate is always first and always present, so no
// combination of optional filters can widen a query past the tenant scope.
func (s FilterSpec) SQL() (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(s.preds)+1)

	b.WriteString("tenant = $1")
	args = append(args, s.tenant)

	for _, p := range s.preds {
		args = append(args, p.Value)
		fmt.Fprintf(&b, " AND %s %s $%d", p.Column, p.Op.sqlOperator(), len(args))
	}
	return b.String(), args
}

func (o Op) sqlOperator() string {
	switch o {
	case OpRangeFrom:
		return ">="
	case OpRangeTo:
		return "<="
	default:
		return "="
	}
}
