package query

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func tp(t time.Time) *time.Time { return &t }

func TestBuild_EmptyParamsScopesToTenant(t *testing.T) {
	spec, err := Build(Params{}, "pagos")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	where, args := spec.SQL()
	if where != "tenant = $1" {
		t.Fatalf("unexpected where clause: %q", where)
	}
	if !reflect.DeepEqual(args, []any{"pagos"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuild_TenantOverride(t *testing.T) {
	// naming yourself is a redundant no-op
	spec, err := Build(Params{Tenant: "pagos"}, "pagos")
	if err != nil {
		t.Fatalf("self override: %v", err)
	}
	if spec.Tenant() != "pagos" || len(spec.Predicates()) != 0 {
		t.Fatalf("self override must not add predicates: %+v", spec)
	}

	// naming anyone else is forbidden, not a silent narrowing
	_, err = Build(Params{Tenant: "ventas"}, "pagos")
	var forbidden *ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
	if forbidden.Requested != "ventas" || forbidden.Authenticated != "pagos" {
		t.Fatalf("forbidden error must carry both tenants: %+v", forbidden)
	}
}

func TestBuild_AllFiltersRenderInclusiveConjunction(t *testing.T) {
	ets := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ete := ets.Add(24 * time.Hour)
	ras := ets.Add(time.Hour)
	rae := ets.Add(2 * time.Hour)

	spec, err := Build(Params{
		EventTimeStart:  tp(ets),
		EventTimeEnd:    tp(ete),
		ReceivedAtStart: tp(ras),
		ReceivedAtEnd:   tp(rae),
		Severity:        "ERROR",
	}, "pagos")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	where, args := spec.SQL()
	want := "tenant = $1" +
		" AND event_time >= $2" +
		" AND event_time <= $3" +
		" AND received_at >= $4" +
		" AND received_at <= $5" +
		" AND severity = $6"
	if where != want {
		t.Fatalf("where clause:\n got %q\nwant %q", where, want)
	}
	if !reflect.DeepEqual(args, []any{"pagos", ets, ete, ras, rae, "ERROR"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuild_OpenEndedRanges(t *testing.T) {
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	spec, err := Build(Params{EventTimeEnd: tp(end)}, "ventas")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	where, args := spec.SQL()
	if where != "tenant = $1 AND event_time <= $2" {
		t.Fatalf("unexpected where clause: %q", where)
	}
	if !reflect.DeepEqual(args, []any{"ventas", end}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuild_SeverityNotValidatedAgainstEnum(t *testing.T) {
	// any string filters by equality; the recognized set is not enforced
	spec, err := Build(Params{Severity: "NOTICE"}, "auth")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	preds := spec.Predicates()
	if len(preds) != 1 || preds[0].Column != "severity" || preds[0].Op != OpEquals || preds[0].Value != "NOTICE" {
		t.Fatalf("unexpected predicates: %+v", preds)
	}
}
