package auth

import (
	"errors"
	"testing"
)

var testCredentials = map[string]string{
	"pagos":  "tok_pagos_prod_a1b2c3d4e5f6",
	"ventas": "tok_ventas_prod_g7h8i9j0k1l2",
	"auth":   "tok_auth_prod_m3n4o5p6q7r8",
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(testCredentials)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return reg
}

func TestAuthenticate_ResolvesEachTenant(t *testing.T) {
	reg := newTestRegistry(t)
	for tenant, cred := range testCredentials {
		got, err := reg.Authenticate(cred)
		if err != nil {
			t.Fatalf("authenticate %s: %v", tenant, err)
		}
		if got != tenant {
			t.Fatalf("expected tenant %q, got %q", tenant, got)
		}
	}
}

func TestAuthenticate_Rejects(t *testing.T) {
	reg := newTestRegistry(t)
	cases := []struct {
		name      string
		presented string
	}{
		{"empty", ""},
		{"unknown", "tok_desconocido"},
		{"one char altered", "tok_pagos_prod_a1b2c3d4e5f7"},
		{"prefix only", "tok_pagos_prod"},
		{"trailing garbage", "tok_pagos_prod_a1b2c3d4e5f6x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := reg.Authenticate(tc.presented); !errors.Is(err, ErrInvalidCredential) {
				t.Fatalf("expected ErrInvalidCredential, got %v", err)
			}
		})
	}
}

func TestParseCredentials(t *testing.T) {
	creds, err := ParseCredentials("pagos:tok_a, ventas:tok_b")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(creds) != 2 || creds["pagos"] != "tok_a" || creds["ventas"] != "tok_b" {
		t.Fatalf("unexpected credentials: %v", creds)
	}

	for _, raw := range []string{"", "pagos", "pagos:", ":tok", "pagos:a,pagos:b"} {
		if _, err := ParseCredentials(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestNewRegistry_RejectsEmptyEntries(t *testing.T) {
	if _, err := NewRegistry(nil); err == nil {
		t.Fatal("expected error for empty registry")
	}
	if _, err := NewRegistry(map[string]string{"pagos": ""}); err == nil {
		t.Fatal("expected error for empty credential")
	}
}
