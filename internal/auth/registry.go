package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidCredential is returned when a presented credential matches no
// registered tenant. The message is deliberately generic; the presented
// value is never echoed back.
var ErrInvalidCredential = errors.New("invalid credential")

type entry struct {
	tenant     string
	credential []byte
}

// Registry is the immutable tenant-to-credential mapping. It is built once
// at startup and never mutated, so Authenticate is safe to call from any
// number of concurrent requests.
type Registry struct {
	entries []entry
}

// NewRegistry builds a registry from tenant→credential pairs.
func NewRegistry(credentials map[string]string) (*Registry, error) {
	if len(credentials) == 0 {
		return nil, errors.New("auth: no tenant credentials configured")
	}
	r := &Registry{entries: make([]entry, 0, len(credentials))}
	for tenant, cred := range credentials {
		if tenant == "" || cred == "" {
			return nil, fmt.Errorf("auth: empty tenant or credential in registry")
		}
		r.entries = append(r.entries, entry{tenant: tenant, credential: []byte(cred)})
	}
	sort.Slice(r.entries, func(i, j int) bool { return r.entries[i].tenant < r.entries[j].tenant })
	return r, nil
}

// ParseCredentials parses the configuration form "tenant:token,tenant:token"
// into a credential map.
func ParseCredentials(raw string) (map[string]string, error) {
	creds := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, token, ok := strings.Cut(pair, ":")
		if !ok || name == "" || token == "" {
			return nil, errors.New("auth: malformed credential pair (want tenant:token)")
		}
		if _, dup := creds[name]; dup {
			return nil, fmt.Errorf("auth: duplicate tenant %q in credentials", name)
		}
		creds[name] = token
	}
	if len(creds) == 0 {
		return nil, errors.New("auth: no credential pairs found")
	}
	return creds, nil
}

// Tenants returns the registered tenant names, sorted.
func (r *Registry) Tenants() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.tenant
	}
	return names
}

// Credential returns the stored credential for a tenant. Used by client
// tooling (the traffic simulator); the server never reads credentials back.
func (r *Registry) Credential(tenant string) (string, bool) {
	for _, e := range r.entries {
		if e.tenant == tenant {
			return string(e.credential), true
		}
	}
	return "", false
}

// Authenticate resolves a presented credential to its tenant, or returns
// ErrInvalidCredential. Every entry is compared with a constant-time
// equality check and the scan never exits early on a match, so response
// timing does not reveal credential prefixes or registry order.
func (r *Registry) Authenticate(presented string) (string, error) {
	if presented == "" {
		return "", ErrInvalidCredential
	}
	p := []byte(presented)
	matched := ""
	for _, e := range r.entries {
		if subtle.ConstantTimeCompare(e.credential, p) == 1 {
			matched = e.tenant
		}
	}
	if matched == "" {
		return "", ErrInvalidCredential
	}
	return matched, nil
}
