// Package tenant loads the gateway's fixed set of deployment-environment
// credentials from the process environment.
//
// A "tenant" is a named deployment environment of the upstream monitoring
// platform (dev, qa3, prod1, prod3). The set is closed at build time: the
// gateway never discovers tenants at runtime, it only validates a caller's
// chosen tenant name against this list and looks up its credentials.
package tenant

import (
	"errors"
	"fmt"
	"os"

	"github.com/fyrsmithlabs/oicgw/internal/config"
)

// Names is the fixed, closed set of tenant identifiers the gateway accepts.
var Names = []string{"dev", "qa3", "prod1", "prod3"}

// ErrUnknownTenant is returned when a caller names a tenant outside Names.
var ErrUnknownTenant = errors.New("unknown tenant")

// ErrTenantNotConfigured is returned when a tenant in Names is missing one
// or more required credential fields.
var ErrTenantNotConfigured = errors.New("tenant not configured")

// Tenant holds one deployment environment's OAuth2 and API credentials.
type Tenant struct {
	ID                  string
	ClientID            string
	ClientSecret        config.Secret
	Scope               string
	TokenURL            string
	APIBaseURL          string
	IntegrationInstance string
}

// validate reports ErrTenantNotConfigured if any required field is empty.
// Scope is optional: some token endpoints don't require one.
func (t Tenant) validate() error {
	switch {
	case t.ClientID == "":
		return fmt.Errorf("%w: %s missing client id", ErrTenantNotConfigured, t.ID)
	case !t.ClientSecret.IsSet():
		return fmt.Errorf("%w: %s missing client secret", ErrTenantNotConfigured, t.ID)
	case t.TokenURL == "":
		return fmt.Errorf("%w: %s missing token url", ErrTenantNotConfigured, t.ID)
	case t.APIBaseURL == "":
		return fmt.Errorf("%w: %s missing api base url", ErrTenantNotConfigured, t.ID)
	}
	return nil
}

// Registry is the read-only, process-lifetime set of configured tenants.
type Registry struct {
	tenants map[string]Tenant
}

// LoadFromEnv reads every tenant in Names from the process environment
// using the OIC_<FIELD>_<TENANT> suffix convention (tenant upper-cased),
// e.g. OIC_CLIENT_ID_PROD1, OIC_CLIENT_SECRET_PROD1, OIC_SCOPE_PROD1,
// OIC_TOKEN_URL_PROD1, OIC_API_BASE_URL_PROD1, OIC_INTEGRATION_INSTANCE_PROD1.
//
// A tenant with no configured fields at all is still tracked in the
// registry (so ConfigFor can distinguish ErrUnknownTenant from
// ErrTenantNotConfigured); it simply fails validation at lookup time.
func LoadFromEnv() *Registry {
	r := &Registry{tenants: make(map[string]Tenant, len(Names))}
	for _, name := range Names {
		suffix := envSuffix(name)
		r.tenants[name] = Tenant{
			ID:                  name,
			ClientID:            os.Getenv("OIC_CLIENT_ID_" + suffix),
			ClientSecret:        config.Secret(os.Getenv("OIC_CLIENT_SECRET_" + suffix)),
			Scope:               os.Getenv("OIC_SCOPE_" + suffix),
			TokenURL:            os.Getenv("OIC_TOKEN_URL_" + suffix),
			APIBaseURL:          os.Getenv("OIC_API_BASE_URL_" + suffix),
			IntegrationInstance: os.Getenv("OIC_INTEGRATION_INSTANCE_" + suffix),
		}
	}
	return r
}

// ConfigFor returns the named tenant's configuration. It fails with
// ErrUnknownTenant if name is outside the fixed set, or
// ErrTenantNotConfigured if a required field is empty.
func (r *Registry) ConfigFor(name string) (Tenant, error) {
	t, ok := r.tenants[name]
	if !ok {
		return Tenant{}, fmt.Errorf("%w: %q", ErrUnknownTenant, name)
	}
	if err := t.validate(); err != nil {
		return Tenant{}, err
	}
	return t, nil
}

// AnyConfigured reports whether at least one tenant in the registry passes
// validation. Used at startup: if no tenant at all is configured, the
// gateway has nothing useful to serve and startup should abort.
func (r *Registry) AnyConfigured() bool {
	for _, t := range r.tenants {
		if t.validate() == nil {
			return true
		}
	}
	return false
}

func envSuffix(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
</content>
