package tenant

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTenantEnv(t *testing.T, name string) {
	t.Helper()
	suffix := envSuffix(name)
	t.Setenv("OIC_CLIENT_ID_"+suffix, "client-"+name)
	t.Setenv("OIC_CLIENT_SECRET_"+suffix, "secret-"+name)
	t.Setenv("OIC_SCOPE_"+suffix, "urn:opc:resource:scope")
	t.Setenv("OIC_TOKEN_URL_"+suffix, "https://idp.example.com/"+name+"/token")
	t.Setenv("OIC_API_BASE_URL_"+suffix, "https://"+name+".example.com")
	t.Setenv("OIC_INTEGRATION_INSTANCE_"+suffix, name+"-instance")
}

func TestLoadFromEnv_ConfiguredTenant(t *testing.T) {
	setTenantEnv(t, "prod1")

	reg := LoadFromEnv()
	tn, err := reg.ConfigFor("prod1")
	require.NoError(t, err)
	assert.Equal(t, "client-prod1", tn.ClientID)
	assert.Equal(t, "secret-prod1", tn.ClientSecret.Value())
	assert.Equal(t, "https://prod1.example.com", tn.APIBaseURL)
}

func TestConfigFor_UnknownTenant(t *testing.T) {
	reg := LoadFromEnv()
	_, err := reg.ConfigFor("staging")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTenant))
}

func TestConfigFor_NotConfigured(t *testing.T) {
	reg := LoadFromEnv()
	_, err := reg.ConfigFor("dev")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTenantNotConfigured))
}

func TestConfigFor_PartiallyConfigured(t *testing.T) {
	t.Setenv("OIC_CLIENT_ID_QA3", "client-qa3")
	reg := LoadFromEnv()
	_, err := reg.ConfigFor("qa3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTenantNotConfigured))
}

func TestAnyConfigured(t *testing.T) {
	reg := LoadFromEnv()
	assert.False(t, reg.AnyConfigured())

	setTenantEnv(t, "prod3")
	reg = LoadFromEnv()
	assert.True(t, reg.AnyConfigured())
}

func TestEnvSuffix(t *testing.T) {
	assert.Equal(t, "PROD1", envSuffix("prod1"))
	assert.Equal(t, "DEV", envSuffix("dev"))
}
</content>
