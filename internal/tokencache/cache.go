// Package tokencache acquires and caches per-tenant OAuth2 bearer tokens.
//
// One Cache instance is shared across all tenants for the process
// lifetime. Reads are lock-protected but concurrent; acquisition against
// a tenant's token endpoint is coalesced with singleflight so at most one
// exchange is in flight per tenant at a time, grounded on the
// reconnection-coalescing idiom used for toolset refresh elsewhere in the
// corpus.
package tokencache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"github.com/fyrsmithlabs/oicgw/internal/logging"
	"github.com/fyrsmithlabs/oicgw/internal/tenant"
	"go.uber.org/zap"
)

// safetyMargin is subtracted from a token's expiry when deciding whether
// it is still usable, so a token never expires mid-flight against the
// upstream.
const safetyMargin = 60 * time.Second

// defaultExpiresIn is used when the token endpoint omits expires_in.
const defaultExpiresIn = 3600 * time.Second

// Token is a cached bearer credential for one tenant.
type Token struct {
	AccessToken string
	Expiry      time.Time
	TenantID    string
}

// usable reports whether now is strictly before Expiry-safetyMargin.
func (t Token) usable(now time.Time) bool {
	return now.Before(t.Expiry.Add(-safetyMargin))
}

// record is the on-disk representation of a cached token.
type record struct {
	AccessToken string `json:"accessToken"`
	Expiry      int64  `json:"expiry"` // milliseconds since epoch
	Environment string `json:"environment"`
}

// Cache holds one in-memory token per tenant, backed by a per-tenant file
// for warm-restart hints.
type Cache struct {
	mu      sync.RWMutex
	tokens  map[string]Token
	group   singleflight.Group
	dir     string
	httpCli *http.Client
	logger  *logging.Logger
}

// New creates a token cache rooted at dir (the directory holding one JSON
// file per tenant). If logger is nil, a no-op logger is used.
func New(dir string, logger *logging.Logger) *Cache {
	if logger == nil {
		logger = logging.FromContext(context.Background())
	}
	return &Cache{
		tokens:  make(map[string]Token),
		dir:     dir,
		httpCli: http.DefaultClient,
		logger:  logger,
	}
}

// DefaultDir returns the well-known persisted-state directory,
// ~/.config/oicgw/tokens.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tokencache: resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "oicgw", "tokens"), nil
}

// Get returns the cached token for tenant id, or (Token{}, false) if
// absent or no longer usable per the safety margin.
func (c *Cache) Get(id string) (Token, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tok, ok := c.tokens[id]
	if !ok || !tok.usable(time.Now()) {
		return Token{}, false
	}
	return tok, true
}

// Put stores a token for tenant id, computing its absolute expiry from
// expiresIn, and persists it to disk.
func (c *Cache) Put(id, accessToken string, expiresIn time.Duration) Token {
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}
	tok := Token{
		AccessToken: accessToken,
		Expiry:      time.Now().Add(expiresIn),
		TenantID:    id,
	}

	c.mu.Lock()
	c.tokens[id] = tok
	c.mu.Unlock()

	if err := c.persist(tok); err != nil {
		c.logger.Warn(context.Background(), "failed to persist token",
			zap.String("tenant", id), zap.Error(err))
	}
	return tok
}

// Evict removes the in-memory and on-disk record for tenant id.
func (c *Cache) Evict(id string) {
	c.mu.Lock()
	delete(c.tokens, id)
	c.mu.Unlock()

	if c.dir == "" {
		return
	}
	path := filepath.Join(c.dir, id+".json")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.logger.Warn(context.Background(), "failed to remove token file",
			zap.String("tenant", id), zap.Error(err))
	}
}

// EvictAll evicts every tenant named in ids. Called at startup and
// shutdown so the gateway never serves a stale bearer across restarts.
func (c *Cache) EvictAll(ids []string) {
	for _, id := range ids {
		c.Evict(id)
	}
}

func (c *Cache) persist(tok Token) error {
	if c.dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	rec := record{
		AccessToken: tok.AccessToken,
		Expiry:      tok.Expiry.UnixMilli(),
		Environment: tok.TenantID,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling token record: %w", err)
	}

	path := filepath.Join(c.dir, tok.TenantID+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing temp token file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming token file: %w", err)
	}
	return nil
}

// Acquire returns a usable bearer token for t, acquiring a fresh one via
// OAuth2 client-credentials if the cache is empty or expired. Concurrent
// callers for the same tenant share a single in-flight exchange.
func (c *Cache) Acquire(ctx context.Context, t tenant.Tenant) (Token, error) {
	if tok, ok := c.Get(t.ID); ok {
		return tok, nil
	}

	val, err, _ := c.group.Do(t.ID, func() (interface{}, error) {
		// Re-check: another caller may have refreshed while we waited to
		// enter the singleflight group.
		if tok, ok := c.Get(t.ID); ok {
			return tok, nil
		}
		return c.exchange(ctx, t)
	})
	if err != nil {
		return Token{}, err
	}
	return val.(Token), nil
}

// exchange performs the OAuth2 client-credentials grant against the
// tenant's token endpoint.
func (c *Cache) exchange(ctx context.Context, t tenant.Tenant) (Token, error) {
	conf := &clientcredentials.Config{
		ClientID:     t.ClientID,
		ClientSecret: t.ClientSecret.Value(),
		TokenURL:     t.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	if t.Scope != "" {
		conf.Scopes = []string{t.Scope}
	}

	httpCtx := context.WithValue(ctx, oauth2.HTTPClient, c.httpCli)
	oauthTok, err := conf.Token(httpCtx)
	if err != nil {
		return Token{}, &AuthenticationFailureError{Tenant: t.ID, Cause: err}
	}

	expiresIn := defaultExpiresIn
	if !oauthTok.Expiry.IsZero() {
		expiresIn = time.Until(oauthTok.Expiry)
	}

	c.logger.Info(context.Background(), "token acquired",
		zap.String("tenant", t.ID),
		logging.RedactedString("access_token", oauthTok.AccessToken))

	return c.Put(t.ID, oauthTok.AccessToken, expiresIn), nil
}

// AuthenticationFailureError wraps a failed token exchange with the
// tenant id that failed, so callers can classify it distinctly from
// other upstream failures.
type AuthenticationFailureError struct {
	Tenant string
	Cause  error
}

func (e *AuthenticationFailureError) Error() string {
	return fmt.Sprintf("authentication failed for tenant %s: %v", e.Tenant, e.Cause)
}

func (e *AuthenticationFailureError) Unwrap() error {
	return e.Cause
}
</content>
