package escher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	isecrets "github.com/bipa-app/escher/internal/secrets"
	"github.com/bipa-app/escher/pkg/config"
	"github.com/bipa-app/escher/pkg/secrets"
	"github.com/bipa-app/escher/pkg/utils"
)

const secretsVenue = "escher"

// Credentials are the sign-in email and password for one Escher account.
type Credentials struct {
	Email    string
	Password string
}

// String masks the credentials so they are safe to print.
func (c Credentials) String() string {
	return fmt.Sprintf("{%s ***}", utils.MaskEmail(c.Email))
}

// CredentialResolver looks up the credentials of an account.
type CredentialResolver interface {
	Resolve(ctx context.Context, account string) (Credentials, error)
}

// SecretsCredentialResolver reads credentials from a secrets Provider,
// secret name {env}/{account}/escher, caching them for the configured TTL.
// It only looks credentials up; tokens are never stored.
type SecretsCredentialResolver struct {
	*isecrets.Resolver[Credentials]
	cache *secrets.Cache[Credentials]
}

// NewSecretsCredentialResolver wraps provider with a TTL cache.
func NewSecretsCredentialResolver(logger *zap.Logger, env string, provider secrets.Provider, cfg *config.Config) *SecretsCredentialResolver {
	cache := secrets.NewCache[Credentials](cfg.CacheTTL)
	return &SecretsCredentialResolver{
		Resolver: isecrets.NewResolver(logger, env, secretsVenue, provider, cache, parseCredentials),
		cache:    cache,
	}
}

// NewAWSCredentialResolver builds a resolver backed by AWS Secrets Manager in cfg.AWSRegion.
func NewAWSCredentialResolver(ctx context.Context, logger *zap.Logger, cfg *config.Config) (*SecretsCredentialResolver, error) {
	provider, err := secrets.NewAWSProvider(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	return NewSecretsCredentialResolver(logger, cfg.Env, provider, cfg), nil
}

// StartCleaner evicts expired cache entries every freq until ctx is done.
func (r *SecretsCredentialResolver) StartCleaner(ctx context.Context, freq time.Duration) {
	r.cache.StartCleaner(ctx, freq)
}

func parseCredentials(raw map[string]string) (Credentials, error) {
	c := Credentials{Email: raw["email"], Password: raw["password"]}
	if c.Email == "" || c.Password == "" {
		return Credentials{}, errors.New("secret must contain non-empty email and password")
	}
	return c, nil
}

// SignInWith resolves account's credentials and signs in with them.
func (c *Client) SignInWith(ctx context.Context, resolver CredentialResolver, account string) (*AuthResponse, error) {
	creds, err := resolver.Resolve(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("escher %s: credentials for %q: %w", opSignIn.name, account, err)
	}
	return c.SignIn(ctx, creds.Email, creds.Password)
}
