package secrets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	pkgsecrets "github.com/bipa-app/escher/pkg/secrets"
)

// ParseFunc extracts T from a raw secret map and validates required keys.
type ParseFunc[T any] func(map[string]string) (T, error)

// Resolver resolves per-account values from a secrets Provider and caches
// them locally.
//
// Secret naming convention: {env}/{account}/{venue}
type Resolver[T any] struct {
	logger   *zap.Logger
	env      string
	venue    string
	provider pkgsecrets.Provider
	cache    *pkgsecrets.Cache[T]
	parse    ParseFunc[T]
}

// NewResolver constructs a cached resolver.
func NewResolver[T any](
	logger *zap.Logger,
	env, venue string,
	provider pkgsecrets.Provider,
	cache *pkgsecrets.Cache[T],
	parse ParseFunc[T],
) *Resolver[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver[T]{
		logger:   logger,
		env:      env,
		venue:    venue,
		provider: provider,
		cache:    cache,
		parse:    parse,
	}
}

func (r *Resolver[T]) cacheKey(account string) string {
	return strings.ToLower(account + "|" + r.venue)
}

// SecretName builds the secrets manager key for an account.
func (r *Resolver[T]) SecretName(account string) string {
	return strings.ToLower(fmt.Sprintf("%s/%s/%s", r.env, account, r.venue))
}

// Resolve returns the cached value for account, fetching it on a miss.
func (r *Resolver[T]) Resolve(ctx context.Context, account string) (T, error) {
	var zero T
	key := r.cacheKey(account)

	if v, ok := r.cache.Get(key); ok {
		return v, nil
	}

	name := r.SecretName(account)
	raw, err := r.provider.GetSecret(ctx, name)
	if err != nil {
		r.logger.Warn("secrets.fetch_failed",
			zap.String("key", name),
			zap.Error(err))
		return zero, fmt.Errorf("resolve %s secret for %q: %w", r.venue, account, err)
	}

	v, err := r.parse(raw)
	if err != nil {
		return zero, fmt.Errorf("parse secret %q: %w", name, err)
	}

	r.cache.Put(key, v)
	r.logger.Info("secrets.resolved",
		zap.String("account", account),
		zap.String("venue", r.venue))
	return v, nil
}

// Invalidate drops the cached value so the next Resolve refetches it.
func (r *Resolver[T]) Invalidate(account string) {
	r.cache.Bust(r.cacheKey(account))
}

// DiscoverAccounts lists accounts that have a secret for this venue.
// Names look like "{env}/{account}/{venue}"; anything else is skipped.
func (r *Resolver[T]) DiscoverAccounts(ctx context.Context) ([]string, error) {
	prefix := strings.ToLower(r.env + "/")
	suffix := "/" + strings.ToLower(r.venue)

	names, err := r.provider.ListSecrets(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("discover accounts: %w", err)
	}

	var accounts []string
	for _, name := range names {
		lower := strings.ToLower(name)
		if !strings.HasPrefix(lower, prefix) || !strings.HasSuffix(lower, suffix) {
			continue
		}
		account := strings.TrimSuffix(strings.TrimPrefix(lower, prefix), suffix)
		if account != "" && !strings.Contains(account, "/") {
			accounts = append(accounts, account)
		}
	}

	r.logger.Info("secrets.accounts_discovered",
		zap.Int("count", len(accounts)))
	return accounts, nil
}
