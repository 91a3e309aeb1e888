// Package gateway mediates between the application's view of profiles,
// games, and changelog entries and its two external collaborators: the
// relational store and the credential service. It holds no state of its own;
// every operation is a request/response pass over the collaborators.
package gateway

import (
	"context"

	"github.com/ironstrike-games/studio-api/internal/credentials"
	"github.com/ironstrike-games/studio-api/internal/events"
	"github.com/ironstrike-games/studio-api/types"
	"github.com/sirupsen/logrus"
)

// impossibleID never matches a store-assigned identifier. Bulk deletes use
// it as the predicate row-level delete policies require.
const impossibleID = "00000000-0000-0000-0000-000000000000"

// ProfileStore defines persistence operations for profiles.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (types.UserProfile, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, profile types.UserProfile) error
	UpdateNameAvatar(ctx context.Context, id, name, avatarURL string) error
	ListAll(ctx context.Context) ([]types.UserProfile, error)
	Delete(ctx context.Context, id string) error
}

// GameStore defines persistence operations for catalog games.
type GameStore interface {
	List(ctx context.Context) ([]types.Game, error)
	Insert(ctx context.Context, game types.Game) (types.Game, error)
	Update(ctx context.Context, game types.Game) error
	Delete(ctx context.Context, id string) error
	DeleteAllExcept(ctx context.Context, id string) error
}

// ChangelogStore defines persistence operations for changelog entries.
type ChangelogStore interface {
	ListByDateDesc(ctx context.Context) ([]types.Changelog, error)
	Insert(ctx context.Context, log types.Changelog) (types.Changelog, error)
	Update(ctx context.Context, log types.Changelog) error
	Delete(ctx context.Context, id string) error
	DeleteAllExcept(ctx context.Context, id string) error
}

// Config carries the gateway's listing policies and write limits.
type Config struct {
	GamesPolicy      types.SourcePolicy
	ChangelogsPolicy types.SourcePolicy

	// MaxInlineImageBytes bounds inline data-URL image payloads on saves.
	MaxInlineImageBytes int
}

// DefaultConfig mirrors the production configuration: games always served
// from the seed set, changelogs read through with seed fallback.
func DefaultConfig() Config {
	return Config{
		GamesPolicy:         types.PolicyAlwaysSeed,
		ChangelogsPolicy:    types.PolicyReadThrough,
		MaxInlineImageBytes: 1 << 20,
	}
}

// Gateway is the content/profile gateway.
type Gateway struct {
	cfg        Config
	profiles   ProfileStore
	games      GameStore
	changelogs ChangelogStore
	creds      credentials.Service
	publisher  *events.Publisher
	log        *logrus.Logger
}

// New constructs a Gateway. publisher may be nil when no event broker is
// configured; log may be nil to use the standard logger.
func New(
	cfg Config,
	profiles ProfileStore,
	games GameStore,
	changelogs ChangelogStore,
	creds credentials.Service,
	publisher *events.Publisher,
	log *logrus.Logger,
) *Gateway {
	if !cfg.GamesPolicy.Valid() {
		cfg.GamesPolicy = types.PolicyAlwaysSeed
	}
	if !cfg.ChangelogsPolicy.Valid() {
		cfg.ChangelogsPolicy = types.PolicyReadThrough
	}
	if cfg.MaxInlineImageBytes <= 0 {
		cfg.MaxInlineImageBytes = DefaultConfig().MaxInlineImageBytes
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Gateway{
		cfg:        cfg,
		profiles:   profiles,
		games:      games,
		changelogs: changelogs,
		creds:      creds,
		publisher:  publisher,
		log:        log,
	}
}

// publish emits a content-change event. Failures are logged and never
// surfaced: events are advisory, mutations must not fail on broker trouble.
func (g *Gateway) publish(ctx context.Context, kind, entityID string) {
	if g.publisher == nil {
		return
	}
	if err := g.publisher.ContentChanged(ctx, kind, entityID); err != nil {
		g.log.WithError(err).WithField("kind", kind).Warn("content event publish failed")
	}
}
