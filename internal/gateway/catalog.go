package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ironstrike-games/studio-api/internal/events"
	"github.com/ironstrike-games/studio-api/internal/store"
	"github.com/ironstrike-games/studio-api/types"
)

const inlineDataPrefix = "data:"

// ListGames returns the game catalog according to the configured source
// policy. Under PolicyAlwaysSeed the store is bypassed entirely; under
// PolicyReadThrough an erroring or empty store read falls back to the seed
// set.
func (g *Gateway) ListGames(ctx context.Context) []types.Game {
	if g.cfg.GamesPolicy == types.PolicyAlwaysSeed {
		return SeedGames()
	}

	games, err := g.games.List(ctx)
	if err != nil {
		g.log.WithError(err).WithField("reason", "store_error").Warn("game listing fell back to seed set")
		return SeedGames()
	}
	if len(games) == 0 {
		g.log.WithField("reason", "empty").Debug("game listing fell back to seed set")
		return SeedGames()
	}
	return games
}

// SaveGame persists a game: an insert when id is new, an update keyed by the
// existing id otherwise. Returns the stored record, carrying the
// store-assigned id on insert.
func (g *Gateway) SaveGame(ctx context.Context, id types.RecordID, game types.Game) (types.Game, error) {
	if err := g.checkInlineImage(game.ImageURL); err != nil {
		return types.Game{}, err
	}

	if id.IsNew() {
		created, err := g.games.Insert(ctx, game)
		if err != nil {
			if errors.Is(err, store.ErrRowTooLarge) {
				return types.Game{}, fmt.Errorf("%w: %v", ErrPayloadTooLarge, err)
			}
			return types.Game{}, fmt.Errorf("%w: %v", ErrWrite, err)
		}
		g.publish(ctx, events.KindGameSaved, created.ID)
		return created, nil
	}

	game.ID = id.String()
	if err := g.games.Update(ctx, game); err != nil {
		if errors.Is(err, store.ErrRowTooLarge) {
			return types.Game{}, fmt.Errorf("%w: %v", ErrPayloadTooLarge, err)
		}
		return types.Game{}, fmt.Errorf("%w: %v", ErrUpdate, err)
	}
	g.publish(ctx, events.KindGameSaved, game.ID)
	return game, nil
}

// DeleteGame removes a game by id. Deleting a nonexistent id is not an
// error: zero rows affected is success.
func (g *Gateway) DeleteGame(ctx context.Context, id string) error {
	if err := g.games.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrDelete, err)
	}
	g.publish(ctx, events.KindGameDeleted, id)
	return nil
}

// checkInlineImage bounds inline data-URL payloads before they reach the
// store, so the caller sees the size failure distinctly from generic write
// failures and can suggest the assets endpoint instead.
func (g *Gateway) checkInlineImage(imageURL string) error {
	if !strings.HasPrefix(imageURL, inlineDataPrefix) {
		return nil
	}
	if len(imageURL) > g.cfg.MaxInlineImageBytes {
		return fmt.Errorf("%w: inline image is %d bytes, limit %d",
			ErrPayloadTooLarge, len(imageURL), g.cfg.MaxInlineImageBytes)
	}
	return nil
}
