package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/ironstrike-games/studio-api/internal/events"
	"github.com/ironstrike-games/studio-api/internal/store"
	"github.com/ironstrike-games/studio-api/types"
)

// ListAllProfiles returns the full roster. The caller's identity is passed
// explicitly; non-Admin callers are denied.
func (g *Gateway) ListAllProfiles(ctx context.Context, caller types.UserProfile) ([]types.UserProfile, error) {
	if caller.Role != types.RoleAdmin {
		return nil, ErrAuthorization
	}
	return g.profiles.ListAll(ctx)
}

// DeleteProfile removes a profile row and returns a fresh roster listing.
// The returned list is a read-after-write, not the pre-delete list with a
// local filter, so concurrent roster changes by other admins are reflected.
// Admin rows are refused here and additionally guarded by the store's own
// delete predicate. Deleting the underlying credential is out of scope: the
// identity can still authenticate, it just has no profile.
func (g *Gateway) DeleteProfile(ctx context.Context, caller types.UserProfile, id string) ([]types.UserProfile, error) {
	if caller.Role != types.RoleAdmin {
		return nil, ErrAuthorization
	}

	target, err := g.profiles.GetByID(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Zero rows affected is success; fall through to the listing.
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrDelete, err)
	case target.Role == types.RoleAdmin:
		return nil, fmt.Errorf("%w: admin profiles cannot be deleted", ErrAuthorization)
	default:
		if err := g.profiles.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDelete, err)
		}
		g.publish(ctx, events.KindProfileDeleted, id)
	}

	return g.profiles.ListAll(ctx)
}

// ResetToDefaults bulk-deletes all games and changelog entries, returning
// both catalogs to their seed sets. Destructive and irreversible; the UI
// layer gates it behind an explicit confirmation. The deletes carry an
// impossible-id predicate rather than truncating, to stay within row-level
// delete policies.
func (g *Gateway) ResetToDefaults(ctx context.Context, caller types.UserProfile) error {
	if caller.Role != types.RoleAdmin {
		return ErrAuthorization
	}

	if err := g.games.DeleteAllExcept(ctx, impossibleID); err != nil {
		return fmt.Errorf("%w: %v", ErrDelete, err)
	}
	if err := g.changelogs.DeleteAllExcept(ctx, impossibleID); err != nil {
		return fmt.Errorf("%w: %v", ErrDelete, err)
	}
	g.publish(ctx, events.KindContentReset, "")
	return nil
}
