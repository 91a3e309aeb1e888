package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/ironstrike-games/studio-api/internal/events"
	"github.com/ironstrike-games/studio-api/internal/store"
	"github.com/ironstrike-games/studio-api/types"
)

// ListChangelogs returns the update feed according to the configured source
// policy. The store read is ordered by the free-text date column descending.
// Under PolicyReadThrough the seed set substitutes for an erroring or empty
// read; the two cases resolve to the same value but are logged apart so a
// real configuration problem stays visible in telemetry.
func (g *Gateway) ListChangelogs(ctx context.Context) []types.Changelog {
	if g.cfg.ChangelogsPolicy == types.PolicyAlwaysSeed {
		return SeedChangelogs()
	}

	logs, err := g.changelogs.ListByDateDesc(ctx)
	if err != nil {
		g.log.WithError(err).WithField("reason", "store_error").Warn("changelog listing fell back to seed set")
		return SeedChangelogs()
	}
	if len(logs) == 0 {
		g.log.WithField("reason", "empty").Debug("changelog listing fell back to seed set")
		return SeedChangelogs()
	}
	return logs
}

// SaveChangelog persists an entry: an insert when id is new, an update keyed
// by the existing id otherwise.
func (g *Gateway) SaveChangelog(ctx context.Context, id types.RecordID, log types.Changelog) (types.Changelog, error) {
	if !log.Type.Valid() {
		return types.Changelog{}, fmt.Errorf("%w: unknown changelog type %q", ErrWrite, log.Type)
	}

	if id.IsNew() {
		created, err := g.changelogs.Insert(ctx, log)
		if err != nil {
			if errors.Is(err, store.ErrRowTooLarge) {
				return types.Changelog{}, fmt.Errorf("%w: %v", ErrPayloadTooLarge, err)
			}
			return types.Changelog{}, fmt.Errorf("%w: %v", ErrWrite, err)
		}
		g.publish(ctx, events.KindChangelogSaved, created.ID)
		return created, nil
	}

	log.ID = id.String()
	if err := g.changelogs.Update(ctx, log); err != nil {
		if errors.Is(err, store.ErrRowTooLarge) {
			return types.Changelog{}, fmt.Errorf("%w: %v", ErrPayloadTooLarge, err)
		}
		return types.Changelog{}, fmt.Errorf("%w: %v", ErrUpdate, err)
	}
	g.publish(ctx, events.KindChangelogSaved, log.ID)
	return log, nil
}

// DeleteChangelog removes an entry by id. Deleting a nonexistent id is not
// an error.
func (g *Gateway) DeleteChangelog(ctx context.Context, id string) error {
	if err := g.changelogs.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrDelete, err)
	}
	g.publish(ctx, events.KindChangelogDeleted, id)
	return nil
}
