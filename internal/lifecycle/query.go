package lifecycle

import (
	"context"
	"fmt"

	"github.com/alitto/pond/v2"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/ledger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/store"
)

// ListOwned lists the caller's entities of a stage in index order.
// The index is eventually consistent with the ledger; entities are read from the ledger.
func (s *service) ListOwned(ctx context.Context, credential string, stage domain.Stage, page Page) ([]Owned, error) {
	if !domain.IsValidStage(stage) {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown stage %q", stage))
	}
	actor, err := s.authenticate(ctx, credential, stage, domain.ActionList)
	if err != nil {
		return nil, domain.AsError(err)
	}
	if err := validateInput(s.validate, &page); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	rows, err := s.store.ListOwnerships(ctx, store.OwnershipFilter{
		OwnerAccountID: actor.AccountID,
		StageType:      stage,
		Limit:          page.Limit,
		Offset:         page.Offset,
	})
	if err != nil {
		return nil, domain.NewInternalError("list ownerships", err)
	}

	ids := make([]uint64, len(rows))
	for i, row := range rows {
		ids[i] = row.EntityID
	}
	entities, err := s.fetchEntities(ctx, stage, ids)
	if err != nil {
		return nil, domain.AsError(err)
	}

	owned := make([]Owned, len(rows))
	for i, row := range rows {
		owned[i] = Owned{
			IndexID:  row.ID,
			Stage:    row.StageType,
			OriginID: row.OriginEntityID,
			Entity:   entities[i],
		}
	}
	return owned, nil
}

// ListWatched lists the entities the caller watches without owning them
func (s *service) ListWatched(ctx context.Context, credential string, page Page) ([]Watched, error) {
	actor, err := s.authenticate(ctx, credential, domain.StageWaste, domain.ActionList)
	if err != nil {
		return nil, domain.AsError(err)
	}
	if err := validateInput(s.validate, &page); err != nil {
		return nil, err
	}
	page = normalizePage(page)

	watches, err := s.store.ListWatches(ctx, actor.AccountID, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.NewInternalError("list watches", err)
	}

	// group by stage so each stage is read with its array getter
	idsByStage := make(map[domain.Stage][]uint64)
	for _, w := range watches {
		idsByStage[w.StageType] = append(idsByStage[w.StageType], w.WatchedEntityID)
	}
	entitiesByStage := make(map[domain.Stage][]ledger.Entity, len(idsByStage))
	for stage, ids := range idsByStage {
		entities, err := s.fetchEntities(ctx, stage, ids)
		if err != nil {
			return nil, domain.AsError(err)
		}
		entitiesByStage[stage] = entities
	}

	watched := make([]Watched, len(watches))
	next := make(map[domain.Stage]int, len(idsByStage))
	for i, w := range watches {
		idx := next[w.StageType]
		next[w.StageType]++
		watched[i] = Watched{
			WatchID: w.ID,
			Stage:   w.StageType,
			Entity:  entitiesByStage[w.StageType][idx],
		}
	}
	return watched, nil
}

// Unwatch removes one of the caller's watches
func (s *service) Unwatch(ctx context.Context, credential string, watchID string) error {
	actor, err := s.authenticate(ctx, credential, domain.StageWaste, domain.ActionUnwatch)
	if err != nil {
		return domain.AsError(err)
	}
	if watchID == "" {
		return domain.NewValidationError("watch id is required")
	}

	deleted, err := s.store.DeleteWatch(ctx, actor.AccountID, watchID)
	if err != nil {
		return domain.NewInternalError("delete watch", err)
	}
	if !deleted {
		return domain.NewNotFoundError(domain.CodeEntityNotFound)
	}
	return nil
}

// fetchEntities reads entities in chunks with the stage's array getter,
// concurrently, preserving the order of ids
func (s *service) fetchEntities(ctx context.Context, stage domain.Stage, ids []uint64) ([]ledger.Entity, error) {
	if len(ids) == 0 {
		return []ledger.Entity{}, nil
	}

	pool := pond.NewResultPool[[]ledger.Entity](s.cfg.ListConcurrency, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for start := 0; start < len(ids); start += s.cfg.ChunkSize {
		chunk := ids[start:min(start+s.cfg.ChunkSize, len(ids))]
		group.SubmitErr(func() ([]ledger.Entity, error) {
			return GetEntities(ctx, s.ledger, stage, chunk)
		})
	}

	chunks, err := group.Wait()
	if err != nil {
		return nil, err
	}

	entities := make([]ledger.Entity, 0, len(ids))
	for _, c := range chunks {
		entities = append(entities, c...)
	}
	return entities, nil
}
