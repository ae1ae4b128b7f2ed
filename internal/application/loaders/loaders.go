package loaders

import (
	"context"
	"fmt"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/zatekoja/careplannavigator/internal/domain/entities"
	"github.com/zatekoja/careplannavigator/internal/domain/repositories"
	apperrors "github.com/zatekoja/careplannavigator/pkg/errors"
)

type ctxKey string

const loadersKey ctxKey = "dataloaders"

// Loaders contains the request-scoped dataloaders
type Loaders struct {
	StepLoader *dataloader.Loader[string, *entities.CareStep]
}

// NewLoaders creates a new instance of Loaders
func NewLoaders(stepRepo repositories.CareStepRepository) *Loaders {
	return &Loaders{
		StepLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.CareStep] {
			results := make([]*dataloader.Result[*entities.CareStep], len(keys))
			steps, err := stepRepo.GetByIDs(ctx, keys)

			stepMap := make(map[string]*entities.CareStep, len(steps))
			if err == nil {
				for _, s := range steps {
					stepMap[s.ID] = s
				}
			}

			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[*entities.CareStep]{Error: err}
				} else if s, ok := stepMap[key]; ok {
					results[i] = &dataloader.Result[*entities.CareStep]{Data: s}
				} else {
					results[i] = &dataloader.Result[*entities.CareStep]{Error: apperrors.NewNotFoundError(fmt.Sprintf("care step %s not found", key))}
				}
			}
			return results
		}),
	}
}

// LoadSteps resolves ids in one batch. Steps that fail to load are absent
// from the returned map.
func (l *Loaders) LoadSteps(ctx context.Context, ids []string) map[string]*entities.CareStep {
	thunks := make([]dataloader.Thunk[*entities.CareStep], len(ids))
	for i, id := range ids {
		thunks[i] = l.StepLoader.Load(ctx, id)
	}

	found := make(map[string]*entities.CareStep, len(ids))
	for i, thunk := range thunks {
		if step, err := thunk(); err == nil && step != nil {
			found[ids[i]] = step
		}
	}
	return found
}

// For returns the loaders attached to ctx, or nil
func For(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

// WithLoaders returns a new context with the loaders attached
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}
