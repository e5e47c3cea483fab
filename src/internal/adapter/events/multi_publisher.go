package events

import (
	"context"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"golang.org/x/sync/errgroup"
)

// MultiPublisher delivers each event to every sink concurrently and returns
// the first failure. A failing sink does not stop the others.
type MultiPublisher struct {
	publishers []domain.EventPublisher
}

var _ domain.EventPublisher = (*MultiPublisher)(nil)

func NewMultiPublisher(publishers ...domain.EventPublisher) *MultiPublisher {
	active := make([]domain.EventPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			active = append(active, p)
		}
	}
	return &MultiPublisher{publishers: active}
}

func (m *MultiPublisher) Publish(ctx context.Context, event domain.Event) error {
	var g errgroup.Group
	for _, p := range m.publishers {
		g.Go(func() error {
			return p.Publish(ctx, event)
		})
	}
	return g.Wait()
}
