// Package events publishes application lifecycle notifications. Downstream
// consumers (underwriting intake, analytics) subscribe to the saved topic;
// publishing is fail-open because a save that landed in Postgres must not be
// reported as failed over a broker hiccup.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ApplicationSaved is emitted after a save transaction commits.
type ApplicationSaved struct {
	ApplicationID      uuid.UUID  `json:"applicationId"`
	UserID             string     `json:"userId"`
	PriorApplicationID *uuid.UUID `json:"priorApplicationId,omitempty"`
	Status             string     `json:"status"`
	BorrowerCount      int        `json:"borrowerCount"`
	SavedAt            time.Time  `json:"savedAt"`
}

// Publisher delivers saved events. Implementations must not block the save
// path beyond the context deadline.
type Publisher interface {
	PublishApplicationSaved(ctx context.Context, event ApplicationSaved) error
}

// MemoryPublisher records events for tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []ApplicationSaved
	err    error
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

// FailWith makes subsequent publishes return err. Pass nil to clear.
func (p *MemoryPublisher) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *MemoryPublisher) PublishApplicationSaved(_ context.Context, event ApplicationSaved) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (p *MemoryPublisher) Events() []ApplicationSaved {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ApplicationSaved(nil), p.events...)
}
