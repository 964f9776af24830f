package pawn

import (
	"context"
	"sync"
	"time"

	"github.com/Toakan-Network/RW-MassAffect/internal/entities/pawn"
	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
	"github.com/Toakan-Network/RW-MassAffect/internal/pkg/clock"
)

type entry struct {
	pawn      *pawn.Pawn
	expiresAt time.Time
}

// InMemoryRepository implements Repository with a map, for running without Redis
type InMemoryRepository struct {
	clock clock.Clock

	mu    sync.RWMutex
	store map[string]entry
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates an in-memory repository. A nil clock uses wall time.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]entry),
	}
}

// Get retrieves a copy of the stored pawn
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPawnIDEmpty)
	}

	r.mu.RLock()
	e, ok := r.store[input.ID]
	r.mu.RUnlock()

	if !ok || r.expired(e) {
		return nil, errors.NotFoundf("pawn %s not found", input.ID).WithMeta("pawn_id", input.ID)
	}

	return &GetOutput{Pawn: e.pawn.Clone()}, nil
}

// Put stores a copy of the pawn
func (r *InMemoryRepository) Put(_ context.Context, input PutInput) (*PutOutput, error) {
	if input.Pawn == nil {
		return nil, errors.InvalidArgument(errPawnNil)
	}
	if input.Pawn.ID == "" {
		return nil, errors.InvalidArgument(errPawnIDEmpty)
	}

	e := entry{pawn: input.Pawn.Clone()}
	if input.TTL > 0 {
		e.expiresAt = r.clock.Now().Add(input.TTL)
	}

	r.mu.Lock()
	r.store[input.Pawn.ID] = e
	r.mu.Unlock()

	return &PutOutput{Pawn: input.Pawn}, nil
}

// Delete removes a pawn
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPawnIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.store[input.ID]
	if !ok || r.expired(e) {
		delete(r.store, input.ID)
		return nil, errors.NotFoundf("pawn %s not found", input.ID).WithMeta("pawn_id", input.ID)
	}

	delete(r.store, input.ID)
	return &DeleteOutput{}, nil
}

func (r *InMemoryRepository) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !r.clock.Now().Before(e.expiresAt)
}
