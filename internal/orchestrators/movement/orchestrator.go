// Package movement prices pawn movement and manages the pawn snapshots it reads
package movement

//go:generate mockgen -destination=mock/mock_service.go -package=movementmock github.com/Toakan-Network/RW-MassAffect/internal/orchestrators/movement Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/Toakan-Network/RW-MassAffect/internal/engine/movecost"
	"github.com/Toakan-Network/RW-MassAffect/internal/entities/pawn"
	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
	"github.com/Toakan-Network/RW-MassAffect/internal/pkg/clock"
	"github.com/Toakan-Network/RW-MassAffect/internal/pkg/idgen"
	pawnrepo "github.com/Toakan-Network/RW-MassAffect/internal/repositories/pawn"
)

// EventCostComputed is published on the event bus after every priced step
const EventCostComputed = "movement.cost_computed"

// Event context keys
const (
	EventKeyComputationID = "computation_id"
	EventKeyTicks         = "ticks"
	EventKeyDiagonal      = "diagonal"
	EventKeyProvider      = "provider"
)

// Service defines the interface for movement cost operations
type Service interface {
	// TicksPerMove prices one step for a pawn passed inline
	TicksPerMove(ctx context.Context, input *TicksPerMoveInput) (*TicksPerMoveOutput, error)

	// TicksPerMoveForPawn prices one step for a stored pawn
	TicksPerMoveForPawn(ctx context.Context, input *TicksPerMoveForPawnInput) (*TicksPerMoveOutput, error)

	// Snapshot management
	PutPawn(ctx context.Context, input *PutPawnInput) (*PutPawnOutput, error)
	GetPawn(ctx context.Context, input *GetPawnInput) (*GetPawnOutput, error)
	DeletePawn(ctx context.Context, input *DeletePawnInput) (*DeletePawnOutput, error)
}

// Config holds the dependencies for the movement orchestrator
type Config struct {
	PawnRepo pawnrepo.Repository

	// Provider answers first; Fallback answers when Provider defers
	Provider movecost.Explainer
	Fallback movecost.Explainer

	EventBus    events.EventBus
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.PawnRepo == nil {
		vb.RequiredField("PawnRepo")
	}
	if c.Provider == nil {
		vb.RequiredField("Provider")
	}
	if c.Fallback == nil {
		vb.RequiredField("Fallback")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	pawnRepo pawnrepo.Repository
	provider movecost.Explainer
	fallback movecost.Explainer
	eventBus events.EventBus
	idGen    idgen.Generator
	clock    clock.Clock
}

// NewOrchestrator creates a new movement orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		pawnRepo: cfg.PawnRepo,
		provider: cfg.Provider,
		fallback: cfg.Fallback,
		eventBus: cfg.EventBus,
		idGen:    cfg.IDGenerator,
		clock:    cfg.Clock,
	}, nil
}

// TicksPerMove prices one step for a pawn passed inline
func (o *orchestrator) TicksPerMove(ctx context.Context, input *TicksPerMoveInput) (*TicksPerMoveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := input.Pawn.Validate(); err != nil {
		return nil, err
	}

	return o.price(ctx, input.Pawn, input.Diagonal, input.Explain), nil
}

// TicksPerMoveForPawn prices one step for a stored pawn
func (o *orchestrator) TicksPerMoveForPawn(
	ctx context.Context,
	input *TicksPerMoveForPawnInput,
) (*TicksPerMoveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PawnID == "" {
		return nil, errors.InvalidArgument("pawn ID is required")
	}

	got, err := o.pawnRepo.Get(ctx, pawnrepo.GetInput{ID: input.PawnID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load pawn %s", input.PawnID)
	}

	return o.price(ctx, got.Pawn, input.Diagonal, input.Explain), nil
}

// price never fails: every valid snapshot has a tick cost
func (o *orchestrator) price(ctx context.Context, p *pawn.Pawn, diagonal, explain bool) *TicksPerMoveOutput {
	in := p.MoveInput(diagonal)

	var (
		res       movecost.Result
		answered  movecost.Explainer
		breakdown *movecost.Breakdown
	)
	if explain {
		var b movecost.Breakdown
		b, answered = movecost.ResolveExplained(o.provider, o.fallback, in)
		res, breakdown = b.Result(), &b
	} else {
		res = movecost.Resolve(o.provider, o.fallback, in)
		answered = o.fallback
		if res.Override {
			answered = o.provider
		}
	}

	out := &TicksPerMoveOutput{
		ComputationID: o.idGen.Generate(),
		PawnID:        p.ID,
		Ticks:         res.Ticks,
		Override:      res.Override,
		Provider:      answered.Name(),
		Breakdown:     breakdown,
	}

	slog.DebugContext(ctx, "priced pawn step",
		"computation_id", out.ComputationID,
		"pawn_id", p.ID,
		"diagonal", diagonal,
		"provider", out.Provider,
		"ticks", out.Ticks,
	)

	o.publish(ctx, p, diagonal, out)

	return out
}

func (o *orchestrator) publish(ctx context.Context, p *pawn.Pawn, diagonal bool, out *TicksPerMoveOutput) {
	evt := events.NewGameEvent(EventCostComputed, p, nil)
	evt.Context().Set(EventKeyComputationID, out.ComputationID)
	evt.Context().Set(EventKeyTicks, out.Ticks)
	evt.Context().Set(EventKeyDiagonal, diagonal)
	evt.Context().Set(EventKeyProvider, out.Provider)

	if err := o.eventBus.Publish(ctx, evt); err != nil {
		slog.WarnContext(ctx, "failed to publish move cost event",
			"computation_id", out.ComputationID,
			"pawn_id", p.ID,
			"error", err,
		)
	}
}

// PutPawn validates and stores a pawn snapshot
func (o *orchestrator) PutPawn(ctx context.Context, input *PutPawnInput) (*PutPawnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := input.Pawn.Validate(); err != nil {
		return nil, err
	}
	if input.Pawn.ID == "" {
		return nil, errors.InvalidArgument("pawn ID is required")
	}
	if input.TTL < 0 {
		return nil, errors.InvalidArgument("ttl must not be negative")
	}

	snapshot := input.Pawn.Clone()
	snapshot.UpdatedAt = o.clock.Now().Unix()

	out, err := o.pawnRepo.Put(ctx, pawnrepo.PutInput{Pawn: snapshot, TTL: input.TTL})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store pawn %s", snapshot.ID)
	}

	slog.InfoContext(ctx, "pawn snapshot stored",
		"pawn_id", snapshot.ID,
		"payload", movecost.PayloadKind(snapshot.MoveInput(false).Payload),
		"gear_items", len(snapshot.Gear),
		"spawned", snapshot.Position != nil,
	)

	return &PutPawnOutput{Pawn: out.Pawn}, nil
}

// GetPawn returns a stored pawn snapshot
func (o *orchestrator) GetPawn(ctx context.Context, input *GetPawnInput) (*GetPawnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PawnID == "" {
		return nil, errors.InvalidArgument("pawn ID is required")
	}

	got, err := o.pawnRepo.Get(ctx, pawnrepo.GetInput{ID: input.PawnID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get pawn %s", input.PawnID)
	}

	return &GetPawnOutput{Pawn: got.Pawn}, nil
}

// DeletePawn removes a stored pawn snapshot
func (o *orchestrator) DeletePawn(ctx context.Context, input *DeletePawnInput) (*DeletePawnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PawnID == "" {
		return nil, errors.InvalidArgument("pawn ID is required")
	}

	if _, err := o.pawnRepo.Delete(ctx, pawnrepo.DeleteInput{ID: input.PawnID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete pawn %s", input.PawnID)
	}

	slog.InfoContext(ctx, "pawn snapshot deleted", "pawn_id", input.PawnID)

	return &DeletePawnOutput{}, nil
}
