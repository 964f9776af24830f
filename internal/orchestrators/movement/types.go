package movement

import (
	"time"

	"github.com/Toakan-Network/RW-MassAffect/internal/engine/movecost"
	"github.com/Toakan-Network/RW-MassAffect/internal/entities/pawn"
)

// TicksPerMoveInput prices one step for a pawn described inline
type TicksPerMoveInput struct {
	Pawn     *pawn.Pawn
	Diagonal bool

	// Explain attaches the per-step breakdown to the output
	Explain bool
}

// TicksPerMoveForPawnInput prices one step for a stored pawn snapshot
type TicksPerMoveForPawnInput struct {
	PawnID   string
	Diagonal bool
	Explain  bool
}

// TicksPerMoveOutput is the priced step
type TicksPerMoveOutput struct {
	ComputationID string
	PawnID        string
	Ticks         float64

	// Override is false only when the host default answered
	Override bool

	// Provider names the provider whose answer was used
	Provider string

	Breakdown *movecost.Breakdown
}

// PutPawnInput stores a pawn snapshot
type PutPawnInput struct {
	Pawn *pawn.Pawn
	TTL  time.Duration
}

// PutPawnOutput returns the stored snapshot with UpdatedAt stamped
type PutPawnOutput struct {
	Pawn *pawn.Pawn
}

// GetPawnInput looks up a pawn snapshot
type GetPawnInput struct {
	PawnID string
}

// GetPawnOutput is the stored snapshot
type GetPawnOutput struct {
	Pawn *pawn.Pawn
}

// DeletePawnInput removes a pawn snapshot
type DeletePawnInput struct {
	PawnID string
}

// DeletePawnOutput is empty
type DeletePawnOutput struct{}
