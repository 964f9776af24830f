// Package pawn provides the interface for pawn snapshot persistence
package pawn

//go:generate mockgen -destination=mock/mock_repository.go -package=pawnmock github.com/Toakan-Network/RW-MassAffect/internal/repositories/pawn Repository

import (
	"context"
	"time"

	"github.com/Toakan-Network/RW-MassAffect/internal/entities/pawn"
)

// Repository stores the latest snapshot the host pushed for each pawn
type Repository interface {
	// Get retrieves a pawn snapshot
	// Returns errors.InvalidArgument for an empty ID
	// Returns errors.NotFound if no snapshot exists or it expired
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put creates or replaces a pawn snapshot
	// Returns errors.InvalidArgument for a nil pawn or empty ID
	// Returns errors.Internal for storage failures
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Delete removes a pawn snapshot
	// Returns errors.InvalidArgument for an empty ID
	// Returns errors.NotFound if no snapshot exists
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for getting a pawn
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a pawn
type GetOutput struct {
	Pawn *pawn.Pawn
}

// PutInput defines the input for storing a pawn
type PutInput struct {
	Pawn *pawn.Pawn

	// TTL expires the snapshot; zero keeps it until replaced or deleted
	TTL time.Duration
}

// PutOutput defines the output for storing a pawn
type PutOutput struct {
	Pawn *pawn.Pawn
}

// DeleteInput defines the input for deleting a pawn
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a pawn
type DeleteOutput struct{}
