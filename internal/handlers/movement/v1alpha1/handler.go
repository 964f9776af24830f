package v1alpha1

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
	"github.com/Toakan-Network/RW-MassAffect/internal/orchestrators/movement"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	MovementService movement.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.MovementService == nil {
		return errors.InvalidArgument("movement service is required")
	}
	return nil
}

// Handler implements the move cost gRPC service
type Handler struct {
	movementService movement.Service
}

var _ MoveCostServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		movementService: cfg.MovementService,
	}, nil
}

// TicksPerMove prices one step for a pawn sent inline
func (h *Handler) TicksPerMove(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body TicksPerMoveRequest
	if err := fromStruct(req, &body, true); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if body.Pawn == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("pawn is required"))
	}

	out, err := h.movementService.TicksPerMove(ctx, &movement.TicksPerMoveInput{
		Pawn:     body.Pawn,
		Diagonal: body.Diagonal,
		Explain:  body.Explain,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(toTicksResponse(out))
}

// TicksPerMoveForPawn prices one step for a stored pawn
func (h *Handler) TicksPerMoveForPawn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body TicksPerMoveForPawnRequest
	if err := fromStruct(req, &body, true); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if body.PawnID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("pawn_id is required"))
	}

	out, err := h.movementService.TicksPerMoveForPawn(ctx, &movement.TicksPerMoveForPawnInput{
		PawnID:   body.PawnID,
		Diagonal: body.Diagonal,
		Explain:  body.Explain,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(toTicksResponse(out))
}

// PutPawn stores a pawn snapshot
func (h *Handler) PutPawn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body PutPawnRequest
	if err := fromStruct(req, &body, true); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if body.Pawn == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("pawn is required"))
	}
	if body.TTLSeconds < 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("ttl_seconds must not be negative"))
	}

	out, err := h.movementService.PutPawn(ctx, &movement.PutPawnInput{
		Pawn: body.Pawn,
		TTL:  time.Duration(body.TTLSeconds) * time.Second,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&PawnResponse{Pawn: out.Pawn})
}

// GetPawn returns a stored pawn snapshot
func (h *Handler) GetPawn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body PawnRequest
	if err := fromStruct(req, &body, true); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if body.PawnID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("pawn_id is required"))
	}

	out, err := h.movementService.GetPawn(ctx, &movement.GetPawnInput{PawnID: body.PawnID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&PawnResponse{Pawn: out.Pawn})
}

// DeletePawn removes a stored pawn snapshot
func (h *Handler) DeletePawn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body PawnRequest
	if err := fromStruct(req, &body, true); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if body.PawnID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("pawn_id is required"))
	}

	if _, err := h.movementService.DeletePawn(ctx, &movement.DeletePawnInput{PawnID: body.PawnID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&DeletePawnResponse{})
}

func respond(body any) (*structpb.Struct, error) {
	out, err := toStruct(body)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}
