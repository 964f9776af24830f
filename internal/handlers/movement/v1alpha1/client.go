package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
)

// Client calls the move cost service over an established connection
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps a connection
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// TicksPerMove prices one step for a pawn sent inline
func (c *Client) TicksPerMove(ctx context.Context, req *TicksPerMoveRequest) (*TicksPerMoveResponse, error) {
	resp := &TicksPerMoveResponse{}
	if err := c.invoke(ctx, MethodTicksPerMove, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// TicksPerMoveForPawn prices one step for a stored pawn
func (c *Client) TicksPerMoveForPawn(
	ctx context.Context,
	req *TicksPerMoveForPawnRequest,
) (*TicksPerMoveResponse, error) {
	resp := &TicksPerMoveResponse{}
	if err := c.invoke(ctx, MethodTicksPerMoveForPawn, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// PutPawn stores a pawn snapshot
func (c *Client) PutPawn(ctx context.Context, req *PutPawnRequest) (*PawnResponse, error) {
	resp := &PawnResponse{}
	if err := c.invoke(ctx, MethodPutPawn, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetPawn fetches a stored pawn snapshot
func (c *Client) GetPawn(ctx context.Context, req *PawnRequest) (*PawnResponse, error) {
	resp := &PawnResponse{}
	if err := c.invoke(ctx, MethodGetPawn, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DeletePawn removes a stored pawn snapshot
func (c *Client) DeletePawn(ctx context.Context, req *PawnRequest) error {
	return c.invoke(ctx, MethodDeletePawn, req, &DeletePawnResponse{})
}

// invoke returns errors in the errors package form so callers can use its predicates
func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}

	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, FullMethod(method), in, out); err != nil {
		return errors.FromGRPCError(err)
	}

	return fromStruct(out, resp, false)
}
