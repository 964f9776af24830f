package v1alpha1

import (
	"bytes"
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Toakan-Network/RW-MassAffect/internal/engine/movecost"
	"github.com/Toakan-Network/RW-MassAffect/internal/entities/pawn"
	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
	"github.com/Toakan-Network/RW-MassAffect/internal/orchestrators/movement"
)

// TicksPerMoveRequest prices a step for a pawn sent inline
type TicksPerMoveRequest struct {
	Pawn     *pawn.Pawn `json:"pawn"`
	Diagonal bool       `json:"diagonal,omitempty"`
	Explain  bool       `json:"explain,omitempty"`
}

// TicksPerMoveForPawnRequest prices a step for a stored pawn
type TicksPerMoveForPawnRequest struct {
	PawnID   string `json:"pawn_id"`
	Diagonal bool   `json:"diagonal,omitempty"`
	Explain  bool   `json:"explain,omitempty"`
}

// TicksPerMoveResponse is a priced step
type TicksPerMoveResponse struct {
	ComputationID string     `json:"computation_id"`
	PawnID        string     `json:"pawn_id,omitempty"`
	Ticks         float64    `json:"ticks"`
	Override      bool       `json:"override"`
	Provider      string     `json:"provider"`
	Breakdown     *Breakdown `json:"breakdown,omitempty"`
}

// Breakdown is the wire form of movecost.Breakdown
type Breakdown struct {
	BaseSpeed              float64 `json:"base_speed"`
	RestraintFactor        float64 `json:"restraint_factor"`
	CarriedCharacterFactor float64 `json:"carried_character_factor"`
	CarriedCharacterMass   float64 `json:"carried_character_mass"`
	GearFactor             float64 `json:"gear_factor"`
	GearMass               float64 `json:"gear_mass"`
	CarriedItemFactor      float64 `json:"carried_item_factor"`
	CarriedItemMass        float64 `json:"carried_item_mass"`
	Speed                  float64 `json:"speed"`
	RawTicks               float64 `json:"raw_ticks"`
	WeatherMultiplier      float64 `json:"weather_multiplier"`
	DiagonalFactor         float64 `json:"diagonal_factor"`
	Immobile               bool    `json:"immobile,omitempty"`
	DebugOverride          bool    `json:"debug_override,omitempty"`
	Ticks                  float64 `json:"ticks"`
	Override               bool    `json:"override"`
}

// PutPawnRequest stores a pawn snapshot. TTLSeconds of zero never expires.
type PutPawnRequest struct {
	Pawn       *pawn.Pawn `json:"pawn"`
	TTLSeconds int64      `json:"ttl_seconds,omitempty"`
}

// PawnRequest addresses a stored pawn
type PawnRequest struct {
	PawnID string `json:"pawn_id"`
}

// PawnResponse carries a stored pawn snapshot
type PawnResponse struct {
	Pawn *pawn.Pawn `json:"pawn"`
}

// DeletePawnResponse is empty
type DeletePawnResponse struct{}

func toTicksResponse(out *movement.TicksPerMoveOutput) *TicksPerMoveResponse {
	resp := &TicksPerMoveResponse{
		ComputationID: out.ComputationID,
		PawnID:        out.PawnID,
		Ticks:         out.Ticks,
		Override:      out.Override,
		Provider:      out.Provider,
	}
	if out.Breakdown != nil {
		resp.Breakdown = toBreakdown(out.Breakdown)
	}
	return resp
}

func toBreakdown(b *movecost.Breakdown) *Breakdown {
	return &Breakdown{
		BaseSpeed:              b.BaseSpeed,
		RestraintFactor:        b.RestraintFactor,
		CarriedCharacterFactor: b.CarriedCharacterFactor,
		CarriedCharacterMass:   b.CarriedCharacterMass,
		GearFactor:             b.GearFactor,
		GearMass:               b.GearMass,
		CarriedItemFactor:      b.CarriedItemFactor,
		CarriedItemMass:        b.CarriedItemMass,
		Speed:                  b.Speed,
		RawTicks:               b.RawTicks,
		WeatherMultiplier:      b.WeatherMultiplier,
		DiagonalFactor:         b.DiagonalFactor,
		Immobile:               b.Immobile,
		DebugOverride:          b.DebugOverride,
		Ticks:                  b.Ticks,
		Override:               b.Override,
	}
}

// fromStruct decodes a Struct into dst. Strict decoding rejects unknown
// fields, which the server wants and the client does not.
func fromStruct(s *structpb.Struct, dst any, strict bool) error {
	if s == nil {
		return errors.InvalidArgument("request is required")
	}

	raw, err := protojson.Marshal(s)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read message")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed message")
	}

	return nil
}

func toStruct(src any) (*structpb.Struct, error) {
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}

	return out, nil
}
