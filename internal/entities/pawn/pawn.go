// Package pawn holds the pawn snapshot the host simulation pushes to the service
package pawn

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/Toakan-Network/RW-MassAffect/internal/engine/movecost"
	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
)

// EntityType is the rpg-toolkit entity type for pawns
const EntityType = "pawn"

// Stats are the host's resolved stat values for the pawn
type Stats struct {
	MoveSpeed        float64 `json:"move_speed"`
	CrawlSpeed       float64 `json:"crawl_speed"`
	CarryingCapacity float64 `json:"carrying_capacity"`
	Mass             float64 `json:"mass"`
}

// Status carries the health and restraint flags that change how a pawn moves
type Status struct {
	Downed            bool `json:"downed,omitempty"`
	CanCrawl          bool `json:"can_crawl,omitempty"`
	InRestraints      bool `json:"in_restraints,omitempty"`
	DebugMaxMoveSpeed bool `json:"debug_max_move_speed,omitempty"`
}

// Apparel is one worn item
type Apparel struct {
	Label string  `json:"label,omitempty"`
	Mass  float64 `json:"mass"`
}

// Carried is whatever the pawn is hauling. Kind is "character" or "item".
type Carried struct {
	Kind  string    `json:"kind"`
	Label string    `json:"label,omitempty"`
	Mass  float64   `json:"mass"`
	Gear  []Apparel `json:"gear,omitempty"`
}

// ClearWeather is the weather multiplier assumed when a document omits it
const ClearWeather = 1.0

// Position is where a spawned pawn stands and what the sky looks like there
type Position struct {
	X                          int     `json:"x"`
	Z                          int     `json:"z"`
	Roofed                     bool    `json:"roofed,omitempty"`
	WeatherMoveSpeedMultiplier float64 `json:"weather_move_speed_multiplier"`
}

// UnmarshalJSON fills in ClearWeather when the multiplier is absent; a zero
// multiplier would otherwise leave the pawn immobile.
func (p *Position) UnmarshalJSON(data []byte) error {
	type plain Position
	v := plain{WeatherMoveSpeedMultiplier: ClearWeather}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return err
	}

	*p = Position(v)
	return nil
}

// Pawn is a snapshot of a single pawn. Position is nil when unspawned.
type Pawn struct {
	ID        string    `json:"id"`
	Label     string    `json:"label,omitempty"`
	Stats     Stats     `json:"stats"`
	Status    Status    `json:"status"`
	Gear      []Apparel `json:"gear,omitempty"`
	Carrying  *Carried  `json:"carrying,omitempty"`
	Position  *Position `json:"position,omitempty"`
	UpdatedAt int64     `json:"updated_at,omitempty"`
}

// GetID returns the pawn ID
func (p *Pawn) GetID() string {
	return p.ID
}

// GetType returns the entity type for rpg-toolkit
func (p *Pawn) GetType() string {
	return EntityType
}

// Clone returns a copy that shares no slices or pointers with p
func (p *Pawn) Clone() *Pawn {
	if p == nil {
		return nil
	}

	c := *p
	c.Gear = cloneApparel(p.Gear)
	if p.Carrying != nil {
		carried := *p.Carrying
		carried.Gear = cloneApparel(p.Carrying.Gear)
		c.Carrying = &carried
	}
	if p.Position != nil {
		pos := *p.Position
		c.Position = &pos
	}
	return &c
}

func cloneApparel(apparel []Apparel) []Apparel {
	if apparel == nil {
		return nil
	}
	return append([]Apparel(nil), apparel...)
}

// Validate rejects snapshots the formula has no answer for.
// The ID is optional here; storage requires it.
func (p *Pawn) Validate() error {
	if p == nil {
		return errors.InvalidArgument("pawn is required")
	}

	vb := errors.NewValidationBuilder()

	errors.ValidateNonNegative("stats.move_speed", p.Stats.MoveSpeed, vb)
	errors.ValidateNonNegative("stats.crawl_speed", p.Stats.CrawlSpeed, vb)
	errors.ValidateNonNegative("stats.carrying_capacity", p.Stats.CarryingCapacity, vb)
	errors.ValidateNonNegative("stats.mass", p.Stats.Mass, vb)
	for _, a := range p.Gear {
		errors.ValidateNonNegative("gear.mass", a.Mass, vb)
	}

	if c := p.Carrying; c != nil {
		errors.ValidateEnum("carrying.kind", strings.ToLower(c.Kind),
			[]string{movecost.PayloadCharacter, movecost.PayloadItem}, vb)
		errors.ValidateNonNegative("carrying.mass", c.Mass, vb)
		for _, a := range c.Gear {
			errors.ValidateNonNegative("carrying.gear.mass", a.Mass, vb)
		}
	}

	if pos := p.Position; pos != nil {
		errors.ValidateNonNegative("position.weather_move_speed_multiplier", pos.WeatherMoveSpeedMultiplier, vb)
	}

	return vb.Build()
}

// MoveInput builds the move cost input for one step from this snapshot
func (p *Pawn) MoveInput(diagonal bool) *movecost.Input {
	in := &movecost.Input{
		Character: movecost.CharacterState{
			MoveSpeed:         p.Stats.MoveSpeed,
			CrawlSpeed:        p.Stats.CrawlSpeed,
			CarryingCapacity:  p.Stats.CarryingCapacity,
			Mass:              p.Stats.Mass,
			Downed:            p.Status.Downed,
			CanCrawl:          p.Status.CanCrawl,
			InRestraints:      p.Status.InRestraints,
			DebugMaxMoveSpeed: p.Status.DebugMaxMoveSpeed,
		},
		Gear:    toGear(p.Gear),
		Request: movecost.Request{Diagonal: diagonal},
	}

	if c := p.Carrying; c != nil {
		switch strings.ToLower(c.Kind) {
		case movecost.PayloadCharacter:
			in.Payload = movecost.CarriedCharacter{Mass: c.Mass, Gear: toGear(c.Gear)}
		case movecost.PayloadItem:
			in.Payload = movecost.CarriedItem{Label: c.Label, Mass: c.Mass}
		}
	}

	if pos := p.Position; pos != nil {
		in.Environment = &movecost.Environment{
			Roofed:                     pos.Roofed,
			WeatherMoveSpeedMultiplier: pos.WeatherMoveSpeedMultiplier,
		}
	}

	return in
}

func toGear(apparel []Apparel) movecost.Gear {
	if len(apparel) == 0 {
		return nil
	}
	gear := make(movecost.Gear, 0, len(apparel))
	for _, a := range apparel {
		gear = append(gear, movecost.GearItem{Label: a.Label, Mass: a.Mass})
	}
	return gear
}
