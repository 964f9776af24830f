// Package movecost prices a single tile of pawn movement in simulation ticks.
//
// The host simulation asks a Provider for the cost of every step. Calculator
// is the mass-aware provider: worn gear, a carried pawn and a carried item
// each slow the pawn relative to its carrying capacity. Baseline reproduces
// the host's own default so callers can fall back to it.
package movecost

//go:generate mockgen -destination=mock/mock_provider.go -package=movecostmock github.com/Toakan-Network/RW-MassAffect/internal/engine/movecost Provider,Explainer

import (
	"log/slog"
	"math"

	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
	"github.com/Toakan-Network/RW-MassAffect/internal/tuning"
)

// Provider prices one tile of movement
type Provider interface {
	TicksPerMove(in *Input) Result
}

// Explainer exposes the intermediate values behind a Result
type Explainer interface {
	Provider
	Name() string
	Explain(in *Input) Breakdown
}

// Breakdown records each factor applied on the way to the final tick cost.
// Factors that did not apply are 1.
type Breakdown struct {
	BaseSpeed              float64
	RestraintFactor        float64
	CarriedCharacterFactor float64
	CarriedCharacterMass   float64
	GearFactor             float64
	GearMass               float64
	CarriedItemFactor      float64
	CarriedItemMass        float64
	Speed                  float64
	RawTicks               float64
	WeatherMultiplier      float64
	DiagonalFactor         float64
	Immobile               bool
	DebugOverride          bool
	Ticks                  float64
	Override               bool
}

// Result collapses the breakdown to what the host consumes
func (b Breakdown) Result() Result {
	return Result{Ticks: b.Ticks, Override: b.Override}
}

func newBreakdown() Breakdown {
	return Breakdown{
		RestraintFactor:        1,
		CarriedCharacterFactor: 1,
		GearFactor:             1,
		CarriedItemFactor:      1,
		WeatherMultiplier:      1,
		DiagonalFactor:         1,
	}
}

// Config holds the constants for a provider
type Config struct {
	Tuning tuning.Movement
}

// Validate ensures the constants keep the formula total
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	t := tuning.Tuning{Movement: c.Tuning}
	return t.Validate()
}

// Calculator is the mass-aware Provider
type Calculator struct {
	tuning tuning.Movement
}

var _ Explainer = (*Calculator)(nil)

// NewCalculator creates a mass-aware calculator
func NewCalculator(cfg *Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Calculator{tuning: cfg.Tuning}, nil
}

// Name identifies the provider in logs and responses
func (c *Calculator) Name() string {
	return ProviderMass
}

// TicksPerMove returns the ticks needed to cross one tile. Override is always set.
func (c *Calculator) TicksPerMove(in *Input) Result {
	return c.Explain(in).Result()
}

// Explain runs the formula and keeps every intermediate value.
// Each mass penalty multiplies the running speed, not the tick cost.
func (c *Calculator) Explain(in *Input) Breakdown {
	m := c.tuning
	ch := in.Character
	b := newBreakdown()
	b.Override = true

	b.BaseSpeed = baseSpeed(ch)
	speed := b.BaseSpeed

	if ch.InRestraints {
		b.RestraintFactor = m.RestraintFactor
		speed *= b.RestraintFactor
	}

	if carried, ok := asCarriedCharacter(in.Payload); ok {
		b.CarriedCharacterMass = carried.TotalMass()
		b.CarriedCharacterFactor = massPenalty(m, b.CarriedCharacterMass, ch.CarryingCapacity)
		speed *= b.CarriedCharacterFactor
	}

	if gearMass := in.Gear.TotalMass(); gearMass > 0 {
		b.GearMass = gearMass
		b.GearFactor = massPenalty(m, gearMass, ch.CarryingCapacity)
		speed *= b.GearFactor
	}

	if item, ok := asCarriedItem(in.Payload); ok && item.Mass > 0 {
		b.CarriedItemMass = item.Mass
		b.CarriedItemFactor = massPenalty(m, item.Mass, ch.CarryingCapacity)
		speed *= b.CarriedItemFactor
	}

	b.Speed = speed
	finish(m, in, &b)

	slog.Debug("move cost computed",
		"provider", ProviderMass,
		"payload", PayloadKind(in.Payload),
		"carried_character_mass", b.CarriedCharacterMass,
		"gear_mass", b.GearMass,
		"carried_item_mass", b.CarriedItemMass,
		"speed", b.Speed,
		"ticks", b.Ticks,
	)

	return b
}

func baseSpeed(ch CharacterState) float64 {
	if ch.Downed && ch.CanCrawl {
		return ch.CrawlSpeed
	}
	return ch.MoveSpeed
}

// massPenalty is 1 - mass/capacity clamped to [floor, ceiling].
// A non-positive capacity saturates to the floor for any positive mass.
func massPenalty(m tuning.Movement, mass, capacity float64) float64 {
	if mass <= 0 {
		return m.PenaltyCeiling
	}
	if capacity <= 0 {
		return m.PenaltyFloor
	}
	return clamp(1-mass/capacity, m.PenaltyFloor, m.PenaltyCeiling)
}

// finish converts b.Speed into a clamped tick cost. Shared by every provider.
func finish(m tuning.Movement, in *Input, b *Breakdown) {
	speedPerTick := b.Speed / m.TicksPerSecond

	var ticks float64
	if speedPerTick == 0 {
		b.Immobile = true
		ticks = m.MaxTicks
	} else {
		ticks = 1 / speedPerTick
		b.RawTicks = ticks

		if env := in.Environment; env != nil && !env.Roofed {
			b.WeatherMultiplier = env.WeatherMoveSpeedMultiplier
			if b.WeatherMultiplier > 0 {
				ticks /= b.WeatherMultiplier
			} else {
				ticks = m.MaxTicks
			}
		}
		if in.Request.Diagonal {
			b.DiagonalFactor = m.DiagonalFactor
			ticks *= b.DiagonalFactor
		}
	}

	if math.IsNaN(ticks) {
		ticks = m.MaxTicks
	}
	b.Ticks = clamp(ticks, m.MinTicks, m.MaxTicks)

	if in.Character.DebugMaxMoveSpeed {
		b.DebugOverride = true
		b.Ticks = m.DebugTicks
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
