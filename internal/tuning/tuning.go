// Package tuning loads the constants that drive the movement cost formula
package tuning

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
)

// Movement holds every constant the move cost providers read.
// The zero value is not usable; start from Default.
type Movement struct {
	// TicksPerSecond converts a move speed stat (tiles per second) into ticks
	TicksPerSecond float64 `yaml:"ticks_per_second"`

	// RestraintFactor scales speed while the pawn is in restraints
	RestraintFactor float64 `yaml:"restraint_factor"`

	// CarryingPawnFactor is the flat speed factor the baseline provider
	// applies when a character is carried
	CarryingPawnFactor float64 `yaml:"carrying_pawn_factor"`

	// PenaltyFloor and PenaltyCeiling bound each mass ratio penalty
	PenaltyFloor   float64 `yaml:"penalty_floor"`
	PenaltyCeiling float64 `yaml:"penalty_ceiling"`

	MinTicks float64 `yaml:"min_ticks"`
	MaxTicks float64 `yaml:"max_ticks"`

	// DiagonalFactor approximates sqrt(2)
	DiagonalFactor float64 `yaml:"diagonal_factor"`

	// DebugTicks is returned when the debug max move speed flag is set
	DebugTicks float64 `yaml:"debug_ticks"`
}

// Tuning is the root of tuning.yaml
type Tuning struct {
	Movement Movement `yaml:"movement"`
}

// Default returns the stock constants
func Default() Tuning {
	return Tuning{
		Movement: Movement{
			TicksPerSecond:     60,
			RestraintFactor:    0.35,
			CarryingPawnFactor: 0.6,
			PenaltyFloor:       0.01,
			PenaltyCeiling:     1,
			MinTicks:           1,
			MaxTicks:           450,
			DiagonalFactor:     1.41421,
			DebugTicks:         1,
		},
	}
}

// Load reads a tuning file on top of Default, so a file only needs the
// keys it changes. An empty path returns the defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return t, errors.Wrapf(err, "failed to read tuning file %s", path)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "tuning file %s is not valid yaml", path)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Validate checks the constants keep the formula total
func (t *Tuning) Validate() error {
	vb := errors.NewValidationBuilder()
	m := t.Movement

	errors.ValidatePositive("movement.ticks_per_second", m.TicksPerSecond, vb)
	errors.ValidateNonNegative("movement.restraint_factor", m.RestraintFactor, vb)
	errors.ValidateNonNegative("movement.carrying_pawn_factor", m.CarryingPawnFactor, vb)
	errors.ValidatePositive("movement.penalty_floor", m.PenaltyFloor, vb)
	if m.PenaltyCeiling < m.PenaltyFloor {
		vb.Field("movement.penalty_ceiling", "must not be below penalty_floor")
	}
	errors.ValidatePositive("movement.min_ticks", m.MinTicks, vb)
	if m.MaxTicks < m.MinTicks {
		vb.Field("movement.max_ticks", "must not be below min_ticks")
	}
	if m.DiagonalFactor < 1 {
		vb.Field("movement.diagonal_factor", "must be at least 1")
	}
	if m.DebugTicks < m.MinTicks || m.DebugTicks > m.MaxTicks {
		vb.Field("movement.debug_ticks", "must be between min_ticks and max_ticks")
	}

	return vb.Build()
}
