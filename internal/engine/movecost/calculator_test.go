package movecost_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Toakan-Network/RW-MassAffect/internal/engine/movecost"
	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
	"github.com/Toakan-Network/RW-MassAffect/internal/tuning"
)

const delta = 1e-9

type CalculatorTestSuite struct {
	suite.Suite
	calc *movecost.Calculator
}

func TestCalculatorSuite(t *testing.T) {
	suite.Run(t, new(CalculatorTestSuite))
}

func (s *CalculatorTestSuite) SetupTest() {
	calc, err := movecost.NewCalculator(&movecost.Config{Tuning: tuning.Default().Movement})
	s.Require().NoError(err)
	s.calc = calc
}

// walker moves at 4 tiles per second, which is 15 ticks per tile unburdened
func walker() *movecost.Input {
	return &movecost.Input{
		Character: movecost.CharacterState{
			MoveSpeed:        4,
			CrawlSpeed:       0.5,
			CarryingCapacity: 75,
			Mass:             60,
		},
	}
}

func (s *CalculatorTestSuite) TestNewCalculator() {
	testCases := []struct {
		name    string
		config  *movecost.Config
		wantErr bool
	}{
		{
			name:   "default tuning",
			config: &movecost.Config{Tuning: tuning.Default().Movement},
		},
		{
			name:    "nil config",
			config:  nil,
			wantErr: true,
		},
		{
			name:    "zero tuning",
			config:  &movecost.Config{},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			calc, err := movecost.NewCalculator(tc.config)
			if tc.wantErr {
				s.Error(err)
				s.True(errors.IsInvalidArgument(err))
				s.Nil(calc)
			} else {
				s.NoError(err)
				s.NotNil(calc)
			}
		})
	}
}

func (s *CalculatorTestSuite) TestUnburdened() {
	res := s.calc.TicksPerMove(walker())

	s.True(res.Override)
	s.InDelta(15.0, res.Ticks, delta)
}

func (s *CalculatorTestSuite) TestRestraints() {
	in := walker()
	in.Character.InRestraints = true
	in.Environment = &movecost.Environment{Roofed: true, WeatherMoveSpeedMultiplier: 0.5}

	res := s.calc.TicksPerMove(in)

	// 4 * 0.35 = 1.4 tiles per second
	s.InDelta(60/1.4, res.Ticks, 1e-6)
	s.InDelta(42.857, res.Ticks, 1e-3)
}

func (s *CalculatorTestSuite) TestWeather() {
	testCases := []struct {
		name     string
		env      *movecost.Environment
		expected float64
	}{
		{
			name:     "unroofed in slowing weather",
			env:      &movecost.Environment{WeatherMoveSpeedMultiplier: 0.5},
			expected: 60,
		},
		{
			name:     "unroofed in fast weather",
			env:      &movecost.Environment{WeatherMoveSpeedMultiplier: 1.5},
			expected: 20,
		},
		{
			name:     "roofed ignores weather",
			env:      &movecost.Environment{Roofed: true, WeatherMoveSpeedMultiplier: 0.5},
			expected: 30,
		},
		{
			name:     "not spawned ignores weather",
			env:      nil,
			expected: 30,
		},
		{
			name:     "zero multiplier is immobile",
			env:      &movecost.Environment{WeatherMoveSpeedMultiplier: 0},
			expected: 450,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			in := walker()
			in.Character.MoveSpeed = 2
			in.Environment = tc.env

			s.InDelta(tc.expected, s.calc.TicksPerMove(in).Ticks, delta)
		})
	}
}

func (s *CalculatorTestSuite) TestCarriedCharacter() {
	in := walker()
	in.Character.CarryingCapacity = 50
	in.Payload = movecost.CarriedCharacter{
		Mass: 20,
		Gear: movecost.Gear{{Label: "parka", Mass: 3}, {Label: "helmet", Mass: 2}},
	}

	b := s.calc.Explain(in)

	s.InDelta(25.0, b.CarriedCharacterMass, delta)
	s.InDelta(0.5, b.CarriedCharacterFactor, delta)
	s.InDelta(2.0, b.Speed, delta)
	s.InDelta(30.0, b.Ticks, delta)
	s.Equal(1.0, b.CarriedItemFactor)
}

func (s *CalculatorTestSuite) TestPointerPayloads() {
	in := walker()
	in.Character.CarryingCapacity = 50
	in.Payload = &movecost.CarriedCharacter{Mass: 25}
	s.InDelta(30.0, s.calc.TicksPerMove(in).Ticks, delta)

	in.Payload = &movecost.CarriedItem{Mass: 25}
	s.InDelta(30.0, s.calc.TicksPerMove(in).Ticks, delta)

	var nilItem *movecost.CarriedItem
	in.Payload = nilItem
	s.Equal(movecost.PayloadNone, movecost.PayloadKind(in.Payload))
	s.InDelta(15.0, s.calc.TicksPerMove(in).Ticks, delta)
}

func (s *CalculatorTestSuite) TestPenaltiesStack() {
	in := walker()
	in.Character.CarryingCapacity = 100
	in.Payload = movecost.CarriedCharacter{Mass: 50}
	in.Gear = movecost.Gear{{Label: "flak vest", Mass: 20}, {Label: "pack", Mass: 5}}

	b := s.calc.Explain(in)

	s.InDelta(0.5, b.CarriedCharacterFactor, delta)
	s.InDelta(25.0, b.GearMass, delta)
	s.InDelta(0.75, b.GearFactor, delta)
	s.InDelta(4*0.5*0.75, b.Speed, delta)
	s.InDelta(40.0, b.Ticks, delta)
}

func (s *CalculatorTestSuite) TestCarriedItem() {
	testCases := []struct {
		name     string
		item     movecost.CarriedItem
		expected float64
	}{
		{
			name:     "quarter of capacity",
			item:     movecost.CarriedItem{Label: "steel", Mass: 25},
			expected: 20,
		},
		{
			name:     "massless item has no effect",
			item:     movecost.CarriedItem{Label: "silver", Mass: 0},
			expected: 15,
		},
		{
			name:     "overloaded floors the penalty",
			item:     movecost.CarriedItem{Label: "engine block", Mass: 500},
			expected: 450,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			in := walker()
			in.Character.CarryingCapacity = 100
			in.Payload = tc.item

			s.InDelta(tc.expected, s.calc.TicksPerMove(in).Ticks, delta)
		})
	}
}

func (s *CalculatorTestSuite) TestPenaltyFloor() {
	in := walker()
	in.Character.MoveSpeed = 600
	in.Character.CarryingCapacity = 10
	in.Gear = movecost.Gear{{Label: "power armor", Mass: 1000}}

	b := s.calc.Explain(in)

	s.InDelta(0.01, b.GearFactor, delta)
	s.InDelta(6.0, b.Speed, delta)
	s.InDelta(10.0, b.Ticks, delta)
}

func (s *CalculatorTestSuite) TestZeroCapacity() {
	in := walker()
	in.Character.MoveSpeed = 600
	in.Character.CarryingCapacity = 0
	in.Payload = movecost.CarriedCharacter{Mass: 40}
	in.Gear = movecost.Gear{{Label: "duster", Mass: 1}}

	res := s.calc.TicksPerMove(in)

	s.False(math.IsNaN(res.Ticks))
	s.False(math.IsInf(res.Ticks, 0))
	s.InDelta(450.0, res.Ticks, delta)

	b := s.calc.Explain(in)
	s.InDelta(0.01, b.CarriedCharacterFactor, delta)
	s.InDelta(0.01, b.GearFactor, delta)
}

func (s *CalculatorTestSuite) TestZeroCapacityMasslessCarry() {
	in := walker()
	in.Character.CarryingCapacity = 0
	in.Payload = movecost.CarriedCharacter{}

	res := s.calc.TicksPerMove(in)

	s.False(math.IsNaN(res.Ticks))
	s.InDelta(15.0, res.Ticks, delta)
}

func (s *CalculatorTestSuite) TestImmobile() {
	in := walker()
	in.Character.MoveSpeed = 0
	in.Environment = &movecost.Environment{WeatherMoveSpeedMultiplier: 2}
	in.Request.Diagonal = true

	b := s.calc.Explain(in)

	s.True(b.Immobile)
	s.Equal(1.0, b.WeatherMultiplier)
	s.Equal(1.0, b.DiagonalFactor)
	s.InDelta(450.0, b.Ticks, delta)
}

func (s *CalculatorTestSuite) TestCrawling() {
	testCases := []struct {
		name     string
		downed   bool
		canCrawl bool
		expected float64
	}{
		{name: "standing", expected: 15},
		{name: "downed and crawling", downed: true, canCrawl: true, expected: 120},
		{name: "downed without crawl", downed: true, expected: 15},
		{name: "crawl capable but standing", canCrawl: true, expected: 15},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			in := walker()
			in.Character.Downed = tc.downed
			in.Character.CanCrawl = tc.canCrawl

			s.InDelta(tc.expected, s.calc.TicksPerMove(in).Ticks, delta)
		})
	}
}

func (s *CalculatorTestSuite) TestDiagonal() {
	orthogonal := walker()
	diagonal := walker()
	diagonal.Request.Diagonal = true

	t := s.calc.TicksPerMove(orthogonal).Ticks
	d := s.calc.TicksPerMove(diagonal).Ticks

	s.InDelta(t*1.41421, d, delta)
	s.InDelta(21.21315, d, 1e-6)
}

func (s *CalculatorTestSuite) TestDiagonalClampsAtMax() {
	in := walker()
	in.Character.MoveSpeed = 0.15
	in.Request.Diagonal = true

	s.InDelta(450.0, s.calc.TicksPerMove(in).Ticks, delta)
}

func (s *CalculatorTestSuite) TestClampsAtMin() {
	in := walker()
	in.Character.MoveSpeed = 600

	s.InDelta(1.0, s.calc.TicksPerMove(in).Ticks, delta)
}

func (s *CalculatorTestSuite) TestDebugOverride() {
	inputs := []*movecost.Input{
		walker(),
		{Character: movecost.CharacterState{DebugMaxMoveSpeed: true}},
		{
			Character: movecost.CharacterState{
				MoveSpeed:         0.1,
				InRestraints:      true,
				Downed:            true,
				CanCrawl:          true,
				DebugMaxMoveSpeed: true,
			},
			Payload:     movecost.CarriedItem{Mass: 900},
			Environment: &movecost.Environment{WeatherMoveSpeedMultiplier: 0.1},
			Request:     movecost.Request{Diagonal: true},
		},
	}
	inputs[0].Character.DebugMaxMoveSpeed = true

	for _, in := range inputs {
		res := s.calc.TicksPerMove(in)
		s.True(res.Override)
		s.Equal(1.0, res.Ticks)
	}
}

func (s *CalculatorTestSuite) TestAlwaysWithinBounds() {
	speeds := []float64{0, 0.01, 0.5, 1, 4, 12, 100, 1000}
	masses := []float64{0, 1, 35, 80, 400}
	capacities := []float64{0, 10, 75, 200}
	weathers := []float64{0, 0.25, 1, 3}

	for _, speed := range speeds {
		for _, mass := range masses {
			for _, capacity := range capacities {
				for _, weather := range weathers {
					for _, diag := range []bool{false, true} {
						in := &movecost.Input{
							Character: movecost.CharacterState{
								MoveSpeed:        speed,
								CarryingCapacity: capacity,
							},
							Payload:     movecost.CarriedCharacter{Mass: mass},
							Gear:        movecost.Gear{{Mass: mass / 2}},
							Environment: &movecost.Environment{WeatherMoveSpeedMultiplier: weather},
							Request:     movecost.Request{Diagonal: diag},
						}

						ticks := s.calc.TicksPerMove(in).Ticks
						s.GreaterOrEqual(ticks, 1.0)
						s.LessOrEqual(ticks, 450.0)
					}
				}
			}
		}
	}
}

func (s *CalculatorTestSuite) TestMonotoneInMass() {
	type variant func(in *movecost.Input, mass float64)
	variants := map[string]variant{
		"carried character": func(in *movecost.Input, mass float64) {
			in.Payload = movecost.CarriedCharacter{Mass: mass}
		},
		"carried character gear": func(in *movecost.Input, mass float64) {
			in.Payload = movecost.CarriedCharacter{Mass: 10, Gear: movecost.Gear{{Mass: mass}}}
		},
		"own gear": func(in *movecost.Input, mass float64) {
			in.Gear = movecost.Gear{{Mass: mass}}
		},
		"carried item": func(in *movecost.Input, mass float64) {
			in.Payload = movecost.CarriedItem{Mass: mass}
		},
	}

	for name, apply := range variants {
		s.Run(name, func() {
			prev := 0.0
			for mass := 0.0; mass <= 150; mass += 2.5 {
				in := walker()
				in.Character.MoveSpeed = 40
				in.Character.CarryingCapacity = 100
				apply(in, mass)

				ticks := s.calc.TicksPerMove(in).Ticks
				s.GreaterOrEqual(ticks, prev, "mass %v", mass)
				prev = ticks
			}
		})
	}
}
