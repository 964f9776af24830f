package testutils

import (
	"github.com/Toakan-Network/RW-MassAffect/internal/engine/movecost"
	"github.com/Toakan-Network/RW-MassAffect/internal/entities/pawn"
)

// TestPawnID is the ID used by the default pawn fixture
const TestPawnID = "pawn-test-001"

// CreateTestPawn creates an unspawned, unburdened pawn that needs 15 ticks per tile
func CreateTestPawn() *pawn.Pawn {
	return &pawn.Pawn{
		ID:    TestPawnID,
		Label: "Tynan",
		Stats: pawn.Stats{
			MoveSpeed:        4,
			CrawlSpeed:       0.5,
			CarryingCapacity: 75,
			Mass:             60,
		},
	}
}

// CreateTestRescuer creates a spawned pawn in the open carrying a wounded
// colonist. Capacity 50 against 25 carried mass halves its speed: 30 ticks
// per tile, 60 in half-speed weather.
func CreateTestRescuer() *pawn.Pawn {
	p := CreateTestPawn()
	p.ID = "pawn-test-rescuer"
	p.Stats.CarryingCapacity = 50
	p.Carrying = &pawn.Carried{
		Kind:  movecost.PayloadCharacter,
		Label: "Wounded colonist",
		Mass:  20,
		Gear:  []pawn.Apparel{{Label: "parka", Mass: 3}, {Label: "tuque", Mass: 2}},
	}
	p.Position = &pawn.Position{X: 12, Z: 40, WeatherMoveSpeedMultiplier: 0.5}
	return p
}
