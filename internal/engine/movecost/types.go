package movecost

// CharacterState carries the stats and status flags of the moving pawn
type CharacterState struct {
	MoveSpeed        float64
	CrawlSpeed       float64
	CarryingCapacity float64
	Mass             float64

	Downed       bool
	CanCrawl     bool
	InRestraints bool

	// DebugMaxMoveSpeed short-circuits every provider to DebugTicks
	DebugMaxMoveSpeed bool
}

// GearItem is a single worn item and the mass it contributes
type GearItem struct {
	Label string
	Mass  float64
}

// Gear is the set of worn items. Order does not matter.
type Gear []GearItem

// TotalMass sums the mass of every worn item
func (g Gear) TotalMass() float64 {
	var total float64
	for _, item := range g {
		total += item.Mass
	}
	return total
}

// Payload is what the pawn is hauling: nil, CarriedCharacter or CarriedItem
type Payload interface {
	payloadKind() string
}

// CarriedCharacter is another pawn being carried, with its own worn gear
type CarriedCharacter struct {
	Mass float64
	Gear Gear
}

func (CarriedCharacter) payloadKind() string { return PayloadCharacter }

// TotalMass is the carried pawn's body mass plus everything it wears
func (c CarriedCharacter) TotalMass() float64 {
	return c.Mass + c.Gear.TotalMass()
}

// CarriedItem is an inanimate thing being hauled
type CarriedItem struct {
	Label string
	Mass  float64
}

func (CarriedItem) payloadKind() string { return PayloadItem }

// Payload kinds as they appear in logs and snapshots
const (
	PayloadNone      = "none"
	PayloadCharacter = "character"
	PayloadItem      = "item"
)

// Environment describes the tile the pawn stands on. Only spawned pawns have one.
type Environment struct {
	Roofed bool

	// WeatherMoveSpeedMultiplier applies only when unroofed.
	// Below 1 slows movement, above 1 speeds it up.
	WeatherMoveSpeedMultiplier float64
}

// Request describes the step being priced
type Request struct {
	Diagonal bool
}

// Input is everything a provider needs to price one tile
type Input struct {
	Character   CharacterState
	Payload     Payload
	Gear        Gear
	Environment *Environment
	Request     Request
}

// Result is the tick cost of one tile.
// Override tells the caller to use Ticks instead of its own default.
type Result struct {
	Ticks    float64
	Override bool
}

// PayloadKind names the variant held by p
func PayloadKind(p Payload) string {
	if _, ok := asCarriedCharacter(p); ok {
		return PayloadCharacter
	}
	if _, ok := asCarriedItem(p); ok {
		return PayloadItem
	}
	return PayloadNone
}

func asCarriedCharacter(p Payload) (CarriedCharacter, bool) {
	switch v := p.(type) {
	case CarriedCharacter:
		return v, true
	case *CarriedCharacter:
		if v != nil {
			return *v, true
		}
	}
	return CarriedCharacter{}, false
}

func asCarriedItem(p Payload) (CarriedItem, bool) {
	switch v := p.(type) {
	case CarriedItem:
		return v, true
	case *CarriedItem:
		if v != nil {
			return *v, true
		}
	}
	return CarriedItem{}, false
}
