package movecost

import (
	"log/slog"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/Toakan-Network/RW-MassAffect/internal/errors"
	"github.com/Toakan-Network/RW-MassAffect/internal/tuning"
)

// Provider names accepted by NewProvider
const (
	ProviderMass     = "mass"
	ProviderBaseline = "baseline"
)

// Baseline is the host simulation's stock computation: a flat slowdown when
// carrying another pawn and no notion of mass. It never sets Override.
type Baseline struct {
	tuning tuning.Movement
}

var _ Explainer = (*Baseline)(nil)

// NewBaseline creates the host default provider
func NewBaseline(cfg *Config) (*Baseline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Baseline{tuning: cfg.Tuning}, nil
}

// Name identifies the provider in logs and responses
func (p *Baseline) Name() string {
	return ProviderBaseline
}

// TicksPerMove returns the host default tick cost
func (p *Baseline) TicksPerMove(in *Input) Result {
	return p.Explain(in).Result()
}

// Explain runs the stock computation
func (p *Baseline) Explain(in *Input) Breakdown {
	m := p.tuning
	ch := in.Character
	b := newBreakdown()

	b.BaseSpeed = baseSpeed(ch)
	speed := b.BaseSpeed

	if ch.InRestraints {
		b.RestraintFactor = m.RestraintFactor
		speed *= b.RestraintFactor
	}
	if carried, ok := asCarriedCharacter(in.Payload); ok {
		b.CarriedCharacterMass = carried.TotalMass()
		b.CarriedCharacterFactor = m.CarryingPawnFactor
		speed *= b.CarriedCharacterFactor
	}

	b.Speed = speed
	finish(m, in, &b)

	slog.Debug("move cost computed",
		"provider", ProviderBaseline,
		"payload", PayloadKind(in.Payload),
		"speed", b.Speed,
		"ticks", b.Ticks,
	)

	return b
}

// NewProvider builds a provider by name
func NewProvider(name string, cfg *Config) (Explainer, error) {
	switch name {
	case ProviderMass, "":
		c, err := NewCalculator(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderBaseline:
		p, err := NewBaseline(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		err := errors.InvalidArgumentf("unknown move cost provider %q", name)
		if guess := SuggestProvider(name); guess != "" {
			err = errors.InvalidArgumentf("unknown move cost provider %q, did you mean %q?", name, guess)
		}
		return nil, err.WithMeta("provider", name)
	}
}

// ProviderNames lists the names NewProvider accepts
func ProviderNames() []string {
	return []string{ProviderMass, ProviderBaseline}
}

// SuggestProvider returns the provider name closest to a misspelt one, or ""
// when nothing is close enough.
func SuggestProvider(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	best, bestDist := "", -1
	for _, cand := range ProviderNames() {
		dist := levenshtein.ComputeDistance(name, cand)
		if dist > typoLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func typoLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Resolve asks primary first and uses its answer when it claims the step.
// Otherwise, or when primary is missing, the fallback answers.
func Resolve(primary, fallback Provider, in *Input) Result {
	if primary == nil {
		slog.Warn("move cost provider unavailable, using fallback")
		return fallback.TicksPerMove(in)
	}

	res := primary.TicksPerMove(in)
	if res.Override {
		return res
	}
	return fallback.TicksPerMove(in)
}

// ResolveExplained is Resolve for callers that want the breakdown. Each
// provider runs at most once and the one that answered is returned with it.
func ResolveExplained(primary, fallback Explainer, in *Input) (Breakdown, Explainer) {
	if primary == nil {
		slog.Warn("move cost provider unavailable, using fallback")
		return fallback.Explain(in), fallback
	}

	if b := primary.Explain(in); b.Override {
		return b, primary
	}
	return fallback.Explain(in), fallback
}
