package client

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Toakan-Network/RW-MassAffect/internal/entities/pawn"
	"github.com/Toakan-Network/RW-MassAffect/internal/handlers/movement/v1alpha1"
)

var (
	ticksFile     string
	ticksDiagonal bool
	ticksExplain  bool
	ticksJSON     bool
	inline        pawn.Pawn
	inlineKind    string
	inlineMass    float64
	inlineGear    float64
	inlineWeather float64
	inlineSpawned bool
	inlineRoofed  bool
)

var ticksCmd = &cobra.Command{
	Use:   "ticks",
	Short: "Price one step for a pawn described by flags or a file",
	Long: `Price one step. The pawn comes from --file (a JSON snapshot, "-" for
stdin) or from the stat flags.`,
	Example: `  massaffect client ticks --move-speed 4 --capacity 50 --carry character --carry-mass 25
  massaffect client ticks --file rescuer.json --diagonal --explain`,
	RunE: runTicks,
}

func init() {
	f := ticksCmd.Flags()
	f.StringVar(&ticksFile, "file", "", "Pawn snapshot JSON file")
	f.BoolVar(&ticksDiagonal, "diagonal", false, "Price a diagonal step")
	f.BoolVar(&ticksExplain, "explain", false, "Show every factor of the computation")
	f.BoolVar(&ticksJSON, "json", false, "Print the raw response")

	f.StringVar(&inline.ID, "pawn-id", "", "Pawn ID reported back in the response")
	f.Float64Var(&inline.Stats.MoveSpeed, "move-speed", 4.6, "Move speed stat (tiles per second)")
	f.Float64Var(&inline.Stats.CrawlSpeed, "crawl-speed", 0, "Crawl speed stat")
	f.Float64Var(&inline.Stats.CarryingCapacity, "capacity", 75, "Carrying capacity")
	f.Float64Var(&inline.Stats.Mass, "mass", 60, "Body mass")
	f.BoolVar(&inline.Status.Downed, "downed", false, "Pawn is downed")
	f.BoolVar(&inline.Status.CanCrawl, "can-crawl", false, "Downed pawn can crawl")
	f.BoolVar(&inline.Status.InRestraints, "restrained", false, "Pawn is in restraints")
	f.Float64Var(&inlineGear, "gear-mass", 0, "Total mass of worn gear")
	f.StringVar(&inlineKind, "carry", "", "Payload kind (character or item)")
	f.Float64Var(&inlineMass, "carry-mass", 0, "Payload mass, including a carried character's gear")
	f.BoolVar(&inlineSpawned, "spawned", false, "Pawn is on a map, so weather applies")
	f.BoolVar(&inlineRoofed, "roofed", false, "Pawn stands under a roof")
	f.Float64Var(&inlineWeather, "weather", 1, "Weather move speed multiplier")

	ticksCmd.MarkFlagsMutuallyExclusive("file", "move-speed")
}

func inlinePawn() *pawn.Pawn {
	p := inline
	if inlineGear > 0 {
		p.Gear = []pawn.Apparel{{Label: "gear", Mass: inlineGear}}
	}
	if inlineKind != "" {
		p.Carrying = &pawn.Carried{Kind: inlineKind, Mass: inlineMass}
	}
	if inlineSpawned || inlineRoofed || inlineWeather != 1 {
		p.Position = &pawn.Position{Roofed: inlineRoofed, WeatherMoveSpeedMultiplier: inlineWeather}
	}
	return &p
}

func runTicks(_ *cobra.Command, _ []string) error {
	p := inlinePawn()
	if ticksFile != "" {
		var err error
		if p, err = readPawnFile(ticksFile); err != nil {
			return err
		}
	}

	client, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.TicksPerMove(ctx, &v1alpha1.TicksPerMoveRequest{
		Pawn:     p,
		Diagonal: ticksDiagonal,
		Explain:  ticksExplain,
	})
	if err != nil {
		return fmt.Errorf("failed to price step: %w", err)
	}

	if ticksJSON {
		return printJSON(resp)
	}
	printTicks(os.Stdout, resp)
	return nil
}

func printTicks(w io.Writer, resp *v1alpha1.TicksPerMoveResponse) {
	_, _ = fmt.Fprintf(w, "Ticks per move: %.2f\n", resp.Ticks)
	_, _ = fmt.Fprintf(w, "Provider: %s (override=%v)\n", resp.Provider, resp.Override)
	if resp.PawnID != "" {
		_, _ = fmt.Fprintf(w, "Pawn: %s\n", resp.PawnID)
	}
	_, _ = fmt.Fprintf(w, "Computation: %s\n", resp.ComputationID)

	b := resp.Breakdown
	if b == nil {
		return
	}

	_, _ = fmt.Fprintf(w, "\nBreakdown:\n")
	_, _ = fmt.Fprintf(w, "  - Base speed: %.3f\n", b.BaseSpeed)
	_, _ = fmt.Fprintf(w, "  - Restraint factor: %.3f\n", b.RestraintFactor)
	_, _ = fmt.Fprintf(w, "  - Carried character: %.3f (mass %.2f)\n", b.CarriedCharacterFactor, b.CarriedCharacterMass)
	_, _ = fmt.Fprintf(w, "  - Gear: %.3f (mass %.2f)\n", b.GearFactor, b.GearMass)
	_, _ = fmt.Fprintf(w, "  - Carried item: %.3f (mass %.2f)\n", b.CarriedItemFactor, b.CarriedItemMass)
	_, _ = fmt.Fprintf(w, "  - Speed: %.3f\n", b.Speed)
	_, _ = fmt.Fprintf(w, "  - Raw ticks: %.3f\n", b.RawTicks)
	_, _ = fmt.Fprintf(w, "  - Weather multiplier: %.3f\n", b.WeatherMultiplier)
	_, _ = fmt.Fprintf(w, "  - Diagonal factor: %.5f\n", b.DiagonalFactor)
	if b.Immobile {
		_, _ = fmt.Fprintf(w, "  - Immobile: pawn cannot move under its own power\n")
	}
	if b.DebugOverride {
		_, _ = fmt.Fprintf(w, "  - Debug max move speed\n")
	}
}
