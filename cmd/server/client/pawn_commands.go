package client

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Toakan-Network/RW-MassAffect/internal/handlers/movement/v1alpha1"
)

var (
	pawnID      string
	pawnFile    string
	pawnTTL     time.Duration
	forDiagonal bool
	forExplain  bool
)

var putPawnCmd = &cobra.Command{
	Use:     "put-pawn",
	Short:   "Store a pawn snapshot",
	Example: `  massaffect client put-pawn --file rescuer.json --ttl 10m`,
	RunE:    runPutPawn,
}

var getPawnCmd = &cobra.Command{
	Use:   "get-pawn",
	Short: "Show a stored pawn snapshot",
	RunE:  runGetPawn,
}

var deletePawnCmd = &cobra.Command{
	Use:   "delete-pawn",
	Short: "Remove a stored pawn snapshot",
	RunE:  runDeletePawn,
}

var ticksForPawnCmd = &cobra.Command{
	Use:   "ticks-for-pawn",
	Short: "Price one step for a stored pawn",
	RunE:  runTicksForPawn,
}

func init() {
	putPawnCmd.Flags().StringVar(&pawnFile, "file", "", "Pawn snapshot JSON file, \"-\" for stdin (required)")
	putPawnCmd.Flags().DurationVar(&pawnTTL, "ttl", 0, "Expire the snapshot after this long (0 keeps it)")
	_ = putPawnCmd.MarkFlagRequired("file") // nolint:errcheck // safe to ignore in init

	for _, cmd := range []*cobra.Command{getPawnCmd, deletePawnCmd, ticksForPawnCmd} {
		cmd.Flags().StringVar(&pawnID, "pawn-id", "", "Pawn ID (required)")
		_ = cmd.MarkFlagRequired("pawn-id") // nolint:errcheck // safe to ignore in init
	}

	ticksForPawnCmd.Flags().BoolVar(&forDiagonal, "diagonal", false, "Price a diagonal step")
	ticksForPawnCmd.Flags().BoolVar(&forExplain, "explain", false, "Show every factor of the computation")
}

func runPutPawn(_ *cobra.Command, _ []string) error {
	p, err := readPawnFile(pawnFile)
	if err != nil {
		return err
	}

	client, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.PutPawn(ctx, &v1alpha1.PutPawnRequest{
		Pawn:       p,
		TTLSeconds: int64(pawnTTL / time.Second),
	})
	if err != nil {
		return fmt.Errorf("failed to store pawn: %w", err)
	}

	fmt.Printf("Stored pawn %s at %s\n", resp.Pawn.ID, time.Unix(resp.Pawn.UpdatedAt, 0).UTC().Format(time.RFC3339))
	return nil
}

func runGetPawn(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.GetPawn(ctx, &v1alpha1.PawnRequest{PawnID: pawnID})
	if err != nil {
		return fmt.Errorf("failed to get pawn: %w", err)
	}

	return printJSON(resp.Pawn)
}

func runDeletePawn(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	if err := client.DeletePawn(ctx, &v1alpha1.PawnRequest{PawnID: pawnID}); err != nil {
		return fmt.Errorf("failed to delete pawn: %w", err)
	}

	fmt.Printf("Deleted pawn %s\n", pawnID)
	return nil
}

func runTicksForPawn(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.TicksPerMoveForPawn(ctx, &v1alpha1.TicksPerMoveForPawnRequest{
		PawnID:   pawnID,
		Diagonal: forDiagonal,
		Explain:  forExplain,
	})
	if err != nil {
		return fmt.Errorf("failed to price step: %w", err)
	}

	printTicks(os.Stdout, resp)
	return nil
}
