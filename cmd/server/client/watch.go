package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/Toakan-Network/RW-MassAffect/internal/handlers/movement/watch"
)

var (
	watchAddr   string
	watchPawnID string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream move costs as the server computes them",
	Long:  `Connect to the server's websocket watch stream and print each computed move cost until interrupted.`,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchAddr, "watch-addr", "127.0.0.1:8081", "Watch stream address")
	watchCmd.Flags().StringVar(&watchPawnID, "pawn-id", "", "Only show costs for this pawn")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	u := url.URL{Scheme: "ws", Host: watchAddr, Path: watch.Path}
	if watchPawnID != "" {
		u.RawQuery = url.Values{"pawn_id": {watchPawnID}}.Encode()
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, resp, err := websocket.DefaultDialer.DialContext(dialCtx, u.String(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to connect to watch stream: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	fmt.Fprintf(os.Stderr, "Watching %s\n", u.String())
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("watch stream failed: %w", err)
		}

		var frame watch.CostEvent
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}
		fmt.Printf("%s pawn=%s ticks=%.2f diagonal=%v provider=%s\n",
			frame.ComputationID, frame.PawnID, frame.Ticks, frame.Diagonal, frame.Provider)
	}
}
