// Package client provides commands that call a running move cost server
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Toakan-Network/RW-MassAffect/internal/entities/pawn"
	"github.com/Toakan-Network/RW-MassAffect/internal/handlers/movement/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running move cost server",
	Long:  `Client commands price steps and manage pawn snapshots over gRPC.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(ticksCmd)
	ClientCmd.AddCommand(ticksForPawnCmd)
	ClientCmd.AddCommand(putPawnCmd)
	ClientCmd.AddCommand(getPawnCmd)
	ClientCmd.AddCommand(deletePawnCmd)
	ClientCmd.AddCommand(watchCmd)
}

// createClient connects to the server and returns the service client
func createClient() (*v1alpha1.Client, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewClient(conn), cleanup, nil
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// readPawnFile loads and schema-checks a pawn document; "-" reads stdin
func readPawnFile(path string) (*pawn.Pawn, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pawn file: %w", err)
	}

	p, err := pawn.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid pawn file %s: %w", path, err)
	}
	return p, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
