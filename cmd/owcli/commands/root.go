package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"owprofile-backend/internal/client"
	"owprofile-backend/internal/components/chrono"
	"owprofile-backend/internal/components/fetch"
	"owprofile-backend/internal/components/telemetry"
	"owprofile-backend/pkg/owtypes"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	jsonOutput *bool
	verbose    *bool
	dumpDir    *string
)

var rootCmd = &cobra.Command{
	Use:   "owcli",
	Short: "owcli looks up overwatch players, their profiles and ranks.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
	SilenceUsage: true,
}

func init() {
	jsonOutput = rootCmd.PersistentFlags().Bool("json", false, "Print results as JSON instead of tables.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
	dumpDir = rootCmd.PersistentFlags().String("dump", "", "Write every fetched page into this directory.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient(ctx context.Context) (*client.Client, error) {
	tel := telemetry.SlogAPI{}
	var fetcher fetch.API = fetch.NewClient(fetch.DefaultOptions(), tel)
	if *dumpDir != "" {
		dump, err := fetch.NewDump(fetcher, *dumpDir)
		if err != nil {
			return nil, err
		}
		fetcher = dump
	}
	c, err := client.New(ctx, fetcher, chrono.NewStandardTime(), tel, client.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// battletagArgs accepts either "Name#1234" / "Name-1234" or "Name 1234".
func battletagArgs(args []string) (owtypes.Battletag, error) {
	switch len(args) {
	case 1:
		return owtypes.ParseBattletag(args[0])
	case 2:
		number, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return owtypes.Battletag{}, &owtypes.InvalidBattletagError{Value: args[0] + "#" + args[1]}
		}
		return owtypes.NewBattletag(args[0], number), nil
	}
	return owtypes.Battletag{}, fmt.Errorf("expected a battletag, got %d arguments", len(args))
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// output prints value as JSON when --json is set, and with render otherwise.
func output[T any](cmd *cobra.Command, value T, render func(io.Writer, T)) error {
	if *jsonOutput {
		return writeJSON(cmd.OutOrStdout(), value)
	}
	render(cmd.OutOrStdout(), value)
	return nil
}
