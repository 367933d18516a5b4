package cmd

import (
	"encoding/json"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidscrub/vidscrub/config"
	"github.com/vidscrub/vidscrub/log"
	"github.com/vidscrub/vidscrub/replay"
	"github.com/vidscrub/vidscrub/util"
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().BoolP("json", "j", false, "Print the trace as JSON")
	simulateCmd.Flags().Bool("schema", false, "Print the JSON schema of the trace and exit")
	simulateCmd.Flags().Bool("script", false, "With --schema, describe the script format instead of the trace")

	simulateCmd.SetOut(os.Stdout)
}

// simulateCmd replays a gesture script against the timeline without a player.
var simulateCmd = &cobra.Command{
	Use:   "simulate [script]",
	Short: "Replay a gesture script on a virtual clock and print the resulting trace",
	Long: `Replay a gesture script on a virtual clock and print every state change.

The script may be a path or the name of a script installed with "scripts gen".
Without one, a built-in scenario flinging a one minute clip is replayed.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionScriptNames,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(replay.Schema(lo.Must(cmd.Flags().GetBool("script")))))
			return
		}

		script := replay.Default()
		if len(args) == 1 {
			var err error
			script, err = replay.Load(resolveScript(args[0]))
			handleErr(err)
		}

		params, err := config.TimelineParams()
		handleErr(err)

		// Fails when stdout is not a terminal, leaving rows unbounded.
		width, _, _ := util.TerminalSize()

		log.Infof("simulating %s with %d events", script.Name, len(script.Events))
		handleErr(replay.Run(&replay.Options{
			Out:    cmd.OutOrStdout(),
			Script: script,
			Params: params,
			Json:   lo.Must(cmd.Flags().GetBool("json")),
			Width:  width,
		}))
	},
}
