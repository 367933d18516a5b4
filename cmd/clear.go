package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/vidscrub/vidscrub/icon"
	"github.com/vidscrub/vidscrub/log"
	"github.com/vidscrub/vidscrub/style"
	"github.com/vidscrub/vidscrub/util"
	"github.com/vidscrub/vidscrub/where"
)

// clearTarget is a directory or file the clear command may remove.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
	// ask before removing user-authored data
	ask bool
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache, false},
	{"mpv probe", "probe", mo.Some("p"), where.Probe, false},
	{"log files", "logs", mo.Some("l"), where.Logs, false},
	{"temporary sockets", "temp", mo.Some("t"), where.Temp, false},
	{"gesture scripts", "scripts", mo.None[string](), where.Scripts, true},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}

	addYesFlag(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached and temporary application artifacts",
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearTargets, func(target clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(target.argLong))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, target := range selected {
			if target.ask && !confirm(cmd, fmt.Sprintf("Delete all %s?", target.name)) {
				continue
			}

			err := util.Delete(target.location())
			if errors.Is(err, fs.ErrNotExist) {
				err = nil
			}
			handleErr(err)

			log.Infof("cleared %s", target.name)
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), style.Bold(target.name))
		}
	},
}
