// Package cmd implements the command-line interface for vidscrub.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidscrub/vidscrub/color"
	"github.com/vidscrub/vidscrub/constant"
	"github.com/vidscrub/vidscrub/haptic"
	"github.com/vidscrub/vidscrub/icon"
	"github.com/vidscrub/vidscrub/key"
	"github.com/vidscrub/vidscrub/log"
	"github.com/vidscrub/vidscrub/style"
	"github.com/vidscrub/vidscrub/timeline"
	"github.com/vidscrub/vidscrub/tui"
	"github.com/vidscrub/vidscrub/util"
	"github.com/vidscrub/vidscrub/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().String("haptics", "", "Where scrub feedback goes (bell, log, none)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("haptics", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return haptic.Available(), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.HapticsSink, rootCmd.PersistentFlags().Lookup("haptics")))

	rootCmd.Flags().String("mpv", "", "mpv executable to launch")
	lo.Must0(viper.BindPFlag(key.PlayerBinary, rootCmd.Flags().Lookup("mpv")))

	rootCmd.Flags().BoolP("play", "p", false, "Start playing instead of paused")
	rootCmd.Flags().StringP("title", "t", "", "Title shown in the player window, defaults to the file name")

	// Sockets of previous sessions are never reused.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd opens a file in mpv and hosts the scrub timeline in the terminal.
var rootCmd = &cobra.Command{
	Use:   constant.Vidscrub + " [file or url]",
	Short: "Scrub through videos from the terminal with drag, fling and hold gestures",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Scrub through videos from the terminal with drag, fling and hold gestures"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		CheckDependencies()

		target := args[0]
		title := lo.Must(cmd.Flags().GetString("title"))
		if title == "" {
			title = filepath.Base(target)
		}

		options := tui.Options{
			Target:  target,
			Title:   title,
			Initial: lo.Ternary(lo.Must(cmd.Flags().GetBool("play")), timeline.Playing, timeline.Paused),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
