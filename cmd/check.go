package cmd

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidscrub/vidscrub/constant"
	"github.com/vidscrub/vidscrub/icon"
	"github.com/vidscrub/vidscrub/key"
	"github.com/vidscrub/vidscrub/log"
	"github.com/vidscrub/vidscrub/player"
	"github.com/vidscrub/vidscrub/style"
	"github.com/vidscrub/vidscrub/version"
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.SetOut(os.Stdout)
}

// checkCmd reports the mpv installation the player will use.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that mpv is installed and recent enough",
	Run: func(cmd *cobra.Command, args []string) {
		probe := CheckDependencies()

		cmd.Printf("%s %s %s\n", icon.Get(icon.Success), style.Bold("mpv "+probe.Version), style.Faint(probe.Path))
		cmd.Println(style.Faint(fmt.Sprintf("checked %s", probe.CheckedAt.Format(time.DateTime))))
	},
}

// CheckDependencies probes the configured mpv binary and exits with installation hints when it is
// missing. An outdated mpv only warns.
func CheckDependencies() *player.ProbeResult {
	probe, err := probeMpv()
	if errors.Is(err, player.ErrMissing) {
		printMissingDependencyError(viper.GetString(key.PlayerBinary))
		os.Exit(1)
	}
	handleErr(err)

	if !version.Supported(probe.Version) {
		log.Warnf("mpv %s is older than %s", probe.Version, version.MinimumMpv)
		fmt.Fprintf(os.Stderr, "%s mpv %s is older than %s, seeking may misbehave\n",
			icon.Get(icon.Warn), probe.Version, version.MinimumMpv)
	}

	return probe
}

// probeMpv runs the cached probe of the configured mpv.
func probeMpv() (*player.ProbeResult, error) {
	lifetime := time.Duration(viper.GetInt(key.PlayerProbeLifetime)) * time.Hour
	return player.Probe(viper.GetString(key.PlayerBinary), lifetime)
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install mpv"
	case constant.Linux:
		installCmd = "sudo apt install mpv"
	case constant.Windows:
		installCmd = "scoop install mpv"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
			"\n",
			style.Faint(fmt.Sprintf("A different executable can be set with %s config set %s <path>", constant.Vidscrub, key.PlayerBinary)),
		),
	))
}
