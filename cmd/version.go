package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidscrub/vidscrub/color"
	"github.com/vidscrub/vidscrub/constant"
	"github.com/vidscrub/vidscrub/style"
	"github.com/vidscrub/vidscrub/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and platform information",
	Long:  "Display the application version, the platform it was built for and the mpv it will drive.",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		// A missing mpv is reported, not fatal, here.
		mpv := "not found"
		if probe, err := probeMpv(); err == nil {
			mpv = probe.Version
			if !version.Supported(probe.Version) {
				mpv += " (older than " + version.MinimumMpv + ")"
			}
		}

		versionInfo := struct {
			Version string
			OS      string
			Arch    string
			Go      string
			Mpv     string
			App     string
		}{
			Version: constant.Version,
			App:     constant.Vidscrub,
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
			Go:      strings.TrimPrefix(runtime.Version(), "go"),
			Mpv:     mpv,
		}

		t, err := template.New("version").Funcs(map[string]any{
			"faint":   style.Faint,
			"bold":    style.Bold,
			"magenta": style.Fg(color.Purple),
		}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}    {{ bold .Version }}
  {{ faint "Platform" }}   {{ bold .OS }}/{{ bold .Arch }}
  {{ faint "Go" }}         {{ bold .Go }}
  {{ faint "mpv" }}        {{ bold .Mpv }}
`)
		handleErr(err)
		handleErr(t.Execute(cmd.OutOrStdout(), versionInfo))
	},
}
