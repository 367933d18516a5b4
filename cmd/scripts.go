package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidscrub/vidscrub/color"
	"github.com/vidscrub/vidscrub/constant"
	"github.com/vidscrub/vidscrub/filesystem"
	"github.com/vidscrub/vidscrub/icon"
	"github.com/vidscrub/vidscrub/replay"
	"github.com/vidscrub/vidscrub/style"
	"github.com/vidscrub/vidscrub/util"
	"github.com/vidscrub/vidscrub/where"
)

// scriptNames lists the stems of the scripts installed under where.Scripts.
func scriptNames() ([]string, error) {
	entries, err := filesystem.API().ReadDir(where.Scripts())
	if err != nil {
		return nil, err
	}

	return lo.FilterMap(entries, func(item os.FileInfo, _ int) (string, bool) {
		name := item.Name()
		if item.IsDir() || !strings.HasSuffix(name, constant.ScriptExtension) {
			return "", false
		}

		return util.FileStem(name), true
	}), nil
}

// resolveScript accepts either a path or the name of an installed script.
func resolveScript(arg string) string {
	if exists, _ := filesystem.API().Exists(arg); exists {
		return arg
	}

	return filepath.Join(where.Scripts(), strings.TrimSuffix(arg, constant.ScriptExtension)+constant.ScriptExtension)
}

func completionScriptNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	names, err := scriptNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(scriptsCmd)
}

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "Manage gesture scripts replayed by the simulate command",
}

func init() {
	scriptsCmd.AddCommand(scriptsListCmd)
	scriptsListCmd.Flags().BoolP("raw", "r", false, "Print only the script names")
	scriptsListCmd.SetOut(os.Stdout)
}

var scriptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed gesture scripts",
	Run: func(cmd *cobra.Command, args []string) {
		names, err := scriptNames()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("raw")) {
			for _, name := range names {
				cmd.Println(name)
			}
			return
		}

		if len(names) == 0 {
			cmd.Printf("%s no scripts in %s, create one with %s\n",
				icon.Get(icon.Info), where.Scripts(), style.Fg(color.Yellow)(constant.Vidscrub+" scripts gen"))
			return
		}

		cmd.Println(style.New().Foreground(color.HiBlue).Bold(true).Render("Scripts:"))
		for _, name := range names {
			script, err := replay.Load(resolveScript(name))
			if err != nil {
				cmd.Printf("%s %s %s\n", icon.Get(icon.Fail), name, style.Fg(color.Red)(err.Error()))
				continue
			}

			cmd.Printf("%s %s %s\n",
				icon.Get(icon.Script),
				name,
				style.Faint(fmt.Sprintf("%s, %s", util.FormatTime(script.Duration), util.Quantify(len(script.Events), "event", "events"))),
			)
		}
	},
}

func init() {
	scriptsCmd.AddCommand(scriptsRemoveCmd)

	scriptsRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Name of the script(s) to remove")
	lo.Must0(scriptsRemoveCmd.RegisterFlagCompletionFunc("name", completionScriptNames))
	addYesFlag(scriptsRemoveCmd)
}

var scriptsRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove installed gesture scripts",
	Run: func(cmd *cobra.Command, args []string) {
		names := lo.Must(cmd.Flags().GetStringArray("name"))
		if len(names) == 0 {
			handleErr(cmd.Help())
			return
		}

		if !confirm(cmd, fmt.Sprintf("Remove %s?", util.Quantify(len(names), "script", "scripts"))) {
			return
		}

		for _, name := range names {
			path := filepath.Join(where.Scripts(), name+constant.ScriptExtension)
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	scriptsCmd.AddCommand(scriptsGenCmd)

	scriptsGenCmd.Flags().StringP("name", "n", "", "Name of the new script")
	scriptsGenCmd.Flags().Float64P("duration", "d", 60, "Length of the simulated clip in seconds")
	lo.Must0(scriptsGenCmd.MarkFlagRequired("name"))
}

// scriptsGenCmd scaffolds a commented gesture script to start from.
var scriptsGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a new gesture script",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		author := "Anonymous"
		if usr, err := user.Current(); err == nil {
			author = usr.Username
		}

		s := struct {
			Name     string
			Author   string
			Duration float64
		}{
			Name:     lo.Must(cmd.Flags().GetString("name")),
			Author:   author,
			Duration: lo.Must(cmd.Flags().GetFloat64("duration")),
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}

		tmpl, err := template.New("script").Funcs(funcMap).Parse(constant.ScriptTemplate)
		handleErr(err)

		stem := util.SanitizeFilename(s.Name)
		if stem == "" {
			handleErr(fmt.Errorf("%q does not make a usable file name", s.Name))
		}

		target := filepath.Join(where.Scripts(), stem+constant.ScriptExtension)
		if exists, _ := filesystem.API().Exists(target); exists {
			handleErr(fmt.Errorf("script %s already exists", target))
		}

		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		handleErr(tmpl.Execute(f, s))
		cmd.Println(target)
	},
}
