package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"flux/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "flux",
	Short: "Flux language canonical formatter",
	Long:  `flux keeps every source tree in the one canonical style`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		mode, err := cmd.Flags().GetString("color")
		if err != nil {
			return
		}
		switch mode {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		}
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
