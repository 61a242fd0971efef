package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/tachoscan/tachodecode/card"
	"github.com/tachoscan/tachodecode/filetype"
	"github.com/tachoscan/tachodecode/vu"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCommand(),
		fang.WithColorSchemeFunc(func(c lipgloss.LightDarkFunc) fang.ColorScheme {
			base := c(lipgloss.Black, lipgloss.White)
			baseInverted := c(lipgloss.White, lipgloss.Black)
			return fang.ColorScheme{
				Base:         base,
				Title:        base,
				Description:  base,
				Comment:      base,
				Flag:         base,
				FlagDefault:  base,
				Command:      base,
				QuotedString: base,
				Argument:     base,
				Help:         base,
				Dash:         base,
				ErrorHeader:  [2]color.Color{baseInverted, base},
				ErrorDetails: base,
			}
		}),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tachoparse",
		Short: "Tachograph download decoder CLI",
	}
	cmd.AddGroup(&cobra.Group{ID: "ddd", Title: ".DDD Files"})
	cmd.AddCommand(newParseCommand())
	cmd.AddGroup(&cobra.Group{ID: "utils", Title: "Utils"})
	cmd.SetHelpCommandGroupID("utils")
	cmd.SetCompletionCommandGroupID("utils")
	return cmd
}

func newParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "parse <file1> [file2] [...]",
		Short:   "Parse tachograph download (.DDD) files",
		GroupID: "ddd",
		Args:    cobra.MinimumNArgs(1),
	}

	indent := cmd.Flags().Bool("indent", true, "Pretty-print JSON output (default true)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		for _, filename := range args {
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("error reading %s: %w", filename, err)
			}

			result, err := parseFile(data)
			if err != nil {
				return fmt.Errorf("error parsing %s: %w", filename, err)
			}

			var out []byte
			if *indent {
				out, err = json.MarshalIndent(result, "", "  ")
			} else {
				out, err = json.Marshal(result)
			}
			if err != nil {
				return fmt.Errorf("error encoding %s: %w", filename, err)
			}
			fmt.Println(string(out))
		}
		return nil
	}
	return cmd
}

// parseFile sniffs a download's artifact kind and dispatches to the
// matching decoder.
func parseFile(data []byte) (any, error) {
	sniffed := filetype.Sniff(data)
	switch sniffed.Kind {
	case filetype.KindDriverCard:
		return card.Parse(data)
	case filetype.KindVehicleUnit:
		return vu.Parse(data)
	default:
		return nil, fmt.Errorf("unrecognized tachograph download format")
	}
}
