package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"crush/internal/catalog"
	"crush/internal/tui"
)

var scanCmd = &cobra.Command{
	Use:   "scan <input-dir>",
	Short: "List the PDFs a batch would process, without compressing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		files, err := catalog.Enumerate(dir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(os.Stdout, "No PDF files found in %s\n", dir)
			return nil
		}

		var total int64
		for _, f := range files {
			total += f.Size
			fmt.Fprintf(os.Stdout, "%s %s %s\n",
				scanBulletStyle.Render("-"),
				scanFileStyle.Render(filepath.Base(f.Path)),
				scanSizeStyle.Render(tui.HumanBytes(f.Size)),
			)
		}
		fmt.Fprintf(os.Stdout, "%s\n", scanTotalStyle.Render(
			fmt.Sprintf("%d files, %s", len(files), tui.HumanBytes(total)),
		))

		return nil
	},
}

var (
	scanFileStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	scanSizeStyle   = lipgloss.NewStyle().Foreground(tui.ColorInk)
	scanTotalStyle  = lipgloss.NewStyle().Foreground(tui.ColorAccentAlt)
	scanBulletStyle = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	rootCmd.AddCommand(scanCmd)
}
