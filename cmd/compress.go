package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"crush/internal/batch"
	"crush/internal/compressor"
	"crush/internal/tui"
)

var (
	compressOutputDir string
	compressQuality   int
	compressDPI       int
	compressWorkers   int
)

var compressCmd = &cobra.Command{
	Use:   "compress [flags] <input-dir>",
	Short: "Compress every PDF in a directory into an output directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir := args[0]
		if compressQuality < 0 || compressQuality > 100 {
			return fmt.Errorf("--quality must be between 0 and 100")
		}
		if compressDPI <= 0 {
			return fmt.Errorf("--dpi must be positive")
		}
		if compressWorkers <= 0 {
			return fmt.Errorf("--workers must be positive")
		}
		if filepath.Clean(compressOutputDir) == filepath.Clean(inputDir) {
			return fmt.Errorf("output directory must differ from the input directory")
		}

		updates := make(chan batch.ProgressUpdate, 64)
		model := tui.NewModel(updates)
		program := tea.NewProgram(model)

		uiDone := make(chan struct{})
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()

		summary, err := batch.Run(context.Background(), batch.Config{
			InputDir:  inputDir,
			OutputDir: compressOutputDir,
			Quality:   compressQuality,
			DPI:       compressDPI,
			Workers:   compressWorkers,
		}, compressor.NewPDFKit(), updates)

		close(updates)
		<-uiDone
		if err != nil {
			return err
		}

		if summary.Total == 0 {
			fmt.Fprintf(os.Stdout, "No PDF files found in %s\n", inputDir)
			return nil
		}

		rows := []tui.SummaryRow{
			{Label: "Total files", Value: fmt.Sprintf("%d", summary.Total)},
			{Label: "Compressed", Value: fmt.Sprintf("%d", summary.Done)},
			{Label: "Failed", Value: fmt.Sprintf("%d", summary.Failed)},
			{Label: "Original size", Value: tui.HumanBytes(summary.BytesIn)},
			{Label: "Compressed size", Value: tui.HumanBytes(summary.BytesOut)},
			{Label: "Reduction", Value: fmt.Sprintf("%.1f%%", summary.Reduction()*100)},
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))

		for _, res := range summary.Results {
			if res.Success() {
				continue
			}
			fmt.Fprintf(os.Stdout, "%s %s %s\n",
				failMarkStyle.Render("✗"),
				failFileStyle.Render(filepath.Base(res.SourcePath)),
				failDimStyle.Render(fmt.Sprintf("(%s: %v)", res.Stage, res.Err)),
			)
		}

		outPath := compressOutputDir
		if abs, absErr := filepath.Abs(compressOutputDir); absErr == nil {
			outPath = abs
		}
		fmt.Fprintf(os.Stdout, "Compressed files written to: %s\n", outPath)
		fmt.Fprintln(os.Stdout, "Note: originals are unchanged.")

		return nil
	},
}

var (
	failMarkStyle = lipgloss.NewStyle().Foreground(tui.ColorWarn)
	failFileStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorInk)
	failDimStyle  = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	compressCmd.Flags().StringVarP(&compressOutputDir, "output", "o", "compressed", "destination folder for compressed copies")
	compressCmd.Flags().IntVar(&compressQuality, "quality", batch.DefaultQuality, "JPEG quality for embedded images (0-100)")
	compressCmd.Flags().IntVar(&compressDPI, "dpi", batch.DefaultDPI, "target DPI for embedded images")
	compressCmd.Flags().IntVarP(&compressWorkers, "workers", "w", batch.DefaultWorkers, "number of parallel workers")

	rootCmd.AddCommand(compressCmd)
}
