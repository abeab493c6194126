package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "crush",
	Short: "crush 🗜️ - batch-compress PDF documents",
	Long:  "crush 🗜️ is a concurrency-safe CLI for shrinking directories of PDF files, leaving the originals untouched.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
