package cmd

import (
	"fmt"
	"log"
	"os"

	"FitPulse/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fitpulse",
	Short: "FitPulse is a social fitness service.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting FitPulse server...")
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
