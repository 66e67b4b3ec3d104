package cmd

import (
	"FitPulse/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the FitPulse HTTP server",
	Long:  `Start the FitPulse HTTP server, serving the JSON API and the blog websocket feed.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
