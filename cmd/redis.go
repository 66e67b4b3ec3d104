package cmd

import (
	"fmt"
	"log"

	"FitPulse/config"
	"FitPulse/db"

	"github.com/spf13/cobra"
)

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Check the Redis connection",
	Long:  `Connect to Redis and run a basic read/write round trip.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		fmt.Printf("Redis config: %s:%s, DB: %d\n", cfg.RedisHost, cfg.RedisPort, cfg.RedisDB)

		if err := db.ConnectRedis(cfg); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		fmt.Println("Redis connection established.")

		if err := db.CheckRedis(); err != nil {
			log.Fatalf("Redis check failed: %v", err)
		}
		fmt.Println("Redis round trip succeeded.")

		if err := db.CloseRedis(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
