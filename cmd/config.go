package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peekknuf/studentqa/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage studentqa configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Run: func(cmd *cobra.Command, args []string) {
		c := config.Default()
		path, err := config.Save(&c, cfgFile)
		if err != nil {
			logger.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Config written to %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}
