package cmd

import (
	"github.com/spf13/cobra"

	"task-dashboard.com/task-dashboard/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "task-dashboard",
	Short:         "Task dashboard service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("command failed", "error", err)
	}
}
