package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/santaclaude2025/tgstats/pkg/logger"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Manage tgstats logs",
	Long:  "View or manage tgstats logs",
}

var logsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print log directory path",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := logger.Dir()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

var logsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all log files",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := logFiles()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintln(out, "No log files found")
			return nil
		}

		for _, file := range files {
			info, err := os.Stat(file)
			if err != nil {
				continue
			}
			fmt.Fprintf(out, "%s (%s)\n", filepath.Base(file), humanize.Bytes(uint64(info.Size())))
		}
		return nil
	},
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all rotated log files (keeps current)",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := logFiles()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		deletedCount := 0
		for _, file := range files {
			if filepath.Base(file) == logger.FileName {
				continue
			}
			if err := os.Remove(file); err != nil {
				fmt.Fprintf(out, "Failed to delete %s: %v\n", filepath.Base(file), err)
				continue
			}
			fmt.Fprintf(out, "Deleted %s\n", filepath.Base(file))
			deletedCount++
		}

		if deletedCount == 0 {
			fmt.Fprintln(out, "No old log files to delete")
			return nil
		}
		fmt.Fprintf(out, "\nDeleted %d old log file(s)\n", deletedCount)
		return nil
	},
}

// logFiles returns the current log and its rotated backups
func logFiles() ([]string, error) {
	dir, err := logger.Dir()
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(logger.FileName, filepath.Ext(logger.FileName))
	files, err := filepath.Glob(filepath.Join(dir, base+"*.log*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return files, nil
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsPathCmd)
	logsCmd.AddCommand(logsListCmd)
	logsCmd.AddCommand(logsClearCmd)
}
