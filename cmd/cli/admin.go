package cli

import (
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "operator calls served on the admin port",
}

func init() {
	adminCmd.AddCommand(resourceUsageCmd)
	adminCmd.AddCommand(configCmd)
	adminCmd.AddCommand(logsCmd)
}

var (
	resourceUsageCmd = &cobra.Command{
		Use:   "resource-usage",
		Short: "report the process and host resources the exchange node is using",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.ResourceUsage())
		},
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "print the configuration the running node loaded",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Config())
		},
	}

	logsCmd = &cobra.Command{
		Use:   "logs",
		Short: "print the tail of the node log file, newest line first",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Logs())
		},
	}
)
