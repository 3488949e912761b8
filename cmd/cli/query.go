package cli

import (
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "query the exchange rpc",
}

var limit = 0

func init() {
	eventsCmd.Flags().IntVar(&limit, "limit", 0, "maximum number of events to return, newest first; 0 is all")
	queryCmd.AddCommand(paramsCmd)
	queryCmd.AddCommand(poolCmd)
	queryCmd.AddCommand(poolsCmd)
	queryCmd.AddCommand(liquidityCmd)
	queryCmd.AddCommand(allowanceCmd)
	queryCmd.AddCommand(positionsCmd)
	queryCmd.AddCommand(stakeCmd)
	queryCmd.AddCommand(balanceCmd)
	queryCmd.AddCommand(eventsCmd)
}

var (
	paramsCmd = &cobra.Command{
		Use:   "params",
		Short: "query the engine configuration",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Params())
		},
	}

	poolCmd = &cobra.Command{
		Use:   "pool <asset>",
		Short: "query the market of an asset",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Pool(args[0]))
		},
	}

	poolsCmd = &cobra.Command{
		Use:   "pools",
		Short: "query every market",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Pools())
		},
	}

	liquidityCmd = &cobra.Command{
		Use:   "liquidity <asset> <account>",
		Short: "query the liquidity points an account holds in a market",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Liquidity(args[0], args[1]))
		},
	}

	allowanceCmd = &cobra.Command{
		Use:   "liquidity-allowance <asset> <owner> <spender>",
		Short: "query the liquidity points a spender may move out of an owner's position",
		Args:  cobra.MinimumNArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.LiquidityAllowance(args[0], args[1], args[2]))
		},
	}

	positionsCmd = &cobra.Command{
		Use:   "liquidity-positions <asset>",
		Short: "query every liquidity position of a market",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.LiquidityPositions(args[0]))
		},
	}

	stakeCmd = &cobra.Command{
		Use:   "stake <account>",
		Short: "query the stake of an account and its fee discount",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Stake(args[0]))
		},
	}

	balanceCmd = &cobra.Command{
		Use:   "balance <asset> <account>",
		Short: "query the balance an account holds of a deployed asset",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Balance(args[0], args[1]))
		},
	}

	eventsCmd = &cobra.Command{
		Use:   "events --limit=10",
		Short: "query the newest events of the ledger",
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Events(limit))
		},
	}
)
