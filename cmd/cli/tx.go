package cli

import (
	"github.com/canopy-network/canopy-amm/fsm"
	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "submit a call to the exchange rpc",
}

var (
	minimum       string
	referenceFees bool
	asDecimal     bool
)

func init() {
	for _, c := range []*cobra.Command{txBuyCmd, txSellCmd} {
		c.Flags().StringVar(&minimum, "min", "0", "the minimum amount to receive or the call is rejected")
		c.Flags().BoolVar(&referenceFees, "reference-fees", false, "pay the fee in the reference asset at the discounted rate")
	}
	txChangeConfigCmd.Flags().BoolVar(&asDecimal, "decimal", false, "submit the value as a decimal")
	txCmd.AddCommand(txCreatePoolCmd)
	txCmd.AddCommand(txAddLiquidityCmd)
	txCmd.AddCommand(txRemoveLiquidityCmd)
	txCmd.AddCommand(txTransferLiquidityCmd)
	txCmd.AddCommand(txApproveLiquidityCmd)
	txCmd.AddCommand(txTransferLiquidityFromCmd)
	txCmd.AddCommand(txBuyCmd)
	txCmd.AddCommand(txSellCmd)
	txCmd.AddCommand(txStakeCmd)
	txCmd.AddCommand(txSyncCmd)
	txCmd.AddCommand(txChangeConfigCmd)
	txCmd.AddCommand(txTransferAssetCmd)
	txCmd.AddCommand(txApproveAssetCmd)
}

var (
	txCreatePoolCmd = &cobra.Command{
		Use:   "create-pool <caller> <asset> <currency-amount> <asset-amount>",
		Short: "open a market for an asset with its initial reserves",
		Args:  cobra.MinimumNArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Transaction(args[0], &fsm.MessageCreatePool{
				Asset:          args[1],
				CurrencyAmount: argToDecimal(args[2]),
				AssetAmount:    argToDecimal(args[3]),
			}))
		},
	}

	txAddLiquidityCmd = &cobra.Command{
		Use:   "add-liquidity <caller> <asset> <currency-amount>",
		Short: "deposit currency and the matching amount of asset into a market",
		Args:  cobra.MinimumNArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Transaction(args[0], &fsm.MessageAddLiquidity{
				Asset:          args[1],
				CurrencyAmount: argToDecimal(args[2]),
			}))
		},
	}

	txRemoveLiquidityCmd = &cobra.Command{
		Use:   "remove-liquidity <caller> <asset> <points> [beneficiary]",
		Short: "redeem liquidity points for a share of both reserves",
		Args:  cobra.MinimumNArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			msg := &fsm.MessageRemoveLiquidity{Asset: args[1], Amount: argToDecimal(args[2])}
			if len(args) > 3 {
				msg.Beneficiary = args[3]
			}
			writeToConsole(client.Transaction(args[0], msg))
		},
	}

	txTransferLiquidityCmd = &cobra.Command{
		Use:   "transfer-liquidity <caller> <asset> <to> <points>",
		Short: "move liquidity points to another account",
		Args:  cobra.MinimumNArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Transaction(args[0], &fsm.MessageTransferLiquidity{
				Asset:  args[1],
				To:     args[2],
				Amount: argToDecimal(args[3]),
			}))
		},
	}

	txApproveLiquidityCmd = &cobra.Command{
		Use:   "approve-liquidity <caller> <asset> <spender> <points>",
		Short: "allow a spender to move liquidity points out of the caller's position",
		Args:  cobra.MinimumNArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Transaction(args[0], &fsm.MessageApproveLiquidity{
				Asset:   args[1],
				Spender: args[2],
				Amount:  argToDecimal(args[3]),
			}))
		},
	}

	txTransferLiquidityFromCmd = &cobra.Command{
		Use:   "transfer-liquidity-from <caller> <asset> <to> <main-account> <points>",
		Short: "move liquidity points out of an approving account",
		Args:  cobra.MinimumNArgs(5),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Transaction(args[0], &fsm.MessageTransferLiquidityFrom{
				Asset:       args[1],
				To:          args[2],
				MainAccount: args[3],
				Amount:      argToDecimal(args[4]),
			}))
		},
	}

	txBuyCmd = &cobra.Command{
		Use:   "buy <caller> <asset> <currency-amount> --min=0 --reference-fees",
		Short: "spend currency for an asset",
		Args:  cobra.MinimumNArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Transaction(args[0], &fsm.MessageBuy{
				Asset:           args[1],
				CurrencyAmount:  argToDecimal(args[2]),
				MinimumReceived: argToDecimal(minimum),
				ReferenceFees:   referenceFees,
			}))
		},
	}

	txSellCmd = &cobra.Command{
		Use:   "sell <caller> <asset> <asset-amount> --min=0 --reference-fees",
		Short: "sell an asset for currency",
		Args:  cobra.MinimumNArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Transaction(args[0], &fsm.MessageSell{
				Asset:           args[1],
				AssetAmount:     argToDecimal(args[2]),
				MinimumReceived: argToDecimal(minimum),
				ReferenceFees:   referenceFees,
			}))
		},
	}

	txStakeCmd = &cobra.Command{
		Use:   "stake <caller> <target-amount> [asset]",
		Short: "set the caller's stake to the target amount",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			msg := &fsm.MessageStake{Amount: argToDecimal(args[1])}
			if len(args) > 2 {
				msg.Asset = args[2]
			}
			writeToConsole(client.Transaction(args[0], msg))
		},
	}

	txSyncCmd = &cobra.Command{
		Use:   "sync <caller> <asset>",
		Short: "reconcile a market's asset reserve with the engine's holdings",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Transaction(args[0], &fsm.MessageSyncReserves{Asset: args[1]}))
		},
	}

	txChangeConfigCmd = &cobra.Command{
		Use:   "change-config <caller> <key> <value> --decimal",
		Short: "change a key of the engine configuration (owner only)",
		Args:  cobra.MinimumNArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Transaction(args[0], &fsm.MessageChangeConfiguration{
				Key:       args[1],
				Value:     args[2],
				AsDecimal: asDecimal,
			}))
		},
	}

	txTransferAssetCmd = &cobra.Command{
		Use:   "transfer-asset <caller> <asset> <to> <amount>",
		Short: "move a deployed asset to another account",
		Args:  cobra.MinimumNArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Transaction(args[0], &fsm.MessageTransferAsset{
				Asset:  args[1],
				To:     args[2],
				Amount: argToDecimal(args[3]),
			}))
		},
	}

	txApproveAssetCmd = &cobra.Command{
		Use:   "approve-asset <caller> <asset> <spender> <amount>",
		Short: "allow a spender, usually the engine, to pull a deployed asset from the caller",
		Args:  cobra.MinimumNArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			writeToConsole(client.Transaction(args[0], &fsm.MessageApproveAsset{
				Asset:   args[1],
				Spender: args[2],
				Amount:  argToDecimal(args[3]),
			}))
		},
	}
)

func argToDecimal(arg string) decimal.Decimal {
	d, err := lib.ParseDecimal(arg)
	if err != nil {
		l.Fatal(err.Error())
	}
	return d
}
