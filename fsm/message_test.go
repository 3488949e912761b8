package fsm

import (
	"testing"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type unknownMessage struct{}

func (unknownMessage) Check() lib.ErrorI { return nil }
func (unknownMessage) Name() string      { return "unknown" }

func TestHandleMessage(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		caller   string
		msg      lib.MessageI
		expected any
		error    lib.ErrorI
	}{
		{
			name:     "add liquidity",
			detail:   "the minted points are returned",
			caller:   testTrader,
			msg:      &MessageAddLiquidity{Asset: testToken, CurrencyAmount: decimal.NewFromInt(50)},
			expected: decimal.NewFromInt(50),
		},
		{
			name:     "transfer liquidity",
			detail:   "commands without a value return true",
			caller:   testOwner,
			msg:      &MessageTransferLiquidity{Asset: testToken, To: testTrader, Amount: decimal.NewFromInt(1)},
			expected: true,
		},
		{
			name:   "rejected transfer liquidity",
			detail: "a command without a value that fails returns no result next to the error",
			caller: testTrader,
			msg:    &MessageTransferLiquidity{Asset: testToken, To: testOwner, Amount: decimal.NewFromInt(5)},
			error:  ErrInsufficientLiquidity(lib.Zero, decimal.NewFromInt(5)),
		},
		{
			name:     "change configuration",
			detail:   "the accepted value is returned",
			caller:   testOwner,
			msg:      &MessageChangeConfiguration{Key: ParamBurnSink, Value: "burner"},
			expected: "burner",
		},
		{
			name:   "stateless check",
			detail: "a message that doesn't name its asset fails before reaching the engine",
			caller: testTrader,
			msg:    &MessageBuy{CurrencyAmount: decimal.NewFromInt(10)},
			error:  ErrAssetNotDeployed(""),
		},
		{
			name:   "unknown",
			detail: "a message type the engine doesn't know is rejected",
			caller: testTrader,
			msg:    unknownMessage{},
			error:  ErrUnknownMessage(unknownMessage{}),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sm := newTestExchange(t)
			// execute the function call
			result, err := sm.HandleMessage(test.caller, test.msg)
			require.Equal(t, test.error, err)
			if test.error != nil {
				require.Nil(t, result)
				return
			}
			if d, ok := test.expected.(decimal.Decimal); ok {
				require.True(t, d.Equal(result.(decimal.Decimal)))
				return
			}
			require.Equal(t, test.expected, result)
		})
	}
}

func TestHandleMessageRemoveLiquidity(t *testing.T) {
	sm := newTestExchange(t)
	_, err := sm.HandleMessage(testTrader, &MessageAddLiquidity{Asset: testToken, CurrencyAmount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	result, err := sm.HandleMessage(testTrader, &MessageRemoveLiquidity{Asset: testToken, Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	removed, ok := result.(*RemovedLiquidity)
	require.True(t, ok)
	requireNear(t, decimal.NewFromInt(10), removed.CurrencyAmount, "0.000000000001")
	requireNear(t, decimal.NewFromInt(100), removed.AssetAmount, "0.000000000001")
}

func TestParseTransaction(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		msg    lib.MessageI
	}{
		{
			name:   "buy",
			detail: "a buy survives the call envelope",
			msg: &MessageBuy{
				Asset:           testToken,
				CurrencyAmount:  decimal.NewFromInt(10),
				MinimumReceived: decimal.RequireFromString("90.5"),
				ReferenceFees:   true,
			},
		},
		{
			name:   "stake",
			detail: "a stake survives the call envelope",
			msg:    &MessageStake{Amount: decimal.NewFromInt(100), Asset: testRefAsset},
		},
		{
			name:   "configuration",
			detail: "a configuration change survives the call envelope",
			msg:    &MessageChangeConfiguration{Key: ParamFeePercentage, Value: "0.01", AsDecimal: true},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tx, err := lib.NewTransaction(testTrader, test.msg)
			require.NoError(t, err)
			require.Equal(t, test.msg.Name(), tx.MessageType)
			// execute the function call
			got, err := ParseTransaction(tx)
			require.NoError(t, err)
			require.Equal(t, test.msg.Name(), got.Name())
			gotBz, err := lib.MarshalJSON(got)
			require.NoError(t, err)
			require.JSONEq(t, string(tx.Msg), string(gotBz))
		})
	}
}

func TestParseTransactionUnknown(t *testing.T) {
	_, err := ParseTransaction(&lib.Transaction{Caller: testTrader, MessageType: "mint", Msg: []byte("{}")})
	require.Equal(t, ErrUnknownMessage("mint"), err)
}

func TestBuyMessageFlow(t *testing.T) {
	sm := newTestExchange(t)
	// a buy submitted as an envelope is executed like a direct call
	tx, err := lib.NewTransaction(testTrader, &MessageBuy{Asset: testToken, CurrencyAmount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	msg, err := ParseTransaction(tx)
	require.NoError(t, err)
	result, err := sm.HandleMessage(tx.Caller, msg)
	require.NoError(t, err)
	requireNear(t, decimal.RequireFromString("90.636363636363636"), result.(decimal.Decimal), tolerance)
}
