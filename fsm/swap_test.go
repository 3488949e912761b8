package fsm

import (
	"testing"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const tolerance = "0.000000001"

func TestBuy(t *testing.T) {
	tests := []struct {
		name                 string
		detail               string
		currencyAmount       decimal.Decimal
		minimumReceived      decimal.Decimal
		referenceFees        bool
		expectedReceived     decimal.Decimal
		expectedReserveAsset decimal.Decimal
		expectedReference    decimal.Decimal
	}{
		{
			name: "fee in output",
			detail: "10 currency into (100, 1000): the full fee leaves the output and 80% of it stays in the market; " +
				"the output is gross - fee (90.636), not the gross - fee * 0.8 (90.691) figure sometimes quoted for this trade",
			currencyAmount:       decimal.NewFromInt(10),
			expectedReceived:     decimal.RequireFromString("90.636363636363636"),
			expectedReserveAsset: decimal.RequireFromString("909.309090909090909"),
			expectedReference:    decimal.NewFromInt(1000),
		},
		{
			name:                 "minimum met",
			detail:               "a minimum below the output doesn't reject the trade",
			currencyAmount:       decimal.NewFromInt(10),
			minimumReceived:      decimal.RequireFromString("90.6363636"),
			expectedReceived:     decimal.RequireFromString("90.636363636363636"),
			expectedReserveAsset: decimal.RequireFromString("909.309090909090909"),
			expectedReference:    decimal.NewFromInt(1000),
		},
		{
			name: "fee in reference asset",
			detail: "the trader receives the gross output and pays 0.75 of the fee's value in the reference asset; " +
				"80% of that is sold for currency and bought back into the market on top of 100000/110",
			currencyAmount:       decimal.NewFromInt(10),
			referenceFees:        true,
			expectedReceived:     decimal.RequireFromString("90.909090909090909"),
			expectedReserveAsset: decimal.RequireFromString("909.254476148203366"),
			expectedReference:    decimal.RequireFromString("999.979427174596168"),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sm := newTestExchange(t)
			// execute the function call
			received, err := sm.Buy(testTrader, testToken, test.currencyAmount, test.minimumReceived, test.referenceFees)
			require.NoError(t, err)
			requireNear(t, test.expectedReceived, received, tolerance)
			// the trader paid the currency and received the output
			requireBalance(t, sm, testCurrency, testTrader, decimal.NewFromInt(990), "0")
			requireBalance(t, sm, testToken, testTrader, decimal.NewFromInt(1000).Add(test.expectedReceived), tolerance)
			pool, err := sm.GetPool(testToken)
			require.NoError(t, err)
			require.True(t, pool.ReserveCurrency.Equal(decimal.NewFromInt(110)))
			requirePriceCached(t, pool)
			requireNear(t, test.expectedReserveAsset, pool.ReserveAsset, tolerance)
			requireBalance(t, sm, testRefAsset, testTrader, test.expectedReference, tolerance)
			// whatever was burned left the reference market's reserve
			requireBurnAccounted(t, sm)
			// the trade is the last event
			events := sm.Events()
			last := events[len(events)-1]
			require.Equal(t, string(lib.EventTypeSwap), last.EventType)
			require.Equal(t, testToken, last.Pool)
		})
	}
}

func TestBuyErrors(t *testing.T) {
	tests := []struct {
		name            string
		detail          string
		asset           string
		currencyAmount  decimal.Decimal
		minimumReceived decimal.Decimal
		referenceFees   bool
		noReference     bool
		error           lib.ErrorI
		errorCode       lib.ErrorCode
	}{
		{
			name:           "no market",
			detail:         "the market must exist",
			asset:          "con_none",
			currencyAmount: decimal.NewFromInt(10),
			error:          ErrPoolNotFound("con_none"),
		},
		{
			name:           "zero amount",
			detail:         "the currency amount must be positive",
			asset:          testToken,
			currencyAmount: lib.Zero,
			error:          ErrNonPositiveAmount("currency amount"),
		},
		{
			name:            "slippage",
			detail:          "the output is below the minimum",
			asset:           testToken,
			currencyAmount:  decimal.NewFromInt(10),
			minimumReceived: decimal.NewFromInt(100),
			errorCode:       lib.CodeSlippage,
		},
		{
			name:           "dust",
			detail:         "an amount too small to move the reserves produces no output",
			asset:          testToken,
			currencyAmount: decimal.RequireFromString("0.000000000000000000000000000000001"),
			error:          ErrReserveError(),
		},
		{
			name:           "no reference market",
			detail:         "the burn route needs the reference market",
			asset:          testToken,
			currencyAmount: decimal.NewFromInt(10),
			noReference:    true,
			error:          ErrReferencePoolNotFound(testRefAsset),
		},
		{
			name:           "no reference market for the fee",
			detail:         "a fee paid in the reference asset needs the reference market",
			asset:          testToken,
			currencyAmount: decimal.NewFromInt(10),
			referenceFees:  true,
			noReference:    true,
			error:          ErrReferencePoolNotFound(testRefAsset),
		},
		{
			name:           "insufficient currency",
			detail:         "the trader can't spend more currency than it holds",
			asset:          testToken,
			currencyAmount: decimal.NewFromInt(2000),
			errorCode:      lib.CodeInsufficientFunds,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var sm *StateMachine
			if test.noReference {
				sm = newTestStateMachine(t)
				_, err := sm.CreatePool(testOwner, testToken, decimal.NewFromInt(100), decimal.NewFromInt(1000))
				require.NoError(t, err)
			} else {
				sm = newTestExchange(t)
			}
			before, err := sm.GetPools()
			require.NoError(t, err)
			numEvents := len(sm.Events())
			// execute the function call
			received, err := sm.Buy(testTrader, test.asset, test.currencyAmount, test.minimumReceived, test.referenceFees)
			require.Error(t, err)
			if test.error != nil {
				require.Equal(t, test.error, err)
			} else {
				require.Equal(t, test.errorCode, err.Code())
			}
			require.True(t, received.IsZero())
			// a rejected trade leaves no trace
			after, err := sm.GetPools()
			require.NoError(t, err)
			require.Equal(t, before, after)
			require.Len(t, sm.Events(), numEvents)
			requireBalance(t, sm, testCurrency, testTrader, decimal.NewFromInt(1000), "0")
			requireBalance(t, sm, testToken, testTrader, decimal.NewFromInt(1000), "0")
			requireBalance(t, sm, testRefAsset, "0x0", lib.Zero, "0")
		})
	}
}

func TestSell(t *testing.T) {
	tests := []struct {
		name                    string
		detail                  string
		referenceFees           bool
		expectedReceived        decimal.Decimal
		expectedReserveCurrency decimal.Decimal
	}{
		{
			name:                    "fee in output",
			detail:                  "10 asset into (100, 1000): the full fee leaves the output and 80% of it stays in the market",
			expectedReceived:        decimal.RequireFromString("0.987128712871287"),
			expectedReserveCurrency: decimal.RequireFromString("99.012277227722772"),
		},
		{
			name:             "fee in reference asset",
			detail:           "the trader receives the gross output and pays the fee in the reference asset",
			referenceFees:    true,
			expectedReceived: decimal.RequireFromString("0.990099009900990"),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sm := newTestExchange(t)
			// execute the function call
			received, err := sm.Sell(testTrader, testToken, decimal.NewFromInt(10), lib.Zero, test.referenceFees)
			require.NoError(t, err)
			requireNear(t, test.expectedReceived, received, tolerance)
			requireBalance(t, sm, testToken, testTrader, decimal.NewFromInt(990), "0")
			requireBalance(t, sm, testCurrency, testTrader, decimal.NewFromInt(1000).Add(test.expectedReceived), tolerance)
			pool, err := sm.GetPool(testToken)
			require.NoError(t, err)
			require.True(t, pool.ReserveAsset.Equal(decimal.NewFromInt(1010)))
			requirePriceCached(t, pool)
			if test.referenceFees {
				// 0.75 of the fee's value was paid in the reference asset
				requireBalance(t, sm, testRefAsset, testTrader, decimal.RequireFromString("999.99777"), "0.0001")
				require.True(t, pool.ReserveCurrency.GreaterThan(decimal.RequireFromString("99.009900990099010")))
			} else {
				requireNear(t, test.expectedReserveCurrency, pool.ReserveCurrency, tolerance)
			}
			requireBurnAccounted(t, sm)
		})
	}
}

func TestSellErrors(t *testing.T) {
	tests := []struct {
		name            string
		detail          string
		asset           string
		assetAmount     decimal.Decimal
		minimumReceived decimal.Decimal
		error           lib.ErrorI
		errorCode       lib.ErrorCode
	}{
		{
			name:        "no market",
			detail:      "the market must exist",
			asset:       "con_none",
			assetAmount: decimal.NewFromInt(10),
			error:       ErrPoolNotFound("con_none"),
		},
		{
			name:        "negative amount",
			detail:      "the asset amount must be positive",
			asset:       testToken,
			assetAmount: decimal.NewFromInt(-1),
			error:       ErrNonPositiveAmount("asset amount"),
		},
		{
			name:            "slippage",
			detail:          "the output is below the minimum",
			asset:           testToken,
			assetAmount:     decimal.NewFromInt(10),
			minimumReceived: decimal.NewFromInt(1),
			errorCode:       lib.CodeSlippage,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sm := newTestExchange(t)
			before, err := sm.GetPools()
			require.NoError(t, err)
			// execute the function call
			_, err = sm.Sell(testTrader, test.asset, test.assetAmount, test.minimumReceived, false)
			require.Error(t, err)
			if test.error != nil {
				require.Equal(t, test.error, err)
			} else {
				require.Equal(t, test.errorCode, err.Code())
			}
			after, err := sm.GetPools()
			require.NoError(t, err)
			require.Equal(t, before, after)
			requireBalance(t, sm, testToken, testTrader, decimal.NewFromInt(1000), "0")
		})
	}
}

func TestBuyWithDiscount(t *testing.T) {
	sm := newTestExchange(t)
	// stake to earn a discount
	discount, err := sm.Stake(testTrader, decimal.NewFromInt(100), "")
	require.NoError(t, err)
	require.True(t, discount.IsPositive())
	// execute the function call
	received, err := sm.Buy(testTrader, testToken, decimal.NewFromInt(10), lib.Zero, false)
	require.NoError(t, err)
	// the fee is the base fee scaled by the discount
	gross := decimal.RequireFromString("90.909090909090909")
	rate := decimal.RequireFromString("0.003").Mul(lib.One.Sub(discount))
	requireNear(t, gross.Sub(gross.Mul(rate)), received, tolerance)
	require.True(t, received.GreaterThan(decimal.RequireFromString("90.636363636363636")))
}

func TestBuyThenSellReferenceMarket(t *testing.T) {
	sm := newTestExchange(t)
	// trading the reference market itself routes its burn through itself
	received, err := sm.Buy(testTrader, testRefAsset, decimal.NewFromInt(10), lib.Zero, false)
	require.NoError(t, err)
	require.True(t, received.IsPositive())
	pool, err := sm.GetPool(testRefAsset)
	require.NoError(t, err)
	// the trade's own reserves are the ones kept
	require.True(t, pool.ReserveCurrency.Equal(decimal.NewFromInt(1010)))
	requirePriceCached(t, pool)
	sold, err := sm.Sell(testTrader, testRefAsset, received, lib.Zero, false)
	require.NoError(t, err)
	// a round trip costs at least the fees
	require.True(t, sold.LessThan(decimal.NewFromInt(10)))
}

func TestBuyZeroFee(t *testing.T) {
	sm := newTestExchange(t)
	_, err := sm.ChangeConfiguration(testOwner, ParamFeePercentage, "0", true)
	require.NoError(t, err)
	// execute the function call
	received, err := sm.Buy(testTrader, testToken, decimal.NewFromInt(10), lib.Zero, false)
	require.NoError(t, err)
	requireNear(t, decimal.RequireFromString("90.909090909090909"), received, tolerance)
	// nothing was burned
	requireBalance(t, sm, testRefAsset, "0x0", lib.Zero, "0")
}

// requirePriceCached() asserts the cached price matches the reserves
func requirePriceCached(t *testing.T, pool *Pool) {
	t.Helper()
	price, err := lib.Quo(pool.ReserveCurrency, pool.ReserveAsset)
	require.NoError(t, err)
	require.True(t, price.Equal(pool.Price))
}

// requireBurnAccounted() asserts the engine's holdings of the reference asset match the reference market's reserve
// so whatever was sent to the burn sink left the reserve too; only valid while nothing else holds the reference asset
func requireBurnAccounted(t *testing.T, sm *StateMachine) {
	t.Helper()
	ref, err := sm.GetPool(testRefAsset)
	require.NoError(t, err)
	held, err := sm.BalanceOf(testRefAsset, sm.EngineAccount())
	require.NoError(t, err)
	requireNear(t, ref.ReserveAsset, held, "0.000000000001")
	burned, err := sm.BalanceOf(testRefAsset, "0x0")
	require.NoError(t, err)
	require.True(t, burned.IsPositive())
}
