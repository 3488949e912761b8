package token

import (
	"testing"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/canopy-network/canopy-amm/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	tests := []struct {
		name          string
		detail        string
		from, to      string
		amount        decimal.Decimal
		errorContains string
		expectedFrom  decimal.Decimal
		expectedTo    decimal.Decimal
	}{
		{
			name:         "transfer",
			detail:       "a funded account moves part of its balance",
			from:         "alice",
			to:           "bob",
			amount:       decimal.NewFromInt(40),
			expectedFrom: decimal.NewFromInt(60),
			expectedTo:   decimal.NewFromInt(40),
		},
		{
			name:         "self transfer",
			detail:       "moving funds to oneself leaves the balance unchanged",
			from:         "alice",
			to:           "alice",
			amount:       decimal.NewFromInt(40),
			expectedFrom: decimal.NewFromInt(100),
			expectedTo:   decimal.NewFromInt(100),
		},
		{
			name:          "insufficient funds",
			detail:        "an account cannot move more than it holds",
			from:          "alice",
			to:            "bob",
			amount:        decimal.NewFromInt(101),
			errorContains: "insufficient currency balance",
		},
		{
			name:          "zero amount",
			detail:        "a zero transfer is rejected",
			from:          "alice",
			to:            "bob",
			amount:        decimal.Zero,
			errorContains: "must be positive",
		},
		{
			name:          "empty recipient",
			detail:        "the recipient must be named",
			from:          "alice",
			amount:        decimal.NewFromInt(1),
			errorContains: "account is empty",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ledger, tkn := newTestLedger(t)
			err := tkn.Transfer(ledger, test.from, test.to, test.amount)
			if test.errorContains != "" {
				require.ErrorContains(t, err, test.errorContains)
				return
			}
			require.NoError(t, err)
			got, err := tkn.BalanceOf(ledger, test.from)
			require.NoError(t, err)
			require.True(t, test.expectedFrom.Equal(got), got.String())
			got, err = tkn.BalanceOf(ledger, test.to)
			require.NoError(t, err)
			require.True(t, test.expectedTo.Equal(got), got.String())
		})
	}
}

func TestTransferFrom(t *testing.T) {
	ledger, tkn := newTestLedger(t)
	// no approval yet
	err := tkn.TransferFrom(ledger, "con_dex", decimal.NewFromInt(10), "con_dex", "alice")
	require.ErrorContains(t, err, "insufficient approval")
	// approvals accumulate
	require.NoError(t, tkn.Approve(ledger, "alice", decimal.NewFromInt(10), "con_dex"))
	require.NoError(t, tkn.Approve(ledger, "alice", decimal.NewFromInt(5), "con_dex"))
	allowance, err := tkn.Allowance(ledger, "alice", "con_dex")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(15).Equal(allowance))
	// spend part of the allowance
	require.NoError(t, tkn.TransferFrom(ledger, "con_dex", decimal.NewFromInt(12), "con_dex", "alice"))
	allowance, err = tkn.Allowance(ledger, "alice", "con_dex")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(3).Equal(allowance))
	balance, err := tkn.BalanceOf(ledger, "con_dex")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(12).Equal(balance))
	// the allowance of one spender cannot be used by another
	err = tkn.TransferFrom(ledger, "mallory", decimal.NewFromInt(1), "mallory", "alice")
	require.ErrorContains(t, err, "insufficient approval")
}

func TestMint(t *testing.T) {
	ledger, tkn := newTestLedger(t)
	require.NoError(t, tkn.Mint(ledger, "bob", decimal.NewFromInt(5)))
	supply, err := tkn.TotalSupply(ledger)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(105).Equal(supply))
	require.ErrorContains(t, tkn.Mint(ledger, "", decimal.NewFromInt(5)), "account is empty")
	require.ErrorContains(t, tkn.Mint(ledger, "bob", decimal.NewFromInt(-5)), "must be positive")
}

func TestTokensAreIsolated(t *testing.T) {
	ledger, currency := newTestLedger(t)
	other := New("con_token1")
	balance, err := other.BalanceOf(ledger, "alice")
	require.NoError(t, err)
	require.True(t, balance.IsZero())
	balance, err = currency.BalanceOf(ledger, "alice")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(100).Equal(balance))
}

func TestTransferRollsBackWithTxn(t *testing.T) {
	ledger, tkn := newTestLedger(t)
	txn := store.NewTxn(ledger)
	require.NoError(t, tkn.Transfer(txn, "alice", "bob", decimal.NewFromInt(50)))
	txn.Discard()
	balance, err := tkn.BalanceOf(ledger, "alice")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(100).Equal(balance))
}

func newTestLedger(t *testing.T) (lib.RWStoreI, *Token) {
	db, err := store.NewStoreInMemory(lib.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	tkn := New("currency")
	require.NoError(t, tkn.Mint(db, "alice", decimal.NewFromInt(100)))
	return db, tkn
}
