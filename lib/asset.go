package lib

import "github.com/shopspring/decimal"

// AssetI is the method surface an asset contract must expose before the engine will trade it
// every method operates against the ledger store of the in-flight call so asset movements commit or roll back with it
type AssetI interface {
	// Name() is the identifier the asset was deployed under
	Name() string
	// Transfer() moves amount from the caller to the recipient
	Transfer(ledger RWStoreI, caller, to string, amount decimal.Decimal) ErrorI
	// TransferFrom() moves amount from mainAccount to the recipient, consuming the caller's allowance
	TransferFrom(ledger RWStoreI, caller string, amount decimal.Decimal, to, mainAccount string) ErrorI
	// Approve() increases the allowance of spender over the caller's balance
	Approve(ledger RWStoreI, caller string, amount decimal.Decimal, spender string) ErrorI
	// Allowance() is the amount spender may still move out of owner's balance
	Allowance(ledger RStoreI, owner, spender string) (decimal.Decimal, ErrorI)
	// BalanceOf() is the balance held by the account
	BalanceOf(ledger RStoreI, account string) (decimal.Decimal, ErrorI)
}
