package token

import (
	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
)

/*
	Token is a plain fungible asset contract.
	Its balances and allowances live in the same ledger store as the exchange engine, under key prefixes
	the engine never writes to, so a token movement made during a rejected call is discarded with it.
*/

var _ lib.AssetI = &Token{}

var (
	balancePrefix   = []byte{200} // name -> account -> balance
	allowancePrefix = []byte{201} // name -> owner -> spender -> allowance
	supplyPrefix    = []byte{202} // name -> total supply
)

// Token is a fungible asset identified by the name it was deployed under
type Token struct {
	name string
}

// New() creates a token handle; state is created lazily in the ledger
func New(name string) *Token { return &Token{name: name} }

func (t *Token) Name() string { return t.name }

// Transfer() moves amount from the caller to the recipient
func (t *Token) Transfer(ledger lib.RWStoreI, caller, to string, amount decimal.Decimal) lib.ErrorI {
	if err := checkTransfer(caller, to, amount); err != nil {
		return err
	}
	return t.move(ledger, caller, to, amount)
}

// TransferFrom() moves amount out of mainAccount on behalf of the caller, consuming the caller's allowance
func (t *Token) TransferFrom(ledger lib.RWStoreI, caller string, amount decimal.Decimal, to, mainAccount string) lib.ErrorI {
	if err := checkTransfer(mainAccount, to, amount); err != nil {
		return err
	}
	allowance, err := t.Allowance(ledger, mainAccount, caller)
	if err != nil {
		return err
	}
	if allowance.LessThan(amount) {
		return ErrInsufficientApproval(allowance, amount)
	}
	if err = t.move(ledger, mainAccount, to, amount); err != nil {
		return err
	}
	return setDecimal(ledger, t.allowanceKey(mainAccount, caller), allowance.Sub(amount))
}

// Approve() increases the allowance of spender over the caller's balance
func (t *Token) Approve(ledger lib.RWStoreI, caller string, amount decimal.Decimal, spender string) lib.ErrorI {
	if err := checkTransfer(caller, spender, amount); err != nil {
		return err
	}
	allowance, err := t.Allowance(ledger, caller, spender)
	if err != nil {
		return err
	}
	return setDecimal(ledger, t.allowanceKey(caller, spender), allowance.Add(amount))
}

// Allowance() is the amount spender may still move out of owner's balance
func (t *Token) Allowance(ledger lib.RStoreI, owner, spender string) (decimal.Decimal, lib.ErrorI) {
	return getDecimal(ledger, t.allowanceKey(owner, spender))
}

// BalanceOf() is the balance held by the account
func (t *Token) BalanceOf(ledger lib.RStoreI, account string) (decimal.Decimal, lib.ErrorI) {
	return getDecimal(ledger, t.balanceKey(account))
}

// TotalSupply() is the sum of every amount ever minted
func (t *Token) TotalSupply(ledger lib.RStoreI) (decimal.Decimal, lib.ErrorI) {
	return getDecimal(ledger, lib.JoinLenPrefix(supplyPrefix, []byte(t.name)))
}

// Mint() creates new supply in the account; only called while loading genesis
func (t *Token) Mint(ledger lib.RWStoreI, account string, amount decimal.Decimal) lib.ErrorI {
	if account == "" {
		return ErrEmptyAccount()
	}
	if !amount.IsPositive() {
		return ErrInvalidTokenAmount(amount)
	}
	balance, err := t.BalanceOf(ledger, account)
	if err != nil {
		return err
	}
	supply, err := t.TotalSupply(ledger)
	if err != nil {
		return err
	}
	if err = setDecimal(ledger, lib.JoinLenPrefix(supplyPrefix, []byte(t.name)), supply.Add(amount)); err != nil {
		return err
	}
	return setDecimal(ledger, t.balanceKey(account), balance.Add(amount))
}

// move() debits from and credits to; the debit is checked against the balance first
func (t *Token) move(ledger lib.RWStoreI, from, to string, amount decimal.Decimal) lib.ErrorI {
	fromBalance, err := t.BalanceOf(ledger, from)
	if err != nil {
		return err
	}
	if fromBalance.LessThan(amount) {
		return ErrInsufficientFunds(t.name, fromBalance, amount)
	}
	if err = setDecimal(ledger, t.balanceKey(from), fromBalance.Sub(amount)); err != nil {
		return err
	}
	// read after the debit so a self transfer nets to zero
	toBalance, err := t.BalanceOf(ledger, to)
	if err != nil {
		return err
	}
	return setDecimal(ledger, t.balanceKey(to), toBalance.Add(amount))
}

func (t *Token) balanceKey(account string) []byte {
	return lib.JoinLenPrefix(balancePrefix, []byte(t.name), []byte(account))
}

func (t *Token) allowanceKey(owner, spender string) []byte {
	return lib.JoinLenPrefix(allowancePrefix, []byte(t.name), []byte(owner), []byte(spender))
}

func checkTransfer(from, to string, amount decimal.Decimal) lib.ErrorI {
	if from == "" || to == "" {
		return ErrEmptyAccount()
	}
	if !amount.IsPositive() {
		return ErrInvalidTokenAmount(amount)
	}
	return nil
}

func getDecimal(ledger lib.RStoreI, key []byte) (decimal.Decimal, lib.ErrorI) {
	bz, err := ledger.Get(key)
	if err != nil || bz == nil {
		return decimal.Zero, err
	}
	return lib.ParseDecimal(string(bz))
}

func setDecimal(ledger lib.WStoreI, key []byte, d decimal.Decimal) lib.ErrorI {
	return ledger.Set(key, []byte(d.String()))
}
