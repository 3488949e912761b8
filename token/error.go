package token

import (
	"fmt"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
)

func ErrInsufficientFunds(name string, balance, amount decimal.Decimal) lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientFunds, lib.TokenModule,
		fmt.Sprintf("insufficient %s balance: have %s, need %s", name, balance, amount))
}

func ErrInsufficientApproval(allowance, amount decimal.Decimal) lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientApproval, lib.TokenModule,
		fmt.Sprintf("insufficient approval: approved %s, need %s", allowance, amount))
}

func ErrInvalidTokenAmount(amount decimal.Decimal) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidTokenAmount, lib.TokenModule, fmt.Sprintf("token amount %s must be positive", amount))
}

func ErrEmptyAccount() lib.ErrorI {
	return lib.NewError(lib.CodeEmptyAccount, lib.TokenModule, "account is empty")
}
