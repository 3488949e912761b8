package fsm

import (
	"fmt"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
)

// This file defines error objects for the State Machine module

func ErrReadGenesisFile(err error) lib.ErrorI {
	return lib.NewError(lib.CodeReadGenesisFile, lib.StateMachineModule, fmt.Sprintf("read genesis file failed with err: %s", err.Error()))
}

func ErrUnmarshalGenesis(err error) lib.ErrorI {
	return lib.NewError(lib.CodeUnmarshalGenesis, lib.StateMachineModule, fmt.Sprintf("unmarshal genesis failed with err: %s", err.Error()))
}

func ErrInvalidGenesis(reason string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidGenesis, lib.StateMachineModule, fmt.Sprintf("invalid genesis: %s", reason))
}

func ErrUnknownMessage(x any) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownMessage, lib.StateMachineModule, fmt.Sprintf("message %T is unknown", x))
}

func ErrEmptyCaller() lib.ErrorI {
	return lib.NewError(lib.CodeEmptyCaller, lib.StateMachineModule, "caller is empty")
}

func ErrPoolExists(asset string) lib.ErrorI {
	return lib.NewError(lib.CodePoolExists, lib.StateMachineModule, fmt.Sprintf("market for %s already exists", asset))
}

func ErrPoolNotFound(asset string) lib.ErrorI {
	return lib.NewError(lib.CodePoolNotFound, lib.StateMachineModule, fmt.Sprintf("market for %s does not exist", asset))
}

func ErrNonPositiveAmount(what string) lib.ErrorI {
	return lib.NewError(lib.CodeNonPositiveAmount, lib.StateMachineModule, fmt.Sprintf("%s must be positive", what))
}

func ErrInvalidInterface(asset string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidInterface, lib.StateMachineModule, fmt.Sprintf("%s does not expose a valid asset interface", asset))
}

func ErrInvalidPoolAsset(asset string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidPoolAsset, lib.StateMachineModule, fmt.Sprintf("%s cannot be the traded asset of a market", asset))
}

func ErrInsufficientLiquidity(have, need decimal.Decimal) lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientLiquidity, lib.StateMachineModule,
		fmt.Sprintf("not enough liquidity points: have %s, need %s", have, need))
}

func ErrInsufficientAllowance(have, need decimal.Decimal) lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientAllowance, lib.StateMachineModule,
		fmt.Sprintf("not enough liquidity points approved: approved %s, need %s", have, need))
}

func ErrRemainingLiquidity() lib.ErrorI {
	return lib.NewError(lib.CodeRemainingLiquidity, lib.StateMachineModule, "not enough remaining liquidity")
}

func ErrDegenerateReserves(asset string) lib.ErrorI {
	return lib.NewError(lib.CodeDegenerateReserves, lib.StateMachineModule, fmt.Sprintf("reserves of %s would not stay positive", asset))
}

func ErrReserveError() lib.ErrorI {
	return lib.NewError(lib.CodeReserveError, lib.StateMachineModule, "token reserve error")
}

func ErrSlippage(received, minimum decimal.Decimal) lib.ErrorI {
	return lib.NewError(lib.CodeSlippage, lib.StateMachineModule,
		fmt.Sprintf("only %s can be received, which is less than the minimum of %s", received, minimum))
}

func ErrReferencePoolNotFound(asset string) lib.ErrorI {
	return lib.NewError(lib.CodeReferencePoolNotFound, lib.StateMachineModule, fmt.Sprintf("reference market for %s does not exist", asset))
}

func ErrNegativeStake() lib.ErrorI {
	return lib.NewError(lib.CodeNegativeStake, lib.StateMachineModule, "stake amount must not be negative")
}

func ErrInsufficientStakeFunds(have, need decimal.Decimal) lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientStakeFunds, lib.StateMachineModule,
		fmt.Sprintf("not enough balance to stake: have %s, need %s", have, need))
}

func ErrStakeAssetMismatch(staked, requested string) lib.ErrorI {
	return lib.NewError(lib.CodeStakeAssetMismatch, lib.StateMachineModule,
		fmt.Sprintf("stake is held in %s, not %s", staked, requested))
}

func ErrSyncDisabled() lib.ErrorI {
	return lib.NewError(lib.CodeSyncDisabled, lib.StateMachineModule, "reserve sync is disabled")
}

func ErrNotOwner() lib.ErrorI {
	return lib.NewError(lib.CodeNotOwner, lib.StateMachineModule, "not the owner")
}

func ErrUnknownParam(name string) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownParam, lib.StateMachineModule, fmt.Sprintf("configuration key %q is unknown", name))
}

func ErrInvalidParam(name string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidParam, lib.StateMachineModule, fmt.Sprintf("configuration value of %q is out of range", name))
}

func ErrInvalidParamType(name string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidParamType, lib.StateMachineModule, fmt.Sprintf("configuration value of %q has the wrong type", name))
}

func ErrAssetNotDeployed(asset string) lib.ErrorI {
	return lib.NewError(lib.CodeAssetNotDeployed, lib.StateMachineModule, fmt.Sprintf("asset %s is not deployed", asset))
}

func ErrAssetExists(asset string) lib.ErrorI {
	return lib.NewError(lib.CodeAssetExists, lib.StateMachineModule, fmt.Sprintf("asset %s is already deployed", asset))
}

func ErrSameAccount() lib.ErrorI {
	return lib.NewError(lib.CodeSameAccount, lib.StateMachineModule, "sender and recipient are the same account")
}

func ErrWrongStoreType() lib.ErrorI {
	return lib.NewError(lib.CodeWrongStoreType, lib.StateMachineModule, "wrong store type")
}
