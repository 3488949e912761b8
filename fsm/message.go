package fsm

import (
	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
)

// message names
const (
	MessageCreatePoolName            = "createPool"
	MessageAddLiquidityName          = "addLiquidity"
	MessageRemoveLiquidityName       = "removeLiquidity"
	MessageTransferLiquidityName     = "transferLiquidity"
	MessageApproveLiquidityName      = "approveLiquidity"
	MessageTransferLiquidityFromName = "transferLiquidityFrom"
	MessageBuyName                   = "buy"
	MessageSellName                  = "sell"
	MessageStakeName                 = "stake"
	MessageSyncReservesName          = "syncReserves"
	MessageChangeConfigurationName   = "changeConfiguration"
	MessageTransferAssetName         = "transferAsset"
	MessageApproveAssetName          = "approveAsset"
)

// HandleMessage() routes the MessageI to the correct entry point based on its `type` and returns the entry point's result
// a rejected message never carries a result
func (s *StateMachine) HandleMessage(caller string, msg lib.MessageI) (result any, err lib.ErrorI) {
	if err = msg.Check(); err != nil {
		return nil, err
	}
	switch x := msg.(type) {
	case *MessageCreatePool:
		result, err = s.CreatePool(caller, x.Asset, x.CurrencyAmount, x.AssetAmount)
	case *MessageAddLiquidity:
		result, err = s.AddLiquidity(caller, x.Asset, x.CurrencyAmount)
	case *MessageRemoveLiquidity:
		currencyOut, assetOut, e := s.RemoveLiquidity(caller, x.Asset, x.Amount, x.Beneficiary)
		result, err = &RemovedLiquidity{CurrencyAmount: currencyOut, AssetAmount: assetOut}, e
	case *MessageTransferLiquidity:
		result, err = true, s.TransferLiquidity(caller, x.Asset, x.To, x.Amount)
	case *MessageApproveLiquidity:
		result, err = true, s.ApproveLiquidity(caller, x.Asset, x.Spender, x.Amount)
	case *MessageTransferLiquidityFrom:
		result, err = true, s.TransferLiquidityFrom(caller, x.Asset, x.To, x.MainAccount, x.Amount)
	case *MessageBuy:
		result, err = s.Buy(caller, x.Asset, x.CurrencyAmount, x.MinimumReceived, x.ReferenceFees)
	case *MessageSell:
		result, err = s.Sell(caller, x.Asset, x.AssetAmount, x.MinimumReceived, x.ReferenceFees)
	case *MessageStake:
		result, err = s.Stake(caller, x.Amount, x.Asset)
	case *MessageSyncReserves:
		result, err = s.SyncReserves(caller, x.Asset)
	case *MessageChangeConfiguration:
		result, err = s.ChangeConfiguration(caller, x.Key, x.Value, x.AsDecimal)
	case *MessageTransferAsset:
		result, err = true, s.TransferAsset(caller, x.Asset, x.To, x.Amount)
	case *MessageApproveAsset:
		result, err = true, s.ApproveAsset(caller, x.Asset, x.Spender, x.Amount)
	default:
		return nil, ErrUnknownMessage(x)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// NewMessage() returns an empty message of the named type, ready to be unmarshalled into
func NewMessage(name string) (lib.MessageI, lib.ErrorI) {
	switch name {
	case MessageCreatePoolName:
		return new(MessageCreatePool), nil
	case MessageAddLiquidityName:
		return new(MessageAddLiquidity), nil
	case MessageRemoveLiquidityName:
		return new(MessageRemoveLiquidity), nil
	case MessageTransferLiquidityName:
		return new(MessageTransferLiquidity), nil
	case MessageApproveLiquidityName:
		return new(MessageApproveLiquidity), nil
	case MessageTransferLiquidityFromName:
		return new(MessageTransferLiquidityFrom), nil
	case MessageBuyName:
		return new(MessageBuy), nil
	case MessageSellName:
		return new(MessageSell), nil
	case MessageStakeName:
		return new(MessageStake), nil
	case MessageSyncReservesName:
		return new(MessageSyncReserves), nil
	case MessageChangeConfigurationName:
		return new(MessageChangeConfiguration), nil
	case MessageTransferAssetName:
		return new(MessageTransferAsset), nil
	case MessageApproveAssetName:
		return new(MessageApproveAsset), nil
	default:
		return nil, ErrUnknownMessage(name)
	}
}

// ParseTransaction() decodes the message carried by a call envelope
func ParseTransaction(tx *lib.Transaction) (lib.MessageI, lib.ErrorI) {
	msg, err := NewMessage(tx.MessageType)
	if err != nil {
		return nil, err
	}
	if err = lib.UnmarshalJSON(tx.Msg, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// RemovedLiquidity is the result of a liquidity withdrawal
type RemovedLiquidity struct {
	CurrencyAmount decimal.Decimal `json:"currencyAmount"`
	AssetAmount    decimal.Decimal `json:"assetAmount"`
}

var (
	_ lib.MessageI = &MessageCreatePool{}
	_ lib.MessageI = &MessageAddLiquidity{}
	_ lib.MessageI = &MessageRemoveLiquidity{}
	_ lib.MessageI = &MessageTransferLiquidity{}
	_ lib.MessageI = &MessageApproveLiquidity{}
	_ lib.MessageI = &MessageTransferLiquidityFrom{}
	_ lib.MessageI = &MessageBuy{}
	_ lib.MessageI = &MessageSell{}
	_ lib.MessageI = &MessageStake{}
	_ lib.MessageI = &MessageSyncReserves{}
	_ lib.MessageI = &MessageChangeConfiguration{}
	_ lib.MessageI = &MessageTransferAsset{}
	_ lib.MessageI = &MessageApproveAsset{}
)

type MessageCreatePool struct {
	Asset          string          `json:"asset"`
	CurrencyAmount decimal.Decimal `json:"currencyAmount"`
	AssetAmount    decimal.Decimal `json:"assetAmount"`
}

func (x *MessageCreatePool) Check() lib.ErrorI { return checkAssetName(x.Asset) }
func (x *MessageCreatePool) Name() string      { return MessageCreatePoolName }

type MessageAddLiquidity struct {
	Asset          string          `json:"asset"`
	CurrencyAmount decimal.Decimal `json:"currencyAmount"`
}

func (x *MessageAddLiquidity) Check() lib.ErrorI { return checkAssetName(x.Asset) }
func (x *MessageAddLiquidity) Name() string      { return MessageAddLiquidityName }

type MessageRemoveLiquidity struct {
	Asset       string          `json:"asset"`
	Amount      decimal.Decimal `json:"amount"`
	Beneficiary string          `json:"beneficiary,omitempty"` // defaults to the caller
}

func (x *MessageRemoveLiquidity) Check() lib.ErrorI { return checkAssetName(x.Asset) }
func (x *MessageRemoveLiquidity) Name() string      { return MessageRemoveLiquidityName }

type MessageTransferLiquidity struct {
	Asset  string          `json:"asset"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

func (x *MessageTransferLiquidity) Check() lib.ErrorI { return checkAssetName(x.Asset) }
func (x *MessageTransferLiquidity) Name() string      { return MessageTransferLiquidityName }

type MessageApproveLiquidity struct {
	Asset   string          `json:"asset"`
	Spender string          `json:"spender"`
	Amount  decimal.Decimal `json:"amount"`
}

func (x *MessageApproveLiquidity) Check() lib.ErrorI { return checkAssetName(x.Asset) }
func (x *MessageApproveLiquidity) Name() string      { return MessageApproveLiquidityName }

type MessageTransferLiquidityFrom struct {
	Asset       string          `json:"asset"`
	To          string          `json:"to"`
	MainAccount string          `json:"mainAccount"`
	Amount      decimal.Decimal `json:"amount"`
}

func (x *MessageTransferLiquidityFrom) Check() lib.ErrorI { return checkAssetName(x.Asset) }
func (x *MessageTransferLiquidityFrom) Name() string      { return MessageTransferLiquidityFromName }

type MessageBuy struct {
	Asset           string          `json:"asset"`
	CurrencyAmount  decimal.Decimal `json:"currencyAmount"`
	MinimumReceived decimal.Decimal `json:"minimumReceived"` // zero sets no bound
	ReferenceFees   bool            `json:"referenceFees"`
}

func (x *MessageBuy) Check() lib.ErrorI { return checkAssetName(x.Asset) }
func (x *MessageBuy) Name() string      { return MessageBuyName }

type MessageSell struct {
	Asset           string          `json:"asset"`
	AssetAmount     decimal.Decimal `json:"assetAmount"`
	MinimumReceived decimal.Decimal `json:"minimumReceived"` // zero sets no bound
	ReferenceFees   bool            `json:"referenceFees"`
}

func (x *MessageSell) Check() lib.ErrorI { return checkAssetName(x.Asset) }
func (x *MessageSell) Name() string      { return MessageSellName }

type MessageStake struct {
	Amount decimal.Decimal `json:"amount"`
	Asset  string          `json:"asset,omitempty"` // optional; must match the staked asset when set
}

func (x *MessageStake) Check() lib.ErrorI { return nil }
func (x *MessageStake) Name() string      { return MessageStakeName }

type MessageSyncReserves struct {
	Asset string `json:"asset"`
}

func (x *MessageSyncReserves) Check() lib.ErrorI { return checkAssetName(x.Asset) }
func (x *MessageSyncReserves) Name() string      { return MessageSyncReservesName }

type MessageChangeConfiguration struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	AsDecimal bool   `json:"asDecimal"`
}

func (x *MessageChangeConfiguration) Check() lib.ErrorI {
	if x.Key == "" {
		return ErrUnknownParam(x.Key)
	}
	return nil
}
func (x *MessageChangeConfiguration) Name() string { return MessageChangeConfigurationName }

type MessageTransferAsset struct {
	Asset  string          `json:"asset"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

func (x *MessageTransferAsset) Check() lib.ErrorI { return checkAssetName(x.Asset) }
func (x *MessageTransferAsset) Name() string      { return MessageTransferAssetName }

type MessageApproveAsset struct {
	Asset   string          `json:"asset"`
	Spender string          `json:"spender"`
	Amount  decimal.Decimal `json:"amount"`
}

func (x *MessageApproveAsset) Check() lib.ErrorI { return checkAssetName(x.Asset) }
func (x *MessageApproveAsset) Name() string      { return MessageApproveAssetName }

// checkAssetName() ensures a message names the asset it is about
func checkAssetName(asset string) lib.ErrorI {
	if asset == "" {
		return ErrAssetNotDeployed(asset)
	}
	return nil
}
