package fsm

import (
	"strconv"

	"github.com/canopy-network/canopy-amm/lib"
	"github.com/shopspring/decimal"
)

// recognized configuration keys
const (
	ParamFeePercentage          = "fee_percentage"           // swap fee charged on the output of a trade
	ParamReferenceAsset         = "reference_asset"          // asset used for fee burning and staking
	ParamReferenceFeeMultiplier = "reference_fee_multiplier" // scale of the fee when it is paid in the reference asset
	ParamBurnRetainedFraction   = "burn_retained_fraction"   // fraction of the fee kept in the pool instead of burned
	ParamBurnSink               = "burn_sink"                // destination of burned amounts
	ParamLogAccuracy            = "log_accuracy"             // shape of the staking discount curve
	ParamDiscountSlope          = "discount_slope"           // slope of the staking discount curve
	ParamOwner                  = "owner"                    // account allowed to change the configuration
	ParamSyncEnabled            = "sync_enabled"             // gate of the reserve sync
)

// ParamSpace is a configuration object that can be updated one named key at a time
type ParamSpace interface {
	Validate() lib.ErrorI
	SetString(paramName string, value string) lib.ErrorI
	SetDecimal(paramName string, value decimal.Decimal) lib.ErrorI
}

var _ ParamSpace = &Params{}

// Params is the versioned engine configuration stored in the ledger
// it is read once per call and passed by pointer to every helper that needs it
type Params struct {
	Version                uint64          `json:"version"`                // bumped on every accepted change
	FeePercentage          decimal.Decimal `json:"feePercentage"`          // e.g. 0.003
	ReferenceAsset         string          `json:"referenceAsset"`         // e.g. con_amm
	ReferenceFeeMultiplier decimal.Decimal `json:"referenceFeeMultiplier"` // e.g. 0.75
	BurnRetainedFraction   decimal.Decimal `json:"burnRetainedFraction"`   // e.g. 0.8
	BurnSink               string          `json:"burnSink"`               // e.g. 0x0
	LogAccuracy            decimal.Decimal `json:"logAccuracy"`            // e.g. 1e9
	DiscountSlope          decimal.Decimal `json:"discountSlope"`          // e.g. 0.05
	Owner                  string          `json:"owner"`                  // the configuration owner
	SyncEnabled            bool            `json:"syncEnabled"`            // reserve sync gate
}

// DefaultParams() returns the developer set engine configuration
func DefaultParams(owner string) *Params {
	return &Params{
		FeePercentage:          decimal.RequireFromString("0.003"),
		ReferenceAsset:         "con_amm",
		ReferenceFeeMultiplier: decimal.RequireFromString("0.75"),
		BurnRetainedFraction:   decimal.RequireFromString("0.8"),
		BurnSink:               "0x0",
		LogAccuracy:            decimal.NewFromInt(1_000_000_000),
		DiscountSlope:          decimal.RequireFromString("0.05"),
		Owner:                  owner,
		SyncEnabled:            false,
	}
}

// Validate() ensures every value is within its range
func (x *Params) Validate() lib.ErrorI {
	if x.FeePercentage.IsNegative() || x.FeePercentage.GreaterThanOrEqual(lib.One) {
		return ErrInvalidParam(ParamFeePercentage)
	}
	if !isFraction(x.ReferenceFeeMultiplier) {
		return ErrInvalidParam(ParamReferenceFeeMultiplier)
	}
	if !isFraction(x.BurnRetainedFraction) {
		return ErrInvalidParam(ParamBurnRetainedFraction)
	}
	if !x.LogAccuracy.IsPositive() {
		return ErrInvalidParam(ParamLogAccuracy)
	}
	if x.DiscountSlope.IsNegative() {
		return ErrInvalidParam(ParamDiscountSlope)
	}
	switch "" {
	case x.ReferenceAsset:
		return ErrInvalidParam(ParamReferenceAsset)
	case x.BurnSink:
		return ErrInvalidParam(ParamBurnSink)
	case x.Owner:
		return ErrInvalidParam(ParamOwner)
	}
	return nil
}

// SetString() updates an identity or flag key
func (x *Params) SetString(paramName string, value string) lib.ErrorI {
	switch paramName {
	case ParamReferenceAsset:
		x.ReferenceAsset = value
	case ParamBurnSink:
		x.BurnSink = value
	case ParamOwner:
		x.Owner = value
	case ParamSyncEnabled:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return ErrInvalidParam(paramName)
		}
		x.SyncEnabled = enabled
	case ParamFeePercentage, ParamReferenceFeeMultiplier, ParamBurnRetainedFraction, ParamLogAccuracy, ParamDiscountSlope:
		return ErrInvalidParamType(paramName)
	default:
		return ErrUnknownParam(paramName)
	}
	return x.Validate()
}

// SetDecimal() updates a numeric key
func (x *Params) SetDecimal(paramName string, value decimal.Decimal) lib.ErrorI {
	switch paramName {
	case ParamFeePercentage:
		x.FeePercentage = value
	case ParamReferenceFeeMultiplier:
		x.ReferenceFeeMultiplier = value
	case ParamBurnRetainedFraction:
		x.BurnRetainedFraction = value
	case ParamLogAccuracy:
		x.LogAccuracy = value
	case ParamDiscountSlope:
		x.DiscountSlope = value
	case ParamReferenceAsset, ParamBurnSink, ParamOwner, ParamSyncEnabled:
		return ErrInvalidParamType(paramName)
	default:
		return ErrUnknownParam(paramName)
	}
	return x.Validate()
}

// ChangeConfiguration() is the single owner gated command that updates one configuration key
// numeric keys must be submitted with asDecimal set, identity and flag keys without it
// the accepted value is returned in its canonical string form
func (s *StateMachine) ChangeConfiguration(caller, key, value string, asDecimal bool) (accepted string, err lib.ErrorI) {
	err = s.Atomic(func() lib.ErrorI {
		params, e := s.GetParams()
		if e != nil {
			return e
		}
		if caller == "" || caller != params.Owner {
			return ErrNotOwner()
		}
		if asDecimal {
			d, er := lib.ParseDecimal(value)
			if er != nil {
				return ErrInvalidParamType(key)
			}
			if e = params.SetDecimal(key, d); e != nil {
				return e
			}
			accepted = d.String()
		} else {
			if e = params.SetString(key, value); e != nil {
				return e
			}
			accepted = value
			if key == ParamSyncEnabled {
				accepted = strconv.FormatBool(params.SyncEnabled)
			}
		}
		params.Version++
		if e = s.SetParams(params); e != nil {
			return e
		}
		return s.EventConfigurationChanged(caller, key, accepted, params.Version)
	})
	if err != nil {
		return "", err
	}
	return
}

// SetParams() converts the Params into bytes and sets them in state
func (s *StateMachine) SetParams(p *Params) lib.ErrorI {
	bz, err := lib.MarshalJSON(p)
	if err != nil {
		return err
	}
	return s.Set(ParamsKey(), bz)
}

// GetParams() returns the current engine configuration
func (s *StateMachine) GetParams() (*Params, lib.ErrorI) {
	bz, err := s.Get(ParamsKey())
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, ErrInvalidGenesis("engine configuration is missing")
	}
	ptr := new(Params)
	if err = lib.UnmarshalJSON(bz, ptr); err != nil {
		return nil, err
	}
	return ptr, nil
}

// isFraction() is true for values in [0, 1]
func isFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(lib.One)
}
