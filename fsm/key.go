package fsm

import (
	"encoding/binary"

	"github.com/canopy-network/canopy-amm/lib"
)

/* Key.go contains prefix keys logic for the underlying store */

var (
	paramsPrefix       = []byte{1}  // store key prefix for the engine configuration
	poolPrefix         = []byte{2}  // store key prefix for markets
	lpBalancePrefix    = []byte{3}  // store key prefix for liquidity positions
	lpAllowancePrefix  = []byte{4}  // store key prefix for liquidity allowances
	stakePrefix        = []byte{5}  // store key prefix for stake positions
	stakeTotalPrefix   = []byte{6}  // store key prefix for the engine-held stake per asset
	eventPrefix        = []byte{7}  // store key prefix for events ordered by sequence
	eventSequenceKey   = []byte{8}  // store key for the next event sequence
	deploymentPrefix   = []byte{9}  // store key prefix for deployed asset contracts
	genesisCompleteKey = []byte{10} // store key marking genesis as applied
)

/*
- Prefixes are used to allow 'grouping' and organization in a schemaless key-value database environment
- Length prefixed append is used to be able to easily separate the segments of a key
- BigEndianEncoding is used for uint64 to accommodate the 'lexicographical' sorting nature of the key-value database
*/

func ParamsKey() []byte                    { return lib.JoinLenPrefix(paramsPrefix) }
func PoolPrefix() []byte                   { return lib.JoinLenPrefix(poolPrefix) }
func EventPrefix() []byte                  { return lib.JoinLenPrefix(eventPrefix) }
func DeploymentPrefix() []byte             { return lib.JoinLenPrefix(deploymentPrefix) }
func KeyForPool(asset string) []byte       { return lib.JoinLenPrefix(poolPrefix, []byte(asset)) }
func KeyForStake(account string) []byte    { return lib.JoinLenPrefix(stakePrefix, []byte(account)) }
func KeyForStakeTotal(asset string) []byte { return lib.JoinLenPrefix(stakeTotalPrefix, []byte(asset)) }
func KeyForEvent(sequence uint64) []byte   { return lib.JoinLenPrefix(eventPrefix, formatUint64(sequence)) }
func KeyForDeployment(name string) []byte  { return lib.JoinLenPrefix(deploymentPrefix, []byte(name)) }
func KeyForLPBalance(asset, account string) []byte {
	return lib.JoinLenPrefix(lpBalancePrefix, []byte(asset), []byte(account))
}
func KeyForLPAllowance(asset, owner, spender string) []byte {
	return lib.JoinLenPrefix(lpAllowancePrefix, []byte(asset), []byte(owner), []byte(spender))
}
func LPBalancePrefix(asset string) []byte { return lib.JoinLenPrefix(lpBalancePrefix, []byte(asset)) }

// AccountFromLPBalanceKey() extracts the account segment of a liquidity position key
func AccountFromLPBalanceKey(k []byte) (string, lib.ErrorI) {
	segments, err := lib.DecodeLengthPrefixed(k)
	if err != nil {
		return "", err
	}
	if len(segments) != 3 {
		return "", lib.ErrInvalidArgument()
	}
	return string(segments[2]), nil
}

func formatUint64(u uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, u)
	return b
}
