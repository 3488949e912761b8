package lib

import (
	"fmt"
	"math"
)

type ErrorI interface {
	Code() ErrorCode     // Returns the error code
	Module() ErrorModule // Returns the error module
	error                // Implements the built-in error interface
}

var _ ErrorI = &Error{} // Ensures *Error implements ErrorI

type ErrorCode uint32 // Defines a type for error codes

type ErrorModule string // Defines a type for error modules

type Error struct {
	ECode   ErrorCode   `json:"code"`   // Error code
	EModule ErrorModule `json:"module"` // Error module
	Msg     string      `json:"msg"`    // Error message
}

func NewError(code ErrorCode, module ErrorModule, msg string) *Error {
	return &Error{ECode: code, EModule: module, Msg: msg}
}

// Code() returns the associated error code
func (p *Error) Code() ErrorCode { return p.ECode }

// Module() returns module field
func (p *Error) Module() ErrorModule { return p.EModule }

// String() calls Error()
func (p *Error) String() string { return p.Error() }

// Error() returns a formatted string including module, code and message
func (p *Error) Error() string {
	return fmt.Sprintf("\nModule:  %s\nCode:    %d\nMessage: %s", p.EModule, p.ECode, p.Msg)
}

const (
	NoCode ErrorCode = math.MaxUint32

	// Main Module
	MainModule ErrorModule = "main"

	// Main Module Error Codes
	CodeJSONMarshal     ErrorCode = 1
	CodeJSONUnmarshal   ErrorCode = 2
	CodeWriteFile       ErrorCode = 3
	CodeReadFile        ErrorCode = 4
	CodeInvalidArgument ErrorCode = 5
	CodePanic           ErrorCode = 6
	CodeDivideByZero    ErrorCode = 7
	CodeInvalidDecimal  ErrorCode = 8
	CodeMathDomain      ErrorCode = 9
	CodeEmptyEvents     ErrorCode = 10

	// State Machine Module
	StateMachineModule ErrorModule = "state_machine"

	// State Machine Module Error Codes
	CodeReadGenesisFile        ErrorCode = 1
	CodeUnmarshalGenesis       ErrorCode = 2
	CodeInvalidGenesis         ErrorCode = 3
	CodeUnknownMessage         ErrorCode = 4
	CodeEmptyCaller            ErrorCode = 5
	CodePoolExists             ErrorCode = 6
	CodePoolNotFound           ErrorCode = 7
	CodeNonPositiveAmount      ErrorCode = 8
	CodeInvalidInterface       ErrorCode = 9
	CodeInvalidPoolAsset       ErrorCode = 10
	CodeInsufficientLiquidity  ErrorCode = 11
	CodeInsufficientAllowance  ErrorCode = 12
	CodeRemainingLiquidity     ErrorCode = 13
	CodeDegenerateReserves     ErrorCode = 14
	CodeReserveError           ErrorCode = 15
	CodeSlippage               ErrorCode = 16
	CodeReferencePoolNotFound  ErrorCode = 17
	CodeNegativeStake          ErrorCode = 18
	CodeInsufficientStakeFunds ErrorCode = 19
	CodeStakeAssetMismatch     ErrorCode = 20
	CodeSyncDisabled           ErrorCode = 21
	CodeNotOwner               ErrorCode = 22
	CodeUnknownParam           ErrorCode = 23
	CodeInvalidParam           ErrorCode = 24
	CodeInvalidParamType       ErrorCode = 25
	CodeAssetNotDeployed       ErrorCode = 26
	CodeAssetExists            ErrorCode = 27
	CodeSameAccount            ErrorCode = 28
	CodeWrongStoreType         ErrorCode = 29

	// Token Module
	TokenModule ErrorModule = "token"

	// Token Module Error Codes
	CodeInsufficientFunds    ErrorCode = 1
	CodeInsufficientApproval ErrorCode = 2
	CodeInvalidTokenAmount   ErrorCode = 3
	CodeEmptyAccount         ErrorCode = 4

	// Storage Module
	StorageModule ErrorModule = "store"

	// Storage Module Error Codes
	CodeOpenDB      ErrorCode = 1
	CodeCloseDB     ErrorCode = 2
	CodeCommitDB    ErrorCode = 3
	CodeStoreSet    ErrorCode = 4
	CodeStoreGet    ErrorCode = 5
	CodeStoreDelete ErrorCode = 6
	CodeInvalidKey  ErrorCode = 7

	// RPC Module
	RPCModule ErrorModule = "rpc"

	// RPC Module Error Codes
	CodeRPCTimeout    ErrorCode = 1
	CodeInvalidParams ErrorCode = 2
	CodePostRequest   ErrorCode = 3
	CodeGetRequest    ErrorCode = 4
	CodeHttpStatus    ErrorCode = 5
	CodeReadBody      ErrorCode = 6
)

func ErrJSONMarshal(err error) ErrorI {
	return NewError(CodeJSONMarshal, MainModule, fmt.Sprintf("json.marshal() failed with err: %s", err.Error()))
}

func ErrJSONUnmarshal(err error) ErrorI {
	return NewError(CodeJSONUnmarshal, MainModule, fmt.Sprintf("json.unmarshal() failed with err: %s", err.Error()))
}

func ErrWriteFile(err error) ErrorI {
	return NewError(CodeWriteFile, MainModule, fmt.Sprintf("os.WriteFile() failed with err: %s", err.Error()))
}

func ErrInvalidArgument() ErrorI {
	return NewError(CodeInvalidArgument, MainModule, "the argument is invalid")
}

func ErrPanic() ErrorI {
	return NewError(CodePanic, MainModule, "panic recovery")
}

func ErrDivideByZero() ErrorI {
	return NewError(CodeDivideByZero, MainModule, "division by zero")
}

func ErrInvalidDecimal(s string) ErrorI {
	return NewError(CodeInvalidDecimal, MainModule, fmt.Sprintf("%q is not a valid decimal", s))
}

func ErrMathDomain(err error) ErrorI {
	return NewError(CodeMathDomain, MainModule, fmt.Sprintf("math domain error: %s", err.Error()))
}

func ErrEmptyEventsTracker() ErrorI {
	return NewError(CodeEmptyEvents, MainModule, "events tracker is nil")
}

func ErrServerTimeout() ErrorI {
	return NewError(CodeRPCTimeout, RPCModule, "server timeout")
}

func ErrPostRequest(err error) ErrorI {
	return NewError(CodePostRequest, RPCModule, fmt.Sprintf("http.Post() failed with err: %s", err.Error()))
}

func ErrGetRequest(err error) ErrorI {
	return NewError(CodeGetRequest, RPCModule, fmt.Sprintf("http.Get() failed with err: %s", err.Error()))
}

func ErrHttpStatus(status string, statusCode int, body []byte) ErrorI {
	return NewError(CodeHttpStatus, RPCModule, fmt.Sprintf("http response bad status %s with code %d and body %s", status, statusCode, body))
}

func ErrReadBody(err error) ErrorI {
	return NewError(CodeReadBody, RPCModule, fmt.Sprintf("io.ReadAll(http.ResponseBody) failed with err: %s", err.Error()))
}
