package lib

import (
	"encoding/json"
)

/* This file defines the call envelope submitted to the exchange engine and the result it produces */

// MessageI is the payload of a call: one message type per engine entry point
type MessageI interface {
	Check() ErrorI // stateless validation
	Name() string  // the message type
}

// Transaction is a call to the engine made by a caller
// identity is asserted by the submitter; signature verification happens outside of this node
type Transaction struct {
	Caller      string          `json:"caller"`      // the account making the call
	MessageType string          `json:"messageType"` // the name of the message
	Msg         json.RawMessage `json:"msg"`         // the json encoded message
}

// TxResult is the outcome of a committed call
type TxResult struct {
	Id          string          `json:"id"`          // identifier of the call, referenced by its events
	Caller      string          `json:"caller"`      // the account that made the call
	MessageType string          `json:"messageType"` // the name of the message
	Result      json.RawMessage `json:"result"`      // the json encoded return value of the entry point
	Events      Events          `json:"events"`      // the events the call recorded
}

// NewTransaction() wraps a message into a call envelope
func NewTransaction(caller string, msg MessageI) (*Transaction, ErrorI) {
	bz, err := MarshalJSON(msg)
	if err != nil {
		return nil, err
	}
	return &Transaction{Caller: caller, MessageType: msg.Name(), Msg: bz}, nil
}
