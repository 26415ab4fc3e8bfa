package domain

import "encoding/json"

// SignedPayment is a payment intent bound to the service signer.
type SignedPayment struct {
	Signature   string        `json:"signature"`
	Payload     PaymentIntent `json:"payload"`
	MessageHash string        `json:"message_hash"`
}

// BatchAction is one step of a batched, single-signature execution.
type BatchAction struct {
	Kind   ActionKind `json:"kind"`
	Target string     `json:"target"`
	Value  string     `json:"value"` // wei
	Data   string     `json:"data,omitempty"`
}

// BatchPayload is the signed description of a batch of actions.
type BatchPayload struct {
	Actions   []BatchAction `json:"actions"`
	Nonce     uint64        `json:"nonce"`
	Timestamp int64         `json:"timestamp"`
	Expires   int64         `json:"expires"`
}

// SignedBatch pairs a batch payload with its signature.
type SignedBatch struct {
	Signature   string       `json:"signature"`
	Payload     BatchPayload `json:"payload"`
	MessageHash string       `json:"message_hash"`
}

// ContractCallPayload is the signed description of a single contract call.
type ContractCallPayload struct {
	Contract  string          `json:"contract"`
	Method    string          `json:"method"`
	Params    json.RawMessage `json:"params"`
	Nonce     uint64          `json:"nonce"`
	Timestamp int64           `json:"timestamp"`
	Expires   int64           `json:"expires"`
}

// SignedContractCall pairs a contract call payload with its signature.
type SignedContractCall struct {
	Signature   string              `json:"signature"`
	Payload     ContractCallPayload `json:"payload"`
	MessageHash string              `json:"message_hash"`
}
