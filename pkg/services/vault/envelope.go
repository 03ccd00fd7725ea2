package vaultsvc

import (
	"fmt"

	"github.com/google/uuid"
)

// Operation is a name of the operation requested by an envelope.
type Operation string

const (
	// OperationSave stores content of one or more requests.
	OperationSave Operation = "SAVE"
	// OperationLoad replaces content data of the request with the stored one.
	OperationLoad Operation = "LOAD"
	// OperationDelete removes the stored content.
	OperationDelete Operation = "DELETE"
)

// Content is a named opaque payload. Name is used as the record key.
type Content struct {
	Name string `json:"name"`
	Data []byte `json:"data,omitempty"`
}

// Request describes a single vault operation.
type Request struct {
	// Location is the label of the record, empty location means no label.
	Location string `json:"location,omitempty"`
	// Content is required for all operations, its name is required too.
	Content *Content `json:"content,omitempty"`
	// AutoCreate allows creating missing label on save.
	AutoCreate bool `json:"auto_create,omitempty"`
	// StoreExternal selects the external storage root.
	StoreExternal bool `json:"store_external,omitempty"`
}

// Payload is either a single Request or a batch of them.
type Payload struct {
	single *Request
	batch  []*Request
}

// Single returns payload of a single request.
func Single(r *Request) Payload {
	return Payload{single: r}
}

// Batch returns payload of an ordered batch of requests.
func Batch(rs ...*Request) Payload {
	if rs == nil {
		rs = []*Request{}
	}
	return Payload{batch: rs}
}

// IsBatch checks whether the payload is a batch.
func (p Payload) IsBatch() bool {
	return p.batch != nil
}

// Request returns the request of a single payload, nil for batches.
func (p Payload) Request() *Request {
	return p.single
}

// Requests returns requests of the payload in order. Single payload
// results in one element.
func (p Payload) Requests() []*Request {
	if p.IsBatch() {
		return p.batch
	}
	if p.single != nil {
		return []*Request{p.single}
	}
	return nil
}

// ErrorCode classifies operation failures.
type ErrorCode string

const (
	CodeFieldRequired      ErrorCode = "field_required"
	CodeNotFound           ErrorCode = "not_found"
	CodeWriteFailed        ErrorCode = "write_failed"
	CodeReadFailed         ErrorCode = "read_failed"
	CodeDeleteFailed       ErrorCode = "delete_failed"
	CodeStorageUnavailable ErrorCode = "storage_unavailable"
	CodeInvalidName        ErrorCode = "invalid_name"
	CodeUnsupportedPayload ErrorCode = "unsupported_payload"
	CodeMalformedEnvelope  ErrorCode = "malformed_envelope"
	CodeServiceUnavailable ErrorCode = "service_unavailable"
	CodeCancelled          ErrorCode = "cancelled"
	CodeInternal           ErrorCode = "internal"
)

// ErrorMessage is a failure report attached to the envelope.
type ErrorMessage struct {
	Code ErrorCode `json:"code"`
	// Field is set for CodeFieldRequired.
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error implements error interface.
func (e ErrorMessage) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func fieldRequired(field string) ErrorMessage {
	return ErrorMessage{
		Code:    CodeFieldRequired,
		Field:   field,
		Message: field + " is required",
	}
}

// Envelope carries an operation with its payload and collects errors of
// the operation.
type Envelope struct {
	ID        uuid.UUID
	Operation Operation
	Payload   Payload
	Errors    []ErrorMessage
}

// NewEnvelope returns envelope with a random ID.
func NewEnvelope(op Operation, p Payload) *Envelope {
	return &Envelope{
		ID:        uuid.New(),
		Operation: op,
		Payload:   p,
	}
}

// AddError appends error message to the envelope.
func (e *Envelope) AddError(msg ErrorMessage) {
	e.Errors = append(e.Errors, msg)
}

// Failed checks whether any error was recorded in the envelope.
func (e *Envelope) Failed() bool {
	return len(e.Errors) > 0
}
