package vaultsvc

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

type envelopeJSON struct {
	ID        string         `json:"id,omitempty"`
	Operation Operation      `json:"operation"`
	Request   *Request       `json:"request,omitempty"`
	Requests  *[]*Request    `json:"requests,omitempty"`
	Errors    []ErrorMessage `json:"errors,omitempty"`
}

// MarshalJSON implements json.Marshaler. Single payload is encoded as
// "request" field, batch as "requests".
func (e Envelope) MarshalJSON() ([]byte, error) {
	v := envelopeJSON{
		Operation: e.Operation,
		Errors:    e.Errors,
	}

	if e.ID != uuid.Nil {
		v.ID = e.ID.String()
	}

	if e.Payload.IsBatch() {
		v.Requests = &e.Payload.batch
	} else {
		v.Request = e.Payload.single
	}

	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler. Missing ID is replaced with
// a random one.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var v envelopeJSON

	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	if v.Request != nil && v.Requests != nil {
		return errors.New("both single request and batch are set")
	}

	id := uuid.New()
	if v.ID != "" {
		var err error
		if id, err = uuid.Parse(v.ID); err != nil {
			return err
		}
	}

	*e = Envelope{
		ID:        id,
		Operation: v.Operation,
		Errors:    v.Errors,
	}

	if v.Requests != nil {
		e.Payload = Batch(*v.Requests...)
	} else {
		e.Payload = Single(v.Request)
	}

	return nil
}
