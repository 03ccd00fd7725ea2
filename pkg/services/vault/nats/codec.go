package nats

import (
	"encoding/json"

	"github.com/google/uuid"
	vaultsvc "github.com/nspcc-dev/infovault/pkg/services/vault"
)

// decodeEnvelope decodes JSON envelope. If data is malformed, a new
// envelope carrying malformed_envelope error is returned with false.
func decodeEnvelope(data []byte) (*vaultsvc.Envelope, bool) {
	e := new(vaultsvc.Envelope)

	if err := json.Unmarshal(data, e); err != nil {
		return &vaultsvc.Envelope{
			ID: uuid.New(),
			Errors: []vaultsvc.ErrorMessage{{
				Code:    vaultsvc.CodeMalformedEnvelope,
				Message: err.Error(),
			}},
		}, false
	}

	return e, true
}

func encodeEnvelope(e *vaultsvc.Envelope) ([]byte, error) {
	return json.Marshal(e)
}
