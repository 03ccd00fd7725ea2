package vaultsvc

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_UnmarshalJSON(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		var e Envelope
		require.NoError(t, json.Unmarshal([]byte(`{
			"id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			"operation":"SAVE",
			"request":{"location":"Person","content":{"name":"alice","data":"AQID"},"auto_create":true}
		}`), &e))

		require.Equal(t, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), e.ID)
		require.Equal(t, OperationSave, e.Operation)
		require.False(t, e.Payload.IsBatch())

		req := e.Payload.Request()
		require.NotNil(t, req)
		require.Equal(t, "Person", req.Location)
		require.True(t, req.AutoCreate)
		require.False(t, req.StoreExternal)
		require.Equal(t, &Content{Name: "alice", Data: []byte{1, 2, 3}}, req.Content)
	})

	t.Run("batch", func(t *testing.T) {
		var e Envelope
		require.NoError(t, json.Unmarshal([]byte(`{
			"operation":"SAVE",
			"requests":[{"content":{"name":"a"}},{"content":{"name":"b"}}]
		}`), &e))

		require.NotEqual(t, uuid.Nil, e.ID)
		require.True(t, e.Payload.IsBatch())
		require.Nil(t, e.Payload.Request())
		require.Len(t, e.Payload.Requests(), 2)
		require.Equal(t, "b", e.Payload.Requests()[1].Content.Name)
	})

	t.Run("ambiguous payload", func(t *testing.T) {
		var e Envelope
		require.Error(t, json.Unmarshal([]byte(`{
			"operation":"SAVE",
			"request":{"content":{"name":"a"}},
			"requests":[{"content":{"name":"b"}}]
		}`), &e))
	})

	t.Run("invalid id", func(t *testing.T) {
		var e Envelope
		require.Error(t, json.Unmarshal([]byte(`{"id":"nope","operation":"LOAD"}`), &e))
	})
}

func TestEnvelope_MarshalJSON(t *testing.T) {
	e := NewEnvelope(OperationLoad, Single(&Request{Content: &Content{Name: "alice"}}))
	e.AddError(ErrorMessage{Code: CodeNotFound, Message: "not found"})

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	require.Equal(t, e.ID.String(), m["id"])
	require.Equal(t, "LOAD", m["operation"])
	require.Contains(t, m, "request")
	require.NotContains(t, m, "requests")
	require.Equal(t, []any{map[string]any{"code": "not_found", "message": "not found"}}, m["errors"])

	var res Envelope
	require.NoError(t, json.Unmarshal(data, &res))
	require.Equal(t, *e, res)
}

func TestEnvelope_EmptyBatch(t *testing.T) {
	e := NewEnvelope(OperationSave, Batch())

	data, err := json.Marshal(e)
	require.NoError(t, err)
	require.Contains(t, string(data), `"requests":[]`)

	var res Envelope
	require.NoError(t, json.Unmarshal(data, &res))
	require.True(t, res.Payload.IsBatch())
	require.Empty(t, res.Payload.Requests())
}
