package gandi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateARecord(t *testing.T) {
	var gotMethod, gotPath, gotKey, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New("sekrit", zerolog.Nop(), WithBaseURL(srv.URL))
	err := c.UpdateARecord(context.Background(), "example.com", "a", "203.0.113.9")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/domains/example.com/records/a/A", gotPath)
	assert.Equal(t, "sekrit", gotKey)
	assert.Equal(t, "application/json", gotContentType)

	var body rrset
	require.NoError(t, json.Unmarshal(gotBody, &body))
	assert.Equal(t, RecordTTL, body.TTL)
	assert.Equal(t, []string{"203.0.113.9"}, body.Values)
	assert.Empty(t, body.Type, "type and name ride in the URL, not the body")
	assert.Empty(t, body.Name)
}

func TestUpdateARecordUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New("wrong", zerolog.Nop(), WithBaseURL(srv.URL))
	err := c.UpdateARecord(context.Background(), "example.com", "a", "203.0.113.9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized), "got %v", err)
}

func TestUpdateARecordServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"message":"try later"}`)
	}))
	defer srv.Close()

	c := New("sekrit", zerolog.Nop(), WithBaseURL(srv.URL))
	err := c.UpdateARecord(context.Background(), "example.com", "a", "203.0.113.9")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "try later", "response body belongs in the error")
}

func TestUpdateARecordArgumentGuards(t *testing.T) {
	c := New("sekrit", zerolog.Nop(), WithBaseURL("http://127.0.0.1:0"))

	err := c.UpdateARecord(context.Background(), "example.com.", "a", "203.0.113.9")
	require.Error(t, err, "trailing dot on the domain must be rejected before any request")

	err = c.UpdateARecord(context.Background(), "example.com", "a.example.com", "203.0.113.9")
	require.Error(t, err, "a record name containing a dot must be rejected")
}

func TestRRSetSerialization(t *testing.T) {
	full, err := json.Marshal(rrset{Type: "A", TTL: 666, Name: "a", Values: []string{"v1", "v2"}})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"rrset_type":"A","rrset_ttl":666,"rrset_name":"a","rrset_values":["v1","v2"]}`,
		string(full))

	sparse, err := json.Marshal(rrset{TTL: 666, Values: []string{"v1"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rrset_ttl":666,"rrset_values":["v1"]}`, string(sparse))
}
