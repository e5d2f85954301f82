package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JDODER260/pickupform/internal/porecord"
)

func TestFetchCompanyDB(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{
			"Mercer": {
				"Acme Saw": {"descriptions": ["10in carbide", "12in rip"]}
			}
		}`))
	}))
	defer srv.Close()

	db, err := NewClient().FetchCompanyDB(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Contains(t, db, "Mercer")
	assert.Equal(t, []string{"10in carbide", "12in rip"}, db["Mercer"]["Acme Saw"].FrequentBlades)
}

func TestFetchCompanyDB_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient().FetchCompanyDB(context.Background(), srv.URL)
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusInternalServerError, serverErr.Status)
}

func TestFetchDeliveries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mercer", r.URL.Query().Get("route"))
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"Acme Saw": [
					{"po_number": "P-100", "description": "10in carbide", "quantity": "4"}
				]
			}
		}`))
	}))
	defer srv.Close()

	ds, err := NewClient().FetchDeliveries(context.Background(), srv.URL, "Mercer")
	require.NoError(t, err)
	assert.Equal(t, "Mercer", ds.Route)
	require.Len(t, ds.Companies["Acme Saw"], 1)
	assert.Equal(t, "P-100", ds.Companies["Acme Saw"][0].PONumber)
	assert.NotEmpty(t, ds.FetchedAt)
}

func TestFetchDeliveries_ServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "error": "unknown route"}`))
	}))
	defer srv.Close()

	_, err := NewClient().FetchDeliveries(context.Background(), srv.URL, "Nowhere")
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Contains(t, serverErr.Message, "unknown route")
}

func TestFetchDeliveries_MalformedPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing data field", `{"success": true}`},
		{"null data field", `{"success": true, "data": null}`},
		{"data is a list", `{"success": true, "data": ["nope"]}`},
		{"not json at all", `<html>gateway timeout</html>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient().FetchDeliveries(context.Background(), srv.URL, "Mercer")
			var malformed *MalformedError
			require.ErrorAs(t, err, &malformed)
		})
	}
}

func TestUploadEntries(t *testing.T) {
	var received []porecord.Entry
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
	}))
	defer srv.Close()

	entries := []porecord.Entry{
		porecord.New("10in carbide", "Acme Saw", "Mercer", "4", "ab12cd34"),
	}
	require.NoError(t, NewClient().UploadEntries(context.Background(), srv.URL, entries))
	require.Len(t, received, 1)
	assert.Equal(t, "Acme Saw", received[0].Company)
}

func TestUploadEntries_FailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient().UploadEntries(context.Background(), srv.URL, nil)
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadGateway, serverErr.Status)
}
