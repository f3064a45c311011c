package gadget

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/sotavant/dolly-skill/internal/models"
)

func TestListEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer good-token":
		case "Bearer broken":
			w.WriteHeader(http.StatusInternalServerError)
			return
		default:
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/endpoints", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"endpoints": [
			{"endpointId": "amzn1.ask.endpoint.A", "friendlyName": "EV3_A",
			 "capabilities": [{"type": "AlexaInterface", "interface": "Custom.Mindstorms.Gadget", "version": "1.0"}]},
			{"endpointId": "amzn1.ask.endpoint.B", "friendlyName": "EV3_B"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(time.Second)

	testCases := []struct {
		name    string
		api     string
		token   string
		want    []string
		wantErr bool
	}{
		{name: "success", api: srv.URL, token: "good-token", want: []string{"amzn1.ask.endpoint.A", "amzn1.ask.endpoint.B"}},
		{name: "trailing_slash", api: srv.URL + "/", token: "good-token", want: []string{"amzn1.ask.endpoint.A", "amzn1.ask.endpoint.B"}},
		{name: "unauthorized", api: srv.URL, token: "bad-token", wantErr: true},
		{name: "server_error", api: srv.URL, token: "broken", wantErr: true},
		{name: "no_api_endpoint", token: "good-token", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			endpoints, err := c.ListEndpoints(context.Background(), tc.api, tc.token)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			ids := make([]string, 0, len(endpoints))
			for _, e := range endpoints {
				ids = append(ids, e.EndpointID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestListEndpointsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"endpoints": []}`))
	}))
	defer srv.Close()

	endpoints, err := NewClient(0).ListEndpoints(context.Background(), srv.URL, "token")
	require.NoError(t, err)
	assert.Empty(t, endpoints)
}

func TestListEndpointsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := NewClient(20*time.Millisecond).ListEndpoints(context.Background(), srv.URL, "token")
	assert.Error(t, err)
}

var _ EndpointLister = (*Client)(nil)

func TestCapabilitiesDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"endpoints": [{"endpointId": "A", "friendlyName": "EV3",
			"capabilities": [{"type": "AlexaInterface", "interface": "Custom.Mindstorms.Gadget", "version": "1.0"}]}]}`))
	}))
	defer srv.Close()

	endpoints, err := NewClient(time.Second).ListEndpoints(context.Background(), srv.URL, "token")
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	assert.Equal(t, models.Endpoint{
		EndpointID:   "A",
		FriendlyName: "EV3",
		Capabilities: []models.Capability{{Type: "AlexaInterface", Interface: "Custom.Mindstorms.Gadget", Version: "1.0"}},
	}, endpoints[0])
}
