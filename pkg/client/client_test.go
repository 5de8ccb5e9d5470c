package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norlig/bankid/pkg/bankid"
)

func testServer(t *testing.T, wantPath string, status int, response any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, wantPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Auth(t *testing.T) {
	server := testServer(t, "/rp/v5/auth", http.StatusOK, &bankid.AuthResponse{
		OrderRef:       "order-123",
		AutoStartToken: "token-456",
	})
	c := New(server.URL, WithHTTPClient(server.Client()))

	got, err := c.Auth(context.Background(), &bankid.AuthRequest{
		EndUserIP:      "192.0.2.1",
		PersonalNumber: "201212121212",
	})
	require.NoError(t, err)
	assert.Equal(t, "order-123", got.OrderRef)
	assert.Equal(t, "token-456", got.AutoStartToken)
}

func TestClient_Auth_Error(t *testing.T) {
	server := testServer(t, "/rp/v5/auth", http.StatusBadRequest, &bankid.Error{
		ErrorCode: bankid.ErrorCodeAlreadyInProgress,
		Details:   "Order already in progress for pno",
	})
	c := New(server.URL)

	_, err := c.Auth(context.Background(), &bankid.AuthRequest{EndUserIP: "192.0.2.1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, bankid.ErrAlreadyInProgress())
}

func TestClient_Collect(t *testing.T) {
	server := testServer(t, "/rp/v5/collect", http.StatusOK, &bankid.CollectResponse{
		OrderRef: "order-123",
		Status:   bankid.CollectStatusComplete,
		CompletionData: &bankid.CompletionData{
			User: &bankid.User{
				PersonalNumber: "201212121212",
				Name:           "Test Testsson",
				GivenName:      "Test",
				Surname:        "Testsson",
			},
		},
	})
	c := New(server.URL)

	got, err := c.Collect(context.Background(), "order-123")
	require.NoError(t, err)
	assert.True(t, got.Complete())
	require.NotNil(t, got.CompletionData)
	assert.Equal(t, "Test Testsson", got.CompletionData.User.Name)
}

func TestClient_Collect_Pending(t *testing.T) {
	server := testServer(t, "/rp/v5/collect", http.StatusOK, &bankid.CollectResponse{
		OrderRef: "order-123",
		Status:   bankid.CollectStatusPending,
		HintCode: bankid.HintCodeOutstandingTransaction,
	})
	c := New(server.URL)

	got, err := c.Collect(context.Background(), "order-123")
	require.NoError(t, err)
	assert.True(t, got.Pending())
	assert.Equal(t, bankid.HintCodeOutstandingTransaction, got.HintCode)
}

func TestClient_Cancel(t *testing.T) {
	server := testServer(t, "/rp/v5/cancel", http.StatusOK, &bankid.CancelResponse{})
	c := New(server.URL)

	require.NoError(t, c.Cancel(context.Background(), "order-123"))
}

func TestClient_Cancel_Error(t *testing.T) {
	server := testServer(t, "/rp/v5/cancel", http.StatusBadRequest, &bankid.Error{
		ErrorCode: bankid.ErrorCodeInvalidParameters,
		Details:   "No such order",
	})
	c := New(server.URL)

	err := c.Cancel(context.Background(), "order-123")
	require.Error(t, err)
	assert.ErrorIs(t, err, bankid.ErrInvalidParameters())
}
