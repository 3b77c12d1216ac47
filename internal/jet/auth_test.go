package jet_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/jet-merchant-client/internal/jet"
	"github.com/donaldgifford/jet-merchant-client/internal/metrics"
)

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	before := testutil.ToFloat64(metrics.LoginsTotal.WithLabelValues(metrics.LoginSuccess))

	fake := newFakeJet()
	srv := fake.start(t)
	client := newTestClient(srv)

	ok, err := client.Login(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	header, err := client.Credentials().AuthorizationHeaderValue()
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", header)
	assert.Equal(t, jet.StateAuthenticated, client.State())

	assert.Equal(t, `{"user":"u","pass":"p"}`, fake.lastLoginBody())
	assert.Equal(t, int32(1), fake.logins.Load())
	assert.Equal(t, []string{"Bearer abc"}, fake.authTestHeaders())

	after := testutil.ToFloat64(metrics.LoginsTotal.WithLabelValues(metrics.LoginSuccess))
	assert.GreaterOrEqual(t, after-before, 1.0)
}

func TestLogin_AuthTestRejected(t *testing.T) {
	t.Parallel()

	fake := newFakeJet()
	fake.AuthTestBody = "nope"
	srv := fake.start(t)
	client := newTestClient(srv)

	ok, err := client.Login(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	assert.False(t, client.Credentials().IsAuthenticated())
	assert.Empty(t, client.Credentials().Token())
	assert.Equal(t, jet.StateUnauthenticated, client.State())
	assert.Equal(t, int32(1), fake.authTests.Load())
}

func TestLogin_AuthTestRequiresExactMessage(t *testing.T) {
	t.Parallel()

	// The message must arrive quoted, as the API sends it.
	fake := newFakeJet()
	fake.AuthTestBody = "This message is authorized."
	srv := fake.start(t)
	client := newTestClient(srv)

	ok, err := client.Login(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_MalformedResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing id_token", body: `{"token_type":"Bearer","expires_on":"2099-01-01T00:00:00Z"}`},
		{name: "missing token_type", body: `{"id_token":"abc","expires_on":"2099-01-01T00:00:00Z"}`},
		{name: "missing expires_on", body: `{"id_token":"abc","token_type":"Bearer"}`},
		{name: "bad expires_on", body: `{"id_token":"abc","token_type":"Bearer","expires_on":"soon"}`},
		{name: "not json", body: `<html>ok</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := newFakeJet()
			fake.LoginBody = tt.body
			srv := fake.start(t)
			client := newTestClient(srv)

			ok, err := client.Login(context.Background())
			require.ErrorIs(t, err, jet.ErrMalformedAuthResponse)
			assert.False(t, ok)
			assert.False(t, client.Credentials().IsAuthenticated())
			assert.Equal(t, int32(0), fake.authTests.Load(), "auth test must not run")
		})
	}
}

func TestLogin_Rejected(t *testing.T) {
	t.Parallel()

	fake := newFakeJet()
	fake.LoginStatus = http.StatusBadRequest
	fake.LoginBody = `{"errors":["invalid username or password"]}`
	srv := fake.start(t)
	client := newTestClient(srv)

	ok, err := client.Login(context.Background())
	require.ErrorIs(t, err, jet.ErrAuthenticationFailed)
	assert.False(t, ok)

	var apiErr *jet.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, []string{"invalid username or password"}, apiErr.Messages)
	assert.Equal(t, jet.StateUnauthenticated, client.State())
}

func TestLogin_FailureDropsPreviousToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "rejected", status: http.StatusBadRequest, body: `{"errors":["bad"]}`, wantErr: jet.ErrAuthenticationFailed},
		{name: "malformed", status: http.StatusOK, body: `{"id_token":""}`, wantErr: jet.ErrMalformedAuthResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := newFakeJet()
			srv := fake.start(t)
			client := newTestClient(srv)

			ok, err := client.Login(context.Background())
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, jet.StateAuthenticated, client.State())

			fake.LoginStatus = tt.status
			fake.LoginBody = tt.body

			ok, err = client.Login(context.Background())
			require.ErrorIs(t, err, tt.wantErr)
			assert.False(t, ok)
			assert.False(t, client.Credentials().IsAuthenticated())
			assert.Equal(t, jet.StateUnauthenticated, client.State())
		})
	}
}

func TestLogin_TransportError(t *testing.T) {
	t.Parallel()

	client := jet.New("u", "p", jet.WithBaseURL("http://127.0.0.1:1/api"))

	ok, err := client.Login(context.Background())
	require.ErrorIs(t, err, jet.ErrTransport)
	assert.False(t, ok)
}

func TestLogin_StateWhileInFlight(t *testing.T) {
	t.Parallel()

	var client *jet.Client
	var seen atomic.Int32
	seen.Store(-1)

	fake := newFakeJet()
	fake.OnLogin = func() {
		seen.Store(int32(client.State()))
	}
	srv := fake.start(t)
	client = newTestClient(srv)

	assert.Equal(t, jet.StateUnauthenticated, client.State())

	ok, err := client.Login(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, int32(jet.StateAuthenticating), seen.Load())
	assert.Equal(t, jet.StateAuthenticated, client.State())
}

func TestLogin_SeparateAuthURLs(t *testing.T) {
	t.Parallel()

	fake := newFakeJet()
	srv := fake.start(t)

	// Base URL points nowhere; only the explicit auth URLs are reachable.
	client := jet.New("u", "p",
		jet.WithBaseURL("http://127.0.0.1:1/api"),
		jet.WithAuthURL(srv.URL+"/api/token"),
		jet.WithAuthTestURL(srv.URL+"/api/authcheck"),
	)

	ok, err := client.Login(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, srv.URL+"/api/token", client.Credentials().AuthURL())
}
