package jet_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/donaldgifford/jet-merchant-client/internal/jet"
)

const authorizedBody = `"This message is authorized."`

// tokenJSON returns a valid login response.
func tokenJSON(token, expiresOn string) string {
	return fmt.Sprintf(
		`{"id_token":%q,"token_type":"Bearer","expires_on":%q}`,
		token,
		expiresOn,
	)
}

// fakeJet is an in-process stand-in for the Jet API. Configure the exported
// fields before calling start.
type fakeJet struct {
	LoginStatus int
	LoginBody   string
	// LoginBodyFunc, when set, replaces LoginBody and is called per login.
	LoginBodyFunc func() string
	LoginDelay    time.Duration
	AuthTestBody  string
	// API handles every other path under /api/. Defaults to 200 {"ok":true}.
	API     http.HandlerFunc
	OnLogin func()

	logins    atomic.Int32
	authTests atomic.Int32
	requests  atomic.Int32

	mu           sync.Mutex
	loginBodies  []string
	testAuth     []string
	requestAuths []string
}

func newFakeJet() *fakeJet {
	return &fakeJet{
		LoginStatus:  http.StatusOK,
		LoginBody:    tokenJSON("abc", "2099-01-01T00:00:00Z"),
		AuthTestBody: authorizedBody,
	}
}

func (f *fakeJet) start(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/token", func(w http.ResponseWriter, r *http.Request) {
		f.logins.Add(1)
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.loginBodies = append(f.loginBodies, string(body))
		f.mu.Unlock()

		if f.OnLogin != nil {
			f.OnLogin()
		}
		if f.LoginDelay > 0 {
			time.Sleep(f.LoginDelay)
		}

		out := f.LoginBody
		if f.LoginBodyFunc != nil {
			out = f.LoginBodyFunc()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.LoginStatus)
		_, _ = w.Write([]byte(out))
	})
	mux.HandleFunc("GET /api/authcheck", func(w http.ResponseWriter, r *http.Request) {
		f.authTests.Add(1)
		f.mu.Lock()
		f.testAuth = append(f.testAuth, r.Header.Get("Authorization"))
		f.mu.Unlock()

		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(f.AuthTestBody))
	})
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		f.mu.Lock()
		f.requestAuths = append(f.requestAuths, r.Header.Get("Authorization"))
		f.mu.Unlock()

		if f.API != nil {
			f.API(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (f *fakeJet) lastLoginBody() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.loginBodies) == 0 {
		return ""
	}
	return f.loginBodies[len(f.loginBodies)-1]
}

func (f *fakeJet) authTestHeaders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.testAuth...)
}

func (f *fakeJet) requestHeaders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestAuths...)
}

func newTestClient(srv *httptest.Server, opts ...jet.Option) *jet.Client {
	base := []jet.Option{jet.WithBaseURL(srv.URL + "/api")}
	return jet.New("u", "p", append(base, opts...)...)
}
