package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/donaldgifford/jet-merchant-client/internal/jet"
	domain "github.com/donaldgifford/jet-merchant-client/pkg/types"
)

func newTestMock(t *testing.T) *mockJet {
	t.Helper()
	products, err := loadFixture(filepath.Join("testdata", "products.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	m := newMockJet(testLogger(), "", "", time.Hour)
	if err := m.load(products); err != nil {
		t.Fatalf("indexing fixture: %v", err)
	}
	return m
}

func issueToken(t *testing.T, h http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/token",
		strings.NewReader(`{"user":"u","pass":"p"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("token status=%d, want %d", w.Code, http.StatusOK)
	}
	var resp tokenResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding token: %v", err)
	}
	return resp.TokenType + " " + resp.IDToken
}

func TestLoadFixture(t *testing.T) {
	m := newTestMock(t)
	if len(m.order) != 5 {
		t.Fatalf("products=%d, want 5", len(m.order))
	}
	if m.order[0] != "WIDGET-001" {
		t.Errorf("first sku=%s, want WIDGET-001", m.order[0])
	}
}

func TestLoad_RejectsProductWithoutSKU(t *testing.T) {
	m := newMockJet(testLogger(), "", "", time.Hour)
	err := m.load([]json.RawMessage{json.RawMessage(`{"product_title":"No SKU here"}`)})
	if err == nil {
		t.Fatal("expected error for product without merchant_sku")
	}
}

func TestTokenHandler_Success(t *testing.T) {
	m := newTestMock(t)
	req := httptest.NewRequest(http.MethodPost, "/api/token",
		strings.NewReader(`{"user":"merchant","pass":"secret"}`))
	w := httptest.NewRecorder()

	m.routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}
	var resp tokenResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.HasPrefix(resp.IDToken, "mock-token-") {
		t.Errorf("id_token=%q, want mock-token- prefix", resp.IDToken)
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("token_type=%q, want Bearer", resp.TokenType)
	}
	if _, err := time.Parse(time.RFC3339, resp.ExpiresOn); err != nil {
		t.Errorf("expires_on=%q is not RFC 3339: %v", resp.ExpiresOn, err)
	}
}

func TestTokenHandler_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing pass", body: `{"user":"merchant"}`},
		{name: "wrong user", body: `{"user":"intruder","pass":"secret"}`},
		{name: "not json", body: `user=merchant`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockJet(testLogger(), "merchant", "secret", time.Hour)
			req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			m.routes().ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
			}
			var resp errorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if len(resp.Errors) == 0 {
				t.Error("expected errors array")
			}
		})
	}
}

func TestAuthCheck(t *testing.T) {
	m := newTestMock(t)
	h := m.routes()
	auth := issueToken(t, h)

	req := httptest.NewRequest(http.MethodGet, "/api/authcheck", http.NoBody)
	req.Header.Set("Authorization", auth)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Body.String() != authorizedMessage {
		t.Errorf("body=%q, want %q", w.Body.String(), authorizedMessage)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/authcheck", http.NoBody)
	req.Header.Set("Authorization", "Bearer forged")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthCheck_ExpiredToken(t *testing.T) {
	m := newTestMock(t)
	h := m.routes()
	auth := issueToken(t, h)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	req := httptest.NewRequest(http.MethodGet, "/api/authcheck", http.NoBody)
	req.Header.Set("Authorization", auth)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestListHandler_Pagination(t *testing.T) {
	m := newTestMock(t)
	h := m.routes()
	auth := issueToken(t, h)

	req := httptest.NewRequest(http.MethodGet, "/api/merchant-skus?offset=3&limit=3", http.NoBody)
	req.Header.Set("Authorization", auth)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp map[string][]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	want := []string{"merchant-skus/GADGET-100", "merchant-skus/GADGET-200"}
	if len(resp["sku_urls"]) != len(want) {
		t.Fatalf("sku_urls=%v, want %v", resp["sku_urls"], want)
	}
	for i := range want {
		if resp["sku_urls"][i] != want[i] {
			t.Errorf("sku_urls[%d]=%s, want %s", i, resp["sku_urls"][i], want[i])
		}
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	m := newTestMock(t)
	req := httptest.NewRequest(http.MethodGet, "/api/merchant-skus/WIDGET-001", http.NoBody)
	w := httptest.NewRecorder()

	m.routes().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestUpdateHandler_UnknownSKU(t *testing.T) {
	m := newTestMock(t)
	h := m.routes()
	auth := issueToken(t, h)

	req := httptest.NewRequest(http.MethodPut, "/api/merchant-skus/NOPE/price",
		bytes.NewReader([]byte(`{"price":1}`)))
	req.Header.Set("Authorization", auth)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNotFound)
	}
}

// TestClientRoundTrip drives the mock with the real client, so both sides
// agree on the wire format.
func TestClientRoundTrip(t *testing.T) {
	m := newTestMock(t)
	srv := httptest.NewServer(m.routes())
	defer srv.Close()

	ctx := context.Background()
	c := jet.New("merchant", "secret", jet.WithBaseURL(srv.URL+"/api"))

	ok, err := c.Login(ctx)
	if err != nil || !ok {
		t.Fatalf("login ok=%v err=%v", ok, err)
	}

	p, err := c.GetProduct(ctx, "BOOK-0306406152")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if p.Status != domain.StatusMissingListingData {
		t.Errorf("status=%q, want %q", p.Status, domain.StatusMissingListingData)
	}

	if err := c.PutPrice(ctx, "WIDGET-001", domain.Price{Price: 19.99}); err != nil {
		t.Fatalf("put price: %v", err)
	}
	if got := string(m.updates["WIDGET-001"]["price"]); got != `{"price":19.99}` {
		t.Errorf("stored price=%s", got)
	}

	err = c.PutProduct(ctx, &domain.Product{
		Title:        "Acme Widget Max",
		ProductCodes: []domain.ProductCode{{Code: "036000291452", Type: domain.CodeUPC}},
	})
	if err != nil {
		t.Fatalf("put product: %v", err)
	}

	result, err := jet.NewSKUPaginator(c, jet.WithPageSize(2)).Paginate(ctx)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if len(result.SKUs) != 6 {
		t.Errorf("skus=%d, want 6", len(result.SKUs))
	}
	if result.SKUs[5] != "036000291452" {
		t.Errorf("last sku=%s, want 036000291452", result.SKUs[5])
	}

	_, err = c.GetProduct(ctx, "MISSING")
	if !jet.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
