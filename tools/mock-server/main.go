// Package main implements a mock Jet merchant API server for local development.
// It issues bearer tokens, answers the live auth test, and serves merchant
// SKUs from a JSON fixture so jetctl can run without real credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

const authorizedMessage = `"This message is authorized."`

type fixtureFile struct {
	Products []json.RawMessage `json:"products"`
}

type productKey struct {
	SKU string `json:"merchant_sku"`
}

type tokenRequest struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

type tokenResponse struct {
	IDToken   string `json:"id_token"`
	TokenType string `json:"token_type"`
	ExpiresOn string `json:"expires_on"`
}

type errorResponse struct {
	Errors []string `json:"errors"`
}

// mockJet holds issued tokens and the SKU catalog.
type mockJet struct {
	logger *slog.Logger
	user   string
	pass   string
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	tokens   map[string]time.Time
	products map[string]json.RawMessage
	order    []string
	updates  map[string]map[string]json.RawMessage
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixture := flag.String("fixture", "tools/mock-server/testdata/products.json", "path to products fixture")
	user := flag.String("user", "", "accept only this user (default: any)")
	pass := flag.String("pass", "", "accept only this password (default: any)")
	ttl := flag.Duration("token-ttl", time.Hour, "lifetime of issued tokens")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	products, err := loadFixture(*fixture)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixture, "error", err)
		os.Exit(1)
	}

	m := newMockJet(logger, *user, *pass, *ttl)
	if err := m.load(products); err != nil {
		logger.Error("failed to index fixture", "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "products", len(m.order))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Jet server", "addr", addr, "base_url", "http://localhost"+addr+"/api")

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLog(logger, recovery(logger, m.routes())),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMockJet(logger *slog.Logger, user, pass string, ttl time.Duration) *mockJet {
	return &mockJet{
		logger:   logger,
		user:     user,
		pass:     pass,
		ttl:      ttl,
		now:      time.Now,
		tokens:   make(map[string]time.Time),
		products: make(map[string]json.RawMessage),
		updates:  make(map[string]map[string]json.RawMessage),
	}
}

func loadFixture(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f fixtureFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return f.Products, nil
}

func (m *mockJet) load(products []json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, raw := range products {
		var k productKey
		if err := json.Unmarshal(raw, &k); err != nil {
			return fmt.Errorf("product %d: %w", i, err)
		}
		if k.SKU == "" {
			return fmt.Errorf("product %d has no merchant_sku", i)
		}
		if _, ok := m.products[k.SKU]; !ok {
			m.order = append(m.order, k.SKU)
		}
		m.products[k.SKU] = raw
	}
	return nil
}

func (m *mockJet) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/token", m.tokenHandler)
	mux.HandleFunc("GET /api/authcheck", m.authCheckHandler)
	mux.HandleFunc("GET /api/merchant-skus", m.requireAuth(m.listHandler))
	mux.HandleFunc("GET /api/merchant-skus/{sku}", m.requireAuth(m.getHandler))
	mux.HandleFunc("PUT /api/merchant-skus/{sku}", m.requireAuth(m.putProductHandler))
	mux.HandleFunc("PUT /api/merchant-skus/{sku}/{kind}", m.requireAuth(m.updateHandler))
	return mux
}

func (m *mockJet) tokenHandler(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if req.User == "" || req.Pass == "" {
		writeErrors(w, http.StatusBadRequest, "user and pass are required")
		return
	}
	if (m.user != "" && req.User != m.user) || (m.pass != "" && req.Pass != m.pass) {
		m.logger.Warn("rejected login", "user", req.User)
		writeErrors(w, http.StatusBadRequest, "invalid username or password")
		return
	}

	token := "mock-token-" + uuid.NewString()
	expires := m.now().Add(m.ttl).UTC()

	m.mu.Lock()
	m.tokens[token] = expires
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, tokenResponse{
		IDToken:   token,
		TokenType: "Bearer",
		ExpiresOn: expires.Format(time.RFC3339),
	})
	m.logger.Info("issued mock token", "user", req.User, "expires", expires)
}

func (m *mockJet) authCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if !m.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`"Authorization has been denied for this request."`))
		return
	}
	_, _ = w.Write([]byte(authorizedMessage))
}

func (m *mockJet) authorized(r *http.Request) bool {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) <= len(prefix) || h[:len(prefix)] != prefix {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	expires, ok := m.tokens[h[len(prefix):]]
	return ok && m.now().Before(expires)
}

func (m *mockJet) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.authorized(r) {
			writeErrors(w, http.StatusUnauthorized, "Authorization has been denied for this request.")
			return
		}
		next(w, r)
	}
}

func (m *mockJet) listHandler(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}

	m.mu.Lock()
	skus := slices.Clone(m.order)
	m.mu.Unlock()

	if offset >= len(skus) {
		skus = nil
	} else {
		skus = skus[offset:min(offset+limit, len(skus))]
	}

	urls := make([]string, 0, len(skus))
	for _, sku := range skus {
		urls = append(urls, "merchant-skus/"+sku)
	}

	writeJSON(w, http.StatusOK, map[string][]string{"sku_urls": urls})
	m.logger.Info("list skus", "offset", offset, "limit", limit, "returned", len(urls))
}

func (m *mockJet) getHandler(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")

	m.mu.Lock()
	raw, ok := m.products[sku]
	m.mu.Unlock()

	if !ok {
		writeErrors(w, http.StatusNotFound, fmt.Sprintf("merchant sku %s not found", sku))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func (m *mockJet) putProductHandler(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")

	var product map[string]any
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeErrors(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if title, _ := product["product_title"].(string); title == "" {
		writeErrors(w, http.StatusBadRequest, "product_title is required")
		return
	}
	product["merchant_sku"] = sku
	product["status"] = "Processing"

	raw, err := json.Marshal(product)
	if err != nil {
		writeErrors(w, http.StatusInternalServerError, err.Error())
		return
	}

	m.mu.Lock()
	if _, exists := m.products[sku]; !exists {
		m.order = append(m.order, sku)
	}
	m.products[sku] = raw
	m.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	m.logger.Info("stored product", "sku", sku)
}

func (m *mockJet) updateHandler(w http.ResponseWriter, r *http.Request) {
	sku, kind := r.PathValue("sku"), r.PathValue("kind")
	switch kind {
	case "price", "inventory", "image":
	default:
		writeErrors(w, http.StatusNotFound, fmt.Sprintf("unknown resource %q", kind))
		return
	}

	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrors(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[sku]; !ok {
		writeErrors(w, http.StatusNotFound, fmt.Sprintf("merchant sku %s not found", sku))
		return
	}
	if m.updates[sku] == nil {
		m.updates[sku] = make(map[string]json.RawMessage)
	}
	m.updates[sku][kind] = body

	w.WriteHeader(http.StatusNoContent)
	m.logger.Info("updated sku", "sku", sku, "kind", kind)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func writeErrors(w http.ResponseWriter, status int, msgs ...string) {
	writeJSON(w, status, errorResponse{Errors: msgs})
}
