package integration

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/llm"
	"storefront/internal/payment"
	"storefront/internal/realtime"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testJWTSecret     = "integration-secret"
	testWebhookSecret = "whsec_integration"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container with the schema applied.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedProducts inserts test product data into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id       string
		name     string
		category string
		price    float64
	}{
		{"p1", "Oxford Shirt", "shirts", 39.99},
		{"p2", "Linen Shirt", "shirts", 49.00},
		{"p3", "Chino Pants", "pants", 59.50},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, category, base_price, customization_options)
			 VALUES ($1, $2, $3, $4, '{"size":["S","M","L"]}')`,
			p.id, p.name, p.category, p.price,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"payment_transactions", "orders", "carts", "wishlists", "products", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// fakeStripe stands in for the Stripe API. Every session it opens reports the configured payment status.
type fakeStripe struct {
	mu            sync.Mutex
	seq           atomic.Int64
	paymentStatus string
	metadata      map[string]map[string]string
}

func (f *fakeStripe) setPaymentStatus(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paymentStatus = status
}

func (f *fakeStripe) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/checkout/sessions":
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		id := fmt.Sprintf("cs_test_%d", f.seq.Add(1))
		meta := map[string]string{}
		for k := range r.PostForm {
			if strings.HasPrefix(k, "metadata[") {
				meta[strings.TrimSuffix(strings.TrimPrefix(k, "metadata["), "]")] = r.PostForm.Get(k)
			}
		}
		f.mu.Lock()
		f.metadata[id] = meta
		f.mu.Unlock()
		fmt.Fprintf(w, `{"id":%q,"object":"checkout.session","url":"https://checkout.test/%s","status":"open","payment_status":"unpaid"}`, id, id)

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/checkout/sessions/"):
		id := strings.TrimPrefix(r.URL.Path, "/v1/checkout/sessions/")
		f.mu.Lock()
		meta, ok := f.metadata[id]
		status := f.paymentStatus
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, `{"error":{"type":"invalid_request_error","message":"No such checkout.session: '%s'"}}`, id)
			return
		}
		sessionStatus := "open"
		if status == "paid" {
			sessionStatus = "complete"
		}
		fmt.Fprintf(w, `{"id":%q,"object":"checkout.session","status":%q,"payment_status":%q,"amount_total":3999,"currency":"usd","metadata":{"user_id":%q}}`,
			id, sessionStatus, status, meta["user_id"])

	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"type":"invalid_request_error","message":"Unrecognized request URL"}}`)
	}
}

// fakeCompletions stands in for an OpenAI-compatible provider and echoes the user prompt's first line.
func fakeCompletions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Outfit 1: navy blazer, white oxford, grey chinos"}}]}`)
}

// TestApp is the fully wired API served over HTTP.
type TestApp struct {
	Server *httptest.Server
	Hub    *realtime.Hub
	Tokens *auth.TokenService
	Stripe *fakeStripe
}

// URL joins path onto the server address.
func (a *TestApp) URL(path string) string {
	return a.Server.URL + path
}

// WebSocketURL is the address of the order feed.
func (a *TestApp) WebSocketURL() string {
	return "ws" + strings.TrimPrefix(a.Server.URL, "http") + "/ws/orders"
}

// setupTestApp wires every layer the way cmd/api does, with fake external providers.
func setupTestApp(t *testing.T, testDB *TestDB) *TestApp {
	t.Helper()

	logger := zerolog.Nop()

	stripeFake := &fakeStripe{paymentStatus: "paid", metadata: map[string]map[string]string{}}
	stripeServer := httptest.NewServer(stripeFake)
	t.Cleanup(stripeServer.Close)

	llmServer := httptest.NewServer(http.HandlerFunc(fakeCompletions))
	t.Cleanup(llmServer.Close)

	// Initialize repositories
	userRepo := repository.NewUserRepository(testDB.Pool, logger)
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	cartRepo := repository.NewCartRepository(testDB.Pool, logger)
	wishlistRepo := repository.NewWishlistRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	paymentRepo := repository.NewPaymentRepository(testDB.Pool, logger)

	processor := payment.NewStripeProcessor(
		config.StripeConfig{APIKey: "sk_test_integration", WebhookSecret: testWebhookSecret, APIURL: stripeServer.URL},
		logger,
		payment.WithHTTPClient(stripeServer.Client()),
		payment.WithMaxNetworkRetries(0),
	)
	completer := llm.NewClient(config.LLMConfig{BaseURL: llmServer.URL, Model: "test-model", Timeout: 5 * time.Second}, logger)

	hub := realtime.NewHub(logger)
	tokens := auth.NewTokenService(testJWTSecret, auth.DefaultTokenTTL)
	hasher := auth.NewBcryptHasher(4)

	// Initialize services
	orderService := service.NewOrderService(orderRepo, cartRepo, hub, logger)

	e := router.New(router.Handlers{
		Auth:           handler.NewAuthHandler(service.NewAuthService(userRepo, hasher, logger), tokens, logger),
		Product:        handler.NewProductHandler(service.NewProductService(productRepo, logger), logger),
		Cart:           handler.NewCartHandler(service.NewCartService(cartRepo, wishlistRepo, logger), logger),
		Order:          handler.NewOrderHandler(orderService, logger),
		Payment:        handler.NewPaymentHandler(service.NewPaymentService(processor, paymentRepo, orderService, logger), logger),
		Recommendation: handler.NewRecommendationHandler(service.NewRecommendationService(completer, logger), logger),
		Orders:         hub,
	}, tokens, []string{"*"}, logger)

	server := httptest.NewServer(e)
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})

	return &TestApp{Server: server, Hub: hub, Tokens: tokens, Stripe: stripeFake}
}

// signWebhook builds a Stripe-Signature header for payload.
func signWebhook(payload []byte) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

