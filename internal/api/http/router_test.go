package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/crud-backends/internal/api/http/handlers"
	"github.com/spec-kit/crud-backends/internal/auth"
	"github.com/spec-kit/crud-backends/internal/domain"
	"github.com/spec-kit/crud-backends/internal/observability"
	"github.com/spec-kit/crud-backends/internal/service"
)

const (
	testSecret   = "router-test-secret"
	testIssuer   = "https://tenant.example.com/"
	testAudience = "coffee"
)

type stubDrinks struct {
	drinks []domain.Drink
}

func (s *stubDrinks) List(context.Context) ([]domain.Drink, error) { return s.drinks, nil }
func (s *stubDrinks) ListDetailed(context.Context) ([]domain.Drink, error) { return s.drinks, nil }

func (s *stubDrinks) Create(_ context.Context, _ string, in service.DrinkInput) (*domain.Drink, error) {
	return &domain.Drink{ID: 1, Title: in.Title, Recipe: in.Recipe}, nil
}

func (s *stubDrinks) Update(_ context.Context, _ string, id int64, _ service.DrinkPatch) (*domain.Drink, error) {
	return &domain.Drink{ID: id}, nil
}

func (s *stubDrinks) Delete(context.Context, string, int64) error { return nil }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newCoffeeApp(t *testing.T) (*fiber.App, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	metrics := observability.NewMetrics("coffee")

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger)})
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterOpsRoutes(app, handlers.NewHealthHandler("coffee", "test", okPinger{}, nil), metrics)
	RegisterCoffeeRoutes(app, CoffeeRoutes{
		Drinks: handlers.NewDrinksHandler(&stubDrinks{drinks: []domain.Drink{
			{ID: 1, Title: "water", Recipe: []domain.Ingredient{{Name: "water", Color: "blue", Parts: 1}}},
		}}),
		Verifier: auth.NewHS256Verifier([]byte(testSecret), testIssuer, testAudience),
	})
	app.Get("/boom", func(*fiber.Ctx) error { panic("kaboom") })
	return app, logs
}

func bearer(t *testing.T, permissions ...string) string {
	t.Helper()
	token, _, err := auth.NewTokenIssuer(testSecret, testIssuer, testAudience, time.Hour).GenerateToken("barista|1", permissions)
	require.NoError(t, err)
	return "Bearer " + token
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestCoffeeRoutes_PermissionChecks(t *testing.T) {
	app, _ := newCoffeeApp(t)

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"no header", "", http.StatusUnauthorized, `"message":"authorization_header_missing"`},
		{"wrong scheme", "Token abc", http.StatusUnauthorized, `"message":"invalid_header"`},
		{"missing permission", bearer(t, domain.PermissionPostDrinks), http.StatusForbidden, `"message":"forbidden"`},
		{"authorized", bearer(t, domain.PermissionGetDrinksDetail), http.StatusOK, `"name":"water"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/drinks-detail", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, body := send(t, app, req)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, body, tt.message)
		})
	}
}

func TestCoffeeRoutes_PublicList(t *testing.T) {
	app, _ := newCoffeeApp(t)

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/drinks", nil))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"success":true`)
	assert.NotContains(t, body, `"name"`)
}

func TestMiddlewares_RequestIDAndLogging(t *testing.T) {
	app, logs := newCoffeeApp(t)

	resp, _ := send(t, app, httptest.NewRequest(http.MethodGet, "/drinks", nil))
	id := resp.Header.Get(fiber.HeaderXRequestID)
	require.NotEmpty(t, id)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, id, fields["request_id"])
	assert.Equal(t, "/drinks", fields["route"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestMiddlewares_KeepsCallerRequestID(t *testing.T) {
	app, _ := newCoffeeApp(t)
	req := httptest.NewRequest(http.MethodGet, "/drinks", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")

	resp, _ := send(t, app, req)
	assert.Equal(t, "abc-123", resp.Header.Get(fiber.HeaderXRequestID))
}

func TestMiddlewares_CORSPreflight(t *testing.T) {
	app, _ := newCoffeeApp(t)
	req := httptest.NewRequest(http.MethodOptions, "/drinks", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPatch)

	resp, _ := send(t, app, req)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowMethods), "PATCH")
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowHeaders), "Authorization")
}

func TestMiddlewares_UnknownRoute(t *testing.T) {
	app, _ := newCoffeeApp(t)

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, `"success":false`)
	assert.Contains(t, body, `"error":404`)
	assert.Contains(t, body, `"code":"NOT_FOUND"`)
}

func TestMiddlewares_PanicBecomes500(t *testing.T) {
	app, logs := newCoffeeApp(t)

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, `"code":"INTERNAL_ERROR"`)
	assert.NotContains(t, body, "kaboom")
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestOpsRoutes_MetricsAndHealth(t *testing.T) {
	app, _ := newCoffeeApp(t)

	resp, _ := send(t, app, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	send(t, app, httptest.NewRequest(http.MethodGet, "/drinks-detail", nil))

	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "http_requests_total")
	assert.True(t, strings.Contains(body, `code="authorization_header_missing"`), body)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, "METHOD_NOT_ALLOWED", statusCode(http.StatusMethodNotAllowed))
	assert.Equal(t, "REQUEST_ENTITY_TOO_LARGE", statusCode(http.StatusRequestEntityTooLarge))
	assert.Equal(t, "HTTP_ERROR", statusCode(799))
}
