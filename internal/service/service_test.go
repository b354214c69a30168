package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/spendtrack/internal/auth"
	"github.com/mmynk/spendtrack/internal/middleware"
	"github.com/mmynk/spendtrack/internal/models"
	"github.com/mmynk/spendtrack/internal/storage/sqlite"
	"github.com/mmynk/spendtrack/pkg/api/apiconnect"
)

const testUserHeader = "X-Test-User"

var testNow = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

// testAuthInterceptor installs the user named by the X-Test-User header.
func testAuthInterceptor(store *sqlite.SQLiteStore) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if id := req.Header().Get(testUserHeader); id != "" {
				user, err := store.GetUserByID(ctx, id)
				if err != nil {
					return nil, err
				}
				ctx = middleware.WithUser(ctx, user)
			}
			return next(ctx, req)
		}
	}
}

type testEnv struct {
	url           string
	store         *sqlite.SQLiteStore
	auth          *apiconnect.AuthServiceClient
	expenses      *apiconnect.ExpenseServiceClient
	categories    *apiconnect.CategoryServiceClient
	paymentMethod *apiconnect.PaymentMethodServiceClient
	summary       *apiconnect.SummaryServiceClient

	ann, bob *models.User
	food     *models.Reference
	travel   *models.Reference
	cash     *models.Reference
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.New(ctx, filepath.Join(t.TempDir(), "test.db"), logger)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	tokens := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	interceptors := connect.WithInterceptors(testAuthInterceptor(store), middleware.ValidationInterceptor())

	summarySvc := NewSummaryService(store, logger)
	summarySvc.now = func() time.Time { return testNow }

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(auth.NewPasswordAuthenticator(store), tokens, false, logger), interceptors))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store, logger), interceptors))
	mux.Handle(apiconnect.NewCategoryServiceHandler(NewCategoryService(store, logger), interceptors))
	mux.Handle(apiconnect.NewPaymentMethodServiceHandler(NewPaymentMethodService(store, logger), interceptors))
	mux.Handle(apiconnect.NewSummaryServiceHandler(summarySvc, interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	env := &testEnv{
		url:           server.URL,
		store:         store,
		auth:          apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		expenses:      apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL),
		categories:    apiconnect.NewCategoryServiceClient(http.DefaultClient, server.URL),
		paymentMethod: apiconnect.NewPaymentMethodServiceClient(http.DefaultClient, server.URL),
		summary:       apiconnect.NewSummaryServiceClient(http.DefaultClient, server.URL),
	}

	env.ann = models.NewUser("ann@x.com", "Ann", "hash")
	env.bob = models.NewUser("bob@x.com", "Bob", "hash")
	for _, u := range []*models.User{env.ann, env.bob} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}
	if env.food, err = store.UpsertReference(ctx, models.KindCategory, "Food"); err != nil {
		t.Fatalf("UpsertReference failed: %v", err)
	}
	if env.travel, err = store.UpsertReference(ctx, models.KindCategory, "Travel"); err != nil {
		t.Fatalf("UpsertReference failed: %v", err)
	}
	if env.cash, err = store.UpsertReference(ctx, models.KindPaymentMethod, "Cash"); err != nil {
		t.Fatalf("UpsertReference failed: %v", err)
	}
	return env
}

// as builds a request sent on behalf of user.
func as[T any](user *models.User, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if user != nil {
		req.Header().Set(testUserHeader, user.ID)
	}
	return req
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}

func errorMessage(err error) string {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Message()
	}
	return err.Error()
}
