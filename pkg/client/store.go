// Package client provides a cached view of one user's data on top of the RPC
// clients. The cache is never edited locally: every mutation goes to the
// server and then re-fetches the collections it affects.
package client

import (
	"context"
	"slices"
	"sync"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/spendtrack/pkg/api"
	"github.com/mmynk/spendtrack/pkg/api/apiconnect"
)

// Store caches the signed-in user's expenses and the shared reference lists.
// It is safe for concurrent use. The HTTP client passed to New must keep
// cookies (e.g. have a cookiejar) for the session to persist.
type Store struct {
	auth           *apiconnect.AuthServiceClient
	expenses       *apiconnect.ExpenseServiceClient
	categories     *apiconnect.CategoryServiceClient
	paymentMethods *apiconnect.PaymentMethodServiceClient
	summary        *apiconnect.SummaryServiceClient

	mu                 sync.RWMutex
	user               *api.User
	filter             api.ListExpensesRequest
	expenseCache       []api.Expense
	categoryCache      []api.Category
	paymentMethodCache []api.PaymentMethod

	// Fetches of one collection may overlap; only the most recently started
	// one that has finished is kept.
	expenseGen       generation
	categoryGen      generation
	paymentMethodGen generation
}

// generation orders overlapping fetches of one collection. Callers hold
// Store.mu.
type generation struct {
	started uint64
	applied uint64
}

func (g *generation) next() uint64 {
	g.started++
	return g.started
}

// apply reports whether the fetch numbered n is newer than the stored data.
func (g *generation) apply(n uint64) bool {
	if n <= g.applied {
		return false
	}
	g.applied = n
	return true
}

// invalidate discards every fetch still in flight.
func (g *generation) invalidate() {
	g.applied = g.started
}

// New returns an empty store talking to the server at baseURL.
func New(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Store {
	return &Store{
		auth:           apiconnect.NewAuthServiceClient(httpClient, baseURL, opts...),
		expenses:       apiconnect.NewExpenseServiceClient(httpClient, baseURL, opts...),
		categories:     apiconnect.NewCategoryServiceClient(httpClient, baseURL, opts...),
		paymentMethods: apiconnect.NewPaymentMethodServiceClient(httpClient, baseURL, opts...),
		summary:        apiconnect.NewSummaryServiceClient(httpClient, baseURL, opts...),
	}
}

// SignUp creates an account, starts a session and loads its data.
func (s *Store) SignUp(ctx context.Context, email, password, name string) (api.User, error) {
	resp, err := s.auth.SignUp(ctx, connect.NewRequest(&api.SignUpRequest{Email: email, Password: password, Name: name}))
	if err != nil {
		return api.User{}, err
	}
	return s.startSession(ctx, resp.Msg.User)
}

// SignIn starts a session and loads its data.
func (s *Store) SignIn(ctx context.Context, email, password string) (api.User, error) {
	resp, err := s.auth.SignIn(ctx, connect.NewRequest(&api.SignInRequest{Email: email, Password: password}))
	if err != nil {
		return api.User{}, err
	}
	return s.startSession(ctx, resp.Msg.User)
}

func (s *Store) startSession(ctx context.Context, user api.User) (api.User, error) {
	s.mu.Lock()
	s.user = &user
	s.filter = api.ListExpensesRequest{}
	s.mu.Unlock()
	return user, s.Load(ctx)
}

// SignOut ends the session and drops every cached record.
func (s *Store) SignOut(ctx context.Context) error {
	_, err := s.auth.SignOut(ctx, connect.NewRequest(&api.SignOutRequest{}))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.filter = api.ListExpensesRequest{}
	s.expenseCache = nil
	s.categoryCache = nil
	s.paymentMethodCache = nil
	s.expenseGen.invalidate()
	s.categoryGen.invalidate()
	s.paymentMethodGen.invalidate()
	return err
}

// User returns the signed-in user, if any.
func (s *Store) User() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return api.User{}, false
	}
	return *s.user, true
}

// Load re-fetches every collection.
func (s *Store) Load(ctx context.Context) error {
	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error { return s.refreshExpenses(ctx) })
	grp.Go(func() error { return s.refreshCategories(ctx) })
	grp.Go(func() error { return s.refreshPaymentMethods(ctx) })
	return grp.Wait()
}

// SetFilter changes the expense filter and re-fetches expenses.
func (s *Store) SetFilter(ctx context.Context, filter api.ListExpensesRequest) error {
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	return s.refreshExpenses(ctx)
}

// Expenses returns a copy of the cached expenses.
func (s *Store) Expenses() []api.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.expenseCache)
}

// Categories returns a copy of the cached categories.
func (s *Store) Categories() []api.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categoryCache)
}

// PaymentMethods returns a copy of the cached payment methods.
func (s *Store) PaymentMethods() []api.PaymentMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.paymentMethodCache)
}

func (s *Store) CreateExpense(ctx context.Context, in api.ExpenseInput) (api.Expense, error) {
	resp, err := s.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{ExpenseInput: in}))
	if err != nil {
		return api.Expense{}, err
	}
	return *resp.Msg, s.refreshExpenses(ctx)
}

func (s *Store) UpdateExpense(ctx context.Context, id string, in api.ExpenseInput) (api.Expense, error) {
	resp, err := s.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{ID: id, ExpenseInput: in}))
	if err != nil {
		return api.Expense{}, err
	}
	return *resp.Msg, s.refreshExpenses(ctx)
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	if _, err := s.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteRequest{ID: id})); err != nil {
		return err
	}
	return s.refreshExpenses(ctx)
}

func (s *Store) CreateCategory(ctx context.Context, name string) (api.Category, error) {
	resp, err := s.categories.CreateCategory(ctx, connect.NewRequest(&api.CreateReferenceRequest{Name: name}))
	if err != nil {
		return api.Category{}, err
	}
	return *resp.Msg, s.refreshCategories(ctx)
}

// UpdateCategory renames a category. Cached expenses embed category names,
// so they are re-fetched too.
func (s *Store) UpdateCategory(ctx context.Context, id, name string) (api.Category, error) {
	resp, err := s.categories.UpdateCategory(ctx, connect.NewRequest(&api.UpdateReferenceRequest{ID: id, Name: name}))
	if err != nil {
		return api.Category{}, err
	}
	return *resp.Msg, s.afterReferenceChange(ctx, s.refreshCategories)
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.categories.DeleteCategory(ctx, connect.NewRequest(&api.DeleteRequest{ID: id})); err != nil {
		return err
	}
	return s.refreshCategories(ctx)
}

func (s *Store) CreatePaymentMethod(ctx context.Context, name string) (api.PaymentMethod, error) {
	resp, err := s.paymentMethods.CreatePaymentMethod(ctx, connect.NewRequest(&api.CreateReferenceRequest{Name: name}))
	if err != nil {
		return api.PaymentMethod{}, err
	}
	return *resp.Msg, s.refreshPaymentMethods(ctx)
}

// UpdatePaymentMethod renames a payment method and re-fetches expenses.
func (s *Store) UpdatePaymentMethod(ctx context.Context, id, name string) (api.PaymentMethod, error) {
	resp, err := s.paymentMethods.UpdatePaymentMethod(ctx, connect.NewRequest(&api.UpdateReferenceRequest{ID: id, Name: name}))
	if err != nil {
		return api.PaymentMethod{}, err
	}
	return *resp.Msg, s.afterReferenceChange(ctx, s.refreshPaymentMethods)
}

func (s *Store) DeletePaymentMethod(ctx context.Context, id string) error {
	if _, err := s.paymentMethods.DeletePaymentMethod(ctx, connect.NewRequest(&api.DeleteRequest{ID: id})); err != nil {
		return err
	}
	return s.refreshPaymentMethods(ctx)
}

// Summary is not cached; it is always computed by the server.
func (s *Store) Summary(ctx context.Context, req *api.GetSummaryRequest) (*api.Summary, error) {
	resp, err := s.summary.GetSummary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (s *Store) afterReferenceChange(ctx context.Context, refresh func(context.Context) error) error {
	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error { return refresh(ctx) })
	grp.Go(func() error { return s.refreshExpenses(ctx) })
	return grp.Wait()
}

func (s *Store) refreshExpenses(ctx context.Context) error {
	s.mu.Lock()
	filter := s.filter
	gen := s.expenseGen.next()
	s.mu.Unlock()

	resp, err := s.expenses.ListExpenses(ctx, connect.NewRequest(&filter))
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.expenseGen.apply(gen) {
		s.expenseCache = resp.Msg.Expenses
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) refreshCategories(ctx context.Context) error {
	s.mu.Lock()
	gen := s.categoryGen.next()
	s.mu.Unlock()

	resp, err := s.categories.ListCategories(ctx, connect.NewRequest(&api.ListReferencesRequest{}))
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.categoryGen.apply(gen) {
		s.categoryCache = resp.Msg.Categories
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) refreshPaymentMethods(ctx context.Context) error {
	s.mu.Lock()
	gen := s.paymentMethodGen.next()
	s.mu.Unlock()

	resp, err := s.paymentMethods.ListPaymentMethods(ctx, connect.NewRequest(&api.ListReferencesRequest{}))
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.paymentMethodGen.apply(gen) {
		s.paymentMethodCache = resp.Msg.PaymentMethods
	}
	s.mu.Unlock()
	return nil
}
