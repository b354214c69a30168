package apiconnect

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/spendtrack/pkg/api"
)

func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+procedure, opts...)
}

// AuthServiceClient calls the auth service.
type AuthServiceClient struct {
	signUp         *connect.Client[api.SignUpRequest, api.AuthResponse]
	signIn         *connect.Client[api.SignInRequest, api.AuthResponse]
	signOut        *connect.Client[api.SignOutRequest, api.SignOutResponse]
	getCurrentUser *connect.Client[api.GetCurrentUserRequest, api.User]
	updateProfile  *connect.Client[api.UpdateProfileRequest, api.User]
}

// NewAuthServiceClient constructs a client for the auth service. Pass an
// http.Client with a cookie jar to keep the session between calls.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = clientOptions(opts)
	return &AuthServiceClient{
		signUp:         newClient[api.SignUpRequest, api.AuthResponse](httpClient, baseURL, api.AuthServiceSignUpProcedure, opts),
		signIn:         newClient[api.SignInRequest, api.AuthResponse](httpClient, baseURL, api.AuthServiceSignInProcedure, opts),
		signOut:        newClient[api.SignOutRequest, api.SignOutResponse](httpClient, baseURL, api.AuthServiceSignOutProcedure, opts),
		getCurrentUser: newClient[api.GetCurrentUserRequest, api.User](httpClient, baseURL, api.AuthServiceGetCurrentUserProcedure, opts),
		updateProfile:  newClient[api.UpdateProfileRequest, api.User](httpClient, baseURL, api.AuthServiceUpdateProfileProcedure, opts),
	}
}

func (c *AuthServiceClient) SignUp(ctx context.Context, req *connect.Request[api.SignUpRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.signUp.CallUnary(ctx, req)
}

func (c *AuthServiceClient) SignIn(ctx context.Context, req *connect.Request[api.SignInRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.signIn.CallUnary(ctx, req)
}

func (c *AuthServiceClient) SignOut(ctx context.Context, req *connect.Request[api.SignOutRequest]) (*connect.Response[api.SignOutResponse], error) {
	return c.signOut.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.User], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *AuthServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.User], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

// ExpenseServiceClient calls the expense service.
type ExpenseServiceClient struct {
	list   *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	create *connect.Client[api.CreateExpenseRequest, api.Expense]
	update *connect.Client[api.UpdateExpenseRequest, api.Expense]
	delete *connect.Client[api.DeleteRequest, api.DeleteResponse]
}

// NewExpenseServiceClient constructs a client for the expense service.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	opts = clientOptions(opts)
	return &ExpenseServiceClient{
		list:   newClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL, api.ExpenseServiceListExpensesProcedure, opts),
		create: newClient[api.CreateExpenseRequest, api.Expense](httpClient, baseURL, api.ExpenseServiceCreateExpenseProcedure, opts),
		update: newClient[api.UpdateExpenseRequest, api.Expense](httpClient, baseURL, api.ExpenseServiceUpdateExpenseProcedure, opts),
		delete: newClient[api.DeleteRequest, api.DeleteResponse](httpClient, baseURL, api.ExpenseServiceDeleteExpenseProcedure, opts),
	}
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.Expense], error) {
	return c.create.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.Expense], error) {
	return c.update.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteRequest]) (*connect.Response[api.DeleteResponse], error) {
	return c.delete.CallUnary(ctx, req)
}

// CategoryServiceClient calls the category service.
type CategoryServiceClient struct {
	list   *connect.Client[api.ListReferencesRequest, api.ListCategoriesResponse]
	create *connect.Client[api.CreateReferenceRequest, api.Category]
	update *connect.Client[api.UpdateReferenceRequest, api.Category]
	delete *connect.Client[api.DeleteRequest, api.DeleteResponse]
}

// NewCategoryServiceClient constructs a client for the category service.
func NewCategoryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CategoryServiceClient {
	opts = clientOptions(opts)
	return &CategoryServiceClient{
		list:   newClient[api.ListReferencesRequest, api.ListCategoriesResponse](httpClient, baseURL, api.CategoryServiceListCategoriesProcedure, opts),
		create: newClient[api.CreateReferenceRequest, api.Category](httpClient, baseURL, api.CategoryServiceCreateCategoryProcedure, opts),
		update: newClient[api.UpdateReferenceRequest, api.Category](httpClient, baseURL, api.CategoryServiceUpdateCategoryProcedure, opts),
		delete: newClient[api.DeleteRequest, api.DeleteResponse](httpClient, baseURL, api.CategoryServiceDeleteCategoryProcedure, opts),
	}
}

func (c *CategoryServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListReferencesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *CategoryServiceClient) CreateCategory(ctx context.Context, req *connect.Request[api.CreateReferenceRequest]) (*connect.Response[api.Category], error) {
	return c.create.CallUnary(ctx, req)
}

func (c *CategoryServiceClient) UpdateCategory(ctx context.Context, req *connect.Request[api.UpdateReferenceRequest]) (*connect.Response[api.Category], error) {
	return c.update.CallUnary(ctx, req)
}

func (c *CategoryServiceClient) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteRequest]) (*connect.Response[api.DeleteResponse], error) {
	return c.delete.CallUnary(ctx, req)
}

// PaymentMethodServiceClient calls the payment method service.
type PaymentMethodServiceClient struct {
	list   *connect.Client[api.ListReferencesRequest, api.ListPaymentMethodsResponse]
	create *connect.Client[api.CreateReferenceRequest, api.PaymentMethod]
	update *connect.Client[api.UpdateReferenceRequest, api.PaymentMethod]
	delete *connect.Client[api.DeleteRequest, api.DeleteResponse]
}

// NewPaymentMethodServiceClient constructs a client for the payment method service.
func NewPaymentMethodServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PaymentMethodServiceClient {
	opts = clientOptions(opts)
	return &PaymentMethodServiceClient{
		list:   newClient[api.ListReferencesRequest, api.ListPaymentMethodsResponse](httpClient, baseURL, api.PaymentMethodServiceListPaymentMethodsProcedure, opts),
		create: newClient[api.CreateReferenceRequest, api.PaymentMethod](httpClient, baseURL, api.PaymentMethodServiceCreatePaymentMethodProcedure, opts),
		update: newClient[api.UpdateReferenceRequest, api.PaymentMethod](httpClient, baseURL, api.PaymentMethodServiceUpdatePaymentMethodProcedure, opts),
		delete: newClient[api.DeleteRequest, api.DeleteResponse](httpClient, baseURL, api.PaymentMethodServiceDeletePaymentMethodProcedure, opts),
	}
}

func (c *PaymentMethodServiceClient) ListPaymentMethods(ctx context.Context, req *connect.Request[api.ListReferencesRequest]) (*connect.Response[api.ListPaymentMethodsResponse], error) {
	return c.list.CallUnary(ctx, req)
}

func (c *PaymentMethodServiceClient) CreatePaymentMethod(ctx context.Context, req *connect.Request[api.CreateReferenceRequest]) (*connect.Response[api.PaymentMethod], error) {
	return c.create.CallUnary(ctx, req)
}

func (c *PaymentMethodServiceClient) UpdatePaymentMethod(ctx context.Context, req *connect.Request[api.UpdateReferenceRequest]) (*connect.Response[api.PaymentMethod], error) {
	return c.update.CallUnary(ctx, req)
}

func (c *PaymentMethodServiceClient) DeletePaymentMethod(ctx context.Context, req *connect.Request[api.DeleteRequest]) (*connect.Response[api.DeleteResponse], error) {
	return c.delete.CallUnary(ctx, req)
}

// SummaryServiceClient calls the summary service.
type SummaryServiceClient struct {
	getSummary *connect.Client[api.GetSummaryRequest, api.Summary]
}

// NewSummaryServiceClient constructs a client for the summary service.
func NewSummaryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SummaryServiceClient {
	return &SummaryServiceClient{
		getSummary: newClient[api.GetSummaryRequest, api.Summary](httpClient, baseURL, api.SummaryServiceGetSummaryProcedure, clientOptions(opts)),
	}
}

func (c *SummaryServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.Summary], error) {
	return c.getSummary.CallUnary(ctx, req)
}
