// Package apiconnect wires the api messages to Connect handlers and clients.
//
// Each New*Handler returns the path prefix to mount and an http.Handler that
// routes every procedure of the service. Each New*Client returns a typed
// client. Both install the strict JSON codec from package api.
package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/spendtrack/pkg/api"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}

func route[Req, Res any](
	mux *http.ServeMux,
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

// AuthServiceHandler is implemented by the auth service.
type AuthServiceHandler interface {
	SignUp(context.Context, *connect.Request[api.SignUpRequest]) (*connect.Response[api.AuthResponse], error)
	SignIn(context.Context, *connect.Request[api.SignInRequest]) (*connect.Response[api.AuthResponse], error)
	SignOut(context.Context, *connect.Request[api.SignOutRequest]) (*connect.Response[api.SignOutResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.User], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.User], error)
}

// NewAuthServiceHandler builds an HTTP handler for the auth service.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	route(mux, api.AuthServiceSignUpProcedure, svc.SignUp, opts)
	route(mux, api.AuthServiceSignInProcedure, svc.SignIn, opts)
	route(mux, api.AuthServiceSignOutProcedure, svc.SignOut, opts)
	route(mux, api.AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts)
	route(mux, api.AuthServiceUpdateProfileProcedure, svc.UpdateProfile, opts)
	return "/" + api.AuthServiceName + "/", mux
}

// ExpenseServiceHandler is implemented by the expense service.
type ExpenseServiceHandler interface {
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.Expense], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.Expense], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteRequest]) (*connect.Response[api.DeleteResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler for the expense service.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	route(mux, api.ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts)
	route(mux, api.ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts)
	route(mux, api.ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts)
	route(mux, api.ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts)
	return "/" + api.ExpenseServiceName + "/", mux
}

// CategoryServiceHandler is implemented by the category service.
type CategoryServiceHandler interface {
	ListCategories(context.Context, *connect.Request[api.ListReferencesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	CreateCategory(context.Context, *connect.Request[api.CreateReferenceRequest]) (*connect.Response[api.Category], error)
	UpdateCategory(context.Context, *connect.Request[api.UpdateReferenceRequest]) (*connect.Response[api.Category], error)
	DeleteCategory(context.Context, *connect.Request[api.DeleteRequest]) (*connect.Response[api.DeleteResponse], error)
}

// NewCategoryServiceHandler builds an HTTP handler for the category service.
func NewCategoryServiceHandler(svc CategoryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	route(mux, api.CategoryServiceListCategoriesProcedure, svc.ListCategories, opts)
	route(mux, api.CategoryServiceCreateCategoryProcedure, svc.CreateCategory, opts)
	route(mux, api.CategoryServiceUpdateCategoryProcedure, svc.UpdateCategory, opts)
	route(mux, api.CategoryServiceDeleteCategoryProcedure, svc.DeleteCategory, opts)
	return "/" + api.CategoryServiceName + "/", mux
}

// PaymentMethodServiceHandler is implemented by the payment method service.
type PaymentMethodServiceHandler interface {
	ListPaymentMethods(context.Context, *connect.Request[api.ListReferencesRequest]) (*connect.Response[api.ListPaymentMethodsResponse], error)
	CreatePaymentMethod(context.Context, *connect.Request[api.CreateReferenceRequest]) (*connect.Response[api.PaymentMethod], error)
	UpdatePaymentMethod(context.Context, *connect.Request[api.UpdateReferenceRequest]) (*connect.Response[api.PaymentMethod], error)
	DeletePaymentMethod(context.Context, *connect.Request[api.DeleteRequest]) (*connect.Response[api.DeleteResponse], error)
}

// NewPaymentMethodServiceHandler builds an HTTP handler for the payment method service.
func NewPaymentMethodServiceHandler(svc PaymentMethodServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	route(mux, api.PaymentMethodServiceListPaymentMethodsProcedure, svc.ListPaymentMethods, opts)
	route(mux, api.PaymentMethodServiceCreatePaymentMethodProcedure, svc.CreatePaymentMethod, opts)
	route(mux, api.PaymentMethodServiceUpdatePaymentMethodProcedure, svc.UpdatePaymentMethod, opts)
	route(mux, api.PaymentMethodServiceDeletePaymentMethodProcedure, svc.DeletePaymentMethod, opts)
	return "/" + api.PaymentMethodServiceName + "/", mux
}

// SummaryServiceHandler is implemented by the summary service.
type SummaryServiceHandler interface {
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.Summary], error)
}

// NewSummaryServiceHandler builds an HTTP handler for the summary service.
func NewSummaryServiceHandler(svc SummaryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	route(mux, api.SummaryServiceGetSummaryProcedure, svc.GetSummary, opts)
	return "/" + api.SummaryServiceName + "/", mux
}
