package api

// Service names.
const (
	AuthServiceName          = "spendtrack.v1.AuthService"
	ExpenseServiceName       = "spendtrack.v1.ExpenseService"
	CategoryServiceName      = "spendtrack.v1.CategoryService"
	PaymentMethodServiceName = "spendtrack.v1.PaymentMethodService"
	SummaryServiceName       = "spendtrack.v1.SummaryService"
)

// Fully-qualified procedure paths.
const (
	AuthServiceSignUpProcedure         = "/" + AuthServiceName + "/SignUp"
	AuthServiceSignInProcedure         = "/" + AuthServiceName + "/SignIn"
	AuthServiceSignOutProcedure        = "/" + AuthServiceName + "/SignOut"
	AuthServiceGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"
	AuthServiceUpdateProfileProcedure  = "/" + AuthServiceName + "/UpdateProfile"

	ExpenseServiceListExpensesProcedure  = "/" + ExpenseServiceName + "/ListExpenses"
	ExpenseServiceCreateExpenseProcedure = "/" + ExpenseServiceName + "/CreateExpense"
	ExpenseServiceUpdateExpenseProcedure = "/" + ExpenseServiceName + "/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure = "/" + ExpenseServiceName + "/DeleteExpense"

	CategoryServiceListCategoriesProcedure = "/" + CategoryServiceName + "/ListCategories"
	CategoryServiceCreateCategoryProcedure = "/" + CategoryServiceName + "/CreateCategory"
	CategoryServiceUpdateCategoryProcedure = "/" + CategoryServiceName + "/UpdateCategory"
	CategoryServiceDeleteCategoryProcedure = "/" + CategoryServiceName + "/DeleteCategory"

	PaymentMethodServiceListPaymentMethodsProcedure  = "/" + PaymentMethodServiceName + "/ListPaymentMethods"
	PaymentMethodServiceCreatePaymentMethodProcedure = "/" + PaymentMethodServiceName + "/CreatePaymentMethod"
	PaymentMethodServiceUpdatePaymentMethodProcedure = "/" + PaymentMethodServiceName + "/UpdatePaymentMethod"
	PaymentMethodServiceDeletePaymentMethodProcedure = "/" + PaymentMethodServiceName + "/DeletePaymentMethod"

	SummaryServiceGetSummaryProcedure = "/" + SummaryServiceName + "/GetSummary"
)

// PublicProcedures may be called without a session.
var PublicProcedures = map[string]bool{
	AuthServiceSignUpProcedure:  true,
	AuthServiceSignInProcedure:  true,
	AuthServiceSignOutProcedure: true,
}
