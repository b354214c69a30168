package api

type ListReferencesRequest struct{}

func (*ListReferencesRequest) Validate() error { return nil }

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type ListPaymentMethodsResponse struct {
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
}

type CreateReferenceRequest struct {
	Name string `json:"name"`
}

func (r *CreateReferenceRequest) Validate() error {
	var errs fieldErrors
	errs.required("name", r.Name)
	return errs.err()
}

type UpdateReferenceRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r *UpdateReferenceRequest) Validate() error {
	var errs fieldErrors
	errs.required("id", r.ID)
	errs.required("name", r.Name)
	return errs.err()
}
