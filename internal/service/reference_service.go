package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/spendtrack/internal/models"
	"github.com/mmynk/spendtrack/internal/storage"
	"github.com/mmynk/spendtrack/pkg/api"
	"github.com/mmynk/spendtrack/pkg/api/apiconnect"
)

// references holds the logic shared by categories and payment methods. Both
// are global lists visible to every signed-in user.
type references struct {
	kind   models.RefKind
	store  storage.References
	logger *slog.Logger
}

func (r *references) list(ctx context.Context) ([]api.Reference, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}
	refs, err := r.store.ListReferences(ctx, r.kind)
	if err != nil {
		return nil, toConnectError(ctx, r.logger, err)
	}
	out := make([]api.Reference, 0, len(refs))
	for _, ref := range refs {
		out = append(out, toAPIReference(ref))
	}
	return out, nil
}

func (r *references) create(ctx context.Context, name string) (*api.Reference, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	ref := &models.Reference{Name: name}
	if err := r.store.CreateReference(ctx, r.kind, ref); err != nil {
		return nil, toConnectError(ctx, r.logger, err)
	}
	r.logger.InfoContext(ctx, "Reference created", "kind", r.kind, "id", ref.ID, "user_id", user.ID)
	out := toAPIReference(*ref)
	return &out, nil
}

func (r *references) update(ctx context.Context, id, name string) (*api.Reference, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	ref := &models.Reference{ID: id, Name: name}
	if err := r.store.UpdateReference(ctx, r.kind, ref); err != nil {
		return nil, toConnectError(ctx, r.logger, err)
	}
	r.logger.InfoContext(ctx, "Reference renamed", "kind", r.kind, "id", id, "user_id", user.ID)
	out := toAPIReference(*ref)
	return &out, nil
}

func (r *references) delete(ctx context.Context, id string) error {
	user, err := requireUser(ctx)
	if err != nil {
		return err
	}
	if err := r.store.DeleteReference(ctx, r.kind, id); err != nil {
		return toConnectError(ctx, r.logger, err)
	}
	r.logger.InfoContext(ctx, "Reference deleted", "kind", r.kind, "id", id, "user_id", user.ID)
	return nil
}

func toAPIReference(ref models.Reference) api.Reference {
	return api.Reference{ID: ref.ID, Name: ref.Name, CreatedAt: ref.CreatedAt}
}

var _ apiconnect.CategoryServiceHandler = (*CategoryService)(nil)

// CategoryService implements the CategoryService RPC interface.
type CategoryService struct {
	refs references
}

func NewCategoryService(store storage.References, logger *slog.Logger) *CategoryService {
	return &CategoryService{refs: references{kind: models.KindCategory, store: store, logger: logger}}
}

func (s *CategoryService) ListCategories(ctx context.Context, req *connect.Request[api.ListReferencesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	refs, err := s.refs.list(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ListCategoriesResponse{Categories: refs}), nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *connect.Request[api.CreateReferenceRequest]) (*connect.Response[api.Category], error) {
	ref, err := s.refs.create(ctx, req.Msg.Name)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(ref), nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, req *connect.Request[api.UpdateReferenceRequest]) (*connect.Response[api.Category], error) {
	ref, err := s.refs.update(ctx, req.Msg.ID, req.Msg.Name)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(ref), nil
}

// DeleteCategory removes a category. It fails while any expense uses it.
func (s *CategoryService) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteRequest]) (*connect.Response[api.DeleteResponse], error) {
	if err := s.refs.delete(ctx, req.Msg.ID); err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.DeleteResponse{}), nil
}

var _ apiconnect.PaymentMethodServiceHandler = (*PaymentMethodService)(nil)

// PaymentMethodService implements the PaymentMethodService RPC interface.
type PaymentMethodService struct {
	refs references
}

func NewPaymentMethodService(store storage.References, logger *slog.Logger) *PaymentMethodService {
	return &PaymentMethodService{refs: references{kind: models.KindPaymentMethod, store: store, logger: logger}}
}

func (s *PaymentMethodService) ListPaymentMethods(ctx context.Context, req *connect.Request[api.ListReferencesRequest]) (*connect.Response[api.ListPaymentMethodsResponse], error) {
	refs, err := s.refs.list(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ListPaymentMethodsResponse{PaymentMethods: refs}), nil
}

func (s *PaymentMethodService) CreatePaymentMethod(ctx context.Context, req *connect.Request[api.CreateReferenceRequest]) (*connect.Response[api.PaymentMethod], error) {
	ref, err := s.refs.create(ctx, req.Msg.Name)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(ref), nil
}

func (s *PaymentMethodService) UpdatePaymentMethod(ctx context.Context, req *connect.Request[api.UpdateReferenceRequest]) (*connect.Response[api.PaymentMethod], error) {
	ref, err := s.refs.update(ctx, req.Msg.ID, req.Msg.Name)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(ref), nil
}

// DeletePaymentMethod removes a payment method. It fails while any expense uses it.
func (s *PaymentMethodService) DeletePaymentMethod(ctx context.Context, req *connect.Request[api.DeleteRequest]) (*connect.Response[api.DeleteResponse], error) {
	if err := s.refs.delete(ctx, req.Msg.ID); err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.DeleteResponse{}), nil
}
