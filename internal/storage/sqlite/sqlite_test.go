package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/spendtrack/internal/models"
	"github.com/mmynk/spendtrack/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(context.Background(), dbPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

type fixture struct {
	ann, bob     *models.User
	food, travel *models.Reference
	cash         *models.Reference
}

func seed(t *testing.T, store *SQLiteStore) fixture {
	t.Helper()
	ctx := context.Background()

	var f fixture
	f.ann = models.NewUser("ann@x.com", "Ann", "hash")
	f.bob = models.NewUser("bob@x.com", "Bob", "hash")
	for _, u := range []*models.User{f.ann, f.bob} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	var err error
	if f.food, err = store.UpsertReference(ctx, models.KindCategory, "Food"); err != nil {
		t.Fatalf("UpsertReference failed: %v", err)
	}
	if f.travel, err = store.UpsertReference(ctx, models.KindCategory, "Travel"); err != nil {
		t.Fatalf("UpsertReference failed: %v", err)
	}
	if f.cash, err = store.UpsertReference(ctx, models.KindPaymentMethod, "Cash"); err != nil {
		t.Fatalf("UpsertReference failed: %v", err)
	}
	return f
}

func newExpense(owner *models.User, cat, pm *models.Reference, amount, day string) *models.Expense {
	date, _ := time.Parse(models.DateLayout, day)
	return &models.Expense{
		Description:     "Lunch",
		Amount:          decimal.RequireFromString(amount),
		CategoryID:      cat.ID,
		PaymentMethodID: pm.ID,
		ExpenseDate:     date,
		UserID:          owner.ID,
	}
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("a@x.com", "Ann", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("duplicate email", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("a@x.com", "Bob", "hash"))
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("lookup by email and id", func(t *testing.T) {
		byEmail, err := store.GetUserByEmail(ctx, "a@x.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byEmail.ID != user.ID || byID.Email != "a@x.com" || byID.Name != "Ann" {
			t.Errorf("unexpected user: %+v / %+v", byEmail, byID)
		}
		if !byID.CreatedAt.Equal(user.CreatedAt.Truncate(time.Second)) {
			t.Errorf("CreatedAt = %v, want %v", byID.CreatedAt, user.CreatedAt)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		if _, err := store.GetUserByEmail(ctx, "nobody@x.com"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetUserByID(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		user.Name = "Annie"
		user.Email = "annie@x.com"
		if err := store.UpdateUser(ctx, user); err != nil {
			t.Fatalf("UpdateUser failed: %v", err)
		}
		got, err := store.GetUserByEmail(ctx, "annie@x.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.Name != "Annie" {
			t.Errorf("name: expected 'Annie', got '%s'", got.Name)
		}

		missing := &models.User{ID: "nope", Email: "z@x.com"}
		if err := store.UpdateUser(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestReferences(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	f := seed(t, store)

	t.Run("upsert is idempotent", func(t *testing.T) {
		again, err := store.UpsertReference(ctx, models.KindCategory, " Food ")
		if err != nil {
			t.Fatalf("UpsertReference failed: %v", err)
		}
		if again.ID != f.food.ID {
			t.Errorf("expected existing ID %s, got %s", f.food.ID, again.ID)
		}
	})

	t.Run("list is ordered by name and scoped to kind", func(t *testing.T) {
		cats, err := store.ListReferences(ctx, models.KindCategory)
		if err != nil {
			t.Fatalf("ListReferences failed: %v", err)
		}
		if len(cats) != 2 || cats[0].Name != "Food" || cats[1].Name != "Travel" {
			t.Errorf("unexpected categories: %+v", cats)
		}
		pms, err := store.ListReferences(ctx, models.KindPaymentMethod)
		if err != nil {
			t.Fatalf("ListReferences failed: %v", err)
		}
		if len(pms) != 1 || pms[0].Name != "Cash" {
			t.Errorf("unexpected payment methods: %+v", pms)
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		err := store.CreateReference(ctx, models.KindCategory, &models.Reference{Name: "Food"})
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}
		// Same name is fine for the other kind.
		if err := store.CreateReference(ctx, models.KindPaymentMethod, &models.Reference{Name: "Food"}); err != nil {
			t.Errorf("CreateReference failed: %v", err)
		}
	})

	t.Run("rename", func(t *testing.T) {
		ref := &models.Reference{ID: f.travel.ID, Name: "Trips"}
		if err := store.UpdateReference(ctx, models.KindCategory, ref); err != nil {
			t.Fatalf("UpdateReference failed: %v", err)
		}
		if ref.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be filled")
		}
		err := store.UpdateReference(ctx, models.KindCategory, &models.Reference{ID: "nope", Name: "X"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete is guarded by dependent expenses", func(t *testing.T) {
		expense := newExpense(f.ann, f.food, f.cash, "42.50", "2024-01-05")
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.DeleteReference(ctx, models.KindCategory, f.food.ID); !errors.Is(err, storage.ErrHasDependents) {
			t.Fatalf("expected ErrHasDependents, got %v", err)
		}
		if err := store.DeleteReference(ctx, models.KindPaymentMethod, f.cash.ID); !errors.Is(err, storage.ErrHasDependents) {
			t.Fatalf("expected ErrHasDependents, got %v", err)
		}
		if _, err := store.GetExpense(ctx, f.ann.ID, expense.ID); err != nil {
			t.Fatalf("expense should survive a blocked delete: %v", err)
		}

		if err := store.DeleteExpense(ctx, f.ann.ID, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if err := store.DeleteReference(ctx, models.KindCategory, f.food.ID); err != nil {
			t.Fatalf("DeleteReference failed: %v", err)
		}
		if err := store.DeleteReference(ctx, models.KindCategory, f.food.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	f := seed(t, store)

	older := newExpense(f.ann, f.food, f.cash, "10.00", "2024-01-01")
	newer := newExpense(f.ann, f.travel, f.cash, "42.50", "2024-01-05")
	bobs := newExpense(f.bob, f.food, f.cash, "99.99", "2024-01-03")
	for _, e := range []*models.Expense{older, newer, bobs} {
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}

	t.Run("create fills generated fields", func(t *testing.T) {
		if newer.ID == "" || newer.CreatedAt.IsZero() {
			t.Errorf("expected generated ID and CreatedAt, got %+v", newer)
		}
		if newer.CategoryName != "Travel" || newer.PaymentMethodName != "Cash" {
			t.Errorf("expected names to be filled, got %q/%q", newer.CategoryName, newer.PaymentMethodName)
		}
	})

	t.Run("list is scoped to owner and ordered by date desc", func(t *testing.T) {
		list, err := store.ListExpenses(ctx, f.ann.ID, models.ExpenseFilter{})
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 expenses, got %d", len(list))
		}
		if list[0].ID != newer.ID || list[1].ID != older.ID {
			t.Errorf("unexpected order: %s, %s", list[0].ID, list[1].ID)
		}
		if !list[0].Amount.Equal(decimal.RequireFromString("42.5")) {
			t.Errorf("amount: expected 42.50, got %s", list[0].Amount)
		}
	})

	t.Run("list filters", func(t *testing.T) {
		from, _ := time.Parse(models.DateLayout, "2024-01-02")
		list, err := store.ListExpenses(ctx, f.ann.ID, models.ExpenseFilter{From: from})
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(list) != 1 || list[0].ID != newer.ID {
			t.Errorf("from filter: unexpected %+v", list)
		}

		list, err = store.ListExpenses(ctx, f.ann.ID, models.ExpenseFilter{CategoryID: f.food.ID})
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(list) != 1 || list[0].ID != older.ID {
			t.Errorf("category filter: unexpected %+v", list)
		}
	})

	t.Run("other users cannot see, update or delete", func(t *testing.T) {
		if _, err := store.GetExpense(ctx, f.bob.ID, newer.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		hijack := *newer
		hijack.UserID = f.bob.ID
		hijack.Description = "Hijacked"
		if err := store.UpdateExpense(ctx, &hijack); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteExpense(ctx, f.bob.ID, newer.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		got, err := store.GetExpense(ctx, f.ann.ID, newer.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Description != "Lunch" || got.UserID != f.ann.ID {
			t.Errorf("expense was modified: %+v", got)
		}
	})

	t.Run("owner update", func(t *testing.T) {
		update := *newer
		update.Description = "Dinner"
		update.Amount = decimal.RequireFromString("50")
		update.CategoryID = f.food.ID
		if err := store.UpdateExpense(ctx, &update); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}
		if update.CategoryName != "Food" || update.Description != "Dinner" {
			t.Errorf("unexpected updated expense: %+v", update)
		}
	})

	t.Run("unknown references are rejected", func(t *testing.T) {
		bad := newExpense(f.ann, f.food, f.cash, "1", "2024-02-01")
		bad.CategoryID = "missing"
		if err := store.CreateExpense(ctx, bad); !errors.Is(err, storage.ErrInvalidReference) {
			t.Errorf("expected ErrInvalidReference, got %v", err)
		}
	})

	t.Run("concurrent deletes race safely", func(t *testing.T) {
		target := newExpense(f.ann, f.food, f.cash, "5", "2024-03-01")
		if err := store.CreateExpense(ctx, target); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = store.DeleteExpense(ctx, f.ann.ID, target.ID)
			}()
		}
		wg.Wait()

		var ok, notFound int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, storage.ErrNotFound):
				notFound++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}
		if ok != 1 || notFound != 1 {
			t.Errorf("expected one success and one not-found, got %d/%d", ok, notFound)
		}
	})
}
