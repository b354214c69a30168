package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/spendtrack/internal/demo"
	"github.com/mmynk/spendtrack/internal/models"
	"github.com/mmynk/spendtrack/internal/storage"
)

func seedCommand() *cobra.Command {
	var (
		demoEmail string
		demoCount int
		demoSeed  uint64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default categories and payment methods",
		Long: "Creates every default category and payment method that does not exist yet.\n" +
			"Existing records, including renamed ones, are left untouched. With --demo,\n" +
			"also records generated expenses for an existing user.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			if err := seedReferences(cmd.Context(), logger, store); err != nil {
				return err
			}
			if demoEmail == "" {
				return nil
			}
			return seedDemoExpenses(cmd.Context(), logger, store, demoEmail, demoCount, demoSeed)
		},
	}
	cmd.Flags().StringVar(&demoEmail, "demo", "", "email of an existing user to receive generated expenses")
	cmd.Flags().IntVar(&demoCount, "demo-count", 50, "number of generated expenses")
	cmd.Flags().Uint64Var(&demoSeed, "demo-seed", 1, "random seed for generated expenses")
	return cmd
}

// seedReferences upserts the default reference data. It is idempotent.
func seedReferences(ctx context.Context, logger *slog.Logger, store storage.References) error {
	defaults := []struct {
		kind  models.RefKind
		names []string
	}{
		{models.KindCategory, models.DefaultCategories},
		{models.KindPaymentMethod, models.DefaultPaymentMethods},
	}
	for _, d := range defaults {
		for _, name := range d.names {
			if _, err := store.UpsertReference(ctx, d.kind, name); err != nil {
				return err
			}
		}
		logger.InfoContext(ctx, "seeded reference data",
			slog.String("kind", d.kind.String()),
			slog.Int("count", len(d.names)),
		)
	}
	return nil
}

func seedDemoExpenses(ctx context.Context, logger *slog.Logger, store storage.Store, email string, n int, seed uint64) error {
	if n < 0 {
		return fmt.Errorf("demo expense count must not be negative, got %d", n)
	}
	user, err := store.GetUserByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("demo user %s: %w", email, err)
	}
	categories, err := store.ListReferences(ctx, models.KindCategory)
	if err != nil {
		return err
	}
	methods, err := store.ListReferences(ctx, models.KindPaymentMethod)
	if err != nil {
		return err
	}
	if len(categories) == 0 || len(methods) == 0 {
		return errors.New("demo expenses need at least one category and payment method")
	}

	for _, e := range demo.Expenses(seed, user.ID, categories, methods, time.Now(), n) {
		if err := store.CreateExpense(ctx, &e); err != nil {
			return err
		}
	}
	logger.InfoContext(ctx, "seeded demo expenses",
		slog.String("user_id", user.ID),
		slog.Int("count", n),
	)
	return nil
}
