package command

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/spendtrack/internal/models"
	"github.com/mmynk/spendtrack/internal/storage/sqlite"
	"github.com/mmynk/spendtrack/pkg/logging"
)

func TestReadRawLine(t *testing.T) {
	line, err := readRawLine(strings.NewReader("secret1\nrest"))
	require.NoError(t, err)
	assert.Equal(t, "secret1", string(line))

	line, err = readRawLine(strings.NewReader("ab\bc"))
	require.NoError(t, err)
	assert.Equal(t, "ac", string(line))

	line, err = readRawLine(strings.NewReader("pw\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "pw", string(line))

	line, err = readRawLine(strings.NewReader("\bx"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(line))

	_, err = readRawLine(strings.NewReader(""))
	assert.Error(t, err)
}

func TestSeedReferencesIsIdempotent(t *testing.T) {
	ctx := context.Background()
	logger := logging.New(io.Discard, slog.LevelError)

	store, err := sqlite.New(ctx, filepath.Join(t.TempDir(), "seed.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, seedReferences(ctx, logger, store))
	require.NoError(t, seedReferences(ctx, logger, store))

	categories, err := store.ListReferences(ctx, models.KindCategory)
	require.NoError(t, err)
	assert.Len(t, categories, len(models.DefaultCategories))

	methods, err := store.ListReferences(ctx, models.KindPaymentMethod)
	require.NoError(t, err)
	assert.Len(t, methods, len(models.DefaultPaymentMethods))
}

func TestRootCommandRequiresSecret(t *testing.T) {
	t.Setenv("SPENDTRACK_JWT_SECRET", "")
	t.Setenv("SPENDTRACK_DB_PATH", filepath.Join(t.TempDir(), "x.db"))

	cmd := RootCommand()
	cmd.SetArgs([]string{"seed", "--env-file", filepath.Join(t.TempDir(), "none.env")})
	cmd.SetOut(&strings.Builder{})
	cmd.SetErr(&strings.Builder{})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPENDTRACK_JWT_SECRET")
}

func TestSeedDemoExpenses(t *testing.T) {
	ctx := context.Background()
	logger := logging.New(io.Discard, slog.LevelError)

	store, err := sqlite.New(ctx, filepath.Join(t.TempDir(), "demo.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	err = seedDemoExpenses(ctx, logger, store, "ann@x.com", 5, 1)
	require.Error(t, err)

	ann := models.NewUser("ann@x.com", "Ann", "hash")
	require.NoError(t, store.CreateUser(ctx, ann))

	err = seedDemoExpenses(ctx, logger, store, "ann@x.com", 5, 1)
	require.Error(t, err, "no reference data yet")

	require.NoError(t, seedReferences(ctx, logger, store))
	require.Error(t, seedDemoExpenses(ctx, logger, store, "ann@x.com", -1, 1))
	require.NoError(t, seedDemoExpenses(ctx, logger, store, " ANN@x.com ", 5, 1))

	expenses, err := store.ListExpenses(ctx, ann.ID, models.ExpenseFilter{})
	require.NoError(t, err)
	assert.Len(t, expenses, 5)
}
