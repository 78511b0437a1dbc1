package db_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/retifica-be/internal/adapters/db"
	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/test/helpers"
	"github.com/ammerola/retifica-be/test/mocks"
)

// fakeRow satisfies pgx.Row for QueryRow expectations.
type fakeRow struct {
	values []interface{}
	err    error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: expected %d destinations, got %d", len(r.values), len(dest))
	}
	for i, v := range r.values {
		switch d := dest[i].(type) {
		case *bool:
			*d = v.(bool)
		case *string:
			*d = v.(string)
		case *time.Time:
			*d = v.(time.Time)
		default:
			return fmt.Errorf("scan: unsupported destination %T", dest[i])
		}
	}
	return nil
}

func newTestRepository(t *testing.T) (*db.RemoteRepository, *mocks.MockDatabase) {
	ctrl := gomock.NewController(t)
	database := mocks.NewMockDatabase(ctrl)
	repo := db.NewRemoteRepository(database, domain.EnvironmentInfo{RemoteHost: "db.local"}, time.Second, helpers.TestLogger())
	return repo, database
}

func TestServicesCodec(t *testing.T) {
	services := []domain.Service{
		domain.NewService(domain.ServiceLabor, decimal.RequireFromString("120.50"), ""),
		helpers.AdditionalPart("Bomba de óleo", "89.90"),
	}

	raw, err := db.EncodeServices(services)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"tipo":"Serviços mão de obra","valor":"120.5"},{"tipo":"Peças adicionais","valor":"89.9","nomePeca":"Bomba de óleo"}]`,
		raw)

	decoded, err := db.DecodeServices(raw)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.True(t, decoded[0].Amount.Equal(decimal.RequireFromString("120.50")))
	assert.Equal(t, "Bomba de óleo", decoded[1].PartName())

	t.Run("numeric_amounts", func(t *testing.T) {
		decoded, err := db.DecodeServices(`[{"tipo":"Troca de anéis","valor":250}]`)
		require.NoError(t, err)
		require.Len(t, decoded, 1)
		assert.True(t, decoded[0].Amount.Equal(decimal.NewFromInt(250)))
	})

	t.Run("empty", func(t *testing.T) {
		decoded, err := db.DecodeServices("")
		require.NoError(t, err)
		assert.Empty(t, decoded)
		assert.NotNil(t, decoded)
	})

	t.Run("malformed", func(t *testing.T) {
		decoded, err := db.DecodeServices("not json")
		assert.Error(t, err)
		assert.Empty(t, decoded)
	})
}

func TestRemoteRepository_Environment(t *testing.T) {
	repo, _ := newTestRepository(t)

	env := repo.Environment()
	assert.True(t, env.RemoteConfigured)
	assert.Equal(t, "db.local", env.RemoteHost)
}

func TestRemoteRepository_Probe(t *testing.T) {
	tests := []struct {
		name string
		row  fakeRow
		want domain.ProbeStatus
	}{
		{"ok", fakeRow{values: []interface{}{true, true}}, domain.ProbeOK},
		{"missing_lotes", fakeRow{values: []interface{}{false, true}}, domain.ProbeSchemaMissing},
		{"missing_motores", fakeRow{values: []interface{}{true, false}}, domain.ProbeSchemaMissing},
		{"connection_error", fakeRow{err: errors.New("connection refused")}, domain.ProbeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, database := newTestRepository(t)
			database.EXPECT().
				QueryRow(gomock.Any(), gomock.Any()).
				Return(tt.row)

			assert.Equal(t, tt.want, repo.Probe(context.Background()))
		})
	}
}

func TestRemoteRepository_NotConnected(t *testing.T) {
	repo := db.NewRemoteRepository(nil, domain.EnvironmentInfo{}, 0, helpers.TestLogger())
	ctx := context.Background()

	assert.Equal(t, domain.ProbeUnavailable, repo.Probe(ctx))

	_, err := repo.InsertBatch(ctx, helpers.CreateTestBatch())
	assert.ErrorIs(t, err, domain.ErrRemote)
	assert.ErrorIs(t, err, db.ErrNotConnected)

	_, err = repo.ListEngines(ctx)
	assert.ErrorIs(t, err, db.ErrNotConnected)

	err = repo.DeleteBatch(ctx, "any")
	assert.ErrorIs(t, err, db.ErrNotConnected)
}

func TestRemoteRepository_InsertBatch(t *testing.T) {
	repo, database := newTestRepository(t)
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	database.EXPECT().
		QueryRow(gomock.Any(), gomock.Any(), "Lote Março", gomock.Any()).
		Return(fakeRow{values: []interface{}{"4b0d1c1e-0000-4000-8000-000000000001", created}})

	batch := helpers.CreateTestBatch(func(b *domain.Batch) {
		b.ID = ""
		b.Name = "Lote Março"
	})
	got, err := repo.InsertBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, "4b0d1c1e-0000-4000-8000-000000000001", got.ID)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.Equal(t, batch.ClosureDate, got.ClosureDate)
}

func TestRemoteRepository_ErrorsAreRemoteErrors(t *testing.T) {
	repo, database := newTestRepository(t)
	ctx := context.Background()
	boom := errors.New("server closed the connection")

	database.EXPECT().QueryRow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fakeRow{err: boom}).AnyTimes()
	database.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(pgconn.CommandTag{}, boom).AnyTimes()
	database.EXPECT().Query(gomock.Any(), gomock.Any()).
		Return(nil, boom).AnyTimes()

	engine := helpers.CreateTestEngine("batch-1")

	_, err := repo.InsertEngine(ctx, engine)
	assertRemote(t, err, "insert_engine", boom)

	err = repo.UpdateEngine(ctx, engine)
	assertRemote(t, err, "update_engine", boom)

	err = repo.UpdateBatch(ctx, helpers.CreateTestBatch())
	assertRemote(t, err, "update_batch", boom)

	err = repo.DeleteEngine(ctx, engine.ID)
	assertRemote(t, err, "delete_engine", boom)

	_, err = repo.ListBatches(ctx)
	assertRemote(t, err, "list_batches", boom)
}

func assertRemote(t *testing.T, err error, op string, cause error) {
	t.Helper()

	require.Error(t, err)
	var remoteErr *domain.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, op, remoteErr.Op)
	assert.ErrorIs(t, err, cause)
}

func TestRemoteRepository_DeleteBatchCascades(t *testing.T) {
	repo, database := newTestRepository(t)

	database.EXPECT().
		Exec(gomock.Any(), gomock.Any(), "batch-1").
		DoAndReturn(func(_ context.Context, sql string, _ ...interface{}) (pgconn.CommandTag, error) {
			assert.Contains(t, sql, "DELETE FROM motores WHERE lote_id = $1")
			assert.Contains(t, sql, "DELETE FROM lotes WHERE id = $1")
			return pgconn.NewCommandTag("DELETE 1"), nil
		})

	require.NoError(t, repo.DeleteBatch(context.Background(), "batch-1"))
}
