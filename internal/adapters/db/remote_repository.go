// internal/adapters/db/remote_repository.go
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/ports"
)

// ErrNotConnected is returned by every operation when the database could not
// be reached at startup.
var ErrNotConnected = errors.New("remote database not connected")

const defaultRemoteTimeout = 10 * time.Second

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// RemoteRepository implements ports.RemoteStore on PostgreSQL tables lotes
// and motores.
type RemoteRepository struct {
	db      ports.Database
	env     domain.EnvironmentInfo
	timeout time.Duration
	logger  *slog.Logger
}

// Statically assert that *RemoteRepository implements the RemoteStore interface.
var _ ports.RemoteStore = (*RemoteRepository)(nil)

// NewRemoteRepository creates a new remote repository. db may be nil when the
// database is configured but unreachable; the repository then probes as
// unavailable.
func NewRemoteRepository(db ports.Database, env domain.EnvironmentInfo, timeout time.Duration, logger *slog.Logger) *RemoteRepository {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	env.RemoteConfigured = true
	return &RemoteRepository{
		db:      db,
		env:     env,
		timeout: timeout,
		logger:  logger.With(slog.String("repository", "remote")),
	}
}

// remoteService is the stored shape of one element of motores.servicos.
type remoteService struct {
	Tipo     string          `json:"tipo"`
	Valor    decimal.Decimal `json:"valor"`
	NomePeca string          `json:"nomePeca,omitempty"`
}

func encodeServices(services []domain.Service) (string, error) {
	out := make([]remoteService, 0, len(services))
	for _, s := range services {
		out = append(out, remoteService{
			Tipo:     string(s.Type),
			Valor:    s.Amount,
			NomePeca: s.PartName(),
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to encode services: %w", err)
	}
	return string(data), nil
}

func decodeServices(raw string) ([]domain.Service, error) {
	if raw == "" {
		return []domain.Service{}, nil
	}
	var in []remoteService
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return []domain.Service{}, err
	}
	services := make([]domain.Service, 0, len(in))
	for _, s := range in {
		services = append(services, domain.NewService(domain.ServiceType(s.Tipo), s.Valor, s.NomePeca))
	}
	return services, nil
}

func (r *RemoteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Environment returns the masked connection details.
func (r *RemoteRepository) Environment() domain.EnvironmentInfo {
	return r.env
}

// Probe checks connectivity and that both tables exist.
func (r *RemoteRepository) Probe(ctx context.Context) domain.ProbeStatus {
	if r.db == nil {
		return domain.ProbeUnavailable
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var hasBatches, hasEngines bool
	err := r.db.QueryRow(ctx,
		`SELECT to_regclass('public.lotes') IS NOT NULL, to_regclass('public.motores') IS NOT NULL`,
	).Scan(&hasBatches, &hasEngines)
	if err != nil {
		r.logger.WarnContext(ctx, "remote probe failed", slog.String("error", err.Error()))
		return domain.ProbeUnavailable
	}

	if !hasBatches || !hasEngines {
		r.logger.WarnContext(ctx, "remote schema missing",
			slog.Bool("lotes", hasBatches),
			slog.Bool("motores", hasEngines))
		return domain.ProbeSchemaMissing
	}
	return domain.ProbeOK
}

// InsertBatch stores batch and returns it with the server-assigned id.
func (r *RemoteRepository) InsertBatch(ctx context.Context, batch domain.Batch) (domain.Batch, error) {
	const op = "insert_batch"
	if r.db == nil {
		return domain.Batch{}, domain.NewRemoteError(op, ErrNotConnected)
	}

	query, args, err := psql.Insert("lotes").
		Columns("nome", "data_fechamento").
		Values(batch.Name, batch.ClosureDate.Time()).
		Suffix("RETURNING id::text, created_at").
		ToSql()
	if err != nil {
		return domain.Batch{}, domain.NewRemoteError(op, err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.QueryRow(ctx, query, args...).Scan(&batch.ID, &batch.CreatedAt); err != nil {
		return domain.Batch{}, domain.NewRemoteError(op, err)
	}

	r.logger.DebugContext(ctx, "batch inserted", slog.String("batch_id", batch.ID))
	return batch, nil
}

// InsertEngine stores engine and returns it with the server-assigned id.
func (r *RemoteRepository) InsertEngine(ctx context.Context, engine domain.Engine) (domain.Engine, error) {
	const op = "insert_engine"
	if r.db == nil {
		return domain.Engine{}, domain.NewRemoteError(op, ErrNotConnected)
	}

	services, err := encodeServices(engine.Services)
	if err != nil {
		return domain.Engine{}, domain.NewRemoteError(op, err)
	}

	query, args, err := psql.Insert("motores").
		Columns("codigo", "modelo", "operador", "observacoes", "lote_id", "data_entrada", "servicos").
		Values(engine.EngineNumber, engine.VehicleModel, engine.Operator, engine.Notes,
			engine.BatchID, engine.EntryDate.Time(), services).
		Suffix("RETURNING id::text, created_at").
		ToSql()
	if err != nil {
		return domain.Engine{}, domain.NewRemoteError(op, err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.QueryRow(ctx, query, args...).Scan(&engine.ID, &engine.CreatedAt); err != nil {
		return domain.Engine{}, domain.NewRemoteError(op, err)
	}

	r.logger.DebugContext(ctx, "engine inserted",
		slog.String("engine_id", engine.ID),
		slog.String("batch_id", engine.BatchID))
	return engine, nil
}

// UpdateBatch overwrites the mutable batch fields.
func (r *RemoteRepository) UpdateBatch(ctx context.Context, batch domain.Batch) error {
	query, args, err := psql.Update("lotes").
		Set("nome", batch.Name).
		Set("data_fechamento", batch.ClosureDate.Time()).
		Where(squirrel.Eq{"id": batch.ID}).
		ToSql()
	if err != nil {
		return domain.NewRemoteError("update_batch", err)
	}
	return r.exec(ctx, "update_batch", query, args...)
}

// UpdateEngine overwrites the mutable engine fields.
func (r *RemoteRepository) UpdateEngine(ctx context.Context, engine domain.Engine) error {
	services, err := encodeServices(engine.Services)
	if err != nil {
		return domain.NewRemoteError("update_engine", err)
	}

	query, args, err := psql.Update("motores").
		Set("codigo", engine.EngineNumber).
		Set("modelo", engine.VehicleModel).
		Set("operador", engine.Operator).
		Set("observacoes", engine.Notes).
		Set("lote_id", engine.BatchID).
		Set("servicos", services).
		Where(squirrel.Eq{"id": engine.ID}).
		ToSql()
	if err != nil {
		return domain.NewRemoteError("update_engine", err)
	}
	return r.exec(ctx, "update_engine", query, args...)
}

// DeleteBatch removes the batch and its engines in one statement.
func (r *RemoteRepository) DeleteBatch(ctx context.Context, id string) error {
	return r.exec(ctx, "delete_batch",
		`WITH gone AS (DELETE FROM motores WHERE lote_id = $1) DELETE FROM lotes WHERE id = $1`, id)
}

// DeleteEngine removes a single engine.
func (r *RemoteRepository) DeleteEngine(ctx context.Context, id string) error {
	return r.exec(ctx, "delete_engine", `DELETE FROM motores WHERE id = $1`, id)
}

func (r *RemoteRepository) exec(ctx context.Context, op, query string, args ...interface{}) error {
	if r.db == nil {
		return domain.NewRemoteError(op, ErrNotConnected)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return domain.NewRemoteError(op, err)
	}

	r.logger.DebugContext(ctx, "remote statement executed",
		slog.String("op", op),
		slog.Int64("rows", tag.RowsAffected()))
	return nil
}

// ListBatches returns every batch in creation order.
func (r *RemoteRepository) ListBatches(ctx context.Context) ([]domain.Batch, error) {
	const op = "list_batches"
	if r.db == nil {
		return nil, domain.NewRemoteError(op, ErrNotConnected)
	}

	query, args, err := psql.Select("id::text", "nome", "data_fechamento", "created_at").
		From("lotes").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, domain.NewRemoteError(op, err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewRemoteError(op, err)
	}
	defer rows.Close()

	batches := []domain.Batch{}
	for rows.Next() {
		var (
			b       domain.Batch
			closure time.Time
		)
		if err := rows.Scan(&b.ID, &b.Name, &closure, &b.CreatedAt); err != nil {
			return nil, domain.NewRemoteError(op, fmt.Errorf("failed to scan batch: %w", err))
		}
		b.ClosureDate = domain.DateOf(closure)
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewRemoteError(op, err)
	}

	return batches, nil
}

// ListEngines returns every engine in creation order. An unreadable servicos
// value yields an engine without services.
func (r *RemoteRepository) ListEngines(ctx context.Context) ([]domain.Engine, error) {
	const op = "list_engines"
	if r.db == nil {
		return nil, domain.NewRemoteError(op, ErrNotConnected)
	}

	query, args, err := psql.Select(
		"id::text", "COALESCE(lote_id::text, '')", "modelo", "codigo",
		"COALESCE(operador, '')", "COALESCE(observacoes, '')",
		"COALESCE(data_entrada, created_at::date)", "servicos", "created_at",
	).
		From("motores").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, domain.NewRemoteError(op, err)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.NewRemoteError(op, err)
	}
	defer rows.Close()

	engines := []domain.Engine{}
	for rows.Next() {
		e, err := r.scanEngine(ctx, rows)
		if err != nil {
			return nil, domain.NewRemoteError(op, err)
		}
		engines = append(engines, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewRemoteError(op, err)
	}

	return engines, nil
}

func (r *RemoteRepository) scanEngine(ctx context.Context, row pgx.Row) (domain.Engine, error) {
	var (
		e        domain.Engine
		entry    time.Time
		services string
	)
	if err := row.Scan(&e.ID, &e.BatchID, &e.VehicleModel, &e.EngineNumber,
		&e.Operator, &e.Notes, &entry, &services, &e.CreatedAt); err != nil {
		return domain.Engine{}, fmt.Errorf("failed to scan engine: %w", err)
	}
	e.EntryDate = domain.DateOf(entry)

	parsed, err := decodeServices(services)
	if err != nil {
		r.logger.WarnContext(ctx, "ignoring unreadable services",
			slog.String("engine_id", e.ID),
			slog.String("error", err.Error()))
	}
	e.Services = parsed
	return e, nil
}
