package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/wedding-backend/internal/database"
	"github.com/deppfellow/wedding-backend/internal/errs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresStore keeps every collection in the single jsonb documents table.
type PostgresStore struct {
	db *database.Database
}

func NewPostgresStore(db *database.Database) *PostgresStore {
	return &PostgresStore{db: db}
}

const documentColumns = `id::text, data, created_at, updated_at`

func (s *PostgresStore) Insert(ctx context.Context, collection string, data map[string]any) (*Document, error) {
	stmt := `
		INSERT INTO
			documents (id, collection, data)
		VALUES
			(@id, @collection, @data)
		RETURNING
			` + documentColumns

	row := s.db.Pool.QueryRow(ctx, stmt, pgx.NamedArgs{
		"id":         uuid.New(),
		"collection": collection,
		"data":       sanitize(data),
	})

	doc, err := scanDocument(row)
	if err != nil {
		return nil, errs.NewUpstreamError(errs.ServiceStore, fmt.Errorf("insert into %s: %w", collection, err))
	}

	return doc, nil
}

func (s *PostgresStore) List(ctx context.Context, collection string, order Order) ([]Document, error) {
	direction := "ASC"
	if order == OrderNewestFirst {
		direction = "DESC"
	}

	stmt := `
		SELECT
			` + documentColumns + `
		FROM
			documents
		WHERE
			collection = @collection
		ORDER BY
			seq ` + direction

	rows, err := s.db.Pool.Query(ctx, stmt, pgx.NamedArgs{"collection": collection})
	if err != nil {
		return nil, errs.NewUpstreamError(errs.ServiceStore, fmt.Errorf("list %s: %w", collection, err))
	}

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Document, error) {
		doc, err := scanDocument(row)
		if err != nil {
			return Document{}, err
		}
		return *doc, nil
	})
	if err != nil {
		return nil, errs.NewUpstreamError(errs.ServiceStore, fmt.Errorf("list %s: %w", collection, err))
	}

	return docs, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	docID, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	stmt := `
		SELECT
			` + documentColumns + `
		FROM
			documents
		WHERE
			collection = @collection
			AND id = @id`

	return s.one(ctx, "get", collection, stmt, pgx.NamedArgs{"collection": collection, "id": docID})
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, fields map[string]any) (*Document, error) {
	docID, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	stmt := `
		UPDATE documents
		SET
			data = data || @fields::jsonb,
			updated_at = NOW()
		WHERE
			collection = @collection
			AND id = @id
		RETURNING
			` + documentColumns

	return s.one(ctx, "update", collection, stmt, pgx.NamedArgs{
		"collection": collection,
		"id":         docID,
		"fields":     sanitize(fields),
	})
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	docID, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}

	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM documents WHERE collection = @collection AND id = @id`,
		pgx.NamedArgs{"collection": collection, "id": docID})
	if err != nil {
		return errs.NewUpstreamError(errs.ServiceStore, fmt.Errorf("delete from %s: %w", collection, err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) one(ctx context.Context, op, collection, stmt string, args pgx.NamedArgs) (*Document, error) {
	doc, err := scanDocument(s.db.Pool.QueryRow(ctx, stmt, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errs.NewUpstreamError(errs.ServiceStore, fmt.Errorf("%s %s: %w", op, collection, err))
	}
	return doc, nil
}

func scanDocument(row pgx.Row) (*Document, error) {
	var doc Document
	if err := row.Scan(&doc.ID, &doc.Data, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	if doc.Data == nil {
		doc.Data = map[string]any{}
	}
	return &doc, nil
}

// parseID rejects ids that cannot exist in a uuid column.
func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}
