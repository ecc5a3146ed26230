package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

const documentColumns = `
documents.id,
documents.kind,
documents.version,
documents.data,
documents.updated`

// PostgresStore keeps documents in the `documents` table
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a store backed by db
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save implements Store
func (p *PostgresStore) Save(ctx context.Context, id, kind string, data []byte, expectedVersion int64) (int64, error) {
	if expectedVersion == 0 {
		const query = `
INSERT INTO documents (id, kind, version, data)
VALUES ($1, $2, 1, $3)
RETURNING version`

		var version int64
		if err := p.db.QueryRowContext(ctx, query, id, kind, data).Scan(&version); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
				return 0, ErrStaleWrite
			}

			return 0, err
		}

		return version, nil
	}

	const query = `
UPDATE documents
SET data = $1, version = version + 1, updated = (NOW() AT TIME ZONE 'UTC')
WHERE id = $2 AND version = $3
RETURNING version`

	var version int64
	if err := p.db.QueryRowContext(ctx, query, data, id, expectedVersion).Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrStaleWrite
		}

		return 0, err
	}

	return version, nil
}

func getDocumentByRow(row Scanner) (*Document, error) {
	var d Document
	if err := row.Scan(&d.ID, &d.Kind, &d.Version, &d.Data, &d.Updated); err != nil {
		return nil, err
	}

	return &d, nil
}

// Load implements Store
func (p *PostgresStore) Load(ctx context.Context, id string) (*Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1`

	d, err := getDocumentByRow(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return d, nil
}

// List implements Store
func (p *PostgresStore) List(ctx context.Context, kind string) ([]*Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE kind = $1
ORDER BY id`

	rows, err := p.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	documents := make([]*Document, 0)
	for rows.Next() {
		d, err := getDocumentByRow(rows)
		if err != nil {
			return nil, err
		}

		documents = append(documents, d)
	}

	return documents, rows.Err()
}
