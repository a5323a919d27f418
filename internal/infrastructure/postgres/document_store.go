package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// timeLayout ancho fijo en UTC: el orden lexicográfico de data->>'createdAt' es el cronológico.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	data       JSONB       NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS idx_documents_data ON documents USING GIN (data jsonb_path_ops);
`

// DocumentStore guarda cada colección como filas de la tabla documents con el cuerpo en JSONB.
type DocumentStore struct {
	pool *pgxpool.Pool
}

// NewDocumentStore construye el adaptador sobre un pool ya abierto.
func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

// EnsureSchema crea la tabla e índice si no existen.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("postgres: schema: %w", err)
	}
	return nil
}

// Get obtiene un documento; (nil, nil) si no existe.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (repository.Document, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`, collection, id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: get %s/%s: %w", collection, id, err)
	}
	return decodeDocument(id, raw)
}

// Insert inserta el documento; genera id si no viene.
func (s *DocumentStore) Insert(ctx context.Context, collection string, doc repository.Document) (string, error) {
	id := doc.String(repository.FieldID)
	if id == "" {
		id = uuid.New().String()
	}
	body, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`,
		collection, id, body,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", domain.ErrDuplicate
		}
		return "", fmt.Errorf("postgres: insert %s: %w", collection, err)
	}
	return id, nil
}

// Update fusiona los campos de primer nivel con el operador || de jsonb.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields repository.Document) error {
	body, err := encodeDocument(fields)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET data = data || $3::jsonb, updated_at = now() WHERE collection = $1 AND id = $2`,
		collection, id, body,
	)
	if err != nil {
		return fmt.Errorf("postgres: update %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la fila.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return fmt.Errorf("postgres: delete %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Find traduce la consulta a SQL parametrizado.
func (s *DocumentStore) Find(ctx context.Context, collection string, q repository.Query) ([]repository.Document, error) {
	sql, args, err := buildFindSQL(collection, q)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: find %s: %w", collection, err)
	}
	defer rows.Close()

	out := make([]repository.Document, 0)
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("postgres: scan %s: %w", collection, err)
		}
		doc, err := decodeDocument(id, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Close cierra el pool.
func (s *DocumentStore) Close(context.Context) error {
	s.pool.Close()
	return nil
}

// buildFindSQL arma la consulta. Igualdad y pertenencia se expresan con jsonb para no perder el tipo del valor.
func buildFindSQL(collection string, q repository.Query) (string, []any, error) {
	var b strings.Builder
	args := []any{collection}
	b.WriteString(`SELECT id, data FROM documents WHERE collection = $1`)

	for _, f := range q.Filters {
		if f.Field == repository.FieldID && f.Op == repository.OpEq {
			args = append(args, fmt.Sprint(f.Value))
			fmt.Fprintf(&b, ` AND id = $%d`, len(args))
			continue
		}
		var operand any
		switch f.Op {
		case repository.OpEq:
			operand = encodeValue(f.Value)
		case repository.OpArrayContains:
			operand = []any{encodeValue(f.Value)}
		default:
			return "", nil, fmt.Errorf("postgres: operador %q: %w", f.Op, domain.ErrInvalidInput)
		}
		body, err := json.Marshal(operand)
		if err != nil {
			return "", nil, fmt.Errorf("postgres: filtro %s: %w", f.Field, err)
		}
		args = append(args, f.Field, string(body))
		if f.Op == repository.OpEq {
			fmt.Fprintf(&b, ` AND data -> $%d = $%d::jsonb`, len(args)-1, len(args))
		} else {
			fmt.Fprintf(&b, ` AND data -> $%d @> $%d::jsonb`, len(args)-1, len(args))
		}
	}

	if q.OrderBy != "" {
		args = append(args, q.OrderBy)
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		fmt.Fprintf(&b, ` ORDER BY data ->> $%d %s, id`, len(args), dir)
	} else {
		b.WriteString(` ORDER BY id`)
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&b, ` LIMIT $%d`, len(args))
	}
	return b.String(), args, nil
}

func encodeDocument(doc repository.Document) (string, error) {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == repository.FieldID {
			continue
		}
		out[k] = encodeValue(v)
	}
	body, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("postgres: encode: %w", err)
	}
	return string(body), nil
}

func encodeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(timeLayout)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = encodeValue(x)
		}
		return out
	case repository.Document:
		return encodeValue(map[string]any(t))
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = encodeValue(t[i])
		}
		return out
	default:
		return v
	}
}

func decodeDocument(id string, raw []byte) (repository.Document, error) {
	doc := repository.Document{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("postgres: decode %s: %w", id, err)
		}
	}
	doc[repository.FieldID] = id
	return doc, nil
}
