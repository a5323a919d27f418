// Package firestore implementa repository.DocumentStore sobre Cloud Firestore.
package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
	"github.com/jhoicas/foodzo-api/pkg/config"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore adaptador Firestore. El id del documento es el id de la entidad.
type DocumentStore struct {
	client *firestore.Client
}

// Connect crea el cliente. Sin CredentialsFile se usan las credenciales por defecto (ADC).
func Connect(ctx context.Context, cfg config.FirestoreConfig) (*DocumentStore, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: client: %w", err)
	}
	return &DocumentStore{client: client}, nil
}

// Get obtiene un documento; (nil, nil) si no existe.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (repository.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("firestore: get %s/%s: %w", collection, id, err)
	}
	return fromSnapshot(snap), nil
}

// Insert crea el documento con Create (falla si el id ya existe).
func (s *DocumentStore) Insert(ctx context.Context, collection string, doc repository.Document) (string, error) {
	id := doc.String(repository.FieldID)
	if id == "" {
		id = uuid.New().String()
	}
	data := withoutID(doc)
	if _, err := s.client.Collection(collection).Doc(id).Create(ctx, data); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return "", domain.ErrDuplicate
		}
		return "", fmt.Errorf("firestore: create %s: %w", collection, err)
	}
	return id, nil
}

// Update actualiza solo los campos de primer nivel dados.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields repository.Document) error {
	data := withoutID(fields)
	if len(data) == 0 {
		return nil
	}
	updates := make([]firestore.Update, 0, len(data))
	for k, v := range data {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("firestore: update %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete elimina exigiendo que el documento exista.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("firestore: delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Find ejecuta la consulta. Filtro + orden sobre campos distintos requiere índice compuesto en Firestore.
func (s *DocumentStore) Find(ctx context.Context, collection string, q repository.Query) ([]repository.Document, error) {
	query := s.client.Collection(collection).Query
	for _, f := range q.Filters {
		switch f.Op {
		case repository.OpEq, repository.OpArrayContains:
			if f.Field == repository.FieldID {
				query = query.Where(firestore.DocumentID, string(f.Op), s.client.Collection(collection).Doc(fmt.Sprint(f.Value)))
				continue
			}
			query = query.Where(f.Field, string(f.Op), f.Value)
		default:
			return nil, fmt.Errorf("firestore: operador %q: %w", f.Op, domain.ErrInvalidInput)
		}
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Descending {
			dir = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	it := query.Documents(ctx)
	defer it.Stop()
	out := make([]repository.Document, 0)
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore: query %s: %w", collection, err)
		}
		out = append(out, fromSnapshot(snap))
	}
	return out, nil
}

// Close cierra el cliente gRPC.
func (s *DocumentStore) Close(context.Context) error {
	return s.client.Close()
}

func fromSnapshot(snap *firestore.DocumentSnapshot) repository.Document {
	doc := repository.Document(snap.Data())
	if doc == nil {
		doc = repository.Document{}
	}
	doc[repository.FieldID] = snap.Ref.ID
	return doc
}

func withoutID(doc repository.Document) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == repository.FieldID {
			continue
		}
		out[k] = v
	}
	return out
}
