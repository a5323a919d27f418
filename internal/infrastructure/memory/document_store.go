// Package memory implementa repository.DocumentStore en memoria. Se usa en desarrollo
// (STORAGE_BACKEND=memory) y como backend de los tests de casos de uso y handlers.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore colecciones de documentos protegidas por un RWMutex. Los documentos se copian
// al entrar y al salir.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]repository.Document
}

// NewDocumentStore construye un almacén vacío.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{collections: make(map[string]map[string]repository.Document)}
}

// Get obtiene un documento por id; (nil, nil) si no existe.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (repository.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, nil
	}
	return withID(doc, id), nil
}

// Insert guarda el documento. Si trae "id" se respeta; si no, se genera un UUID.
func (s *DocumentStore) Insert(ctx context.Context, collection string, doc repository.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := doc.String(repository.FieldID)
	if id == "" {
		id = uuid.New().String()
	}
	stored := doc.Clone()
	delete(stored, repository.FieldID)

	s.mu.Lock()
	defer s.mu.Unlock()
	coll := s.collections[collection]
	if coll == nil {
		coll = make(map[string]repository.Document)
		s.collections[collection] = coll
	}
	if _, exists := coll[id]; exists {
		return "", domain.ErrDuplicate
	}
	coll[id] = stored
	return id, nil
}

// Update fusiona los campos de primer nivel.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields repository.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	for k, v := range fields.Clone() {
		if k == repository.FieldID {
			continue
		}
		doc[k] = v
	}
	return nil
}

// Delete elimina el documento.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection][id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

// Find filtra, ordena y limita en memoria.
func (s *DocumentStore) Find(ctx context.Context, collection string, q repository.Query) ([]repository.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]repository.Document, 0)
	for id, doc := range s.collections[collection] {
		if matches(doc, q.Filters) {
			out = append(out, withID(doc, id))
		}
	}
	s.mu.RUnlock()

	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(out[i][q.OrderBy], out[j][q.OrderBy])
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	} else {
		// Orden estable por id para que los listados no dependan del orden del map.
		sort.Slice(out, func(i, j int) bool { return out[i].String(repository.FieldID) < out[j].String(repository.FieldID) })
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Close no hace nada; existe para cumplir el puerto.
func (s *DocumentStore) Close(context.Context) error { return nil }

func withID(doc repository.Document, id string) repository.Document {
	out := doc.Clone()
	out[repository.FieldID] = id
	return out
}

func matches(doc repository.Document, filters []repository.Filter) bool {
	for _, f := range filters {
		switch f.Op {
		case repository.OpEq:
			if doc[f.Field] != f.Value {
				return false
			}
		case repository.OpArrayContains:
			items, _ := doc[f.Field].([]any)
			found := false
			for _, item := range items {
				if item == f.Value {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// compare ordena time.Time, números y strings; valores ausentes van primero.
func compare(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 1
		}
		return av.Compare(bv)
	case string:
		bv, _ := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case nil:
		if b == nil {
			return 0
		}
		return -1
	}
	fa, okA := repository.Document{"v": a}.Float("v")
	fb, okB := repository.Document{"v": b}.Float("v")
	switch {
	case !okA && !okB:
		return 0
	case !okB || fa > fb:
		return 1
	case !okA || fa < fb:
		return -1
	}
	return 0
}
