package repository

import "context"

// Colecciones del catálogo.
const (
	CollectionCategories = "categories"
	CollectionProducts   = "products"
	CollectionUsers      = "users"
)

// Campos compartidos por los documentos.
const (
	FieldID          = "id"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
	FieldProductIDs  = "productIds"
	FieldCategoryIDs = "categoryIds"
)

// Document es un registro de una colección: campos de primer nivel por nombre.
// En lecturas, "id" viene siempre poblado con la clave del documento.
//
// Los valores se normalizan a string, bool, int64, float64, time.Time, []any y map[string]any,
// sin importar el backend que los haya leído.
type Document map[string]any

// FilterOp operador de un filtro de consulta.
type FilterOp string

const (
	// OpEq compara igualdad del campo.
	OpEq FilterOp = "=="
	// OpArrayContains verifica que el campo (arreglo) contenga el valor.
	OpArrayContains FilterOp = "array-contains"
)

// Filter condición sobre un campo de primer nivel.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// Query consulta simple: filtros en AND, un orden y un límite (0 = sin límite).
type Query struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

// DocumentStore define el puerto de persistencia documental (DIP). Lo implementan los
// adaptadores memory, mongodb, firestore y postgres.
type DocumentStore interface {
	// Get devuelve (nil, nil) si el documento no existe.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Insert crea el documento y devuelve el id generado.
	Insert(ctx context.Context, collection string, doc Document) (string, error)
	// Update fusiona los campos dados en el documento. domain.ErrNotFound si no existe.
	Update(ctx context.Context, collection, id string, fields Document) error
	// Delete elimina el documento. domain.ErrNotFound si no existe.
	Delete(ctx context.Context, collection, id string) error
	Find(ctx context.Context, collection string, q Query) ([]Document, error)
	Close(ctx context.Context) error
}
