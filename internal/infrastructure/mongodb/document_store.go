// Package mongodb implementa repository.DocumentStore sobre MongoDB (mongo-driver v1).
// Cada documento usa un _id string (UUID) para que los ids sean intercambiables con los
// demás backends.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
	"github.com/jhoicas/foodzo-api/pkg/config"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

const mongoID = "_id"

// DocumentStore adaptador MongoDB.
type DocumentStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect abre el cliente, verifica la conexión con Ping y selecciona la base de datos.
func Connect(ctx context.Context, cfg config.MongoConfig) (*DocumentStore, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb: MONGODB_URI vacío")
	}
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("foodzo-api").
		SetServerSelectionTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}
	return &DocumentStore{client: client, db: client.Database(cfg.Database)}, nil
}

// Get obtiene un documento por _id; (nil, nil) si no existe.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (repository.Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, idFilter(id)).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("mongodb: find %s: %w", collection, err)
	}
	return fromBSON(raw), nil
}

// Insert inserta el documento; genera _id si no viene "id".
func (s *DocumentStore) Insert(ctx context.Context, collection string, doc repository.Document) (string, error) {
	id := doc.String(repository.FieldID)
	if id == "" {
		id = uuid.New().String()
	}
	raw := toBSON(doc)
	raw[mongoID] = id
	if _, err := s.db.Collection(collection).InsertOne(ctx, raw); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicate
		}
		return "", fmt.Errorf("mongodb: insert %s: %w", collection, err)
	}
	return id, nil
}

// Update aplica $set con los campos dados.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields repository.Document) error {
	set := toBSON(fields)
	if len(set) == 0 {
		return nil
	}
	res, err := s.db.Collection(collection).UpdateOne(ctx, idFilter(id), bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("mongodb: update %s: %w", collection, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina por _id.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return fmt.Errorf("mongodb: delete %s: %w", collection, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Find traduce la consulta a un filtro bson. En MongoDB {campo: valor} sobre un arreglo
// ya significa "contiene", así que OpEq y OpArrayContains producen el mismo filtro.
func (s *DocumentStore) Find(ctx context.Context, collection string, q repository.Query) ([]repository.Document, error) {
	filter := bson.M{}
	for _, f := range q.Filters {
		field := f.Field
		if field == repository.FieldID {
			if id, ok := f.Value.(string); ok {
				filter[mongoID] = idFilter(id)[mongoID]
				continue
			}
			field = mongoID
		}
		switch f.Op {
		case repository.OpEq, repository.OpArrayContains:
			filter[field] = f.Value
		default:
			return nil, fmt.Errorf("mongodb: operador %q: %w", f.Op, domain.ErrInvalidInput)
		}
	}
	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: dir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	cur, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: find %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	out := make([]repository.Document, 0)
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("mongodb: decode %s: %w", collection, err)
		}
		out = append(out, fromBSON(raw))
	}
	return out, cur.Err()
}

// Close desconecta el cliente.
func (s *DocumentStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// idFilter arma el filtro por _id. Los documentos creados antes de usar UUID tienen un
// ObjectID como _id y se exponen en hex, así que un id hex válido también busca el ObjectID.
func idFilter(id string) bson.M {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return bson.M{mongoID: id}
	}
	return bson.M{mongoID: bson.M{"$in": bson.A{id, oid}}}
}

func toBSON(doc repository.Document) bson.M {
	out := bson.M{}
	for k, v := range doc {
		if k == repository.FieldID {
			continue
		}
		out[k] = v
	}
	return out
}

// fromBSON normaliza los tipos del driver (primitive.A, primitive.DateTime, ObjectID...)
// a los tipos de repository.Document.
func fromBSON(raw bson.M) repository.Document {
	doc := make(repository.Document, len(raw))
	for k, v := range raw {
		if k == mongoID {
			doc[repository.FieldID] = idString(v)
			continue
		}
		doc[k] = normalize(v)
	}
	return doc
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		// Productos creados antes de usar UUID.
		return id.Hex()
	default:
		return fmt.Sprint(v)
	}
}

func normalize(v any) any {
	switch t := v.(type) {
	case primitive.A:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalize(t[i])
		}
		return out
	case bson.M:
		return map[string]any(fromBSON(t))
	case bson.D:
		return map[string]any(fromBSON(t.Map()))
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case int32:
		return int64(t)
	case primitive.Decimal128:
		if f, err := strconv.ParseFloat(t.String(), 64); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
