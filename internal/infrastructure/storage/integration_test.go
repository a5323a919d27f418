//go:build integration

// Pruebas de contrato de los backends reales. Requieren Docker:
//
//	go test -tags=integration ./internal/infrastructure/storage/...
package storage_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/foodzo-api/internal/application/catalog"
	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/storage"
	"github.com/jhoicas/foodzo-api/pkg/config"
)

// startContainer levanta la imagen y devuelve host:puerto mapeado; el contenedor se
// termina al finalizar el test.
func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) string {
	t.Helper()
	ctx := context.Background()
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, port)
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, mapped.Port())
}

func postgresConfig(t *testing.T) *config.Config {
	addr := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env:          map[string]string{"POSTGRES_USER": "foodzo", "POSTGRES_PASSWORD": "foodzo", "POSTGRES_DB": "foodzo"},
		// postgres reinicia una vez durante la inicialización.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(2 * time.Minute),
	}, "5432/tcp")
	return &config.Config{
		Storage: config.StorageConfig{Backend: config.BackendPostgres},
		DB:      config.DBConfig{DatabaseURL: "postgres://foodzo:foodzo@" + addr + "/foodzo?sslmode=disable"},
	}
}

func mongoConfig(t *testing.T) *config.Config {
	addr := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
	}, "27017/tcp")
	return &config.Config{
		Storage: config.StorageConfig{Backend: config.BackendMongoDB},
		Mongo:   config.MongoConfig{URI: "mongodb://" + addr, Database: "foodzo_it"},
	}
}

func TestIntegracion_ContratoDocumentStore(t *testing.T) {
	backends := map[string]func(*testing.T) *config.Config{
		config.BackendPostgres: postgresConfig,
		config.BackendMongoDB:  mongoConfig,
	}
	for name, cfgFor := range backends {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
			defer cancel()

			store, err := storage.Open(ctx, cfgFor(t))
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close(context.Background()) })

			runContract(ctx, t, store)
		})
	}
}

func TestIntegracion_MongoProductoConObjectIDSeVinculaEnAmbosLados(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	cfg := mongoConfig(t)
	store, err := storage.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	// Documento con el _id nativo de MongoDB, como los que ya existen en producción.
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	oid := primitive.NewObjectID()
	_, err = client.Database(cfg.Mongo.Database).Collection(repository.CollectionProducts).InsertOne(ctx, bson.M{
		"_id":                       oid,
		"name":                      "Gulab Jamun",
		repository.FieldCategoryIDs: bson.A{},
	})
	require.NoError(t, err)

	listed, err := store.Find(ctx, repository.CollectionProducts, repository.Query{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	productID := listed[0].String(repository.FieldID)
	assert.Equal(t, oid.Hex(), productID)

	byID, err := store.Find(ctx, repository.CollectionProducts, repository.Query{
		Filters: []repository.Filter{{Field: repository.FieldID, Op: repository.OpEq, Value: productID}},
	})
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	catID, err := store.Insert(ctx, repository.CollectionCategories, repository.Document{
		"name": "Desserts", repository.FieldProductIDs: []string{},
	})
	require.NoError(t, err)
	report, err := catalog.NewLinkSynchronizer(store, nil, nil, 2).
		SyncCategoryProductLinks(ctx, catID, []string{productID}, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)
	assert.Empty(t, report.Failures)

	cat, err := store.Get(ctx, repository.CollectionCategories, catID)
	require.NoError(t, err)
	assert.Equal(t, []string{productID}, cat.Strings(repository.FieldProductIDs))
	product, err := store.Get(ctx, repository.CollectionProducts, productID)
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, []string{catID}, product.Strings(repository.FieldCategoryIDs))

	require.NoError(t, store.Delete(ctx, repository.CollectionProducts, productID))
	gone, err := store.Get(ctx, repository.CollectionProducts, productID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func runContract(ctx context.Context, t *testing.T, s repository.DocumentStore) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	ids := make([]string, 0, 3)
	for i, name := range []string{"Samosa", "Pakora", "Vada Pav"} {
		id, err := s.Insert(ctx, repository.CollectionProducts, repository.Document{
			"name":                      name,
			repository.FieldCategoryIDs: []string{"c1"},
			repository.FieldCreatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	doc, err := s.Get(ctx, repository.CollectionProducts, ids[0])
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Samosa", doc.String("name"))
	assert.True(t, base.Equal(doc.Time(repository.FieldCreatedAt)))

	missing, err := s.Get(ctx, repository.CollectionProducts, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, s.Update(ctx, repository.CollectionProducts, ids[1], repository.Document{
		repository.FieldCategoryIDs: []string{"c1", "c2"},
	}))
	assert.ErrorIs(t, s.Update(ctx, repository.CollectionProducts, "no-existe", repository.Document{"name": "x"}), domain.ErrNotFound)

	found, err := s.Find(ctx, repository.CollectionProducts, repository.Query{
		Filters: []repository.Filter{{Field: repository.FieldCategoryIDs, Op: repository.OpArrayContains, Value: "c2"}},
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Pakora", found[0].String("name"))

	newest, err := s.Find(ctx, repository.CollectionProducts, repository.Query{
		OrderBy: repository.FieldCreatedAt, Descending: true, Limit: 2,
	})
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, "Vada Pav", newest[0].String("name"))
	assert.Equal(t, "Pakora", newest[1].String("name"))

	require.NoError(t, s.Delete(ctx, repository.CollectionProducts, ids[2]))
	assert.ErrorIs(t, s.Delete(ctx, repository.CollectionProducts, ids[2]), domain.ErrNotFound)

	// El sincronizador funciona igual sobre el backend real.
	catID, err := s.Insert(ctx, repository.CollectionCategories, repository.Document{
		"name": "Snacks", repository.FieldProductIDs: []string{},
	})
	require.NoError(t, err)
	report, err := catalog.NewLinkSynchronizer(s, nil, nil, 2).
		SyncCategoryProductLinks(ctx, catID, []string{ids[0], ids[1]}, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Failures)

	p0, err := s.Get(ctx, repository.CollectionProducts, ids[0])
	require.NoError(t, err)
	assert.Contains(t, p0.Strings(repository.FieldCategoryIDs), catID)
}
