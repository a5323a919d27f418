// Package storage abre el DocumentStore elegido con STORAGE_BACKEND.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/foodzo-api/internal/domain/repository"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/firestore"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/memory"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/foodzo-api/pkg/config"
)

// Open devuelve el almacén de documentos del backend configurado.
func Open(ctx context.Context, cfg *config.Config) (repository.DocumentStore, error) {
	switch config.NormalizeBackend(cfg.Storage.Backend) {
	case config.BackendMemory:
		return memory.NewDocumentStore(), nil
	case config.BackendMongoDB:
		return mongodb.Connect(ctx, cfg.Mongo)
	case config.BackendFirestore:
		return firestore.Connect(ctx, cfg.Firestore)
	case config.BackendPostgres:
		return postgres.Open(ctx, cfg.DB)
	default:
		return nil, fmt.Errorf("storage: backend no soportado: %s", cfg.Storage.Backend)
	}
}
