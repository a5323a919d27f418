// seed_catalog carga categorías y productos desde un JSON o YAML al backend configurado
// (STORAGE_BACKEND) y deja los vínculos categoría <-> producto sincronizados en ambos lados.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalog.json|catalog.yaml] [--dry-run] [--timeout 5m]
// Por defecto lee catalog.json en el directorio actual. Los registros se identifican por
// nombre (sin distinguir mayúsculas): volver a correrlo actualiza en lugar de duplicar.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/foodzo-api/internal/application/catalog"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/storage"
	"github.com/jhoicas/foodzo-api/pkg/config"
	"github.com/jhoicas/foodzo-api/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		timeout = 5 * time.Minute
		dryRun  bool
	)

	root := &cobra.Command{
		Use:          "seed_catalog [archivo]",
		Short:        "Carga el catálogo (categorías y productos) en el almacén configurado",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "catalog.json"
			if len(args) == 1 {
				path = args[0]
			}
			return seedFromFile(cmd.Context(), path, timeout, dryRun)
		},
	}
	root.Flags().DurationVar(&timeout, "timeout", timeout, "tiempo máximo para toda la carga")
	root.Flags().BoolVar(&dryRun, "dry-run", false, "solo valida el archivo, sin conectarse al almacén")
	return root
}

func seedFromFile(parent context.Context, path string, timeout time.Duration, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_catalog"})

	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("abrir archivo de catálogo")
		return err
	}
	defer f.Close()

	file, err := decodeSeedFile(f, formatFor(path))
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("decodificar catálogo")
		return err
	}
	if dryRun {
		log.Info().
			Int("products", len(file.Products)).
			Int("categories", len(file.Categories)).
			Msg("archivo válido (dry-run)")
		return nil
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.Storage.Backend).Msg("conexión al almacén de documentos")
		return err
	}
	defer func() { _ = store.Close(context.Background()) }()

	s := &seeder{
		categories: docrepo.NewCategoryRepository(store),
		products:   docrepo.NewProductRepository(store),
		links:      catalog.NewLinkSynchronizer(store, log.Component("link_sync"), nil, cfg.Catalog.SyncConcurrency),
		log:        log,
		now:        time.Now,
	}
	summary, err := s.run(ctx, file)
	if err != nil {
		log.Error().Err(err).Msg("seed interrumpido")
		return err
	}
	log.Info().
		Int("products_created", summary.ProductsCreated).
		Int("products_updated", summary.ProductsUpdated).
		Int("categories_created", summary.CategoriesCreated).
		Int("categories_updated", summary.CategoriesUpdated).
		Int("link_failures", summary.LinkFailures).
		Msg("catálogo cargado")
	return nil
}
