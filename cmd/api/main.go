package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/foodzo-api/internal/application/auth"
	"github.com/jhoicas/foodzo-api/internal/application/catalog"
	"github.com/jhoicas/foodzo-api/internal/application/ports"
	"github.com/jhoicas/foodzo-api/internal/application/usecase"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/cache"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/cloudinary"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/firebaseauth"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/foodzo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/storage"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/foodzo-api/internal/interfaces/http"
	"github.com/jhoicas/foodzo-api/pkg/config"
	"github.com/jhoicas/foodzo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.App.Name, cfg.App.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas OTLP")
	}

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("conexión al almacén de documentos")
	}

	categoryRepo := docrepo.NewCategoryRepository(store)
	productRepo := docrepo.NewProductRepository(store)
	userRepo := docrepo.NewUserRepository(store)

	appMetrics := metrics.New()
	links := catalog.NewLinkSynchronizer(store, log.Component("link_sync"), appMetrics, cfg.Catalog.SyncConcurrency)

	// Cloudinary solo si hay credenciales; sin ellas las altas con imagen fallan con un error claro.
	var images ports.ImageHost = cloudinary.Unconfigured{}
	if cfg.Cloudinary.Enabled() {
		host, err := cloudinary.New(cfg.Cloudinary)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente Cloudinary")
		}
		images = host
	} else {
		log.Warn().Msg("Cloudinary sin configurar: las subidas de imágenes quedan deshabilitadas")
	}

	localCache := cache.New(time.Duration(cfg.Catalog.CacheTTLSeconds) * time.Second)
	var catalogCache usecase.CatalogCache = localCache
	runCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()
	if cfg.Redis.Enabled() {
		broadcast, err := cache.NewRedisBroadcast(ctx, cfg.Redis, localCache, log.Component("cache"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer func() { _ = broadcast.Close() }()
		go broadcast.Run(runCtx)
		catalogCache = broadcast
	}
	catalogUC := usecase.NewCatalogUseCase(categoryRepo, productRepo, catalogCache)
	adminDeps := usecase.AdminDeps{
		Images:      images,
		Catalog:     catalogUC,
		ImageFolder: cfg.Cloudinary.Folder,
		Log:         log.Component("admin"),
	}
	adminCategoryUC := usecase.NewAdminCategoryUseCase(categoryRepo, links, adminDeps)
	adminProductUC := usecase.NewAdminProductUseCase(productRepo, links, adminDeps)
	adminUserUC := usecase.NewAdminUserUseCase(userRepo, cfg.App.AdminPhone)
	profileUC := usecase.NewProfileUseCase(userRepo)
	menuUC := usecase.NewMenuUseCase(categoryRepo, productRepo, infrapdf.NewMarotoMenuGenerator(), "Foodzo Menu", cfg.App.PublicURL)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.App.AdminPhone)
	if cfg.Firebase.Enabled() {
		verifier, err := firebaseauth.New(ctx, cfg.Firebase)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente Firebase Authentication")
		}
		authUC.SetIdentityVerifier(verifier)
	} else {
		log.Warn().Msg("Firebase sin configurar: acceso con Google y vinculación de teléfono deshabilitados")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    8 * 1024 * 1024,
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(appMetrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Foodzo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Backend})
	})
	app.Get("/metrics", adaptor.HTTPHandler(appMetrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:       catalogUC,
		AdminCategoryUC: adminCategoryUC,
		AdminProductUC:  adminProductUC,
		AdminUserUC:     adminUserUC,
		ProfileUC:       profileUC,
		MenuUC:          menuUC,
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	stopBackground()
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre del almacén de documentos")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre del exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
