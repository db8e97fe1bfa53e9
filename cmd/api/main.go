package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/usecase"
	infrapdf "github.com/amremberto/gecom-following-preload-sub002/internal/infrastructure/pdf"
	"github.com/amremberto/gecom-following-preload-sub002/internal/infrastructure/postgres"
	"github.com/amremberto/gecom-following-preload-sub002/internal/infrastructure/storage"
	httpRouter "github.com/amremberto/gecom-following-preload-sub002/internal/interfaces/http"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/config"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/logger"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		if err := m.Up(); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		_ = m.Close()
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	blobs, err := newBlobStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("storage de adjuntos")
	}

	v := validation.New()

	currencyRepo := postgres.NewCurrencyRepository(pool)
	documentTypeRepo := postgres.NewDocumentTypeRepository(pool)
	paymentTypeRepo := postgres.NewPaymentTypeRepository(pool)
	stateRepo := postgres.NewStateRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	societyRepo := postgres.NewSocietyRepository(pool)
	userSocietyRepo := postgres.NewUserSocietyRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	attachmentRepo := postgres.NewAttachmentRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	purchaseOrderRepo := postgres.NewPurchaseOrderRepository(pool)
	sapAccountRepo := postgres.NewSapAccountRepository(pool)
	sapOrderRepo := postgres.NewSapPurchaseOrderRepository(pool)

	documentUC := usecase.NewDocumentUseCase(usecase.DocumentDeps{
		Documents:         documentRepo,
		Attachments:       attachmentRepo,
		Notes:             noteRepo,
		PurchaseOrders:    purchaseOrderRepo,
		Providers:         providerRepo,
		Societies:         societyRepo,
		DocumentTypes:     documentTypeRepo,
		Currencies:        currencyRepo,
		PaymentTypes:      paymentTypeRepo,
		States:            stateRepo,
		SapPurchaseOrders: sapOrderRepo,
		UnitOfWork:        postgres.NewUnitOfWork(pool),
		// PDF: constancia imprimible de la precarga
		Vouchers: infrapdf.NewMarotoVoucherGenerator(),
	}, v)

	onError := httpRouter.ErrorHandler(log)
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitBytes(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: onError,
	})
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log, onError))
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if cfg.Docs.Enabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.FilePath,
			Path:     "docs",
			Title:    "GECOM Precarga API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CurrencyUC:      usecase.NewCurrencyUseCase(currencyRepo, v),
		DocumentTypeUC:  usecase.NewDocumentTypeUseCase(documentTypeRepo, v),
		PaymentTypeUC:   usecase.NewPaymentTypeUseCase(paymentTypeRepo, v),
		StateUC:         usecase.NewStateUseCase(stateRepo, v),
		ProviderUC:      usecase.NewProviderUseCase(providerRepo, v),
		SocietyUC:       usecase.NewSocietyUseCase(societyRepo, v),
		UserSocietyUC:   usecase.NewUserSocietyUseCase(userSocietyRepo, societyRepo, v),
		DocumentUC:      documentUC,
		AttachmentUC:    usecase.NewAttachmentUseCase(attachmentRepo, documentRepo, blobs, cfg.Storage.MaxUploadSizeBytes(), v),
		NoteUC:          usecase.NewNoteUseCase(noteRepo, documentRepo, v),
		PurchaseOrderUC: usecase.NewPurchaseOrderUseCase(purchaseOrderRepo, documentRepo, providerRepo, sapOrderRepo, v),
		SapUC:           usecase.NewSapUseCase(sapAccountRepo, sapOrderRepo, v),
		DB:              pool,
		JWTSecret:       cfg.JWT.Secret,
		JWTIssuer:       cfg.JWT.Issuer,
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

	log.Info().Msg("aplicación detenida")
}

// newBlobStore elige el storage de adjuntos según STORAGE_DRIVER.
func newBlobStore(ctx context.Context, cfg config.StorageConfig) (usecase.BlobStore, error) {
	if cfg.Driver == config.StorageS3 {
		return storage.NewS3Store(ctx, cfg)
	}
	return storage.NewLocalStore(cfg.BasePath)
}
