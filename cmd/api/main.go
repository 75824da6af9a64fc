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

	appinventory "github.com/jhoicas/control-inventario/internal/application/inventory"
	"github.com/jhoicas/control-inventario/internal/application/report"
	domaininventory "github.com/jhoicas/control-inventario/internal/domain/inventory"
	infrapdf "github.com/jhoicas/control-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/control-inventario/internal/infrastructure/persistence"
	"github.com/jhoicas/control-inventario/internal/infrastructure/rabbitmq"
	"github.com/jhoicas/control-inventario/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/control-inventario/internal/interfaces/http"
	"github.com/jhoicas/control-inventario/pkg/config"
	"github.com/jhoicas/control-inventario/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("abrir almacenamiento")
	}
	defer store.Close()

	loc, err := cfg.Report.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de reportes")
	}

	stateStorage := persistence.NewStateStorage(store, log,
		persistence.WithDriverName(cfg.Storage.Driver),
		persistence.WithKeyPrefix(cfg.Storage.KeyPrefix),
	)

	opts := []appinventory.Option{
		appinventory.WithDateFormatter(domaininventory.DisplayDateFormatter{Loc: loc}),
	}

	// Eventos de movimientos: solo si hay broker configurado.
	if cfg.AMQP.Enabled() {
		conn, ch, err := rabbitmq.SetupConn(cfg.AMQP.URL, cfg.AMQP.Exchange, 5, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer conn.Close()
		defer ch.Close()
		opts = append(opts, appinventory.WithPublisher(rabbitmq.NewPublisher(ch, cfg.AMQP.Exchange)))
	}

	controller := appinventory.NewController(stateStorage, log, opts...)
	controller.Init(ctx)

	csvExporter, err := report.NewCSVExporter(cfg.Report.CSVEncoding)
	if err != nil {
		log.Fatal().Err(err).Msg("exportador CSV")
	}
	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.Report.Title, cfg.Report.Subtitle)
	pdfUC := report.NewPDFUseCase(pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.AccessLog(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Control de Inventario API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Controller: controller,
		CSV:        csvExporter,
		PDF:        pdfUC,
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
