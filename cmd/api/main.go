package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appexport "github.com/jhoicas/dc-flow-dashboard/internal/application/export"
	"github.com/jhoicas/dc-flow-dashboard/internal/application/summary"
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/repository"
	"github.com/jhoicas/dc-flow-dashboard/internal/infrastructure/csvsource"
	infraexport "github.com/jhoicas/dc-flow-dashboard/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/dc-flow-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/dc-flow-dashboard/internal/infrastructure/postgres"
	"github.com/jhoicas/dc-flow-dashboard/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/dc-flow-dashboard/internal/interfaces/http"
	"github.com/jhoicas/dc-flow-dashboard/pkg/config"
	"github.com/jhoicas/dc-flow-dashboard/pkg/logger"
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
		Str("driver", cfg.Source.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repo, closeSource, err := openSource(ctx, cfg.Source, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("origen de datos")
	}
	defer closeSource()

	// Carga única de ambos flujos; los errores por flujo quedan en la sesión.
	session := summary.LoadSession(ctx, repo, log.Named("session"))

	csvWriter, err := infraexport.NewCSVWriter(cfg.Export.Dir, cfg.Export.Encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("exportación")
	}
	writers := map[string]appexport.RowWriter{
		summary.FormatCSV:  csvWriter,
		summary.FormatXLSX: infraexport.NewXLSXWriter(cfg.Export.Dir),
	}
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	summaryUC := summary.NewSummaryUseCase(session, writers, pdfGenerator, log.Named("summary"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "DC Flow Dashboard API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{SummaryUC: summaryUC})

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

// openSource abre el origen configurado y devuelve su función de cierre.
func openSource(ctx context.Context, src config.SourceConfig, db config.DBConfig) (repository.MovementRepository, func(), error) {
	switch src.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, db)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return postgres.NewMovementRepository(pool, src.InboundTable, src.OutboundTable), pool.Close, nil
	case config.DriverSQLite:
		conn, err := sqlite.Open(src.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewMovementRepository(conn, src.InboundTable, src.OutboundTable), func() { conn.Close() }, nil
	case config.DriverCSV:
		return csvsource.NewMovementRepository(src.CSVInbound, src.CSVOutbound), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("driver no soportado: %s", src.Driver)
	}
}
