package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"go.uber.org/zap"

	"timetable_backend/internals/configs"
	database "timetable_backend/internals/databases"
	"timetable_backend/internals/features/timetable/calendar"
	"timetable_backend/internals/features/timetable/controller"
	"timetable_backend/internals/features/timetable/gateway"
	"timetable_backend/internals/features/timetable/service"
	helper "timetable_backend/internals/helpers"
	middlewares "timetable_backend/internals/middlewares"
	routes "timetable_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	logger, err := configs.NewLogger(configs.LogLevel)
	if err != nil {
		log.Fatalf("❌ logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.FiberErrorHandler,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing. Timeout request mengikuti timeout generate
	// supaya POST /generate tidak diputus sebelum gateway selesai.
	reqTimeout := configs.GenerationTimeout + 10*time.Second
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), reqTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		logger.Debug("[REQ]",
			zap.String("id", id),
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("dur", time.Since(start)))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	if err := database.ConnectDB(logger); err != nil {
		logger.Fatal("❌ Gagal konek DB", zap.Error(err))
	}
	database.TunePool(logger)
	if configs.AutoMigrate {
		if err := database.Migrate(logger); err != nil {
			logger.Fatal("❌ Gagal migrate", zap.Error(err))
		}
	}
	database.WarmUpQueries(logger)

	// 🗓️ Planner: kalender default + Gemini + repository gorm
	cal := calendar.Default()
	planner := service.NewPlanner(service.Options{
		Calendar:          cal,
		Generator:         gateway.NewGemini(configs.GeminiAPIKey, configs.GeminiModel, cal, logger),
		Repository:        service.NewGormRepository(database.DB, configs.Workspace),
		Logger:            logger,
		MinSubjects:       configs.MinSubjects,
		GenerationTimeout: configs.GenerationTimeout,
	})
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := planner.Load(loadCtx); err != nil {
		loadCancel()
		logger.Fatal("❌ Gagal load timetable", zap.Error(err))
	}
	loadCancel()

	// ⏱ scheduler setelah state siap
	cron, err := service.StartRegenerateCron(configs.RegenerateCron, planner, reqTimeout, logger)
	if err != nil {
		logger.Fatal("❌ TIMETABLE_REGENERATE_CRON tidak valid", zap.Error(err))
	}

	// ✅ Routes
	routes.SetupRoutes(app, controller.NewTimetableController(planner, logger), routes.Options{
		JWTSecret:   configs.JWTSecret,
		HealthCheck: database.Ping,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = reqTimeout + 5*time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.Port
	if port == "" {
		port = os.Getenv("PORT")
	}

	// Start server non-blocking
	go func() {
		logger.Info("✅ Listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if cron != nil {
		<-cron.Stop().Done()
	}
	_ = app.ShutdownWithContext(ctx)
	database.Close()
	logger.Info("👋 server stopped")
}
