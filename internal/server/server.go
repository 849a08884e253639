package server

import (
	"context"
	"log/slog"

	"backend-workoutmap/internal/config"
	"backend-workoutmap/internal/shared/geo"
	"backend-workoutmap/internal/storage"
	"backend-workoutmap/internal/stream"
	"backend-workoutmap/internal/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Stream   *stream.Hub
	View     *stream.View
	Tracker  *tracking.Service
	Locator  *tracking.DeferredLocator
	Workouts *storage.Service
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	topic := cfg.StreamTopic
	if topic == "" {
		topic = storage.DefaultKey
	}

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}
	s.View = stream.NewView(s.Stream, topic)
	s.Workouts = storage.NewService(newKV(cfg, db, redisClient), cfg.StorageKey)

	var locator tracking.Locator
	if cfg.Locator == config.LocatorFixed {
		locator = tracking.FixedLocator{Coords: geo.Coords{Lat: cfg.DefaultLat, Lng: cfg.DefaultLng}}
	} else {
		s.Locator = tracking.NewDeferredLocator()
		locator = s.Locator
	}

	s.Tracker = tracking.NewService(tracking.Deps{
		Store:   s.Workouts,
		Map:     s.View,
		List:    s.View,
		Form:    s.View,
		Alerts:  s.View,
		Locator: locator,
	}, tracking.Options{MapZoom: cfg.MapZoom, FocusZoom: cfg.FocusZoom})

	registerRoutes(s)
	s.Tracker.Initialize(context.Background())
	return s
}

// newKV picks the storage backend, falling back to memory when the
// configured one has no connection.
func newKV(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) storage.KV {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		if db != nil {
			kv := storage.NewPostgresKV(db)
			if err := kv.EnsureSchema(context.Background()); err != nil {
				slog.Error("ensure kv_store schema", "error", err)
			}
			return kv
		}
	case config.DriverRedis, "":
		if redisClient != nil {
			return storage.NewRedisKV(redisClient)
		}
	case config.DriverMemory:
		return storage.NewMemoryKV()
	}
	slog.Warn("storage backend unavailable, keeping workouts in memory", "driver", cfg.StorageDriver)
	return storage.NewMemoryKV()
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	tracking.RegisterRoutes(s.App.Group("/tracker"), s.Tracker, s.Locator)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, s.View)
}
