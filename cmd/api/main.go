package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/hotelops/minibar-backend/internal/database"
	"github.com/hotelops/minibar-backend/internal/modules/auth"
	"github.com/hotelops/minibar-backend/internal/modules/catalog"
	"github.com/hotelops/minibar-backend/internal/modules/checkout"
	"github.com/hotelops/minibar-backend/internal/modules/role"
	"github.com/hotelops/minibar-backend/internal/modules/room"
	"github.com/hotelops/minibar-backend/internal/modules/stats"
	"github.com/hotelops/minibar-backend/internal/modules/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	var logger *zap.Logger
	var err error
	if os.Getenv("ENVIRONMENT") == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("ping database", zap.Error(err))
	}

	ctx := context.Background()
	if err := database.InitSchema(ctx, db); err != nil {
		logger.Fatal("init schema", zap.Error(err))
	}
	if os.Getenv("SEED_ON_EMPTY") != "false" {
		seeded, err := database.Seed(ctx, db)
		if err != nil {
			logger.Fatal("seed database", zap.Error(err))
		}
		if seeded {
			logger.Info("database seeded with starter data")
		}
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logger.Fatal("create upload dir", zap.Error(err))
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	guard := auth.NewGuard([]byte(secret))

	// ── Identity & access ───────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService, guard).RegisterRoutes(router)

	roleRepo := role.NewPostgresRepository(db)
	roleService := role.NewService(roleRepo)
	role.NewHandler(roleService, guard).RegisterRoutes(router)

	authService := auth.NewService(userRepo, roleRepo, []byte(secret))
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Catalog & rooms ─────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo, logger)
	catalog.NewHandler(catalogService, uploadDir, guard).RegisterRoutes(router)

	roomRepo := room.NewPostgresRepository(db)
	roomService := room.NewService(roomRepo, logger)
	room.NewHandler(roomService, guard).RegisterRoutes(router)

	// ── Checkout workflow & reporting ───────────────────────
	checkoutRepo := checkout.NewPostgresRepository(db)
	checkoutService := checkout.NewService(checkoutRepo, roomRepo, catalogRepo, logger)
	checkout.NewHandler(checkoutService, guard).RegisterRoutes(router)

	statsService := stats.NewService(checkoutRepo, logger)
	stats.NewHandler(statsService, guard).RegisterRoutes(router)

	// ── Static product images ───────────────────────────────
	router.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(uploadDir))))

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("minibar API server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
