package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"greychat/config"
	"greychat/database"
	"greychat/handlers"
	"greychat/middleware"
	"greychat/store"
)

func initLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	initLogger(cfg.LogLevel)

	db, err := database.Open(cfg.MysqlDSN)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.CreateTables(db); err != nil {
		logrus.Fatalf("failed to create tables: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		logrus.Fatalf("failed to create upload directory: %v", err)
	}

	users := store.NewIdentityStore(db)
	relationships := store.NewRelationshipStore(db)
	messages := store.NewMessageStore(db)
	statuses := store.NewStatusStore(db, relationships)
	queries := store.NewQueries(db, users, relationships)

	metrics := middleware.InitMetrics()
	h := handlers.New(cfg, users, relationships, messages, statuses, queries, metrics)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(metrics.RequestCounter())

	h.RegisterRoutes(r)

	logrus.WithField("addr", cfg.ServerAddr).Info("server starting")
	if err := r.Run(cfg.ServerAddr); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}
