package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vbaranceanu/book-advisor/pkg/advisor"
	"github.com/vbaranceanu/book-advisor/pkg/assistant"
	"github.com/vbaranceanu/book-advisor/pkg/clients"
	"github.com/vbaranceanu/book-advisor/pkg/config"
	"github.com/vbaranceanu/book-advisor/pkg/database"
	"github.com/vbaranceanu/book-advisor/pkg/embeddings"
	"github.com/vbaranceanu/book-advisor/pkg/filter"
	"github.com/vbaranceanu/book-advisor/pkg/ingest"
	"github.com/vbaranceanu/book-advisor/pkg/library"
	"github.com/vbaranceanu/book-advisor/pkg/retrieval"
	"github.com/vbaranceanu/book-advisor/pkg/router"
	"github.com/vbaranceanu/book-advisor/pkg/server"
	"github.com/vbaranceanu/book-advisor/pkg/vectorstore"
)

func main() {
	handler := slog.NewTextHandler(os.Stdout, nil)
	slog.SetDefault(slog.New(handler))

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.EnsureVectorExtension(ctx); err != nil {
		slog.Error("Failed to enable pgvector", "error", err)
		os.Exit(1)
	}
	if err := db.CreatePassagesTable(ctx, cfg.CollectionName, cfg.EmbeddingDim); err != nil {
		slog.Error("Failed to create passages table", "error", err)
		os.Exit(1)
	}

	store, err := vectorstore.NewStore(db.Pool, cfg.CollectionName)
	if err != nil {
		slog.Error("Failed to open passage store", "error", err)
		os.Exit(1)
	}

	embedder, err := embeddings.NewOpenAIEmbedder(cfg.EmbeddingModel, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	if err != nil {
		slog.Error("Failed to create embedder", "error", err)
		os.Exit(1)
	}

	count, err := store.CountPassages(ctx)
	if err != nil {
		slog.Error("Failed to count passages", "error", err)
		os.Exit(1)
	}
	if count == 0 {
		indexer := ingest.NewIndexer(store, embedder, cfg.ChunkSize, cfg.ChunkOverlap)
		if _, err := indexer.IndexDirectory(ctx, cfg.LibraryDir); err != nil {
			slog.Error("Failed to index library", "error", err)
			os.Exit(1)
		}
	}

	lib, err := library.Load(cfg.SummariesPath)
	if err != nil {
		slog.Error("Failed to load summary store", "error", err)
		os.Exit(1)
	}

	llm, err := clients.OpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel)
	if err != nil {
		slog.Error("Failed to create chat client", "error", err)
		os.Exit(1)
	}

	retriever := retrieval.NewVectorRetriever(store, embedder)
	engine := advisor.NewEngine(llm, retriever, cfg.TopK)
	summaryRouter := router.New(llm, lib)
	bot := assistant.New(filter.New(filter.DefaultDenylist()), lib, summaryRouter, engine)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	server.NewHandler(bot).RegisterRoutes(r)

	slog.Info("Server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
