package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

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
	"github.com/vbaranceanu/book-advisor/pkg/speech"
	"github.com/vbaranceanu/book-advisor/pkg/vectorstore"
)

const turnTimeout = 2 * time.Minute

var reindex bool

func main() {
	handler := slog.NewTextHandler(os.Stdout, nil)
	slog.SetDefault(slog.New(handler))

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "book-advisor",
		Short: "A terminal-based book recommendation assistant",
		Long:  `book-advisor is a conversational assistant that recommends books from a local library using retrieval-augmented generation, with optional spoken summaries.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := run(); err != nil {
				slog.Error("Fatal error", "error", err)
				os.Exit(1)
			}
		},
	}

	rootCmd.Flags().BoolVar(&reindex, "reindex", false, "Re-embed the library documents even if the store is populated")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.EnsureVectorExtension(ctx); err != nil {
		return fmt.Errorf("failed to enable pgvector: %w", err)
	}
	if err := db.CreatePassagesTable(ctx, cfg.CollectionName, cfg.EmbeddingDim); err != nil {
		return fmt.Errorf("failed to create passages table: %w", err)
	}

	store, err := vectorstore.NewStore(db.Pool, cfg.CollectionName)
	if err != nil {
		return err
	}

	embedder, err := embeddings.NewOpenAIEmbedder(cfg.EmbeddingModel, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	if err != nil {
		return err
	}

	count, err := store.CountPassages(ctx)
	if err != nil {
		return err
	}
	if count == 0 || reindex {
		indexer := ingest.NewIndexer(store, embedder, cfg.ChunkSize, cfg.ChunkOverlap)
		if _, err := indexer.IndexDirectory(ctx, cfg.LibraryDir); err != nil {
			return err
		}
	} else {
		slog.Info("Passage store already populated", "passages", count)
	}

	lib, err := library.Load(cfg.SummariesPath)
	if err != nil {
		return err
	}
	slog.Info("Loaded summary store", "titles", lib.Len())

	llm, err := clients.OpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel)
	if err != nil {
		return err
	}

	retriever := retrieval.NewVectorRetriever(store, embedder)
	engine := advisor.NewEngine(llm, retriever, cfg.TopK)
	summaryRouter := router.New(llm, lib)
	bot := assistant.New(filter.New(filter.DefaultDenylist()), lib, summaryRouter, engine)
	synth := speech.NewSynthesizer(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.TTSModel, cfg.TTSVoice)

	return chatLoop(ctx, bot, synth, cfg.AudioOutPath)
}

func chatLoop(ctx context.Context, bot *assistant.Assistant, synth *speech.Synthesizer, audioPath string) error {
	fmt.Println("📚 Book Advisor — tell me what you feel like reading.")
	fmt.Println("Examples:")
	fmt.Println("  - I want a book about friendship and magic")
	fmt.Println("  - What is 1984 about?")
	fmt.Println("  - Something dark with war themes")
	fmt.Println("Type 'exit' to quit.")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		if ctx.Err() != nil {
			fmt.Println("\nGoodbye!")
			return nil
		}

		fmt.Print("You: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("\nGoodbye!")
			return nil
		}
		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			fmt.Println("Goodbye!")
			return nil
		}

		turnCtx, cancel := context.WithTimeout(ctx, turnTimeout)
		answer, err := bot.Reply(turnCtx, query)
		cancel()
		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Println("\nGoodbye!")
				return nil
			}
			slog.Error("Turn failed", "error", err)
			fmt.Println("Something went wrong on my side. Please try again.")
			continue
		}

		fmt.Println()
		fmt.Println(answer)
		fmt.Println()

		offerAudio(ctx, reader, synth, answer, audioPath)
	}
}

func offerAudio(ctx context.Context, reader *bufio.Reader, synth *speech.Synthesizer, answer, audioPath string) {
	narration, err := speech.FormatForNarration(answer)
	if err != nil {
		return
	}

	fmt.Print("Press 'p' to play audio, 's' to save MP3 only, or Enter to skip: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return
	}
	choice := strings.ToLower(strings.TrimSpace(line))
	if choice != "p" && choice != "s" {
		return
	}

	ttsCtx, cancel := context.WithTimeout(ctx, turnTimeout)
	defer cancel()

	path, err := synth.SynthesizeToFile(ttsCtx, narration, audioPath)
	if err != nil {
		slog.Error("Speech synthesis failed", "error", err)
		return
	}
	fmt.Printf("Saved audio to %s\n", path)

	if choice == "p" {
		if err := speech.Play(ctx, path); err != nil {
			slog.Warn("Playback unavailable", "error", err)
		}
	}
}
