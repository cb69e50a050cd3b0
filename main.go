package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ytdigest/ytdigest/captions"
	"github.com/ytdigest/ytdigest/config"
	"github.com/ytdigest/ytdigest/handlers"
	"github.com/ytdigest/ytdigest/logger"
	"github.com/ytdigest/ytdigest/services/languages"
	"github.com/ytdigest/ytdigest/services/summary"
	"github.com/ytdigest/ytdigest/services/transcript"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using process environment")
	}

	cfg := config.LoadConfig()
	if err := config.ValidateConfig(cfg); err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	if err := logger.Init(cfg.LogDir, cfg.Debug); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logging")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	captionClient := captions.NewClient(httpClient)

	strategies := []transcript.Strategy{
		transcript.NewStructuredStrategy(captionClient),
		transcript.NewOfficialStrategy(cfg.YouTubeAPIKey),
		transcript.NewClientLibraryStrategy(httpClient),
		transcript.NewScrapeStrategy(captionClient),
	}

	transcriptService := transcript.NewService(captionClient, strategies, transcript.Config{
		MaxTranscriptChars: cfg.MaxTranscriptChars,
	})
	languageService := languages.NewService(captionClient)
	summaryService := summary.NewService([]summary.Provider{
		summary.NewGeminiProvider(cfg.GeminiModel),
		summary.NewOpenAIProvider(cfg.OpenAIModel),
		summary.NewClaudeProvider(cfg.AnthropicModel),
	}, summary.Config{
		MaxInputChars: cfg.MaxSummaryInputChars,
		Timeout:       cfg.SummaryTimeout,
	})

	mux := http.NewServeMux()
	handler := handlers.New(transcriptService, languageService, summaryService, cfg)
	handler.Register(mux)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logrus.WithField("port", cfg.ServerPort).Info("Listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logrus.Info("Shutting down the server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("Server shutdown failed")
	}
}
