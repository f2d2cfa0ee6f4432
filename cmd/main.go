package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/unimindapp/unimind-backend/internal/auth"
	"github.com/unimindapp/unimind-backend/internal/config"
	"github.com/unimindapp/unimind-backend/internal/features"
	"github.com/unimindapp/unimind-backend/internal/handlers"
	"github.com/unimindapp/unimind-backend/internal/middleware"
	"github.com/unimindapp/unimind-backend/internal/model"
	"github.com/unimindapp/unimind-backend/internal/model/mock"
	"github.com/unimindapp/unimind-backend/internal/platform/logger"
	"github.com/unimindapp/unimind-backend/internal/platform/shutdown"
	"github.com/unimindapp/unimind-backend/internal/server"
	"github.com/unimindapp/unimind-backend/internal/services"
	"github.com/unimindapp/unimind-backend/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "unimind-backend: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	// Verifier
	verifier, err := auth.NewFirebaseVerifier(nil, cfg.FirebaseProjectID)
	if err != nil {
		return fmt.Errorf("init token verifier: %w", err)
	}

	// Model — loaded once at startup, read-only afterwards.
	var clf model.Classifier
	if cfg.ModelPath == "mock" {
		log.Warn("using mock classifier, predictions are not real")
		clf = mock.New(len(features.FieldOrder))
	} else {
		clf, err = model.Load(ctx, cfg.ModelPath, cfg.ServiceAccountPath)
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
	}
	log.Info("model loaded", "path", cfg.ModelPath, "features", clf.NumFeatures())

	// Store
	st, err := store.New(ctx, log, cfg.FirebaseProjectID, cfg.ServiceAccountPath, cfg.Firestore.AssessmentsCollection, cfg.Firestore.UsersCollection)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer st.Close()

	// Services
	predictionService := services.NewPredictionService(log, clf)
	assessmentService := services.NewAssessmentService(log, st)
	userService := services.NewUserService(log, st)

	// Handlers + middleware
	authMiddleware := middleware.NewAuthMiddleware(log, verifier)
	router := server.NewRouter(server.RouterConfig{
		Log:               log,
		AuthMiddleware:    authMiddleware,
		HealthHandler:     handlers.NewHealthHandler(clf),
		PredictHandler:    handlers.NewPredictHandler(predictionService),
		AssessmentHandler: handlers.NewAssessmentHandler(assessmentService),
		UserHandler:       handlers.NewUserHandler(userService),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           http.MaxBytesHandler(router, cfg.HTTP.MaxRequestBytes),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTP.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
