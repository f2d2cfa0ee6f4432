package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/unimindapp/unimind-backend/internal/platform/envutil"
)

type HTTPConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxRequestBytes   int64
}

type FirestoreConfig struct {
	AssessmentsCollection string
	UsersCollection       string
}

type Config struct {
	Env string

	HTTP HTTPConfig

	// FirebaseProjectID scopes token verification: it is both the required
	// audience and the tail of the accepted issuer.
	FirebaseProjectID string

	// ServiceAccountPath is the credentials file for Firestore/GCS clients.
	// Empty falls back to application-default credentials.
	ServiceAccountPath string

	// ModelPath is a local file, a gs://bucket/key object, or the literal
	// "mock" for local development.
	ModelPath string

	Firestore FirestoreConfig
}

func Load() (*Config, error) {
	cfg := &Config{
		Env: envutil.Str("LOG_MODE", "development"),
		HTTP: HTTPConfig{
			Addr:              ":" + envutil.Str("PORT", "8080"),
			ReadHeaderTimeout: time.Duration(envutil.Int("HTTP_READ_HEADER_TIMEOUT_SECONDS", 5)) * time.Second,
			IdleTimeout:       time.Duration(envutil.Int("HTTP_IDLE_TIMEOUT_SECONDS", 120)) * time.Second,
			ShutdownTimeout:   time.Duration(envutil.Int("HTTP_SHUTDOWN_TIMEOUT_SECONDS", 15)) * time.Second,
			MaxRequestBytes:   int64(envutil.Int("HTTP_MAX_REQUEST_BYTES", 1<<20)),
		},
		FirebaseProjectID:  envutil.Str("FIREBASE_PROJECT_ID", ""),
		ServiceAccountPath: envutil.Str("SERVICE_ACCOUNT_PATH", ""),
		ModelPath:          envutil.Str("MODEL_PATH", "model/model.json"),
		Firestore: FirestoreConfig{
			AssessmentsCollection: envutil.Str("FIRESTORE_ASSESSMENTS_COLLECTION", "assessments"),
			UsersCollection:       envutil.Str("FIRESTORE_USERS_COLLECTION", "users"),
		},
	}

	if strings.TrimSpace(cfg.FirebaseProjectID) == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if strings.TrimSpace(cfg.ModelPath) == "" {
		return nil, errors.New("MODEL_PATH is required")
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		return nil, fmt.Errorf("invalid HTTP_MAX_REQUEST_BYTES: %d", cfg.HTTP.MaxRequestBytes)
	}
	return cfg, nil
}
