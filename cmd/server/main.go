package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/hausbuch/backend/internal/api"
	"github.com/hausbuch/backend/internal/service"
	"github.com/hausbuch/backend/internal/store"
)

func main() {
	// Local overrides from .env; absent file is fine.
	_ = godotenv.Load()

	log := newLogger()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8111"
	}

	ctx := context.Background()

	useMemoryStore := os.Getenv("USE_MEMORY_STORE") == "true" || os.Getenv("ENV") == "local"

	var storeImpl store.Store
	if useMemoryStore {
		log.Info("using in-memory store for local development")
		storeImpl = store.NewMemoryStore()
	} else {
		projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
		if projectID == "" {
			log.Fatal("GOOGLE_CLOUD_PROJECT is required when not using the memory store")
		}

		var opts []option.ClientOption
		if creds := os.Getenv("FIRESTORE_CREDENTIALS_FILE"); creds != "" {
			opts = append(opts, option.WithCredentialsFile(creds))
		}

		client, err := firestore.NewClient(ctx, projectID, opts...)
		if err != nil {
			log.WithError(err).Fatal("failed to create Firestore client")
		}
		defer client.Close()

		storeImpl = store.NewFirestoreStore(client)
	}

	recurringService := service.NewRecurringService(storeImpl, log)
	forecastService := service.NewForecastService(storeImpl)

	router := api.NewRouter(recurringService, forecastService, log, allowedOrigins())

	log.WithField("port", port).Info("starting server")
	if err := router.Run(fmt.Sprintf(":%s", port)); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func allowedOrigins() []string {
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		return strings.Split(raw, ",")
	}
	// Local frontend dev server.
	return []string{"http://localhost:1234", "http://127.0.0.1:1234"}
}
