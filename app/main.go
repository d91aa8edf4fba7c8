package main

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"registro/config"
	"registro/domain"
	"registro/services/registro/delivery"
	"registro/services/registro/repository"
	"registro/services/registro/usecase"
)

var log *logrus.Logger
var wg sync.WaitGroup

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on the environment")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

// buildRepositories is the single point where a storage backend is chosen.
// Everything downstream receives the repositories by explicit injection.
func buildRepositories(ctx context.Context) (domain.PersonaRepo, domain.AutoRepo, func()) {
	backend := config.GetStoreBackend()
	log.Infof("Using %s store backend", backend)

	switch backend {
	case config.StorePostgres:
		pool, err := config.BootDB(ctx)
		if err != nil {
			log.Fatalf("Failed to boot DB: %v", err)
		}
		return repository.NewPersonaPostgresRepository(pool), repository.NewAutoPostgresRepository(pool), pool.Close

	case config.StoreRedis:
		client, err := config.BootRedis(ctx)
		if err != nil {
			log.Fatalf("Failed to boot redis: %v", err)
		}
		return repository.NewPersonaRedisRepository(client), repository.NewAutoRedisRepository(client), func() {
			if err := client.Close(); err != nil {
				log.Errorf("Error closing redis client: %v", err)
			}
		}

	case config.StoreTransient:
		return repository.NewPersonaMemoryRepository(), repository.NewAutoMemoryRepository(), func() {}

	default:
		log.Fatalf("Unknown store backend %q (supported: transient, postgres, redis)", backend)
		return nil, nil, nil
	}
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	// CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	personaRepo, autoRepo, closeStore := buildRepositories(context.Background())
	defer closeStore()

	timeout := config.GetQueryTimeout()
	personaUC := usecase.NewPersonaUseCase(personaRepo, autoRepo, timeout, log)
	autoUC := usecase.NewAutoUseCase(autoRepo, personaRepo, timeout, log)

	delivery.NewPersonaDelivery(app, personaUC, log)
	delivery.NewAutoDelivery(app, autoUC, log)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Server shut down gracefully")
}
