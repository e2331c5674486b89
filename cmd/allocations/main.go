package main

import (
	"os"

	"deskhive/internal/allocations/events"
	"deskhive/internal/allocations/handler"
	"deskhive/internal/allocations/repository"
	"deskhive/internal/allocations/scoring"
	"deskhive/internal/allocations/service"
	"deskhive/internal/allocations/validator"
	requestersrepo "deskhive/internal/requesters/repository"
	workspacesrepo "deskhive/internal/workspaces/repository"
	"deskhive/pkg/app"
	"deskhive/pkg/config"
	"deskhive/pkg/kafka"
	kafka_config "deskhive/pkg/kafka/config"
	kafka_middleware "deskhive/pkg/kafka/middleware"
)

const ServiceName = "allocations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	allocationService, publisher := initServices(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Warn("Failed to close event publisher", "error", err)
		}
	}()

	cfg.Log.Info("Starting Allocations service")
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAllocationHandler(allocationService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.AllocationService, events.Publisher) {
	allocationValidator := validator.NewAllocationValidator(cfg.Log)
	allocationRepo := repository.NewMongoAllocationRepository(cfg)
	lockRepo := repository.NewAllocationLockRepository(cfg)
	workspaceRepo := workspacesrepo.NewMongoWorkspaceRepository(cfg)
	requesterRepo := requestersrepo.NewMongoRequesterRepository(cfg)

	var classifier scoring.Classifier
	if cfg.ClassifierURL != "" {
		classifier = scoring.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierTimeout)
		cfg.Log.Info("Suitability classifier configured", "timeout", cfg.ClassifierTimeout)
	} else {
		cfg.Log.Info("No suitability classifier configured, using rule-based fallback")
	}

	publisher := initPublisher(cfg)

	allocationService := service.NewAllocationService(
		allocationRepo,
		lockRepo,
		workspaceRepo,
		requesterRepo,
		classifier,
		publisher,
		allocationValidator,
		cfg,
	)

	cfg.Log.Info("Allocation service initialized", "database", cfg.MongoDatabaseName)
	return allocationService, publisher
}

func initPublisher(cfg *config.Config) events.Publisher {
	if os.Getenv(kafka_config.EnvKafkaBrokers) == "" {
		cfg.Log.Info("No Kafka brokers configured, allocation events disabled")
		return events.NopPublisher{}
	}

	producer, err := kafka.NewProducer(kafka_config.Load(), kafka.TopicAllocationEvents)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.ProducerLogging(cfg.Log))

	return events.NewKafkaPublisher(producer, cfg.Log, ServiceName)
}
