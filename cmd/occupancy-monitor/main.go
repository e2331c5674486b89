package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	allocationsrepo "deskhive/internal/allocations/repository"
	"deskhive/internal/monitor"
	"deskhive/internal/workspaces/repository"
	"deskhive/internal/workspaces/service"
	"deskhive/internal/workspaces/validator"
	"deskhive/pkg/config"
	"deskhive/pkg/kafka"
	kafka_config "deskhive/pkg/kafka/config"
	kafka_middleware "deskhive/pkg/kafka/middleware"
)

const (
	ServiceName   = "occupancy-monitor"
	consumerGroup = "deskhive-occupancy-monitor"
	dlqTopic      = "workspace-occupancy-dlq"
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	workspaceRepo := repository.NewMongoWorkspaceRepository(cfg)
	allocationRepo := allocationsrepo.NewMongoAllocationRepository(cfg)
	workspaceService := service.NewWorkspaceService(
		workspaceRepo,
		allocationRepo,
		validator.NewWorkspaceValidator(cfg.Log),
		cfg,
	)

	occupancyMonitor := monitor.NewOccupancyMonitor(workspaceService, cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafka_config.Load(),
		cfg.Log,
		kafka.TopicWorkspaceOccupancy,
		consumerGroup,
		dlqTopic,
		occupancyMonitor.Handle,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.ConsumerLogging(cfg.Log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	cfg.Log.Info("Starting occupancy monitor", "topic", kafka.TopicWorkspaceOccupancy, "group", consumerGroup)
	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Occupancy monitor stopped")
}
