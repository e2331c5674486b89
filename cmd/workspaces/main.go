package main

import (
	allocationsrepo "deskhive/internal/allocations/repository"
	"deskhive/internal/workspaces/handler"
	"deskhive/internal/workspaces/repository"
	"deskhive/internal/workspaces/service"
	"deskhive/internal/workspaces/validator"
	"deskhive/pkg/app"
	"deskhive/pkg/config"
)

const ServiceName = "workspaces"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Workspaces service")
	workspaceService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewWorkspaceHandler(workspaceService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.WorkspaceService {
	workspaceValidator := validator.NewWorkspaceValidator(cfg.Log)
	workspaceRepo := repository.NewMongoWorkspaceRepository(cfg)
	allocationRepo := allocationsrepo.NewMongoAllocationRepository(cfg)

	workspaceService := service.NewWorkspaceService(
		workspaceRepo,
		allocationRepo,
		workspaceValidator,
		cfg,
	)

	cfg.Log.Info("Workspace service initialized", "database", cfg.MongoDatabaseName)
	return workspaceService
}
