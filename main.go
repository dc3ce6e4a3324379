package main

import (
	"context"
	"log"
	"time"

	"fupa/config"
	"fupa/jobs"
	"fupa/routes"
)

func main() {
	config.LoadEnv()

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	ctx := context.Background()
	app, err := config.InitApp(ctx, settings)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	svc, err := routes.NewServices(app)
	if err != nil {
		log.Fatalf("Failed to build services: %v", err)
	}

	if err := jobs.InitCronJobs(app.Cron, svc.Announcements); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}
	defer app.Cron.Stop()

	routes.SetupRoutes(app, svc)

	// A failed install is logged and requests go straight to the origin.
	installCtx, cancel := context.WithTimeout(ctx, time.Minute)
	if _, err := svc.Shell.Register(installCtx, svc.ShellManifest); err != nil {
		log.Printf("Warning: shell cache not installed: %v", err)
	}
	cancel()

	log.Println("Server starting on port " + settings.Port + "...")
	if err := app.Router.Run(":" + settings.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
