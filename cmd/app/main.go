package main

import (
	"blogicum/internal/app"
	"blogicum/pkg/config"
)

// @title           Blogicum Admin API
// @version         1.0
// @description     Staff-only moderation endpoints for categories, locations and posts.
// @description     Requests use the session cookie and must echo the csrftoken cookie in the X-CSRFToken header.

// @host      localhost:8000
// @BasePath  /admin/api

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.HasDefaultSecret() {
		panic("JWT_SECRET must be set in environment variables")
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
