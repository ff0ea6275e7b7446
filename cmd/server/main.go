package main

import (
	"log"

	_ "github.com/sebaxchen/lookSocial/docs"
	"github.com/sebaxchen/lookSocial/internal/config"
	"github.com/sebaxchen/lookSocial/internal/server"
)

// @title           NoteTo API
// @version         1.0
// @description     Tasks, groups, team, shared files and the social feed.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
