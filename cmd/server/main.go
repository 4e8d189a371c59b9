package main

import (
	"log"

	"github.com/adilg123/file-compressor/internal/api"
	"github.com/adilg123/file-compressor/internal/config"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxFileSize

	api.SetupRoutes(router, cfg)

	log.Printf("compression service listening on :%s (%s, max upload %d bytes)",
		cfg.Port, cfg.Environment, cfg.MaxFileSize)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
