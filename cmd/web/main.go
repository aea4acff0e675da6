package main

import (
	"net"
	"os"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/tomz197/debugbird/internal/config"
	"github.com/tomz197/debugbird/internal/logging"
	"github.com/tomz197/debugbird/internal/portfolio"
	"github.com/tomz197/debugbird/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	logger := logging.New(os.Stderr, config.GetEnv("LOG_LEVEL", "info"))

	if config.GetEnv("GIN_MODE", "") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := web.NewRouter(web.Options{
		Content: portfolio.DefaultContent(),
		SSHHost: config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		SSHPort: config.GetEnv("SSH_DISPLAY_PORT", "22"),
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("failed to build router", "err", err)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := r.Run(addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
