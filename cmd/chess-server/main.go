// Package main serves hot-seat chess games over a RESTful API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chessrules/internal/service"
	"chessrules/internal/transport/http"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits)")
		rateLimit   = flag.Int("rate-limit", 0, "Requests per second per client (0 uses the mode default)")
		waitTimeout = flag.Duration("wait-timeout", service.WaitTimeout, "Long-poll timeout for game updates")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
	)
	flag.Parse()

	if *pidLock && *pidPath == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}

	if *pidPath != "" {
		pf, err := acquirePIDFile(*pidPath, *pidLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer pf.release()
		log.Printf("PID file created at: %s (lock: %v)", *pidPath, *pidLock)
	}

	svc := service.New(*waitTimeout)
	app := http.NewFiberApp(svc, http.Config{
		DevMode:     *dev,
		RateLimit:   *rateLimit,
		WaitTimeout: *waitTimeout,
	})

	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	listenErr := make(chan error, 1)
	go func() {
		log.Printf("Chess API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("API Version: v1")
		switch {
		case *rateLimit > 0:
			log.Printf("Rate Limit: %d requests/second per IP", *rateLimit)
		case *dev:
			log.Printf("Rate Limit: 20 requests/second per IP (DEV MODE)")
		default:
			log.Printf("Rate Limit: 10 requests/second per IP")
		}
		log.Printf("Long-poll timeout: %v", *waitTimeout)
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		listenErr <- app.Listen(apiAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-listenErr:
		log.Printf("API server listen error: %v", err)
	}

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	// Waiters go first so parked long-polls return before the listener drains
	err := errors.Join(
		svc.Shutdown(gracefulShutdownTimeout),
		app.ShutdownWithContext(shutdownCtx),
	)
	if err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	log.Println("Server exited")
}
