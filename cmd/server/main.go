package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/ACG22333/Antigravity2Api/accounts"
	"github.com/ACG22333/Antigravity2Api/exchange"
	"github.com/ACG22333/Antigravity2Api/internal/config"
	"github.com/ACG22333/Antigravity2Api/oauthflow"
	"github.com/ACG22333/Antigravity2Api/server"
	"github.com/common-nighthawk/go-figure"
	"golang.org/x/time/rate"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	handler, err := buildServer(c)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: ":" + c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(c config.Config) (*server.Server, error) {
	accountRepo, err := accounts.NewFileRepo(c.GetDataFolder())
	if err != nil {
		return nil, fmt.Errorf("accounts.NewFileRepo: %w", err)
	}
	accountManager := accounts.NewManager(accountRepo)

	// Google throttles bursts against the token endpoint; one request a
	// second with a small burst is plenty for a local login flow.
	limiter := rate.NewLimiter(rate.Every(time.Second), 3)
	exchanger := exchange.NewGoogleExchanger(c, limiter)

	sessionRepo := oauthflow.NewInMemoryRepo(c.GetSessionTTL())
	flow := oauthflow.NewService(sessionRepo, exchanger, accountManager, c)

	return server.New(c, flow, accountManager)
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
