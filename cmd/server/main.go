package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"go.etcd.io/bbolt"

	"github.com/taskhive/taskhive-server/internal/config"
	"github.com/taskhive/taskhive-server/server"
	taskboltrepo "github.com/taskhive/taskhive-server/tasks/boltrepo"
	"github.com/taskhive/taskhive-server/users"
	userboltrepo "github.com/taskhive/taskhive-server/users/boltrepo"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running server: %s\n", err)
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

	db, err := openDatabase(c.GetDataFile())
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo, err := userboltrepo.NewRepository(db)
	if err != nil {
		return fmt.Errorf("user repository: %w", err)
	}
	taskRepo, err := taskboltrepo.NewRepository(db)
	if err != nil {
		return fmt.Errorf("task repository: %w", err)
	}

	srv, err := server.New(c, userRepo, taskRepo)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	if err := seedAdmin(c, userRepo); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func openDatabase(path string) (*bbolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return db, nil
}

// seedAdmin creates an initial administrator account when ADMIN_EMAIL and
// ADMIN_PASSWORD are set and no account exists for that email yet.
func seedAdmin(c config.Config, userRepo users.UserRepo) error {
	email := config.GetEnv("ADMIN_EMAIL", "")
	password := config.GetEnv("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return nil
	}
	if _, err := userRepo.GetByEmail(email); err == nil {
		return nil
	}

	admin := &users.User{
		Name:     config.GetEnv("ADMIN_NAME", "Administrator"),
		Title:    "Administrator",
		Role:     "Admin",
		Email:    email,
		IsAdmin:  true,
		IsActive: true,
	}
	if err := admin.SetPassword(password, c.GetBcryptCost()); err != nil {
		return err
	}
	return userRepo.Upsert(admin)
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
