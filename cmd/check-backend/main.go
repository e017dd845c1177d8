package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"lankarail-console/internal/auth"
	"lankarail-console/internal/config"
	"lankarail-console/internal/logger"
	"lankarail-console/internal/models"
	"lankarail-console/internal/services"
)

// check-backend signs in to the railway API with the given account and
// prints what the admin dashboard would show.
func main() {
	email := flag.String("email", os.Getenv("CHECK_EMAIL"), "account email")
	password := flag.String("password", os.Getenv("CHECK_PASSWORD"), "account password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	appLogger, err := logger.New(cfg.Server.Env, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := services.NewAPIClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, appLogger, nil)
	fmt.Printf("Backend: %s\n", cfg.Backend.BaseURL)
	if err := run(ctx, client, models.Credentials{Email: *email, Password: *password}, os.Stdout); err != nil {
		cancel()
		log.Fatal(err)
	}
}

// run signs in, reports, and always signs out again once login succeeded
func run(ctx context.Context, client *services.APIClient, creds models.Credentials, out io.Writer) error {
	authService := services.NewAuthService(client)

	sess, err := authService.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login failed: %s", services.ValidationMessage(err))
	}
	defer authService.Logout(ctx, sess)

	fmt.Fprintf(out, "Signed in as: %s\n", sess.DisplayName())
	fmt.Fprintf(out, "User ID: %d\n", sess.UserID)
	if claims, err := auth.ParseToken(sess.Token); err == nil && !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "Token expires: %s\n", claims.ExpiresAt.Format(time.RFC3339))
	}

	if !sess.IsAdmin() {
		bookings, err := services.NewBookingService(client).MyBookings(ctx, sess)
		if err != nil {
			return fmt.Errorf("failed to load bookings: %s", services.UserMessage(err))
		}
		fmt.Fprintf(out, "Bookings: %d\n", len(bookings))
		return nil
	}

	stats, err := services.NewAdminService(client).Stats(ctx, sess)
	if err != nil {
		return fmt.Errorf("failed to load stats: %s", services.UserMessage(err))
	}
	fmt.Fprintf(out, "Trains: %d\n", stats.TotalTrains)
	fmt.Fprintf(out, "Schedules: %d\n", stats.TotalSchedules)
	fmt.Fprintf(out, "Pending bookings: %d\n", stats.PendingBookings)
	fmt.Fprintf(out, "Users: %d\n", stats.TotalUsers)
	return nil
}
