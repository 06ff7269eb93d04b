package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/stemsi/gamesurvey-backend/internal/config"
	"github.com/stemsi/gamesurvey-backend/internal/database"
	"github.com/stemsi/gamesurvey-backend/internal/logger"
	"github.com/stemsi/gamesurvey-backend/internal/repository"
	"github.com/stemsi/gamesurvey-backend/internal/service"
	"golang.org/x/term"
)

const maxUsernameLen = 150

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	// Registration does not touch sessions, so no Redis is needed here.
	authService := service.NewAuthService(cfg, nil)
	accountService := service.NewAccountService(repository.NewAccountRepository(pool), authService, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Account ===")
	fmt.Println("The first account ever created becomes the super-admin.")

	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" || len(username) > maxUsernameLen {
		fmt.Printf("Error: Username is required and at most %d characters\n", maxUsernameLen)
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Newline after password input
	if err != nil {
		fmt.Println("Error reading password")
		return
	}
	password := string(bytePassword)
	if password == "" || len(password) > service.MaxPasswordBytes {
		fmt.Printf("Error: Password is required and at most %d bytes\n", service.MaxPasswordBytes)
		return
	}

	fmt.Print("Confirm Password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil || string(confirm) != password {
		fmt.Println("Error: Passwords do not match")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	account, err := accountService.Register(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			fmt.Println("Error: Username exists.")
			return
		}
		log.Fatal().Err(err).Msg("Failed to create account")
	}

	role := "player"
	if account.IsSuperAdmin {
		role = "super-admin"
	}
	fmt.Printf("\nSuccess! Account '%s' created with ID %d (%s)\n", account.Username, account.ID, role)
}
