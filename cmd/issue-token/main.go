// Command issue-token checks a credential against the portal's account
// table and prints a signed JWT, which is handy for driving the API with
// curl during development.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/svuportal/portal-backend/internal/config"
	"github.com/svuportal/portal-backend/internal/logger"
	"github.com/svuportal/portal-backend/internal/model"
	"github.com/svuportal/portal-backend/internal/repository"
	"github.com/svuportal/portal-backend/internal/service"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()
	cfg.LoginDelay = 0

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Initialize Service ────────────────────────────────────────────
	credentialRepo := repository.NewCredentialRepository()
	authService := service.NewAuthService(cfg, credentialRepo, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Issue Portal Token ===")

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Role
	fmt.Print("Enter Role (student/teacher): ")
	roleInput, _ := reader.ReadString('\n')
	role := model.Role(strings.TrimSpace(roleInput))
	if !role.Valid() {
		fmt.Println("Error: Role must be student or teacher")
		return
	}

	// Password (hidden)
	fmt.Print("Enter Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}

	identity, err := authService.Authenticate(ctx, email, string(passwordBytes), role)
	if err != nil {
		fmt.Printf("Authentication failed: %v\n", err)
		return
	}

	token, err := authService.GenerateToken(identity)
	if err != nil {
		fmt.Printf("Token generation failed: %v\n", err)
		return
	}

	fmt.Printf("\nIdentity: %s <%s> (%s)\n", identity.Name, identity.Email, identity.Role)
	fmt.Printf("Token:\n%s\n", token)
}
