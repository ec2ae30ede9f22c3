// Command bootstrap-admin creates the first admin account directly in the
// database. Registration over the API defaults to the user role but accepts
// any valid role in the request body; this command seeds the first admin
// without going through the HTTP surface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/platewise/platewise/internal/auth"
	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/repository"
)

type output struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "admin@platewise.local", "Admin email")
		password    = flag.String("password", "", "Admin password (required)")
		firstName   = flag.String("first-name", "Admin", "First name")
		lastName    = flag.String("last-name", "", "Last name")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "password is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if existing, err := repo.GetUserByEmail(ctx, *email); err == nil {
		if existing.Role == model.RoleAdmin {
			fmt.Fprintln(os.Stderr, "admin already exists:", *email)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "email already used by non-admin user:", *email)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	user := &model.User{
		Email:        *email,
		PasswordHash: hash,
		FirstName:    *firstName,
		LastName:     *lastName,
		Role:         model.RoleAdmin,
	}

	if _, err := repo.CreateUser(ctx, user); err != nil {
		fmt.Fprintln(os.Stderr, "create admin:", err)
		os.Exit(1)
	}

	out := output{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Printf("created admin %s (id %d)\n", out.Email, out.UserID)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
