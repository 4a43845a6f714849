package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"quizzy/internal/config"
	"quizzy/internal/database"
	"quizzy/internal/models"
	"quizzy/internal/service"
)

// errUsage means the arguments did not name a known subcommand
var errUsage = errors.New("usage")

// command is a parsed subcommand and its -name argument
type command struct {
	name string
	user string
}

// parseCommand validates args before anything touches the database
func parseCommand(args []string, errOut io.Writer) (command, error) {
	if len(args) < 1 {
		return command{}, errUsage
	}

	cmd := command{name: args[0]}
	switch cmd.name {
	case "migrate", "users":
		if len(args) > 1 {
			return command{}, fmt.Errorf("%s takes no arguments", cmd.name)
		}
		return cmd, nil

	case "grant-admin", "promote":
		fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
		fs.SetOutput(errOut)
		fs.StringVar(&cmd.user, "name", "", "Username to update (required)")
		if err := fs.Parse(args[1:]); err != nil {
			return command{}, err
		}
		if cmd.user == "" {
			return command{}, errors.New("-name flag is required")
		}
		return cmd, nil
	}

	return command{}, errUsage
}

func main() {
	cmd, err := parseCommand(os.Args[1:], os.Stderr)
	if errors.Is(err, errUsage) {
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(cmd); err != nil {
		log.Fatal(err)
	}
}

func run(cmd command) error {
	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	provider := database.NewProvider(db)
	defer provider.Release()
	ctx := database.WithProvider(context.Background(), provider)

	if cmd.name == "migrate" {
		log.Println("Migrations completed successfully")
		return nil
	}

	conn, err := database.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	users := service.NewUserService(conn)

	switch cmd.name {
	case "grant-admin":
		user, err := users.GrantAdmin(ctx, cmd.user)
		if err != nil {
			return fmt.Errorf("grant admin failed: %w", err)
		}
		log.Printf("User %s (id %d) is now an admin", user.Name, user.ID)

	case "promote":
		user, err := users.PromoteByName(ctx, cmd.user)
		if err != nil {
			return fmt.Errorf("promote failed: %w", err)
		}
		log.Printf("User %s (id %d) is now a teacher", user.Name, user.ID)

	case "users":
		all, err := users.ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("listing users failed: %w", err)
		}
		return printUsers(os.Stdout, all)
	}
	return nil
}

func printUsers(out io.Writer, users []models.User) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Role(), u.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

func printUsage() {
	fmt.Println("Quizzy Admin Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  quizzyadmin migrate                 Apply pending database migrations")
	fmt.Println("  quizzyadmin grant-admin -name <u>   Set the admin flag on a user")
	fmt.Println("  quizzyadmin promote -name <u>       Make a user a teacher")
	fmt.Println("  quizzyadmin users                   List every user")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./quizzy.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
