package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/youridegraef/qash-backend-sub000/internal/auth"
	"github.com/youridegraef/qash-backend-sub000/internal/backend"
	"github.com/youridegraef/qash-backend-sub000/internal/config"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
	"github.com/youridegraef/qash-backend-sub000/pkg/logging"
)

const defaultDBPath = "./data/qash.db"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Email address used to log in")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	dobFlag := fs.String("dob", "", "Date of birth, YYYY-MM-DD (optional)")
	dbPath := fs.String("db", "", "Path to the SQLite database (default $DB_PATH or "+defaultDBPath+")")
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	verbose := fs.Bool("v", false, "Log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var missing []string
	if *name == "" {
		missing = append(missing, "name")
	}
	if *email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		fmt.Fprintln(stdout, "Usage: adduser -name <name> -email <email> [-password <password>] [-dob YYYY-MM-DD] [-db <db_path>] [-v]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}

	var dob *time.Time
	if *dobFlag != "" {
		t, err := models.ParseDay(*dobFlag)
		if err != nil {
			return fmt.Errorf("invalid -dob %q: must be YYYY-MM-DD", *dobFlag)
		}
		dob = &t
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	path := *dbPath
	if path == "" {
		path = os.Getenv("DB_PATH")
	}
	if path == "" {
		path = defaultDBPath
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := logging.SetupWithLevel(stderr, level)
	ctx := context.Background()

	store, err := backend.Open(ctx, &config.Config{DBDriver: config.DriverSQLite, DBPath: path}, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	hasher, err := auth.NewBcryptHasher(*cost)
	if err != nil {
		return err
	}
	users := service.NewUserService(store, hasher, 0, logger)

	user, err := users.Register(ctx, *name, *email, password, dob)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s <%s> created successfully with ID %d\n", user.Name, user.Email, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Pipes and tests.
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
