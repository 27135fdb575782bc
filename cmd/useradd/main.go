// Command useradd registers a user directly against the database.
//
//	useradd -username alice -first Alice -last Liddell -phone "555-0100"
//
// The password is read from the terminal without echo.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/vedran77/messagely/internal/config"
	"github.com/vedran77/messagely/internal/database"
	"github.com/vedran77/messagely/internal/domain"
	postgresrepo "github.com/vedran77/messagely/internal/repository/postgres"
	"github.com/vedran77/messagely/internal/security/password"
	"github.com/vedran77/messagely/internal/service"
	"github.com/vedran77/messagely/pkg/validator"
	"golang.org/x/term"
)

// readPassword is replaced in tests.
var readPassword = term.ReadPassword

func main() {
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "useradd:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, w io.Writer) error {
	input, err := parseFlags(args)
	if err != nil {
		return err
	}

	pw, err := promptPassword(w)
	if err != nil {
		return err
	}
	input.Password = pw

	if errs := validator.ValidateRegister(input.Username, input.Password, input.FirstName, input.LastName, input.Phone); errs.HasErrors() {
		for field, msg := range errs {
			fmt.Fprintf(w, "  %s: %s\n", field, msg)
		}
		return errors.New("invalid input")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	hasher, err := password.New(cfg.Password)
	if err != nil {
		return err
	}

	pool, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	identity, err := service.NewIdentityService(postgresrepo.NewUserRepo(pool), hasher)
	if err != nil {
		return err
	}

	profile, err := identity.Register(ctx, input)
	if errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("username %q is already taken", input.Username)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "created %s (%s %s)\n", profile.Username, profile.FirstName, profile.LastName)
	return nil
}

func parseFlags(args []string) (service.RegisterInput, error) {
	var in service.RegisterInput

	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	fs.StringVar(&in.Username, "username", "", "login name")
	fs.StringVar(&in.FirstName, "first", "", "first name")
	fs.StringVar(&in.LastName, "last", "", "last name")
	fs.StringVar(&in.Phone, "phone", "", "phone number")
	if err := fs.Parse(args); err != nil {
		return in, err
	}
	if in.Username == "" {
		return in, errors.New("-username is required")
	}
	return in, nil
}

func promptPassword(w io.Writer) (string, error) {
	fmt.Fprint(w, "Password: ")
	first, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}

	fmt.Fprint(w, "Repeat password: ")
	second, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}

	if !bytes.Equal(first, second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
