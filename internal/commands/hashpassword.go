package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/klabast/wb-services/ferien-checker/internal/app"
)

const (
	hashPasswordLong = `Creates the auth file for edit mode with an Argon2id password hash.

The file location is taken from auth_file in the configuration
or the AUTH_FILE environment variable (default: ./auth.secret).`
)

var (
	// HashPasswordCmd creates the edit mode credentials.
	HashPasswordCmd = &cobra.Command{
		Use:   "hash-password",
		Short: "Create the auth file for edit mode",
		Long:  hashPasswordLong,
		RunE:  executeHashPassword,
	}
	flagOverwrite      bool
	flagInsecureUnmask bool

	errCtrlC = errors.New("interrupted")
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	HashPasswordCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "overwrite existing auth file without asking")
	HashPasswordCmd.Flags().BoolVar(&flagInsecureUnmask, "insecure-unmask-password", false, "show password as plain text (INSECURE!)")
}

func executeHashPassword(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, "Enter username: ")
	var username string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &username); err != nil {
		return fmt.Errorf("error reading username: %w", err)
	}
	if username == "" {
		return errors.New("username cannot be empty")
	}

	var password, passwordConfirm string
	if flagInsecureUnmask {
		fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: Password will be visible on screen!")
		fmt.Fprint(out, "Enter password:   ")
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &password); err != nil {
			return fmt.Errorf("error reading password: %w", err)
		}
		fmt.Fprint(out, "Confirm password: ")
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &passwordConfirm); err != nil {
			return fmt.Errorf("error reading password confirmation: %w", err)
		}
	} else {
		if password, err = readPasswordWithMask(out, "Enter password:   "); err != nil {
			return err
		}
		if passwordConfirm, err = readPasswordWithMask(out, "Confirm password: "); err != nil {
			return err
		}
	}

	if password == "" {
		return errors.New("password cannot be empty")
	}
	if password != passwordConfirm {
		return errors.New("passwords do not match")
	}

	path := cfg.AuthFile
	if path == "" {
		path = app.DefaultAuthFile
	}
	if _, err := os.Stat(path); err == nil && !flagOverwrite {
		ok, err := confirmOverwrite(cmd.InOrStdin(), out, path)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("aborted")
		}
	}
	if err := app.WriteCredentials(path, username, password); err != nil {
		return err
	}
	fmt.Fprintf(out, "Auth file created: %s (mode: 0400 read-only)\n", path)
	fmt.Fprintf(out, "   Username: %s\n", username)
	return nil
}

// confirmOverwrite asks before an existing auth file is replaced.
func confirmOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	fmt.Fprintf(out, "Auth file already exists: %s\n", path)
	fmt.Fprint(out, "Overwrite? (y/N): ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes", "j", "ja":
		return true, nil
	}
	return false, nil
}

// readPasswordWithMask reads a password from the terminal and echoes asterisks.
func readPasswordWithMask(out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Not a terminal we can switch to raw mode; fall back to hidden input.
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		return string(password), err
	}
	defer term.Restore(fd, oldState) //nolint:errcheck

	var password []rune
	reader := bufio.NewReader(os.Stdin)
	for {
		char, _, err := reader.ReadRune()
		if err != nil {
			fmt.Fprint(out, "\r\n")
			return string(password), nil
		}
		switch char {
		case '\n', '\r':
			fmt.Fprint(out, "\r\n")
			return string(password), nil
		case 127, 8: // Backspace or Delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				fmt.Fprint(out, "\b \b")
			}
		case 3: // Ctrl+C
			fmt.Fprint(out, "\r\n")
			return "", errCtrlC
		default:
			if char >= 32 && char != 127 {
				password = append(password, char)
				fmt.Fprint(out, "*")
			}
		}
	}
}
