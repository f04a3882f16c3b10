package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"campusdesk/app/helpers"
	"campusdesk/app/models"
	"campusdesk/app/routes/auth"
)

type addUserOptions struct {
	Username string `validate:"required,min=3,max=64"`
	Email    string `validate:"required,email"`
	Role     string `validate:"required,oneof=admin teacher student"`
	Password string
	First    string
	Last     string
}

func newAddUserCmd() *cobra.Command {
	var opts addUserOptions
	cmd := &cobra.Command{
		Use:   "add-user",
		Short: "Create an approved account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := helpers.Validate(opts); err != nil {
				return err
			}
			if opts.Password == "" {
				pw, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				opts.Password = pw
			}
			if len(opts.Password) < 6 {
				return fmt.Errorf("password must be at least 6 characters")
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			hash, err := auth.HashPassword(opts.Password)
			if err != nil {
				return err
			}
			user := &models.User{
				Username:     opts.Username,
				Email:        opts.Email,
				PasswordHash: hash,
				Role:         models.Role(opts.Role),
				IsApproved:   true,
			}
			first, last := opts.names()
			if err := createAccount(db, user, profile{First: first, Last: last}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %q (id %d)\n", user.Role, user.Username, user.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Username, "username", "", "login name")
	f.StringVar(&opts.Email, "email", "", "email address")
	f.StringVar(&opts.Role, "role", string(models.RoleAdmin), "admin, teacher or student")
	f.StringVar(&opts.Password, "password", "", "password; prompted for when omitted")
	f.StringVar(&opts.First, "first-name", "", "profile first name, defaults to the username")
	f.StringVar(&opts.Last, "last-name", "", "profile last name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (o addUserOptions) names() (string, string) {
	first, last := o.First, o.Last
	if first == "" {
		first = o.Username
	}
	if last == "" {
		last = "-"
	}
	return first, last
}

// readPassword prompts without echo on a terminal and reads one line otherwise.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
