package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Hostizzy/hostizzy-pms/internal/access"
	"github.com/Hostizzy/hostizzy-pms/internal/repository"
)

func newSeedCmd() *cobra.Command {
	var (
		name     string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the first admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}
			if name == "" {
				name = "Administrator"
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			users := repository.NewUserRepo(db)
			id, err := users.Create(context.Background(), name, email, password,
				string(access.RoleAdmin), 12)
			if err != nil {
				if err == repository.ErrEmailExists {
					return fmt.Errorf("an account with %s already exists", email)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin account %d created for %s\n", id, email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name for the admin account")
	cmd.Flags().StringVar(&email, "email", "", "email for the admin account")
	cmd.Flags().StringVar(&password, "password", "", "password for the admin account (min 8 chars)")
	return cmd
}
