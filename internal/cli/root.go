// Package cli defines the cobra command tree for pmsctl, the
// operational companion to the API server.
package cli

import (
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Hostizzy/hostizzy-pms/internal/config"
)

var flagEnvFile string

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pmsctl",
		Short:         "Operate the property management database",
		Long:          "Apply schema migrations and seed the first admin account for the property management service. Connection settings come from the environment, optionally loaded from a dotenv file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "dotenv file to load before reading the environment")

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB connects using the same environment variables as the server.
// multiStatements lets a migration file carry several statements.
func openDB() (*sql.DB, error) {
	if flagEnvFile != "" {
		if err := godotenv.Load(flagEnvFile); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}
	cfg := config.Load()

	mc := mysql.NewConfig()
	mc.User = cfg.DBUser
	mc.Passwd = cfg.DBPass
	mc.Net = "tcp"
	mc.Addr = cfg.DBHost + ":" + cfg.DBPort
	mc.DBName = cfg.DBName
	mc.ParseTime = true
	mc.MultiStatements = true

	db, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
