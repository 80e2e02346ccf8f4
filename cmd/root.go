package cmd

import (
	"context"
	"fmt"
	"os"

	"assetconsole/internal/core/config"
	"assetconsole/internal/core/logger"
	"assetconsole/internal/database"
	"assetconsole/pkg/metadata"

	"github.com/spf13/cobra"
)

func NewMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run audit log migrations manually.",
		Long:  `Applies the binding audit log schema. Only needed when DATABASE_URL is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbURL := os.Getenv("DATABASE_URL")
			migrationDir, _ := cmd.Flags().GetString("dir")

			log := logger.NewLogger(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
			defer log.Sync()

			if err := database.RunMigrations(dbURL, migrationDir, log); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}

			return nil
		},
	}

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "./migrations"
	}
	migrateCmd.Flags().String("dir", migrationsDir, "Directory containing the migration files")

	return migrateCmd
}

func NewTagCodeCmd() *cobra.Command {
	tagCodeCmd := &cobra.Command{
		Use:   "tagcode",
		Short: "Encode or decode QR tag codes.",
	}

	tagCodeCmd.AddCommand(&cobra.Command{
		Use:   "encode <serial>",
		Short: "Print the tag code of a serial.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), metadata.EncodeTagCode(args[0]))
			return nil
		},
	})

	tagCodeCmd.AddCommand(&cobra.Command{
		Use:   "decode <code>",
		Short: "Print the serial hidden in a tag code.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serial, err := metadata.DecodeTagCode(args[0])
			if err != nil {
				return err
			}
			if serial == "" {
				return fmt.Errorf("%q is not a %s tag code", args[0], metadata.TagCodeInit)
			}
			fmt.Fprintln(cmd.OutOrStdout(), serial)
			return nil
		},
	})

	return tagCodeCmd
}

func NewSerialCmd() *cobra.Command {
	serialCmd := &cobra.Command{
		Use:   "serial",
		Short: "Serial number helpers.",
	}

	serialCmd.AddCommand(&cobra.Command{
		Use:   "next <assetName> [existing serials...]",
		Short: "Print the serial following the given ones.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), metadata.NextSerial(args[0], args[1:]))
			return nil
		},
	})

	return serialCmd
}

func NewRootCmd(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "assetconsole",
		Short:         "Asset tagging console service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadEnvFile()
		},
	}
	rootCmd.SetContext(ctx)

	rootCmd.AddCommand(NewServeCmd(), NewMigrateCmd(), NewTagCodeCmd(), NewSerialCmd())

	return rootCmd
}

func Execute(ctx context.Context) {
	if err := NewRootCmd(ctx).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
