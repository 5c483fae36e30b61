package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"wecelebrate/console/internal/config"
	"wecelebrate/console/internal/constants"
	"wecelebrate/console/internal/db"
	gormModels "wecelebrate/console/internal/models/gorm"
)

func newAPIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage console API keys",
	}

	var (
		name string
		role string
	)
	create := &cobra.Command{
		Use:   "create --name <name> [--role admin|viewer]",
		Short: "Create an API key in the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := constants.Role(role)
			if !r.Valid() {
				return fmt.Errorf("unknown role %q", role)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			orm, err := db.OpenORM(cfg)
			if err != nil {
				return err
			}
			if err := db.Migrate(orm); err != nil {
				return err
			}

			key, err := newKey()
			if err != nil {
				return err
			}

			record := gormModels.APIKey{ID: key, Name: name, Role: r, Status: true}
			if err := orm.WithContext(cmd.Context()).Create(&record).Error; err != nil {
				return fmt.Errorf("failed to store api key: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "New API Key (%s, %s): %s\n", name, r, key)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "who the key is for")
	create.Flags().StringVar(&role, "role", string(constants.RoleViewer), "admin or viewer")
	_ = create.MarkFlagRequired("name")

	cmd.AddCommand(create)
	return cmd
}

func newKey() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return "wc_" + hex.EncodeToString(b), nil
}
