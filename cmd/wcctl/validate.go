package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"wecelebrate/console/internal/validation"
)

func newValidateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <client.yaml|client.json>",
		Short: "Validate a client configuration file",
		Long: `Runs the client configuration rules against a YAML or JSON file.
Exits 1 when the configuration has errors. Warnings never fail the command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadClientConfig(args[0])
			if err != nil {
				return err
			}

			result := validation.ValidateClientConfiguration(data)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				printResult(cmd.OutOrStdout(), args[0], result)
			}

			if !result.Valid {
				return &exitError{code: 1, msg: "configuration is invalid"}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the validation result as JSON")
	return cmd
}

func loadClientConfig(path string) (validation.ClientConfigData, error) {
	var data validation.ClientConfigData

	raw, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	default:
		err = json.Unmarshal(raw, &data)
	}
	if err != nil {
		return data, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return data, nil
}

func printResult(w io.Writer, name string, result *validation.ValidationResult) {
	if result.Valid {
		fmt.Fprintf(w, "%s: valid\n", name)
	} else {
		fmt.Fprintf(w, "%s: %d error(s)\n", name, len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  error: %s\n", e)
		}
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warn)
	}
}
