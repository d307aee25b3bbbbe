package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	schemavalidate "github.com/jonathan/resume-optimax/internal/schemas"
	"github.com/jonathan/resume-optimax/schemas"
)

// builtinSchemas maps the names accepted by --schema to the embedded schemas
var builtinSchemas = map[string][]byte{
	"request":  schemas.EnhancementRequest,
	"response": schemas.EnhancementResponse,
}

func newValidateCmd() *cobra.Command {
	var schemaPath, jsonPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON file against a JSON Schema",
		Long:  `Validate a JSON file against a JSON Schema file, or against the built-in "request" and "response" schemas.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if schema, ok := builtinSchemas[schemaPath]; ok {
				err = schemavalidate.ValidateFile(schema, jsonPath)
			} else {
				err = schemavalidate.ValidateJSON(schemaPath, jsonPath)
			}

			var validationErr *schemavalidate.ValidationError
			if errors.As(err, &validationErr) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed: %s", validationErr.Error())
				return fmt.Errorf("%s does not match schema %s", jsonPath, schemaPath)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", `Path to JSON Schema file, or "request" / "response"`)
	cmd.Flags().StringVar(&jsonPath, "json", "", "Path to JSON file to validate")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("json")
	return cmd
}
