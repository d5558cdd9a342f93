package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/rule"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/schema"
	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

var compileCmd = &cobra.Command{
	Use:   "compile <config.json>",
	Short: "Compile a rule configuration to an access-rule expression",
	Long: `Compile reads a rule configuration document and prints the assembled
access-rule expression. With --schema, field references are resolved against
a collection schema export; without it, unrecognized bare values are quoted.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().String("schema", "", "collection schema export path")
	compileCmd.Flags().String("operation", string(types.OperationList), "rule slot (listRule, viewRule, createRule, updateRule, deleteRule)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	opFlag, _ := cmd.Flags().GetString("operation")
	op := types.Operation(opFlag)
	if !op.Valid() {
		return fmt.Errorf("unknown operation %q", opFlag)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	var cfg types.RuleConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	fields := types.NewFieldSet()
	if schemaPath, _ := cmd.Flags().GetString("schema"); schemaPath != "" {
		raw, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("failed to read schema export: %w", err)
		}
		schemas, verr := schema.ParseImport(raw)
		if verr != nil {
			return fmt.Errorf("invalid schema export: %w", verr)
		}
		fields = schema.NewGraph(schemas).FieldNames()
	}

	fmt.Println(rule.Assemble(cfg, op, fields))
	return nil
}
