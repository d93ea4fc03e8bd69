package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codezworl/spamshield/internal/catalog"
	"github.com/codezworl/spamshield/internal/config"
)

var (
	rulesCatalogPath string
	rulesExportPath  string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the rule catalog",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active catalog rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadRulesCatalog()
		if err != nil {
			return err
		}

		fmt.Printf("Catalog %s (%d rules)\n\n", cat.Version(), cat.Len())
		for _, r := range cat.Rules() {
			if r.IsProbe() {
				fmt.Printf("%-26s %-22s %5.2f  probe: %s\n", r.Name, r.Category, r.Weight, r.Probe)
			} else {
				fmt.Printf("%-26s %-22s %5.2f  %s\n", r.Name, r.Category, r.Weight, r.Reason)
			}
		}

		if mitigations := cat.Mitigations(); len(mitigations) > 0 {
			fmt.Printf("\nMitigations (%d)\n\n", len(mitigations))
			for _, m := range mitigations {
				fmt.Printf("%-26s damp %.2f\n", m.Name, m.Damp)
			}
		}
		return nil
	},
}

var rulesLintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Validate a YAML rule catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: OK (version %s, %d rules, %d mitigations)\n",
			args[0], cat.Version(), cat.Len(), len(cat.Mitigations()))
		return nil
	},
}

var rulesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the built-in catalog as YAML",
	Long:  `Write the built-in rule catalog as YAML, as a starting point for a custom catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := catalog.Builtin().Export()
		if err != nil {
			return err
		}

		if rulesExportPath == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(rulesExportPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write catalog: %w", err)
		}
		fmt.Printf("Wrote %s\n", rulesExportPath)
		return nil
	},
}

// loadRulesCatalog resolves the catalog the same way the service does:
// explicit flag, configured path, then the built-in set
func loadRulesCatalog() (*catalog.Catalog, error) {
	if rulesCatalogPath != "" {
		return catalog.Load(rulesCatalogPath)
	}
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if path := cfg.GetString("catalog.path"); path != "" {
		return catalog.Load(path)
	}
	return catalog.Builtin(), nil
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesLintCmd)
	rulesCmd.AddCommand(rulesExportCmd)

	rulesListCmd.Flags().StringVarP(&rulesCatalogPath, "catalog", "c", "", "Rule catalog file (YAML)")
	rulesExportCmd.Flags().StringVarP(&rulesExportPath, "output", "o", "", "Output file (stdout if not set)")
}
