package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codezworl/spamshield/internal/config"
	"github.com/codezworl/spamshield/internal/core"
	"github.com/codezworl/spamshield/internal/factory"
	"github.com/codezworl/spamshield/internal/logging"
)

var (
	checkType    string
	checkFile    string
	checkCatalog string
	checkJSON    bool
	checkVerbose bool
)

var checkCmd = &cobra.Command{
	Use:   "check [text]",
	Short: "Classify a single text",
	Long: `Classify a text as spam or legitimate. The text comes from the
argument, --file, or stdin. Exits with status 1 when the text is spam.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readCheckInput(args)
		if err != nil {
			return err
		}

		logger, err := logging.InitConsoleLogger(checkVerbose, false)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()

		cfg, err := config.New()
		if err != nil {
			return err
		}
		if checkCatalog != "" {
			cfg.GetViper().Set("catalog.path", checkCatalog)
		}

		cat, err := factory.NewCatalogFactory(cfg, logger).CreateCatalog()
		if err != nil {
			return err
		}
		eng, err := factory.NewEngineFactory(cfg, logger).CreateEngine(cat)
		if err != nil {
			return err
		}
		checker := core.NewCheckerService(eng, nil, logger, false, 0,
			cfg.GetInt("api.min_text_length"),
			cfg.GetInt("api.max_text_length"))

		start := time.Now()
		result, err := checker.Check(cmd.Context(), text, checkType)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		if checkJSON {
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		} else {
			printAnalysis(result, elapsed)
		}

		if result.IsSpam {
			os.Exit(1)
		}
		return nil
	},
}

func readCheckInput(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if checkFile != "" {
		data, err := os.ReadFile(checkFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func printAnalysis(result *core.Analysis, elapsed time.Duration) {
	verdict := "LEGITIMATE"
	if result.IsSpam {
		verdict = "SPAM"
	}

	fmt.Printf("Classification: %s (%s)\n", verdict, result.Category)
	fmt.Printf("Score: %.2f\n", result.Score)
	fmt.Printf("Confidence: %.2f\n", result.Confidence)
	fmt.Printf("Length: %d characters, %d words\n",
		result.Features.Length, result.Features.WordCount)
	if len(result.Reasons) > 0 {
		fmt.Println("Reasons:")
		for _, reason := range result.Reasons {
			fmt.Printf("  - %s\n", reason)
		}
	}
	fmt.Printf("Processing time: %.2fms\n", float64(elapsed.Nanoseconds())/1e6)
}

func init() {
	checkCmd.Flags().StringVarP(&checkType, "type", "t", "message", "Input type (message or email)")
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Input file (use stdin if no argument or file)")
	checkCmd.Flags().StringVarP(&checkCatalog, "catalog", "c", "", "Rule catalog file (YAML)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output the full verdict as JSON")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Enable verbose logging")
}
