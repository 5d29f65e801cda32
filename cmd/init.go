package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/toyinlola/coreiq/pkg/assessment"
	"github.com/toyinlola/coreiq/pkg/document"
)

var (
	initClient       string
	initTitle        string
	initIndustry     string
	initContactName  string
	initContactEmail string
	initScope        []string
	initForce        bool
)

var initCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Create a new assessment document",
	Long: `Init writes a fresh assessment with every business function and an
empty answer sheet. The document format follows the file extension
(.yaml, .yml, .toml or .json).

  coreiq init acme.yaml --client "Acme Logistics" --title "Q3 baseline"`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initClient, "client", "", "client name (required)")
	initCmd.Flags().StringVar(&initTitle, "title", "", "assessment title")
	initCmd.Flags().StringVar(&initIndustry, "industry", "", "client industry")
	initCmd.Flags().StringVar(&initContactName, "contact-name", "", "client contact name")
	initCmd.Flags().StringVar(&initContactEmail, "contact-email", "", "client contact email")
	initCmd.Flags().StringSliceVar(&initScope, "scope", nil, "functions in scope, e.g. OPS,CX (default: OPS,CX)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing document")
	_ = initCmd.MarkFlagRequired("client")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := args[0]

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("init: %s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("init: %w", err)
		}
	}

	a, err := newAssessment(initClient, initTitle, initScope)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	a.Industry = initIndustry
	a.ContactName = initContactName
	a.ContactEmail = initContactEmail

	if err := document.Save(path, a); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	slog.Info("assessment created", "path", path, "id", a.ID, "client", a.Client)
	fmt.Fprintf(cmd.OutOrStdout(), "Created assessment %s for %s in %s\n", a.ID, a.Client, path)
	return nil
}

// newAssessment seeds an assessment with a fresh ID and an optional scope.
func newAssessment(client, title string, scope []string) (*assessment.Assessment, error) {
	a := assessment.New("A-"+uuid.NewString()[:8], client, title)
	if len(scope) == 0 {
		return a, nil
	}
	set, err := assessment.ParseActiveSet(scope)
	if err != nil {
		return nil, err
	}
	a.Scope = set.Names()
	return a, nil
}
