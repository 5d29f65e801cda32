package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toyinlola/coreiq/pkg/assessment"
	"github.com/toyinlola/coreiq/pkg/document"
)

const (
	minAnswer = 0
	maxAnswer = 5
)

var setCmd = &cobra.Command{
	Use:   "set <file> <function> <component> <key> <score>",
	Short: "Record a 0-5 answer for a catalog question",
	Long: `Set records an answer in an assessment document. Edits are only
accepted once the NDA is SIGNED.

  coreiq set acme.yaml OPS FUNCTIONALITY sops 4`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		fn, d, err := parseCriterion(args[1], args[2])
		if err != nil {
			return fmt.Errorf("set: %w", err)
		}
		score, err := parseAnswer(args[4])
		if err != nil {
			return fmt.Errorf("set: %w", err)
		}
		return editDocument("set", args[0], func(s *assessment.Session) error {
			return s.SetScore(fn, d, args[3], score)
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear <file> <function> <component> <key>",
	Short: "Mark a catalog question as unanswered",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		fn, d, err := parseCriterion(args[1], args[2])
		if err != nil {
			return fmt.Errorf("clear: %w", err)
		}
		return editDocument("clear", args[0], func(s *assessment.Session) error {
			return s.ClearScore(fn, d, args[3])
		})
	},
}

var noteCmd = &cobra.Command{
	Use:   "note <file> <function> <component> <key> <text>...",
	Short: "Attach a note to a catalog question",
	Long: `Note stores free text against a question. Notes never affect scores,
and noting an unanswered question leaves it unanswered.

  coreiq note acme.yaml CX FRICTION duplication "two manual re-keys per order"`,
	Args: cobra.MinimumNArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		fn, d, err := parseCriterion(args[1], args[2])
		if err != nil {
			return fmt.Errorf("note: %w", err)
		}
		text := strings.Join(args[4:], " ")
		return editDocument("note", args[0], func(s *assessment.Session) error {
			return s.SetNote(fn, d, args[3], text)
		})
	},
}

var consentCmd = &cobra.Command{
	Use:   "consent <file> <SIGNED|SENT|NOT_SENT>",
	Short: "Update the NDA consent state",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := assessment.ParseConsent(strings.ToUpper(args[1]))
		if err != nil {
			return fmt.Errorf("consent: %w", err)
		}
		return editDocument("consent", args[0], func(s *assessment.Session) error {
			return s.SetConsent(c)
		})
	},
}

var scopeCmd = &cobra.Command{
	Use:   "scope <file> <function>...",
	Short: "Set which business functions are in scope",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := assessment.ParseActiveSet(upper(args[1:]))
		if err != nil {
			return fmt.Errorf("scope: %w", err)
		}
		return editDocument("scope", args[0], func(s *assessment.Session) error {
			return s.SetScope(set.Names()...)
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <file> <IN_PROGRESS|COMPLETE>",
	Short: "Set the assessment status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := strings.ToUpper(args[1])
		if status != assessment.StatusInProgress && status != assessment.StatusComplete {
			return fmt.Errorf("status: unknown status %q", args[1])
		}
		return editDocument("status", args[0], func(s *assessment.Session) error {
			return s.Apply(func(a *assessment.Assessment) error {
				a.Status = status
				return nil
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(setCmd, clearCmd, noteCmd, consentCmd, scopeCmd, statusCmd)
}

// editDocument loads a document into a session, applies edit and saves the
// result in the same format.
func editDocument(op, path string, edit func(s *assessment.Session) error) error {
	a, err := document.Load(path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s, err := assessment.NewSession(a)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := edit(s); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := document.Save(path, s.Snapshot()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	slog.Info("assessment updated", "op", op, "path", path)
	return nil
}

// parseCriterion reads a function and component identifier, ignoring case.
func parseCriterion(fnArg, dimArg string) (assessment.FunctionName, assessment.Dimension, error) {
	fn, err := assessment.ParseFunctionName(strings.ToUpper(fnArg))
	if err != nil {
		return 0, 0, err
	}
	d, err := assessment.ParseDimension(strings.ToUpper(dimArg))
	if err != nil {
		return 0, 0, err
	}
	return fn, d, nil
}

// parseAnswer accepts a whole number on the 0-5 answer scale.
func parseAnswer(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("score %q is not a whole number", s)
	}
	if v < minAnswer || v > maxAnswer {
		return 0, fmt.Errorf("score %d is outside %d-%d", v, minAnswer, maxAnswer)
	}
	return v, nil
}

func upper(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToUpper(s)
	}
	return out
}
