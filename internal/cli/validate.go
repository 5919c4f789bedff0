package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/cobra"

	"github.com/draftwell/sectiondiff/internal/document"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Schema string
}

// ValidationIssue is one front-matter schema violation.
type ValidationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <doc.md>",
		Short: "Validate a document's front matter against a CUE schema",
		Long: `Validate the front-matter block of a document against a CUE schema.

The schema file's #FrontMatter definition is used when present;
otherwise the schema's top-level value is used. A document without
front matter fails validation when a schema is required.

Exit codes:
  0 - Front matter satisfies the schema
  1 - Validation failure
  2 - Command error (file not found, schema does not compile, etc.)

Examples:
  sectiondiff validate doc.md --schema schema.cue
  sectiondiff validate doc.md --schema schema.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "path to CUE schema file (required)")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runValidate(opts *ValidateOptions, docPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	content, err := readDocument(docPath)
	if err != nil {
		_ = formatter.Error(ErrCodeReadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read document", err)
	}

	schema, err := loadSchema(opts.Schema)
	if err != nil {
		_ = formatter.Error(ErrCodeSchemaInvalid, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load schema", err)
	}

	doc := document.ParseSections(content)
	if doc.FrontMatter == nil || doc.FrontMatter.Fields == nil {
		msg := fmt.Sprintf("%s has no front matter to validate", docPath)
		_ = formatter.Error(ErrCodeNoFrontMatter, msg, nil)
		return NewExitError(ExitFailure, msg)
	}

	issues := validateFrontMatter(schema, doc.FrontMatter.Fields)
	result := ValidationResult{Valid: len(issues) == 0, Issues: issues}

	if !result.Valid {
		if opts.Format == "json" {
			_ = formatter.Success(result)
		} else {
			for _, issue := range issues {
				_ = formatter.Error(ErrCodeValidation, issue.Message, issue.Field)
			}
		}
		return NewExitError(ExitFailure, "front matter failed validation")
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success("Front matter is valid")
}

// loadSchema compiles a CUE schema file and returns the value to validate
// against: the #FrontMatter definition when the file declares one, the
// top-level value otherwise.
func loadSchema(path string) (cue.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("reading schema %s: %w", path, err)
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compiling schema: %w", err)
	}

	def := value.LookupPath(cue.ParsePath("#FrontMatter"))
	if def.Exists() {
		return def, nil
	}
	return value, nil
}

// validateFrontMatter unifies the decoded front-matter fields with the
// schema and collects every violation.
func validateFrontMatter(schema cue.Value, fields map[string]any) []ValidationIssue {
	data := schema.Context().Encode(fields)
	if err := data.Err(); err != nil {
		return []ValidationIssue{{Message: fmt.Sprintf("front matter not encodable: %v", err)}}
	}

	unified := schema.Unify(data)
	err := unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var issues []ValidationIssue
	for _, e := range cueerrors.Errors(err) {
		issue := ValidationIssue{Message: e.Error()}
		if path := e.Path(); len(path) > 0 {
			issue.Field = path[len(path)-1]
		}
		issues = append(issues, issue)
	}
	return issues
}
