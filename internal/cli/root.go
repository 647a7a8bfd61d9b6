package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/newproject-dev/new-project/internal/branding"
	"github.com/newproject-dev/new-project/internal/config"
	"github.com/newproject-dev/new-project/internal/logging"
	"github.com/newproject-dev/new-project/internal/prompt"
	"github.com/newproject-dev/new-project/internal/scaffold"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbosity   int
	contextFile string
	contextSet  []string
	dryRun      bool
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log output (-v info, -vv debug, -vvv trace)")
	rootCmd.Flags().StringVar(&contextFile, "context-file", "", "YAML mapping of context values to override")
	rootCmd.Flags().StringArrayVar(&contextSet, "set", nil, "Override a context value (key=value, repeatable)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print what would be created without writing anything")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <template-dir>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a new project in the current directory from a template directory.

Files are copied verbatim unless the template's config lists them under
"templates", in which case they are rendered with Go text/template. Parameters
declared in the config are prompted for in order. Environment facts are
available to templates as {{ .context.<name> }}.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		level := verbosity
		if !cmd.Flags().Changed("verbose") {
			level = config.Verbosity()
		}
		logging.SetupLogger(cmd.ErrOrStderr(), level)
	},
	RunE: runScaffold,
}

func runScaffold(cmd *cobra.Command, args []string) error {
	projectDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving current directory: %w", err)
	}

	fileOverrides, err := readContextFile(afero.NewOsFs(), contextFile)
	if err != nil {
		return err
	}

	setOverrides, err := parseAssignments(contextSet)
	if err != nil {
		return err
	}

	result, err := scaffold.Run(scaffold.Options{
		TemplateDir: args[0],
		ProjectDir:  projectDir,
		Version:     buildVersion,
		Overrides:   []map[string]string{config.ContextOverrides(), fileOverrides, setOverrides},
		Prompter:    prompt.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
		DryRun:      dryRun,
	})
	if err != nil {
		return err
	}

	if result.DryRun {
		printPlan(cmd.OutOrStdout(), result)
		return nil
	}
	printSummary(cmd.ErrOrStderr(), result)
	return nil
}

// readContextFile decodes a flat YAML mapping of context overrides. An empty
// path yields no overrides.
func readContextFile(fsys afero.Fs, path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading context file %s: %w", path, err)
	}

	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing context file %s: %w", path, err)
	}
	return values, nil
}

// parseAssignments splits each key=value on its first "=". Values may
// contain commas and further "=" signs.
func parseAssignments(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set value %q: expected key=value", v)
		}
		out[key] = value
	}
	return out, nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "error: %v\n", err)
		return err
	}
	return nil
}
