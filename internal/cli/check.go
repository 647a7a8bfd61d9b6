package cli

import (
	"fmt"
	"io"

	"github.com/newproject-dev/new-project/internal/manifest"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <template-dir>",
	Short: "Validate a template's config file",
	Long: `Locate the config file of a template directory, validate it against the
config schema and check its "requires" constraint against this build.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplateCheck(cmd.OutOrStdout(), afero.NewOsFs(), args[0])
	},
}

func runTemplateCheck(w io.Writer, fsys afero.Fs, templateDir string) error {
	info, err := fsys.Stat(templateDir)
	if err != nil {
		return fmt.Errorf("checking template directory %s: %w", templateDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("template directory %s is not a directory", templateDir)
	}

	path, err := manifest.Locate(fsys, templateDir)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintf(w, "  [ OK ] No config file in %s, every file is copied\n", templateDir)
		return nil
	}

	fmt.Fprintf(w, "Template config: %s\n", path)

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := manifest.Validate(data)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("template config validation failed: %w", err)
	}
	if !result.Valid {
		fmt.Fprintln(w, printer.Sprintf("  [FAIL] %d validation issue(s):", len(result.Issues)))
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "    - %s\n", issue)
		}
		return fmt.Errorf("template config %s has %d validation issue(s)", path, len(result.Issues))
	}

	cfg, err := manifest.Parse(data)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.CheckCompatible(buildVersion); err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintln(w, printer.Sprintf("  [ OK ] %d parameter(s), %d template(s), %d exclusion(s)",
		len(cfg.Parameters), len(cfg.Templates), len(cfg.Exclude)))
	return nil
}
