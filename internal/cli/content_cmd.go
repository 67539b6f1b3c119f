package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eastdocs/studioctl/internal/content"
	"github.com/eastdocs/studioctl/internal/output"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect and edit the site content tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newContentGetCmd())
	cmd.AddCommand(newContentSetCmd())
	cmd.AddCommand(newContentUpdateCmd())
	cmd.AddCommand(newContentResetCmd())
	return cmd
}

func newContentGetCmd() *cobra.Command {
	var outputMode string
	var section string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch the content tree, or a single section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return err
			}
			if format == output.FormatTable {
				format = output.FormatYAML
			}
			api := clientFromCommand(cmd)
			tree, err := api.GetContent(cmd.Context())
			if err != nil {
				return err
			}
			if strings.TrimSpace(section) == "" {
				return output.WriteStructured(cmd.OutOrStdout(), format, tree)
			}
			picked, err := pickSection(tree, section)
			if err != nil {
				return err
			}
			return output.WriteStructured(cmd.OutOrStdout(), format, picked)
		},
	}

	cmd.Flags().StringVarP(&outputMode, "output", "o", "yaml", "Output format (json|yaml)")
	cmd.Flags().StringVar(&section, "section", "", "Top-level section to fetch (e.g. studioHire, about)")
	return cmd
}

// pickSection selects a top-level tree field by its JSON name, so the CLI
// names match what the API serves.
func pickSection(tree content.SiteContent, name string) (any, error) {
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encode content tree: %w", err)
	}
	var sections map[string]any
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, fmt.Errorf("decode content tree: %w", err)
	}
	picked, ok := sections[name]
	if !ok {
		known := make([]string, 0, len(sections))
		for k := range sections {
			known = append(known, k)
		}
		return nil, fmt.Errorf("unknown section %q (one of: %s)", name, strings.Join(known, ", "))
	}
	return picked, nil
}

func newContentSetCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace one or more content sections from a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readDocumentAsJSON(file)
			if err != nil {
				return err
			}
			var patch content.SectionPatch
			if err := json.Unmarshal(raw, &patch); err != nil {
				return fmt.Errorf("parse section patch %s: %w", file, err)
			}
			api := clientFromCommand(cmd)
			if _, err := api.ReplaceSections(cmd.Context(), patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Replaced sections: %s\n", strings.Join(patch.Sections(), ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file with the sections to replace")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newContentUpdateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Apply a typed content update from a file",
		Long: `Apply a typed content update envelope, e.g.:

  op: set-about
  about:
    title: About Us
    description: We make podcasts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readDocumentAsJSON(file)
			if err != nil {
				return err
			}
			api := clientFromCommand(cmd)
			if _, err := api.ApplyUpdate(cmd.Context(), raw); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Update applied.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file with the update envelope")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newContentResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard all overrides and return to the default content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset discards every content override; re-run with --yes to confirm")
			}
			api := clientFromCommand(cmd)
			if _, err := api.ResetContent(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Content reset to defaults.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

// readDocumentAsJSON loads a YAML or JSON file and returns its contents as
// JSON bytes. YAML goes through an intermediate map so keys and nesting
// survive unchanged.
func readDocumentAsJSON(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		return raw, nil
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	converted, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert %s to json: %w", path, err)
	}
	return converted, nil
}
