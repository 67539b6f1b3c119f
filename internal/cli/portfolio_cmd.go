package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eastdocs/studioctl/internal/content"
	"github.com/eastdocs/studioctl/internal/output"
)

func newPortfolioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Manage portfolio showcase items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newPortfolioLsCmd())
	cmd.AddCommand(newPortfolioAddCmd())
	cmd.AddCommand(newPortfolioSetCmd())
	cmd.AddCommand(newPortfolioRmCmd())
	return cmd
}

func newPortfolioLsCmd() *cobra.Command {
	var outputMode string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List portfolio items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(outputMode)
			if err != nil {
				return err
			}
			api := clientFromCommand(cmd)
			tree, err := api.GetContent(cmd.Context())
			if err != nil {
				return err
			}
			if format != output.FormatTable {
				return output.WriteStructured(cmd.OutOrStdout(), format, tree.Portfolio)
			}
			if len(tree.Portfolio) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No portfolio items found.")
				return nil
			}
			rows := make([][]string, 0, len(tree.Portfolio))
			for _, item := range tree.Portfolio {
				rows = append(rows, []string{
					item.ID,
					output.Truncate(item.Title, 40),
					output.Truncate(item.Description, 60),
					output.OrDash(item.VideoURL),
				})
			}
			return output.WriteTable(cmd.OutOrStdout(), []string{"ID", "TITLE", "DESCRIPTION", "VIDEO"}, rows)
		},
	}

	cmd.Flags().StringVarP(&outputMode, "output", "o", "table", "Output format (table|json|yaml)")
	return cmd
}

func newPortfolioAddCmd() *cobra.Command {
	var title, description, videoURL string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a portfolio item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api := clientFromCommand(cmd)
			created, err := api.AddPortfolioItem(cmd.Context(), content.PortfolioItem{
				Title:       title,
				Description: description,
				VideoURL:    videoURL,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added portfolio item %s\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&description, "description", "", "Item description")
	cmd.Flags().StringVar(&videoURL, "video", "", "Showcase video URL")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newPortfolioSetCmd() *cobra.Command {
	var title, description, videoURL string

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Replace a portfolio item's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api := clientFromCommand(cmd)
			updated, err := api.UpdatePortfolioItem(cmd.Context(), args[0], content.PortfolioItem{
				Title:       title,
				Description: description,
				VideoURL:    videoURL,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated portfolio item %s\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&description, "description", "", "Item description")
	cmd.Flags().StringVar(&videoURL, "video", "", "Showcase video URL")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newPortfolioRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a portfolio item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api := clientFromCommand(cmd)
			if err := api.RemovePortfolioItem(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed portfolio item %s\n", args[0])
			return nil
		},
	}
}
