package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/jet-merchant-client/internal/jet"
)

// pathLister pages through SKU paths without reducing them to the SKU.
type pathLister struct {
	client *jet.Client
}

func (l pathLister) ListSKUs(ctx context.Context, offset, limit int) ([]string, error) {
	return l.client.ListSKUURLs(ctx, offset, limit)
}

func skusCmd() *cobra.Command {
	skusRoot := &cobra.Command{
		Use:   "skus",
		Short: "List merchant SKUs",
	}

	skusRoot.AddCommand(skusListCmd())
	return skusRoot
}

func skusListCmd() *cobra.Command {
	var (
		limit    int
		maxPages int
		fullPath bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every merchant SKU",
		Long: "Walk the merchant SKU list page by page until a short page comes back\n" +
			"or --max-pages is reached.",
		Example: `  # All SKUs, 100 per request
  jetctl skus list

  # Keep the API paths and stop after two pages
  jetctl skus list --limit 50 --max-pages 2 --full-path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkPaging(limit, maxPages); err != nil {
				return err
			}

			c, err := setup()
			if err != nil {
				return err
			}

			var lister jet.SKULister = c
			if fullPath {
				lister = pathLister{client: c}
			}

			p := jet.NewSKUPaginator(lister,
				jet.WithPageSize(limit),
				jet.WithMaxPages(maxPages),
			)
			result, err := p.Paginate(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(result)
			}

			if len(result.SKUs) == 0 {
				fmt.Println("No SKUs found.")
				return nil
			}

			fmt.Printf("%d SKUs from %d pages (%s)\n\n",
				len(result.SKUs), result.PagesUsed, result.StoppedAt)
			return printSKUs(os.Stdout, result.SKUs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "SKUs per request")
	cmd.Flags().IntVar(&maxPages, "max-pages", 50, "maximum number of requests")
	cmd.Flags().BoolVar(&fullPath, "full-path", false, "print merchant-skus/{sku} paths")

	return cmd
}

func checkPaging(limit, maxPages int) error {
	if limit < 1 {
		return fmt.Errorf("--limit must be at least 1, got %d", limit)
	}
	if maxPages < 1 {
		return fmt.Errorf("--max-pages must be at least 1, got %d", maxPages)
	}
	return nil
}
