package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/jet-merchant-client/pkg/types"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Inspect and update merchant SKUs",
	}

	productsRoot.AddCommand(
		productsGetCmd(),
		productsPutCmd(),
		productsPriceCmd(),
		productsInventoryCmd(),
		productsImagesCmd(),
	)

	return productsRoot
}

func productsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <sku>",
		Short:   "Show a merchant SKU",
		Example: `  jetctl products get WIDGET-001`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup()
			if err != nil {
				return err
			}

			p, err := c.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(p)
			}
			return printProductDetail(os.Stdout, p)
		},
	}
}

func productsPutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <file.json>",
		Short: "Upload a product record",
		Long: "Validate a product record from a JSON file and upload it. The SKU\n" +
			"comes from merchant_sku, or the first standard product code when unset.",
		Example: `  jetctl products put widget.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading product file: %w", err)
			}

			var p domain.Product
			if err := json.Unmarshal(data, &p); err != nil {
				return fmt.Errorf("parsing product file: %w", err)
			}

			c, err := setup()
			if err != nil {
				return err
			}

			if err := c.PutProduct(cmd.Context(), &p); err != nil {
				return err
			}

			sku, _ := p.ResolveSKU()
			fmt.Printf("Uploaded %s\n", sku)
			return nil
		},
	}
}

func productsPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "price <sku> <price>",
		Short:   "Set the price of a merchant SKU",
		Example: `  jetctl products price WIDGET-001 19.99`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", args[1], err)
			}

			c, err := setup()
			if err != nil {
				return err
			}

			if err := c.PutPrice(cmd.Context(), args[0], domain.Price{Price: price}); err != nil {
				return err
			}

			fmt.Printf("Price for %s set to $%.2f\n", args[0], domain.Round2(price))
			return nil
		},
	}
}

func productsInventoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "inventory <sku> <node-id> <qty>",
		Short:   "Set the quantity of a merchant SKU at one fulfillment node",
		Example: `  jetctl products inventory WIDGET-001 a1b2c3 25`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[2], err)
			}

			c, err := setup()
			if err != nil {
				return err
			}

			inv := domain.Inventory{
				FulfillmentNodes: []domain.FulfillmentNodeInventory{
					{NodeID: args[1], Quantity: qty},
				},
			}
			if err := c.PutInventory(cmd.Context(), args[0], inv); err != nil {
				return err
			}

			fmt.Printf("Inventory for %s at %s set to %d\n", args[0], args[1], qty)
			return nil
		},
	}
}

func productsImagesCmd() *cobra.Command {
	var (
		mainURL    string
		swatch     string
		alternates []string
	)

	cmd := &cobra.Command{
		Use:   "images <sku>",
		Short: "Set the images of a merchant SKU",
		Example: `  jetctl products images WIDGET-001 \
    --main https://cdn.example.com/w1.jpg \
    --alt https://cdn.example.com/w1-side.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup()
			if err != nil {
				return err
			}

			images := domain.Images{MainImageURL: mainURL, SwatchImageURL: swatch}
			for i, u := range alternates {
				images.AlternateImages = append(images.AlternateImages,
					domain.AlternateImage{SlotID: i + 1, URL: u})
			}

			if err := c.PutImages(cmd.Context(), args[0], images); err != nil {
				return err
			}

			fmt.Printf("Images for %s updated\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&mainURL, "main", "", "main image URL")
	cmd.Flags().StringVar(&swatch, "swatch", "", "swatch image URL")
	cmd.Flags().StringSliceVar(&alternates, "alt", nil, "alternate image URL (repeatable)")
	cobra.CheckErr(cmd.MarkFlagRequired("main"))

	return cmd
}
