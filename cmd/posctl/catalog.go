package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/eyeroniq/poslite/internal/application/service"
	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/eyeroniq/poslite/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newProductCmd(appFn func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the products the till sells",
	}
	cmd.AddCommand(newProductAddCmd(appFn), newProductShowCmd(appFn), newProductHistoryCmd(appFn))
	return cmd
}

func newProductAddCmd(appFn func() *app) *cobra.Command {
	var (
		kind     string
		price    string
		cost     string
		quantity int
		barcode  string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a good or a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid --price: %w", err)
			}
			c := decimal.Zero
			if cost != "" {
				if c, err = decimal.NewFromString(cost); err != nil {
					return fmt.Errorf("invalid --cost: %w", err)
				}
			}

			product, err := appFn().products.CreateProduct(cmd.Context(), &service.CreateProductInput{
				Name:     args[0],
				Kind:     enum.ProductKind(strings.ToUpper(kind)),
				Price:    p,
				Cost:     c,
				Quantity: quantity,
				Barcode:  barcode,
			})
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s stock %d\n", product.ID, product.Kind, product.Name, product.Quantity)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "good", "good or service")
	cmd.Flags().StringVar(&price, "price", "0", "selling price")
	cmd.Flags().StringVar(&cost, "cost", "", "buying price")
	cmd.Flags().IntVar(&quantity, "qty", 0, "initial stock, goods only")
	cmd.Flags().StringVar(&barcode, "barcode", "", "barcode")
	return cmd
}

func newProductShowCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <product-id|barcode>",
		Short: "Show a product and its stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products := appFn().products

			var product *entity.Product
			var err error
			if id, perr := uuid.Parse(args[0]); perr == nil {
				product, err = products.GetProductByID(cmd.Context(), id)
			} else {
				product, err = products.GetProductByBarcode(cmd.Context(), args[0])
			}
			if err != nil {
				return describe(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s price %s stock %d\n",
				product.ID, product.Kind, product.Name, product.Price.StringFixed(2), product.Quantity)
			return nil
		},
	}
}

func newProductHistoryCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history <product-id>",
		Short: "Show the stock movements of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID: %w", err)
			}
			movements, err := appFn().products.StockHistory(cmd.Context(), id)
			if err != nil {
				return describe(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tREASON\tDELTA\tBEFORE\tAFTER\tSALE")
			for _, m := range movements {
				sale := "-"
				if m.SaleID != nil {
					sale = m.SaleID.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%+d\t%d\t%d\t%s\n", m.CreatedAt.Format("2006-01-02 15:04:05"),
					m.Reason, m.Delta, m.Before, m.After, sale)
			}
			return w.Flush()
		},
	}
}

func newClientCmd(appFn func() *app) *cobra.Command {
	var email, phone string

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &service.CreateClientInput{Name: args[0]}
			if email != "" {
				input.Email = &email
			}
			if phone != "" {
				input.Phone = &phone
			}

			client, err := appFn().clients.CreateClient(cmd.Context(), input)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", client.ID, client.Name)
			return nil
		},
	}
	add.Flags().StringVar(&email, "email", "", "email address")
	add.Flags().StringVar(&phone, "phone", "", "phone number")

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}
	cmd.AddCommand(add)
	return cmd
}
