package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/eyeroniq/poslite/internal/application/service"
	"github.com/eyeroniq/poslite/internal/domain/enum"
	"github.com/eyeroniq/poslite/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newSaleCmd(appFn func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sale",
		Short: "Create, cancel and list sales",
	}
	cmd.AddCommand(
		newSaleCreateCmd(appFn),
		newSaleCancelCmd(appFn),
		newSaleShowCmd(appFn),
		newSaleListCmd(appFn),
	)
	return cmd
}

func newSaleCreateCmd(appFn func() *app) *cobra.Command {
	var (
		userID   string
		userName string
		payment  string
		kind     string
		total    string
		clientID string
		items    []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a sale or a quote",
		Example: "  posctl sale create --user 7b0e6a5c-1f7e-4a43-9a51-4f1c2d3e4f50 --user-name Ana \\\n" +
			"    --item 3f2c...:3 --item 9a1d...:1:8.50 --total 38.50 --pay cash",
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			amount, err := decimal.NewFromString(total)
			if err != nil {
				return fmt.Errorf("invalid --total: %w", err)
			}

			input := &service.CreateSaleInput{
				Kind:          enum.SaleKind(strings.ToUpper(kind)),
				PaymentMethod: enum.PaymentMethod(strings.ToUpper(payment)),
				Total:         amount,
				User:          service.ActingUser{ID: uid, Name: userName},
			}
			for _, raw := range items {
				item, err := parseItem(raw)
				if err != nil {
					return err
				}
				input.Items = append(input.Items, item)
			}
			if clientID != "" {
				cid, err := uuid.Parse(clientID)
				if err != nil {
					return fmt.Errorf("invalid --client: %w", err)
				}
				input.ClientID = &cid
			}

			sale, err := appFn().sales.CreateSale(cmd.Context(), input)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s total %s\n", sale.Kind, sale.ID, sale.Total.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "acting user ID")
	cmd.Flags().StringVar(&userName, "user-name", "", "acting user display name")
	cmd.Flags().StringVar(&payment, "pay", "cash", "payment method: cash or card")
	cmd.Flags().StringVar(&kind, "kind", "sale", "sale or quote")
	cmd.Flags().StringVar(&total, "total", "", "sale total")
	cmd.Flags().StringVar(&clientID, "client", "", "client ID")
	cmd.Flags().StringArrayVar(&items, "item", nil, "line item as productID:qty[:unitPrice], repeatable")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("total")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

// parseItem reads productID:qty[:unitPrice]
func parseItem(raw string) (service.SaleItemInput, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return service.SaleItemInput{}, fmt.Errorf("invalid --item %q: want productID:qty[:unitPrice]", raw)
	}

	productID, err := uuid.Parse(parts[0])
	if err != nil {
		return service.SaleItemInput{}, fmt.Errorf("invalid --item %q: %w", raw, err)
	}
	qty, err := strconv.Atoi(parts[1])
	if err != nil {
		return service.SaleItemInput{}, fmt.Errorf("invalid --item %q: quantity: %w", raw, err)
	}

	item := service.SaleItemInput{ProductID: productID, Quantity: qty}
	if len(parts) == 3 {
		price, err := decimal.NewFromString(parts[2])
		if err != nil {
			return service.SaleItemInput{}, fmt.Errorf("invalid --item %q: price: %w", raw, err)
		}
		item.UnitPrice = &price
	}
	return item, nil
}

func newSaleCancelCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <sale-id>",
		Short: "Cancel a sale and return its goods to stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid sale ID: %w", err)
			}
			if err := appFn().sales.CancelSale(cmd.Context(), id); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sale %s cancelled\n", id)
			return nil
		},
	}
}

func newSaleShowCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <sale-id>",
		Short: "Show a sale and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid sale ID: %w", err)
			}
			sale, err := appFn().sales.GetSale(cmd.Context(), id)
			if err != nil {
				return describe(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s %s %s\n", sale.ID, sale.Kind, sale.Status,
				sale.PaymentMethod.Label(), sale.Total.StringFixed(2))
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, item := range sale.Items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", item.Quantity, item.DisplayName(),
					item.UnitPrice.StringFixed(2), item.Extension().StringFixed(2))
			}
			return w.Flush()
		},
	}
}

func newSaleListCmd(appFn func() *app) *cobra.Command {
	var (
		page    int
		perPage int
		kind    string
		status  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sales, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &service.ListSalesInput{
				Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
			}
			if kind != "" {
				k := enum.SaleKind(strings.ToUpper(kind))
				input.Kind = &k
			}
			if status != "" {
				s := enum.SaleStatus(strings.ToUpper(status))
				input.Status = &s
			}

			result, err := appFn().sales.ListSales(cmd.Context(), input)
			if err != nil {
				return describe(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tKIND\tSTATUS\tPAYMENT\tTOTAL")
			for _, s := range result.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.CreatedAt.Format("2006-01-02 15:04"),
					s.Kind, s.Status, s.PaymentMethod.Label(), s.Total.StringFixed(2))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			p := result.Pagination
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d sales)\n", p.CurrentPage, p.TotalPages, p.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "sales per page")
	cmd.Flags().StringVar(&kind, "kind", "", "filter by kind: sale or quote")
	cmd.Flags().StringVar(&status, "status", "", "filter by status: completed or cancelled")
	return cmd
}
