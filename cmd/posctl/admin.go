package main

import (
	"fmt"
	"strings"

	"github.com/eyeroniq/poslite/internal/application/service"
	"github.com/eyeroniq/poslite/internal/domain/enum"
	"github.com/eyeroniq/poslite/internal/infrastructure/database"
	"github.com/eyeroniq/poslite/pkg/apperror"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and seed default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := appFn().db

			// Run auto-migrations
			if err := database.AutoMigrate(db); err != nil {
				return err
			}

			// Seed default data
			if err := database.SeedDefaultData(db); err != nil {
				zap.L().Warn("failed to seed default data", zap.Error(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
			return nil
		},
	}
}

func newSettingsCmd(appFn func() *app) *cobra.Command {
	show := &cobra.Command{
		Use:   "show",
		Short: "Show store and printer settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := appFn().settings.GetSettings(cmd.Context())
			if err != nil {
				return describe(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "store name:     %s\n", s.StoreName)
			fmt.Fprintf(out, "store address:  %s\n", s.StoreAddress)
			fmt.Fprintf(out, "store phone:    %s\n", s.StorePhone)
			fmt.Fprintf(out, "store logo:     %s\n", s.StoreLogoURL)
			fmt.Fprintf(out, "receipt footer: %s\n", s.ReceiptFooter)
			fmt.Fprintf(out, "printer:        %s %dmm\n", s.PrinterFamily, s.PrinterWidth)
			return nil
		},
	}

	var (
		name, address, phone, logo, footer, family string
		width                                      int
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change store and printer settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &service.UpdateSettingsInput{}
			flags := cmd.Flags()
			if flags.Changed("store-name") {
				input.StoreName = &name
			}
			if flags.Changed("address") {
				input.StoreAddress = &address
			}
			if flags.Changed("phone") {
				input.StorePhone = &phone
			}
			if flags.Changed("logo") {
				input.StoreLogoURL = &logo
			}
			if flags.Changed("footer") {
				input.ReceiptFooter = &footer
			}
			if flags.Changed("printer") {
				f := enum.PrinterFamily(strings.ToUpper(strings.ReplaceAll(family, "-", "_")))
				input.PrinterFamily = &f
			}
			if flags.Changed("width") {
				input.PrinterWidth = &width
			}

			if _, err := appFn().settings.UpdateSettings(cmd.Context(), input); err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "settings saved")
			return nil
		},
	}
	set.Flags().StringVar(&name, "store-name", "", "store name printed on receipts")
	set.Flags().StringVar(&address, "address", "", "store address")
	set.Flags().StringVar(&phone, "phone", "", "store phone")
	set.Flags().StringVar(&logo, "logo", "", "logo path under PRINTER_ASSETS_DIR, e.g. /uploads/logo.png")
	set.Flags().StringVar(&footer, "footer", "", "receipt footer text")
	set.Flags().StringVar(&family, "printer", "", "thermal or pdf-only")
	set.Flags().IntVar(&width, "width", 80, "paper width in mm: 58 or 80")

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change store settings",
	}
	cmd.AddCommand(show, set)
	return cmd
}

// describe expands application errors into a message fit for the terminal
func describe(err error) error {
	appErr := apperror.GetAppError(err)
	switch appErr.Kind {
	case apperror.KindValidation:
		parts := make([]string, 0, len(appErr.Errors))
		for _, fe := range appErr.Errors {
			parts = append(parts, fe.Field+" "+fe.Message)
		}
		return fmt.Errorf("%s: %s", appErr.Message, strings.Join(parts, "; "))
	case apperror.KindInternal:
		return err
	default:
		return appErr
	}
}
