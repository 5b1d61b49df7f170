package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eyeroniq/poslite/pkg/printer"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReceiptCmd(appFn func() *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "receipt <sale-id>",
		Short: "Print a sale's receipt, or save it as PDF when no printer is available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid sale ID: %w", err)
			}

			a := appFn()
			out, err := a.receipts.EmitReceipt(cmd.Context(), id)
			if err != nil {
				return describe(err)
			}

			if out.Kind == printer.OutputPhysical {
				fmt.Fprintf(cmd.OutOrStdout(), "printed on %s\n", out.Device)
				return nil
			}

			dir := outDir
			if dir == "" {
				dir = a.cfg.Receipt.OutputDir
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(dir, out.Filename)
			if err := os.WriteFile(path, out.Document, 0o644); err != nil {
				return err
			}

			zap.L().Info("receipt saved as PDF", zap.String("path", path), zap.Int("bytes", len(out.Document)))
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "", "directory for PDF receipts (default RECEIPT_OUTPUT_DIR)")
	return cmd
}
