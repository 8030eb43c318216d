package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sangkips/label-bridge/internal/application/service"
	"github.com/sangkips/label-bridge/internal/config"
	"github.com/sangkips/label-bridge/internal/domain/entity"
	"github.com/sangkips/label-bridge/internal/domain/enum"
	"github.com/sangkips/label-bridge/pkg/printer"
)

type cliDeps struct {
	newDriver func(cfg *config.Config) (printer.Driver, error)
	logger    *zap.Logger
}

type printFlags struct {
	productName string
	price       string
	sku         string
	method      string
	printerName string
	driver      string
	jobName     string
}

func newRootCommand(deps cliDeps) *cobra.Command {
	var flags printFlags

	rootCmd := &cobra.Command{
		Use:           "printtest",
		Short:         "Print one test label, falling back from GDI to RAW",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			svc, err := newPrintService(deps, cfg)
			if err != nil {
				return err
			}

			req, err := entity.NewLabelRequest(flags.productName, flags.price, flags.sku)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "start direct print test (method=%s, printer=%s)\n", cfg.Printer.Method, cfg.Printer.Name)
			outcome := svc.PrintWithFallback(req, cfg.Printer.Method)
			for _, attempt := range outcome.Attempts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", attempt.Transport, describe(attempt))
			}

			if final := outcome.Final(); !final.Success {
				return errors.New("label not printed: " + final.Message)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVar(&flags.productName, "product", "Voorbeeld Product", "Product name printed as the label title")
	rootCmd.Flags().StringVar(&flags.price, "price", "€9,99", "Price printed after \"Prijs:\"")
	rootCmd.Flags().StringVar(&flags.sku, "sku", "SKU-001", "SKU printed after \"SKU:\"")
	rootCmd.PersistentFlags().StringVar(&flags.method, "method", "", "Preferred transport, GDI or RAW (default PRINTER_METHOD)")
	rootCmd.PersistentFlags().StringVar(&flags.printerName, "printer", "", "Printer name (default PRINTER_NAME)")
	rootCmd.Flags().StringVar(&flags.jobName, "job-name", "DYMO Direct Print Test", "Spooler document name")
	rootCmd.PersistentFlags().StringVar(&flags.driver, "driver", "", "Printer driver: windows, device, network or none (default PRINTER_DRIVER)")

	rootCmd.AddCommand(newPrintersCommand(deps, &flags))

	return rootCmd
}

func newPrintersCommand(deps cliDeps, flags *printFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "printers",
		Short: "List installed printers and check the configured one",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*flags)
			if err != nil {
				return err
			}
			svc, err := newPrintService(deps, cfg)
			if err != nil {
				return err
			}
			status, err := svc.GetStatus()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range status.Printers {
				marker := " "
				if name == status.Name {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, name)
			}
			if !status.Installed {
				return fmt.Errorf("printer %q not found", status.Name)
			}
			return nil
		},
	}
}

func loadConfig(flags printFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flags.printerName != "" {
		cfg.Printer.Name = flags.printerName
	}
	if flags.driver != "" {
		cfg.Printer.Driver = flags.driver
	}
	if flags.jobName != "" {
		cfg.Printer.JobName = flags.jobName
	}
	if flags.method != "" {
		method, err := enum.ParseTransport(flags.method)
		if err != nil {
			return nil, err
		}
		cfg.Printer.Method = method
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newPrintService(deps cliDeps, cfg *config.Config) (*service.PrintService, error) {
	driver, err := deps.newDriver(cfg)
	if err != nil {
		return nil, err
	}
	return service.NewPrintService(driver, service.NewLabelRenderer(cfg.Printer), cfg.Printer, deps.logger), nil
}

func describe(r entity.PrintResult) string {
	if r.Success {
		return "OK, " + r.Message
	}
	if r.ErrorCode != nil {
		return fmt.Sprintf("FOUT (%s, code=%d): %s", r.Kind, *r.ErrorCode, r.Message)
	}
	return fmt.Sprintf("FOUT (%s): %s", r.Kind, r.Message)
}
