package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/salestax-api/internal/application/dto"
	"github.com/jhoicas/salestax-api/internal/domain/tax"
)

func newCalculateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "calculate <subtotal>",
		Aliases: []string{"calc"},
		Short:   "Desglose de impuestos para un subtotal antes de impuestos",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			uc, _, err := opts.calculator()
			if err != nil {
				return err
			}
			b, err := uc.Calculate(cmd.Context(), amount, opts.jurisdiction, "", false)
			if err != nil {
				return fmt.Errorf("calculate: %w", err)
			}
			j := uc.GetRates(opts.jurisdiction)
			return writeBreakdown(cmd, opts, j, dto.NewBreakdownResponse(b))
		},
	}
}

func newReverseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reverse <total>",
		Short: "Subtotal e impuestos incluidos en un total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			uc, _, err := opts.calculator()
			if err != nil {
				return err
			}
			b, err := uc.ReverseCalculate(cmd.Context(), total, opts.jurisdiction)
			if err != nil {
				return fmt.Errorf("reverse: %w", err)
			}
			j := uc.GetRates(opts.jurisdiction)
			return writeBreakdown(cmd, opts, j, dto.NewBreakdownResponse(b))
		},
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("monto inválido %q", s)
	}
	if !tax.ValidAmount(d) {
		return decimal.Zero, fmt.Errorf("monto fuera de rango %q (0 a %s, máximo %d decimales)", s, tax.MaxAmount, tax.MaxAmountScale)
	}
	return d, nil
}
