package cli

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/salestax-api/internal/application/billing"
	"github.com/jhoicas/salestax-api/internal/domain/tax"
	"github.com/jhoicas/salestax-api/internal/infrastructure/rates"
)

var version = "dev"

// options flags globales de taxctl.
type options struct {
	ratesFile    string
	jurisdiction string
	jsonOutput   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "taxctl",
		Short:         "Cálculo de impuestos al consumo desde la terminal",
		Long:          "taxctl calcula impuestos directos e inversos, lista las tasas por jurisdicción valida números tributarios sin depender del servidor y emite tokens para la API.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.ratesFile, "rates", "", "archivo YAML de tasas (por defecto, tabla incorporada)")
	cmd.PersistentFlags().StringVarP(&opts.jurisdiction, "jurisdiction", "j", "", "código de jurisdicción (vacío = por defecto)")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "salida en JSON")

	cmd.AddCommand(newCalculateCmd(opts))
	cmd.AddCommand(newReverseCmd(opts))
	cmd.AddCommand(newRatesCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newTokenCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// calculator sin directorio ni caché: en modo offline nadie está exento.
func (o *options) calculator() (*billing.CalculatorUseCase, *tax.RateTable, error) {
	table, err := rates.Load(o.ratesFile, "")
	if err != nil {
		return nil, nil, err
	}
	resolver := billing.NewExemptionResolver(nil, nil, 0, nil, nil)
	return billing.NewCalculatorUseCase(table, resolver, nil, 0, nil, nil), table, nil
}
