package cli

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/salestax-api/internal/application/dto"
	"github.com/jhoicas/salestax-api/internal/domain/entity"
)

func newRatesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rates [code]",
		Short: "Tasas vigentes de todas las jurisdicciones o de una",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, table, err := opts.calculator()
			if err != nil {
				return err
			}
			var list []entity.Jurisdiction
			if len(args) == 1 {
				list = []entity.Jurisdiction{uc.GetRates(args[0])}
			} else {
				list = uc.ListRates()
			}
			if opts.jsonOutput {
				out := make([]dto.RatesResponse, 0, len(list))
				for _, j := range list {
					out = append(out, dto.NewRatesResponse(j))
				}
				return writeJSON(cmd, out)
			}
			_, err = cmd.OutOrStdout().Write([]byte(renderRates(list, table.Default().Code)))
			return err
		},
	}
}
