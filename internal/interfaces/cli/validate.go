package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/salestax-api/internal/application/dto"
	"github.com/jhoicas/salestax-api/pkg/taxid"
)

func newValidateCmd(opts *options) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "validate <value>",
		Short: "Valida el formato de un número tributario",
		Long:  "Valida un número de registro nacional, regional o un certificado de exención. Termina con error si el formato no es válido.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category = strings.ToUpper(strings.TrimSpace(category))
			valid := taxid.Validate(args[0], category)
			if opts.jsonOutput {
				if err := writeJSON(cmd, dto.ValidateTaxNumberResponse{Value: args[0], Category: category, Valid: valid}); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), renderValidation(args[0], category, valid))
			}
			if !valid {
				return fmt.Errorf("%s no es un número %s válido", args[0], category)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", taxid.CategoryNational,
		"categoría: "+strings.Join(taxid.Categories(), ", "))
	return cmd
}
