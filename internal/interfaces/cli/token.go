package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/salestax-api/internal/application/auth"
	"github.com/jhoicas/salestax-api/pkg/config"
)

func newTokenCmd(opts *options) *cobra.Command {
	var (
		secret  string
		scopes  []string
		expires int
	)
	cmd := &cobra.Command{
		Use:   "token <client-id>",
		Short: "Emite un token Bearer para un cliente de la API",
		Long: "Firma un JWT con JWT_SECRET (o --secret) para acceder a las rutas protegidas. Scopes: " +
			strings.Join(auth.KnownScopes(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			jwtCfg := auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer}
			if secret != "" {
				jwtCfg.Secret = secret
			}
			if expires > 0 {
				jwtCfg.ExpMinutes = expires
			}
			out, err := auth.NewAuthUseCase(jwtCfg).IssueToken(args[0], scopes)
			if err != nil {
				return fmt.Errorf("token: %w", err)
			}
			if opts.jsonOutput {
				return writeJSON(cmd, map[string]any{
					"token":      out.Token,
					"client_id":  out.ClientID,
					"scopes":     out.Scopes,
					"expires_in": out.ExpiresIn,
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out.Token)
			return err
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "secreto HMAC (por defecto JWT_SECRET)")
	cmd.Flags().StringSliceVarP(&scopes, "scope", "s", auth.KnownScopes(), "scopes concedidos")
	cmd.Flags().IntVar(&expires, "expires", 0, "vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	return cmd
}
