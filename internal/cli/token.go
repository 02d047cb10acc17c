package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/crud-backends/internal/auth"
	"github.com/spec-kit/crud-backends/internal/config"
)

func newTokenCommand() *cobra.Command {
	var (
		app         string
		subject     string
		permissions []string
		ttl         time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an HS256 development token",
		Long:  `Mint a bearer token signed with AUTH_JWT_SECRET carrying the given permissions.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Auth.Mode != config.AuthModeHS256 {
				return fmt.Errorf("tokens can only be minted in %s mode; AUTH_MODE is %s", config.AuthModeHS256, cfg.Auth.Mode)
			}
			if err := cfg.Auth.Validate(); err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.Auth.TokenTTL()
			}

			issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience, ttl)
			token, expiresAt, err := issuer.GenerateToken(subject, permissions)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, token)
			fmt.Fprintf(out, "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&app, "app", config.AppCoffee, "Backend whose auth settings to use")
	cmd.Flags().StringVar(&subject, "subject", "dev|local", "Token subject")
	cmd.Flags().StringSliceVar(&permissions, "permissions", nil, "Comma separated permissions, e.g. get:drinks-detail,post:drinks")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to AUTH_TOKEN_TTL_MINUTES)")
	return cmd
}
