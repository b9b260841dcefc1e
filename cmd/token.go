package main

import (
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/hackhub/internal/identity"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

func newTokenCmd(load loader) *cobra.Command {
	var (
		user string
		role string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := cfg.RequireSecret(); err != nil {
				return err
			}
			r, err := identity.ParseRole(role)
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.Auth.TokenTTL
			}

			issuer := identity.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, ttl, clockwork.NewRealClock())
			token, err := issuer.Issue(identity.Principal{UserID: user, Role: r})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id placed in the token subject (required)")
	cmd.Flags().StringVar(&role, "role", string(identity.RoleStudent), "student, organizer or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default auth.token_ttl)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
