package main

import (
	"fmt"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/auth"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCmd(c *cli) *cobra.Command {
	var (
		tenant string
		user   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token for a tenant with the configured JWT secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid tenant %q: %w", tenant, err)
			}
			userID := tenantID
			if user != "" {
				if userID, err = uuid.Parse(user); err != nil {
					return fmt.Errorf("invalid user %q: %w", user, err)
				}
			}

			svc, err := auth.NewJWTService(c.cfg.JWT)
			if err != nil {
				return err
			}
			token, err := svc.Sign(tenantID, userID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "Tenant ID")
	cmd.Flags().StringVar(&user, "user", "", "User ID (default: the tenant ID)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}
