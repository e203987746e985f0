package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/temcen/songmatch/internal/middleware"
)

var adminTokenCmd = &cobra.Command{
	Use:   "admin-token",
	Short: "Sign a bearer token for the server's admin endpoints",
	Long: `Sign an admin token with security.jwt_secret. Pass it to the server as
"Authorization: Bearer <token>", for example when calling POST /api/v1/admin/reload.

Example:
  SONGMATCH_SECURITY_JWT_SECRET=... songmatch admin-token --subject deploy --ttl 15m`,
	Args: cobra.NoArgs,
	RunE: runAdminToken,
}

var (
	tokenSubject string
	tokenTTL     time.Duration
)

func init() {
	adminTokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "Who the token is issued to, logged on each admin call")
	adminTokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "How long the token stays valid")
	rootCmd.AddCommand(adminTokenCmd)
}

func runAdminToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	token, err := middleware.NewAdminToken(cfg.Security.JWTSecret, tokenSubject, tokenTTL)
	if err != nil {
		return err
	}

	if outputJSON {
		return outputAsJSON(cmd, map[string]any{
			"token":      token,
			"subject":    tokenSubject,
			"expires_at": time.Now().Add(tokenTTL).UTC(),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
