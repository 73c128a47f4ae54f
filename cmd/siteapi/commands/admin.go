package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cosmic-astrology/siteapi/internal/constants"
)

// NewAdminCommand creates the admin command group.
func NewAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin session commands",
		Long:  "Verify the admin password against the site",
	}

	cmd.AddCommand(newAdminLoginCommand())

	return cmd
}

func newAdminLoginCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify the admin password",
		Long: `Log in to the admin API.

The password is prompted for without echo when --password is not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cc.close()

			if password == "" {
				password = adminPassword(cmd)
			}

			if password == "" {
				password, err = promptPassword(cc.errOut)
				if err != nil {
					return err
				}
			}

			return runAdminLogin(cmd.Context(), cc, password)
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")

	return cmd
}

func runAdminLogin(ctx context.Context, cc *commandContext, password string) error {
	if password == "" {
		return constants.ErrPasswordRequired
	}

	ctx, cancel := cc.requestContext(ctx)
	defer cancel()

	return cc.render(cc.client.VerifyAdmin(ctx, password), renderMutation("Logged in"))
}
