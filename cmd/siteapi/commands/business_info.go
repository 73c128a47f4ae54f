package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

// NewBusinessInfoCommand creates the business-info command.
func NewBusinessInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "business-info",
		Aliases: []string{"info"},
		Short:   "Show business information",
		Long:    "Display the business name, contact details, opening hours and social links",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cc.close()

			return runBusinessInfo(cmd.Context(), cc)
		},
	}
}

func runBusinessInfo(ctx context.Context, cc *commandContext) error {
	ctx, cancel := cc.requestContext(ctx)
	defer cancel()

	return cc.render(cc.client.GetBusinessInfo(ctx), renderBusinessInfo)
}

func renderBusinessInfo(w io.Writer, env *siteapi.Envelope) error {
	var info siteapi.BusinessInfo

	err := env.Decode(&info)
	if err != nil {
		return fmt.Errorf("failed to decode business info: %w", err)
	}

	return propertyTable(w, [][2]string{
		{"Name", info.BusinessName},
		{"Email", info.EmailAddress},
		{"WhatsApp", info.WhatsAppNumber},
		{"Address", info.BusinessAddress},
		{"Hours (Mon-Sat)", info.HoursWeekday},
		{"Hours (Sun)", info.HoursSunday},
		{"Google Maps", info.GoogleMapsURL},
		{"Google Reviews", info.GoogleReviewURL},
		{"Facebook", info.SocialMedia.Facebook},
		{"Instagram", info.SocialMedia.Instagram},
		{"Twitter", info.SocialMedia.Twitter},
		{"YouTube", info.SocialMedia.YouTube},
		{"LinkedIn", info.SocialMedia.LinkedIn},
		{"Updated", ago(info.UpdatedAt)},
	})
}
