package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

// NewTestimonialsCommand creates the testimonials command group.
func NewTestimonialsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "testimonials",
		Aliases: []string{"reviews"},
		Short:   "List customer testimonials",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all testimonials",
		Long:  "List every testimonial, selected or not, in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cc.close()

			return runTestimonialsList(cmd.Context(), cc, adminPassword(cmd))
		},
	}

	addAdminPasswordFlag(list)
	cmd.AddCommand(list)

	return cmd
}

func runTestimonialsList(ctx context.Context, cc *commandContext, password string) error {
	ctx, cancel := cc.requestContext(ctx)
	defer cancel()

	err := cc.login(ctx, password)
	if err != nil {
		return err
	}

	return cc.render(cc.client.GetTestimonials(ctx), renderTestimonialsTable)
}

func renderTestimonialsTable(w io.Writer, env *siteapi.Envelope) error {
	var response siteapi.TestimonialsResponse

	err := env.Decode(&response)
	if err != nil {
		return fmt.Errorf("failed to decode testimonials: %w", err)
	}

	if len(response.Testimonials) == 0 {
		_, _ = io.WriteString(w, "No testimonials found\n")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Rating", "Selected", "Review", "Created")

	for _, testimonial := range response.Testimonials {
		_ = table.Append(
			strconv.Itoa(testimonial.ID),
			truncate(testimonial.Name),
			stars(testimonial.Rating),
			yesNo(testimonial.IsSelected),
			truncate(testimonial.ReviewText),
			ago(testimonial.CreatedAt),
		)
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// stars renders a 0-5 rating.
func stars(rating int) string {
	rating = max(0, min(rating, 5))

	return strings.Repeat("*", rating) + strings.Repeat(".", 5-rating)
}
