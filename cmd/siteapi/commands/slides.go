package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cosmic-astrology/siteapi/internal/constants"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

// slideKind binds a slide flavor to its client operations.
type slideKind struct {
	name        string
	description bool
	list        func(context.Context, siteapi.Client) *siteapi.Envelope
	create      func(context.Context, siteapi.Client, interface{}) *siteapi.Envelope
}

var (
	heroSlides = slideKind{
		name:        "hero",
		description: true,
		list: func(ctx context.Context, c siteapi.Client) *siteapi.Envelope {
			return c.GetHeroSlides(ctx)
		},
		create: func(ctx context.Context, c siteapi.Client, slide interface{}) *siteapi.Envelope {
			return c.CreateHeroSlide(ctx, slide)
		},
	}

	gallerySlides = slideKind{
		name: "gallery",
		list: func(ctx context.Context, c siteapi.Client) *siteapi.Envelope {
			return c.GetGallerySlides(ctx)
		},
		create: func(ctx context.Context, c siteapi.Client, slide interface{}) *siteapi.Envelope {
			return c.CreateGallerySlide(ctx, slide)
		},
	}
)

// NewSlidesCommand creates the slides command group.
func NewSlidesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "slides",
		Aliases: []string{"slide"},
		Short:   "Manage hero and gallery slides",
		Long:    "List and create the homepage hero slides and the gallery slides",
	}

	cmd.AddCommand(newSlideKindCommand(heroSlides))
	cmd.AddCommand(newSlideKindCommand(gallerySlides))

	return cmd
}

func newSlideKindCommand(kind slideKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind.name,
		Short: fmt.Sprintf("Manage %s slides", kind.name),
	}

	cmd.AddCommand(newSlidesListCommand(kind))
	cmd.AddCommand(newSlidesCreateCommand(kind))

	return cmd
}

func newSlidesListCommand(kind slideKind) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s slides", kind.name),
		Long:  fmt.Sprintf("List the active %s slides in display order", kind.name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cc.close()

			return runSlidesList(cmd.Context(), cc, kind)
		},
	}
}

func runSlidesList(ctx context.Context, cc *commandContext, kind slideKind) error {
	ctx, cancel := cc.requestContext(ctx)
	defer cancel()

	return cc.render(kind.list(ctx, cc.client), renderSlidesTable)
}

func renderSlidesTable(w io.Writer, env *siteapi.Envelope) error {
	var response siteapi.SlidesResponse

	err := env.Decode(&response)
	if err != nil {
		return fmt.Errorf("failed to decode slides: %w", err)
	}

	if len(response.Slides) == 0 {
		_, _ = io.WriteString(w, "No slides found\n")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Order", "Title", "Image", "Active", "Created")

	for _, slide := range response.Slides {
		_ = table.Append(
			strconv.Itoa(slide.ID),
			strconv.Itoa(slide.DisplayOrder),
			truncate(slide.Title),
			truncate(slide.Image),
			yesNo(slide.IsActive),
			ago(slide.CreatedAt),
		)
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// SlideCreateOptions holds the options for creating a slide.
type SlideCreateOptions struct {
	Title       string
	Description string
	Image       string
	Order       int
}

func newSlidesCreateCommand(kind slideKind) *cobra.Command {
	var opts SlideCreateOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create a %s slide", kind.name),
		Long:  fmt.Sprintf("Create a new %s slide through the admin API", kind.name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cc.close()

			return runSlidesCreate(cmd.Context(), cc, kind, opts, adminPassword(cmd))
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "slide title")
	cmd.Flags().StringVar(&opts.Image, "image", "", "image URL or path")
	cmd.Flags().IntVar(&opts.Order, "order", 0, "display order")

	if kind.description {
		cmd.Flags().StringVar(&opts.Description, "description", "", "slide description")
	}

	addAdminPasswordFlag(cmd)

	return cmd
}

func runSlidesCreate(ctx context.Context, cc *commandContext, kind slideKind, opts SlideCreateOptions, password string) error {
	if opts.Title == "" {
		return constants.ErrTitleRequired
	}

	if opts.Image == "" {
		return constants.ErrImageRequired
	}

	ctx, cancel := cc.requestContext(ctx)
	defer cancel()

	err := cc.login(ctx, password)
	if err != nil {
		return err
	}

	request := &siteapi.SlideCreateRequest{
		Title:        opts.Title,
		Image:        opts.Image,
		DisplayOrder: opts.Order,
	}

	if kind.description {
		request.Description = opts.Description
	}

	return cc.render(kind.create(ctx, cc.client, request), renderMutation("Slide created"))
}

// renderMutation prints the outcome of a create, update or submit call.
func renderMutation(title string) tableRenderer {
	return func(w io.Writer, env *siteapi.Envelope) error {
		var response siteapi.MutationResponse

		err := env.Decode(&response)
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}

		rows := [][2]string{{"Result", title}, {"Message", response.Message}}
		if response.ID != 0 {
			rows = append(rows, [2]string{"ID", strconv.Itoa(response.ID)})
		}

		return propertyTable(w, rows)
	}
}
