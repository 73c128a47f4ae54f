package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/clarketm/json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cosmic-astrology/siteapi/internal/constants"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

// NewChatbotCommand creates the chatbot command group.
func NewChatbotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatbot",
		Short: "Manage the chatbot configuration",
		Long:  "View and update the services, links and opening hours the site chatbot uses",
	}

	cmd.AddCommand(newChatbotGetCommand())
	cmd.AddCommand(newChatbotSetCommand())

	return cmd
}

func newChatbotGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the chatbot configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cc.close()

			return runChatbotGet(cmd.Context(), cc)
		},
	}
}

func runChatbotGet(ctx context.Context, cc *commandContext) error {
	ctx, cancel := cc.requestContext(ctx)
	defer cancel()

	return cc.render(cc.client.GetChatbotConfig(ctx), renderChatbotConfig)
}

func renderChatbotConfig(w io.Writer, env *siteapi.Envelope) error {
	var response siteapi.ChatbotConfigResponse

	err := env.Decode(&response)
	if err != nil {
		return fmt.Errorf("failed to decode chatbot config: %w", err)
	}

	config := response.Config
	if config == nil {
		config = &siteapi.ChatbotConfig{}
	}

	return propertyTable(w, [][2]string{
		{"Services", strings.Join(config.Services, ", ")},
		{"Hours (Mon-Sat)", config.HoursWeekday},
		{"Hours (Sun)", config.HoursSunday},
		{"Google Maps", config.GoogleMapsURL},
		{"Google Reviews", config.GoogleReviewURL},
		{"Facebook", config.FacebookURL},
		{"Instagram", config.InstagramURL},
		{"Twitter", config.TwitterURL},
		{"YouTube", config.YouTubeURL},
		{"LinkedIn", config.LinkedInURL},
		{"Updated", ago(config.UpdatedAt)},
	})
}

func newChatbotSetCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the chatbot configuration",
		Long: `Replace the chatbot configuration with the contents of a YAML or JSON file.

Fields missing from the file are cleared on the server.`,
		Example: `  siteapi chatbot set --file chatbot.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cc.close()

			return runChatbotSet(cmd.Context(), cc, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file with the configuration")

	return cmd
}

func runChatbotSet(ctx context.Context, cc *commandContext, file string) error {
	if file == "" {
		return constants.ErrFileRequired
	}

	config, err := readChatbotConfigFile(file)
	if err != nil {
		return err
	}

	ctx, cancel := cc.requestContext(ctx)
	defer cancel()

	return cc.render(cc.client.UpdateChatbotConfig(ctx, config), renderMutation("Chatbot configuration updated"))
}

// readChatbotConfigFile loads a YAML or JSON mapping chosen by extension.
func readChatbotConfigFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var config map[string]interface{}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &config)
	} else {
		err = yaml.Unmarshal(data, &config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if config == nil {
		config = map[string]interface{}{}
	}

	return config, nil
}
