package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/cosmic-astrology/siteapi/internal/config"
	"github.com/cosmic-astrology/siteapi/internal/constants"
	"github.com/cosmic-astrology/siteapi/internal/logger"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
	"github.com/cosmic-astrology/siteapi/pkg/siteclient"
)

// commandContext carries what every command needs to talk to the site.
type commandContext struct {
	client siteapi.Client
	config *config.Config
	logger *logger.Logger
	out    io.Writer
	errOut io.Writer
}

// newCommandContext loads the configuration held by viper and builds a client.
func newCommandContext(cmd *cobra.Command) (*commandContext, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	client, err := siteclient.New(cfg.ClientConfig(log))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &commandContext{
		client: client,
		config: cfg,
		logger: log,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}, nil
}

// close flushes the logger.
func (c *commandContext) close() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

// log returns the logger as a siteapi.Logger, or nil when none is set.
func (c *commandContext) log() siteapi.Logger {
	if c.logger == nil {
		return nil
	}

	return c.logger
}

// format returns the configured output format.
func (c *commandContext) format() string {
	if c.config == nil || c.config.Output == "" {
		return constants.OutputFormatTable
	}

	return c.config.Output
}

// requestContext bounds a command by the configured timeout.
func (c *commandContext) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if c.config == nil || c.config.Timeout <= 0 {
		return context.WithCancel(parent)
	}

	return context.WithTimeout(parent, c.config.Timeout)
}

// login opens an admin session on the client. An empty password is a no-op.
func (c *commandContext) login(ctx context.Context, password string) error {
	if password == "" {
		return nil
	}

	env := c.client.VerifyAdmin(ctx, password)
	if !env.OK() {
		return fmt.Errorf("%w: admin login: %s", constants.ErrOperationFailed, failureMessage(env))
	}

	return nil
}

// adminPassword returns the password from --admin-password or
// SITEAPI_ADMIN_PASSWORD.
func adminPassword(cmd *cobra.Command) string {
	if flag := cmd.Flag("admin-password"); flag != nil && flag.Changed {
		return flag.Value.String()
	}

	return viper.GetString("admin_password")
}

// addAdminPasswordFlag registers --admin-password on commands that hit
// admin endpoints.
func addAdminPasswordFlag(cmd *cobra.Command) {
	cmd.Flags().String("admin-password", "", "log in as admin before the request (or set SITEAPI_ADMIN_PASSWORD)")
}

// promptPassword reads a password without echo.
func promptPassword(errOut io.Writer) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) { //nolint:unconvert // Stdin is not an int on every platform
		return "", constants.ErrNotATerminal
	}

	_, _ = fmt.Fprint(errOut, "Admin password: ")

	bytePassword, err := term.ReadPassword(int(syscall.Stdin)) //nolint:unconvert // Stdin is not an int on every platform
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	_, _ = fmt.Fprintln(errOut)

	return string(bytePassword), nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
