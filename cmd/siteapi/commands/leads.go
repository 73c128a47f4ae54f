package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cosmic-astrology/siteapi/internal/constants"
	"github.com/cosmic-astrology/siteapi/internal/leadimport"
	"github.com/cosmic-astrology/siteapi/internal/relay"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

// NewLeadsCommand creates the leads command group.
func NewLeadsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leads",
		Aliases: []string{"lead"},
		Short:   "Submit and list leads",
		Long:    "Submit contact messages and bookings, list received leads, bulk import leads and relay leads from NATS",
	}

	cmd.AddCommand(newLeadsSubmitCommand())
	cmd.AddCommand(newLeadsListCommand())
	cmd.AddCommand(newLeadsImportCommand())
	cmd.AddCommand(newLeadsRelayCommand())

	return cmd
}

// LeadSubmitOptions holds the options for submitting a lead.
type LeadSubmitOptions struct {
	Name       string
	Phone      string
	Email      string
	DOB        string
	Service    string
	Subject    string
	Message    string
	Notes      string
	Source     string
	Date       string
	Time       string
	DateFormat string
}

// Lead builds the request body. Empty options are left out so the backend
// applies its own defaults.
func (o LeadSubmitOptions) Lead() (siteapi.Lead, error) {
	lead := siteapi.Lead{}

	set := func(key, value string) {
		if value != "" {
			lead[key] = value
		}
	}

	set("name", o.Name)
	set("phone", o.Phone)
	set("email", o.Email)
	set("dob", o.DOB)
	set("service", o.Service)
	set("subject", o.Subject)
	set("message", o.Message)
	set("notes", o.Notes)
	set("source", o.Source)
	set("booking_time", o.Time)

	if o.Date != "" {
		date, err := leadimport.NormalizeDate(o.Date, o.DateFormat)
		if err != nil {
			return nil, err
		}

		lead["booking_date"] = date
	}

	return lead, nil
}

func newLeadsSubmitCommand() *cobra.Command {
	var opts LeadSubmitOptions

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a lead",
		Long: fmt.Sprintf(`Submit a lead to the site.

Leads with --source %q go to the contact endpoint; every other lead is
stored as a booking.`, siteapi.SourceContactForm),
		Example: `  siteapi leads submit --name Asha --phone 98765 --service "Birth Chart" --date 01.05.2024
  siteapi leads submit --name Ravi --email ravi@example.com --message "Call me" --source "Contact Form"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cc.close()

			return runLeadsSubmit(cmd.Context(), cc, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "name of the person")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.DOB, "dob", "", "date of birth")
	cmd.Flags().StringVar(&opts.Service, "service", "", "requested service (bookings)")
	cmd.Flags().StringVar(&opts.Subject, "subject", "", "message subject (contact form)")
	cmd.Flags().StringVar(&opts.Message, "message", "", "message text")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "booking notes")
	cmd.Flags().StringVar(&opts.Source, "source", "", fmt.Sprintf("lead source, %q routes to the contact endpoint", siteapi.SourceContactForm))
	cmd.Flags().StringVar(&opts.Date, "date", "", "booking date (YYYY-MM-DD or --date-format)")
	cmd.Flags().StringVar(&opts.Time, "time", "", fmt.Sprintf("booking time (server default %s)", constants.DefaultBookingTime))
	cmd.Flags().StringVar(&opts.DateFormat, "date-format", constants.DefaultImportDateLayout, "layout for non-ISO dates")

	return cmd
}

func runLeadsSubmit(ctx context.Context, cc *commandContext, opts LeadSubmitOptions) error {
	lead, err := opts.Lead()
	if err != nil {
		return err
	}

	ctx, cancel := cc.requestContext(ctx)
	defer cancel()

	return cc.render(cc.client.SubmitLead(ctx, lead), renderMutation("Lead submitted"))
}

func newLeadsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List received leads",
		Long:  "List the most recent bookings followed by the most recent contact messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cc.close()

			return runLeadsList(cmd.Context(), cc, adminPassword(cmd))
		},
	}

	addAdminPasswordFlag(cmd)

	return cmd
}

func runLeadsList(ctx context.Context, cc *commandContext, password string) error {
	ctx, cancel := cc.requestContext(ctx)
	defer cancel()

	err := cc.login(ctx, password)
	if err != nil {
		return err
	}

	return cc.render(cc.client.GetLeads(ctx), renderLeadsTable)
}

func renderLeadsTable(w io.Writer, env *siteapi.Envelope) error {
	var response siteapi.LeadsResponse

	err := env.Decode(&response)
	if err != nil {
		return fmt.Errorf("failed to decode leads: %w", err)
	}

	if len(response.Leads) == 0 {
		_, _ = io.WriteString(w, "No leads found\n")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Type", "ID", "Name", "Phone", "Email", "Topic", "When", "Received")

	for _, lead := range response.Leads {
		kind, topic, when := "message", lead.Subject, ""
		if lead.IsBooking() {
			kind, topic = "booking", lead.Service
			when = lead.BookingDate + " " + lead.BookingTime
		}

		_ = table.Append(
			kind,
			strconv.Itoa(lead.ID),
			truncate(lead.Name),
			lead.Phone,
			truncate(lead.Email),
			truncate(topic),
			when,
			ago(lead.CreatedAt),
		)
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// LeadImportOptions holds the options for a bulk import.
type LeadImportOptions struct {
	Threads    int
	DateFormat string
	NoProgress bool
}

func newLeadsImportCommand() *cobra.Command {
	var opts LeadImportOptions

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Bulk import leads from a file",
		Long: `Submit every lead in a JSON, YAML or CSV file.

JSON and YAML files hold a list of lead objects. CSV files need a header row
naming the lead fields (name, phone, email, service, booking_date, ...).
Booking dates are normalized to YYYY-MM-DD.`,
		Example: `  siteapi leads import leads.csv --threads 5
  siteapi leads import leads.yaml --date-format MM/DD/YYYY`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cc.close()

			if !cmd.Flags().Changed("threads") {
				opts.Threads = cc.config.ImportThreads
			}

			return runLeadsImport(cmd.Context(), cc, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.Threads, "threads", constants.DefaultConcurrencyLimit, fmt.Sprintf("number of parallel submissions (max=%d)", constants.MaxConcurrencyLimit))
	cmd.Flags().StringVar(&opts.DateFormat, "date-format", constants.DefaultImportDateLayout, "layout for non-ISO booking dates")
	cmd.Flags().BoolVar(&opts.NoProgress, "no-progress", false, "hide the progress bar")

	return cmd
}

// importReport is the machine-readable import summary.
type importReport struct {
	Success   bool                `json:"success"   yaml:"success"`
	Total     int                 `json:"total"     yaml:"total"`
	Succeeded int                 `json:"succeeded" yaml:"succeeded"`
	Failed    int                 `json:"failed"    yaml:"failed"`
	Results   []importReportEntry `json:"results"   yaml:"results"`
}

type importReportEntry struct {
	Record  int    `json:"record"            yaml:"record"`
	Job     string `json:"job"               yaml:"job"`
	Success bool   `json:"success"           yaml:"success"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

func runLeadsImport(ctx context.Context, cc *commandContext, path string, opts LeadImportOptions) error {
	if opts.Threads < 1 || opts.Threads > constants.MaxConcurrencyLimit {
		return fmt.Errorf("%w: %d (must be 1-%d)", constants.ErrInvalidThreadCount, opts.Threads, constants.MaxConcurrencyLimit)
	}

	leads, err := leadimport.ReadFile(path)
	if err != nil {
		return err
	}

	importOpts := leadimport.Options{
		Threads:    opts.Threads,
		DateLayout: opts.DateFormat,
		Logger:     cc.log(),
	}

	if !opts.NoProgress && cc.format() == constants.OutputFormatTable {
		importOpts.Progress = cc.errOut
	}

	summary := leadimport.New(cc.client, importOpts).Run(ctx, leads)

	err = writeImportSummary(cc, summary)
	if err != nil {
		return err
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d leads not imported", constants.ErrOperationFailed, summary.Failed, summary.Total)
	}

	return nil
}

func writeImportSummary(cc *commandContext, summary *leadimport.Summary) error {
	report := importReport{
		Success:   summary.Failed == 0,
		Total:     summary.Total,
		Succeeded: summary.Succeeded,
		Failed:    summary.Failed,
		Results:   make([]importReportEntry, 0, len(summary.Results)),
	}

	for _, result := range summary.Results {
		report.Results = append(report.Results, importReportEntry{
			Record:  result.Index + 1,
			Job:     result.Key,
			Success: result.OK(),
			Message: result.Message(),
		})
	}

	format := cc.format()
	if format != constants.OutputFormatTable {
		return writeValue(cc.out, format, report)
	}

	if summary.Failed > 0 {
		table := tablewriter.NewWriter(cc.out)
		table.Header("Record", "Job", "Error")

		for _, entry := range report.Results {
			if entry.Success {
				continue
			}

			_ = table.Append(strconv.Itoa(entry.Record), entry.Job, truncate(entry.Message))
		}

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	_, _ = fmt.Fprintf(cc.out, "Imported %d of %d leads (%d failed)\n", summary.Succeeded, summary.Total, summary.Failed)

	return nil
}

// LeadRelayOptions holds the options for the NATS relay.
type LeadRelayOptions struct {
	URL     string
	Subject string
	Queue   string
}

func newLeadsRelayCommand() *cobra.Command {
	var opts LeadRelayOptions

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Relay leads from NATS to the site",
		Long: `Subscribe to a NATS subject and submit every JSON lead received on it.

Request-reply messages are answered with the resulting envelope. The relay
runs until interrupted.`,
		Example: `  siteapi leads relay --nats-url nats://localhost:4222 --subject site.leads.submit --queue relays`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := newCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cc.close()

			if !cmd.Flags().Changed("nats-url") {
				opts.URL = cc.config.NATSURL
			}

			if !cmd.Flags().Changed("subject") {
				opts.Subject = cc.config.NATSSubject
			}

			return runLeadsRelay(cmd.Context(), cc, opts)
		},
	}

	cmd.Flags().StringVar(&opts.URL, "nats-url", "", "NATS server URL (or set SITEAPI_NATS_URL)")
	cmd.Flags().StringVar(&opts.Subject, "subject", constants.DefaultNATSSubject, "subject to subscribe to")
	cmd.Flags().StringVar(&opts.Queue, "queue", "", "queue group shared by several relays")

	return cmd
}

func runLeadsRelay(ctx context.Context, cc *commandContext, opts LeadRelayOptions) error {
	if opts.URL == "" {
		return constants.ErrNATSURLRequired
	}

	cfg := relay.Config{
		URL:     opts.URL,
		Subject: opts.Subject,
		Queue:   opts.Queue,
	}

	conn, err := relay.Connect(cfg, cc.log())
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, stop := signalContext(ctx)
	defer stop()

	leadRelay := relay.New(cc.client, cc.log())

	_, _ = fmt.Fprintf(cc.errOut, "Relaying leads from %s on %s (Ctrl+C to stop)\n", cfg.Subject, cfg.URL)

	err = leadRelay.Run(ctx, conn, cfg)
	if err != nil {
		return err
	}

	stats := leadRelay.Stats()
	_, _ = fmt.Fprintf(cc.errOut, "Relayed %d leads (%d submitted, %d failed)\n", stats.Received, stats.Submitted, stats.Failed)

	return nil
}
