package leadimport

import (
	"context"
	"io"

	"github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/cosmic-astrology/siteapi/internal/constants"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

// Submitter is the part of the site client an import needs.
type Submitter interface {
	SubmitLead(ctx context.Context, lead siteapi.Lead) *siteapi.Envelope
}

// Options configures an import run.
type Options struct {
	// Threads is the number of concurrent submissions, clamped to 1..MaxConcurrencyLimit.
	Threads int
	// DateLayout is the goment layout for non-ISO booking dates.
	DateLayout string
	// Progress receives a progress bar when set.
	Progress io.Writer
	Logger   siteapi.Logger
}

// Result is the outcome of one record.
type Result struct {
	// Key identifies the job in logs.
	Key string
	// Index is the zero-based position of the record in the input.
	Index int
	Lead  siteapi.Lead
	// Err is set when the record was rejected before submission.
	Err      error
	Envelope *siteapi.Envelope
}

// OK reports whether the record was submitted and accepted.
func (r *Result) OK() bool {
	return r.Err == nil && r.Envelope.OK()
}

// Message describes the outcome for display.
func (r *Result) Message() string {
	if r.Err != nil {
		return r.Err.Error()
	}

	if msg := r.Envelope.ErrorMessage(); msg != "" {
		return msg
	}

	if msg, ok := r.Envelope.Field("message").(string); ok {
		return msg
	}

	return ""
}

// Summary aggregates an import run. Results keep input order.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []*Result
}

// Importer submits leads through a Submitter with a bounded worker pool.
type Importer struct {
	submitter Submitter
	opts      Options
}

// New creates an importer.
func New(submitter Submitter, opts Options) *Importer {
	if opts.Threads < 1 {
		opts.Threads = constants.DefaultConcurrencyLimit
	}

	if opts.Threads > constants.MaxConcurrencyLimit {
		opts.Threads = constants.MaxConcurrencyLimit
	}

	if opts.DateLayout == "" {
		opts.DateLayout = constants.DefaultImportDateLayout
	}

	return &Importer{submitter: submitter, opts: opts}
}

// Run normalizes and submits every lead. Records that fail normalization
// are reported without being sent. Run waits for all submissions.
func (i *Importer) Run(ctx context.Context, leads []siteapi.Lead) *Summary {
	results := make([]*Result, len(leads))

	var bar *pb.ProgressBar
	if i.opts.Progress != nil {
		bar = pb.New(len(leads)).SetWriter(i.opts.Progress).Start()
	}

	workers := pool.New().WithMaxGoroutines(i.opts.Threads)

	for index, lead := range leads {
		result := &Result{
			Key:   uuid.NewString(),
			Index: index,
			Lead:  lead,
		}
		results[index] = result

		workers.Go(func() {
			i.process(ctx, result)

			if bar != nil {
				bar.Increment()
			}
		})
	}

	workers.Wait()

	if bar != nil {
		bar.Finish()
	}

	summary := &Summary{Total: len(results), Results: results}

	for _, result := range results {
		if result.OK() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	return summary
}

func (i *Importer) process(ctx context.Context, result *Result) {
	normalized, err := Normalize(result.Lead, i.opts.DateLayout)
	if err != nil {
		result.Err = err
		i.warn(result)

		return
	}

	result.Lead = normalized
	result.Envelope = i.submitter.SubmitLead(ctx, normalized)

	if !result.OK() {
		i.warn(result)
	}
}

func (i *Importer) warn(result *Result) {
	if i.opts.Logger == nil {
		return
	}

	i.opts.Logger.Warn("Lead not imported", map[string]interface{}{
		"job":    result.Key,
		"record": result.Index + 1,
		"error":  result.Message(),
	})
}
