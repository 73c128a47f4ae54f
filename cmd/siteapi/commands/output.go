package commands

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/clarketm/json"
	"github.com/nleeper/goment"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/cosmic-astrology/siteapi/internal/constants"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

// sqliteTimestampLayout is the goment layout of backend created_at values.
// SQLite writes them in UTC without an offset, so ago appends one.
const sqliteTimestampLayout = "YYYY-MM-DD HH:mm:ss Z"

// tableRenderer writes a typed view of a successful envelope.
type tableRenderer func(w io.Writer, env *siteapi.Envelope) error

// render prints env in the configured format. It returns an error when the
// client failed or the server reported success=false, so the process exits
// non-zero.
func (c *commandContext) render(env *siteapi.Envelope, table tableRenderer) error {
	switch c.format() {
	case constants.OutputFormatJSON:
		err := writeJSON(c.out, env)
		if err != nil {
			return err
		}
	case constants.OutputFormatYAML:
		err := writeYAML(c.out, env)
		if err != nil {
			return err
		}
	default:
		if env.OK() && table != nil {
			err := table(c.out, env)
			if err != nil {
				return err
			}
		}
	}

	if !env.OK() {
		return fmt.Errorf("%w: %s", constants.ErrOperationFailed, failureMessage(env))
	}

	return nil
}

// failureMessage describes why env is not OK.
func failureMessage(env *siteapi.Envelope) string {
	if msg := env.ErrorMessage(); msg != "" {
		return msg
	}

	if env != nil && env.StatusCode != 0 {
		return fmt.Sprintf("server responded with status %d", env.StatusCode)
	}

	return "server reported failure"
}

// writeJSON prints the envelope JSON indented.
func writeJSON(w io.Writer, env *siteapi.Envelope) error {
	data, err := env.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode response as JSON: %w", err)
	}

	return writeIndentedJSON(w, data)
}

func writeIndentedJSON(w io.Writer, data []byte) error {
	var buf bytes.Buffer

	err := json.Indent(&buf, data, "", strings.Repeat(" ", constants.JSONIndentSize))
	if err != nil {
		return fmt.Errorf("failed to indent JSON: %w", err)
	}

	buf.WriteByte('\n')

	_, err = buf.WriteTo(w)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

// writeYAML prints the envelope as YAML.
func writeYAML(w io.Writer, env *siteapi.Envelope) error {
	data, err := env.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	var document interface{}

	err = json.Unmarshal(data, &document)
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return encodeYAML(w, document)
}

func encodeYAML(w io.Writer, value interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode response as YAML: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("failed to flush YAML: %w", err)
	}

	return nil
}

// writeValue prints a client-side value (not an envelope) in format.
func writeValue(w io.Writer, format string, value interface{}) error {
	switch format {
	case constants.OutputFormatJSON:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode output as JSON: %w", err)
		}

		return writeIndentedJSON(w, data)
	default:
		return encodeYAML(w, value)
	}
}

// propertyTable renders two-column key/value rows, skipping empty values.
func propertyTable(w io.Writer, rows [][2]string) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, row := range rows {
		if row[1] == "" {
			continue
		}

		_ = table.Append(row[0], truncate(row[1]))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// truncate shortens s to MaxCellWidth runes.
func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= constants.MaxCellWidth {
		return s
	}

	return string(runes[:constants.MaxCellWidth-3]) + "..."
}

// ago renders a backend timestamp relative to now, falling back to the raw value.
func ago(timestamp string) string {
	if timestamp == "" {
		return ""
	}

	parsed, err := goment.New(timestamp+" Z", sqliteTimestampLayout)
	if err != nil || parsed == nil {
		return timestamp
	}

	return parsed.FromNow()
}

// yesNo renders the backend's 0/1 flags.
func yesNo(flag int) string {
	if flag != 0 {
		return "yes"
	}

	return "no"
}
