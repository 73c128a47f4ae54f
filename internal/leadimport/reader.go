package leadimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/clarketm/json"
	"gopkg.in/yaml.v3"

	"github.com/cosmic-astrology/siteapi/internal/constants"
	"github.com/cosmic-astrology/siteapi/pkg/siteapi"
)

// Supported input formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// FormatFromPath picks the input format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q (want .json, .yaml, .yml or .csv)", constants.ErrUnsupportedFileType, filepath.Ext(path))
	}
}

// ReadFile loads leads from a JSON, YAML or CSV file.
func ReadFile(path string) ([]siteapi.Lead, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path) //nolint:gosec // path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	leads, err := Decode(file, format)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return leads, nil
}

// Decode reads leads in the given format. JSON and YAML accept a list of
// objects or a single object; CSV needs a header row naming the lead fields.
func Decode(r io.Reader, format string) ([]siteapi.Lead, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	case FormatCSV:
		return decodeCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", constants.ErrUnsupportedFileType, format)
	}
}

func decodeJSON(r io.Reader) ([]siteapi.Lead, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading JSON: %w", err)
	}

	var list []map[string]interface{}

	err = json.Unmarshal(data, &list)
	if err == nil {
		return toLeads(list), nil
	}

	var single map[string]interface{}

	singleErr := json.Unmarshal(data, &single)
	if singleErr != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	return toLeads([]map[string]interface{}{single}), nil
}

func decodeYAML(r io.Reader) ([]siteapi.Lead, error) {
	var document interface{}

	err := yaml.NewDecoder(r).Decode(&document)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []siteapi.Lead{}, nil
		}

		return nil, fmt.Errorf("decoding YAML: %w", err)
	}

	switch value := document.(type) {
	case map[string]interface{}:
		return []siteapi.Lead{value}, nil
	case []interface{}:
		leads := make([]siteapi.Lead, 0, len(value))

		for i, item := range value {
			object, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("decoding YAML: item %d is %T, not a mapping", i, item)
			}

			leads = append(leads, object)
		}

		return leads, nil
	default:
		return nil, fmt.Errorf("decoding YAML: document is %T, not a list or mapping", document)
	}
}

func decodeCSV(r io.Reader) ([]siteapi.Lead, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, constants.ErrInvalidCSVInput
		}

		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	leads := make([]siteapi.Lead, 0, len(records))

	for _, record := range records {
		lead := siteapi.Lead{}

		for i, value := range record {
			if i >= len(header) || header[i] == "" || value == "" {
				continue
			}

			lead[header[i]] = value
		}

		leads = append(leads, lead)
	}

	return leads, nil
}

func toLeads(objects []map[string]interface{}) []siteapi.Lead {
	leads := make([]siteapi.Lead, 0, len(objects))
	for _, object := range objects {
		leads = append(leads, object)
	}

	return leads
}
