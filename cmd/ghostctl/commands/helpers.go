package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
	"github.com/fivetwenty-io/ghost-client/pkg/ghostclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrSiteRequired    = errors.New("site URL is required (use --site or 'ghostctl config set site')")
	ErrNoCredentials   = errors.New("no credentials configured (set admin_key or content_key)")
	ErrNothingToUpdate = errors.New("nothing to update (use --set key=value)")
	ErrInvalidSetFlag  = errors.New("invalid --set value, expected key=value")
)

// createClient builds a ghost.Client from the effective configuration.
func createClient() (ghost.Client, error) {
	siteURL := viper.GetString("site")
	if siteURL == "" {
		return nil, ErrSiteRequired
	}

	adminKey := viper.GetString("admin_key")
	contentKey := viper.GetString("content_key")

	if adminKey == "" && contentKey == "" {
		return nil, ErrNoCredentials
	}

	return ghostclient.New(&ghost.Config{
		SiteURL:    siteURL,
		AdminKey:   adminKey,
		ContentKey: contentKey,
		Version:    viper.GetString("api_version"),
	})
}

// renderRecords prints records in the configured output format. columns
// selects the table columns, in order; missing fields render empty.
func renderRecords(records []ghost.Record, columns []string) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(records)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(records)
	default:
		if len(records) == 0 {
			fmt.Println("No records found")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)

		headers := make([]any, 0, len(columns))
		for _, col := range columns {
			headers = append(headers, strings.ReplaceAll(col, "_", " "))
		}

		table.Header(headers...)

		for _, record := range records {
			row := make([]string, 0, len(columns))
			for _, col := range columns {
				row = append(row, fieldString(record, col))
			}

			_ = table.Append(row)
		}

		return table.Render()
	}
}

// renderRecord prints one record in the configured output format.
func renderRecord(record ghost.Record) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(record)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(record)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Field", "Value")

		for _, key := range sortedKeys(record) {
			_ = table.Append(key, fieldString(record, key))
		}

		return table.Render()
	}
}

func sortedKeys(record ghost.Record) []string {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// fieldString renders one field as a table cell.
func fieldString(record ghost.Record, key string) string {
	value, ok := record[key]
	if !ok || value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "yes"
		}

		return "no"
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}

		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return string(raw)
	}
}

// parseSetFlags turns repeated --set key=value flags into a record.
func parseSetFlags(sets []string) (ghost.Record, error) {
	if len(sets) == 0 {
		return nil, ErrNothingToUpdate
	}

	record := ghost.Record{}

	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSetFlag, set)
		}

		record[key] = value
	}

	return record, nil
}
