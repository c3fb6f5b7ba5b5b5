package usage

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/goccy/go-yaml"

	"github.com/apstndb/dflags/internal/parser"
)

// Format selects how usage is rendered.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatTable, FormatYAML, FormatJSON}

var formatParser = parser.NewEnumParser(map[string]Format{
	string(FormatText):  FormatText,
	string(FormatTable): FormatTable,
	string(FormatYAML):  FormatYAML,
	string(FormatJSON):  FormatJSON,
})

// IsValid checks if the format is supported.
func (f Format) IsValid() bool {
	return slices.Contains(Formats, f)
}

// ParseFormat parses a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	format, err := formatParser.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid format: %w", err)
	}
	return format, nil
}

func (f Format) String() string {
	return string(f)
}

// FormatNames returns the format names joined for help text.
func FormatNames() string {
	names := make([]string, 0, len(Formats))
	for _, f := range Formats {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

func encodeYAML(w io.Writer, owners []Owner) error {
	return yaml.NewEncoder(w, yaml.UseJSONMarshaler()).Encode(owners)
}

func encodeJSON(w io.Writer, owners []Owner) error {
	if err := json.MarshalWrite(w, owners,
		json.FormatNilSliceAsNull(false),
		jsontext.WithIndent("  "),
	); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
