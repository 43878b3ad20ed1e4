package app

import (
	"bytes"
	"context"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/mcpsync/internal/errors"
	"github.com/thoreinstein/mcpsync/internal/mcp"
	"github.com/thoreinstein/mcpsync/pkg/fileutil"
)

// Format selects the encoding used by Show.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.Newf("unknown format %q (valid: json, yaml, toml)", s)
	}
}

// Show prints the registry definition of name in the given format. Secrets
// are masked unless the App was built WithShowSecrets.
func (a *App) Show(ctx context.Context, name string, format Format) error {
	def, ok := a.registry.Load(ctx).Get(name)
	if !ok {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "server %q is not in the registry", name),
			"Run 'mcpsync list' to see registry servers")
	}
	if !a.showSecrets {
		def = mcp.Redact(def)
	}

	data, err := encodeRecord(mcp.ToRecord(def), format)
	if err != nil {
		return err
	}
	_, err = a.out.Write(data)
	return err
}

func encodeRecord(rec mcp.Record, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return nil, errors.Wrap(err, "encoding YAML")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "encoding YAML")
		}
		return buf.Bytes(), nil
	case FormatTOML:
		data, err := toml.Marshal(rec)
		if err != nil {
			return nil, errors.Wrap(err, "encoding TOML")
		}
		return data, nil
	case FormatJSON, "":
		data, err := fileutil.MarshalJSON(rec)
		if err != nil {
			return nil, errors.Wrap(err, "encoding JSON")
		}
		return data, nil
	default:
		return nil, errors.Newf("unknown format %q", format)
	}
}
