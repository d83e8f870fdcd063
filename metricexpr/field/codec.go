package field

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	mxerrors "github.com/nonibytes/metricexpr/metricexpr/errors"
)

// catalogFile accepts either a bare list of fields or {"fields": [...]}.
type catalogFile struct {
	Fields Catalog `json:"fields" yaml:"fields"`
}

// DecodeJSON reads a catalog from JSON and validates it.
func DecodeJSON(b []byte) (Catalog, error) {
	var c Catalog
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &c); err != nil {
			return nil, mxerrors.Wrap(mxerrors.KindCatalog, "invalid catalog JSON", err)
		}
	} else {
		var file catalogFile
		if err := json.Unmarshal(trimmed, &file); err != nil {
			return nil, mxerrors.Wrap(mxerrors.KindCatalog, "invalid catalog JSON", err)
		}
		c = file.Fields
	}
	return finish(c)
}

// DecodeYAML reads a catalog from YAML and validates it.
func DecodeYAML(b []byte) (Catalog, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, mxerrors.Wrap(mxerrors.KindCatalog, "invalid catalog YAML", err)
	}

	var c Catalog
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		if err := node.Content[0].Decode(&c); err != nil {
			return nil, mxerrors.Wrap(mxerrors.KindCatalog, "invalid catalog YAML", err)
		}
	} else {
		var file catalogFile
		if err := node.Decode(&file); err != nil {
			return nil, mxerrors.Wrap(mxerrors.KindCatalog, "invalid catalog YAML", err)
		}
		c = file.Fields
	}
	return finish(c)
}

// Load reads a catalog file, picking the codec from the extension.
func Load(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, mxerrors.Wrap(mxerrors.KindIO, "read catalog "+path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(b)
	default:
		return DecodeJSON(b)
	}
}

// EncodeJSON is the inverse of DecodeJSON.
func EncodeJSON(c Catalog) ([]byte, error) {
	return json.MarshalIndent(catalogFile{Fields: c}, "", "  ")
}

func finish(c Catalog) (Catalog, error) {
	for i := range c {
		if c[i].Label == "" {
			c[i].Label = HumanizeName(c[i].Name)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
