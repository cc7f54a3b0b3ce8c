// Package catalog reads the plan catalog from disk and checks it before any page is built.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"simlab/internal/domain"
)

var (
	ErrNotFound  = errors.New("catalog: not found")
	ErrMalformed = errors.New("catalog: malformed")
	ErrInvalid   = errors.New("catalog: invalid")
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from the file extension; anything unknown is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

//go:embed schema.json
var schemaJSON []byte

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

var validate = validator.New()

// FileSource loads the catalog from a single file.
type FileSource struct{ path string }

func NewFileSource(path string) *FileSource { return &FileSource{path: path} }

func (s *FileSource) Path() string { return s.path }

func (s *FileSource) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Catalog{}, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return domain.Catalog{}, fmt.Errorf("catalog: read %s: %w", s.path, err)
	}
	c, err := Decode(b, FormatFor(s.path))
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("%s: %w", s.path, err)
	}
	return c, nil
}

// Decode parses, schema-checks and validates a catalog document.
func Decode(b []byte, format Format) (domain.Catalog, error) {
	raw := b
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return domain.Catalog{}, fmt.Errorf("%w: yaml: %v", ErrMalformed, err)
		}
		j, err := json.Marshal(doc)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("%w: yaml: %v", ErrMalformed, err)
		}
		raw = j
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return domain.Catalog{}, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	if err := checkSchema(raw); err != nil {
		return domain.Catalog{}, err
	}

	var c domain.Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := Validate(&c); err != nil {
		return domain.Catalog{}, err
	}
	c.Index()
	return c, nil
}

func checkSchema(raw []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("catalog: compile schema: %w", err)
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		// not JSON at all
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !res.Valid() {
		errs := make([]string, len(res.Errors()))
		for i, desc := range res.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrMalformed, strings.Join(errs, "; "))
	}
	return nil
}

// Validate checks record-level rules the schema cannot express, such as unique plan ids.
func Validate(c *domain.Catalog) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
