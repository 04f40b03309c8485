package api

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/qri-io/jsonschema"
)

const maxBodyBytes = 1 << 20

//go:embed schemas/*.json
var schemaFiles embed.FS

var schemas = mustCompileSchemas()

func mustCompileSchemas() map[string]*jsonschema.Schema {
	out, err := compileSchemas()
	if err != nil {
		panic(err)
	}
	return out
}

func compileSchemas() (map[string]*jsonschema.Schema, error) {
	entries, err := schemaFiles.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}

	out := make(map[string]*jsonschema.Schema, len(entries))
	for _, e := range entries {
		b, err := schemaFiles.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", e.Name(), err)
		}
		out[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = rs
	}

	return out, nil
}

// decodeBody checks the request body against the named schema and then
// decodes it into dst. An empty body is treated as an empty object.
func decodeBody(w http.ResponseWriter, r *http.Request, schema string, dst any) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return apperr.Validation("request body too large or unreadable")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}
	if !json.Valid(raw) {
		return apperr.Validation("invalid JSON body")
	}

	if err := checkSchema(r.Context(), schema, raw); err != nil {
		return err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return err
		}
		return apperr.Validation("invalid request body")
	}
	return nil
}

func checkSchema(ctx context.Context, name string, raw []byte) error {
	s, ok := schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	verrs, err := s.ValidateBytes(ctx, raw)
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if len(verrs) > 0 {
		field := strings.TrimPrefix(verrs[0].PropertyPath, "/")
		if field == "" {
			return apperr.Validation("request body %s", verrs[0].Message)
		}
		return apperr.Validation("%s %s", field, verrs[0].Message)
	}
	return nil
}

// salary is a salary amount as sent by clients: a JSON integer, a numeric
// string, or null / "" for no value. set records whether the field was present.
type salary struct {
	set   bool
	value *int64
}

func (s *salary) UnmarshalJSON(b []byte) error {
	s.set = true
	s.value = nil

	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return apperr.Validation("salary must be a number")
	}

	var text string
	switch v := raw.(type) {
	case nil:
		return nil
	case json.Number:
		text = v.String()
	case string:
		text = strings.TrimSpace(v)
		if text == "" {
			return nil
		}
	default:
		return apperr.Validation("salary must be a number")
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return apperr.Validation("salary must be a whole number")
	}
	s.value = &n
	return nil
}
