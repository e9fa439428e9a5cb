// Package export writes and reads extraction results as JSON documents.
package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/qbdeck/internal/pipeline"
	"github.com/abhisek/qbdeck/internal/question"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://qbdeck/document.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Document is the JSON form of one extraction run.
type Document struct {
	Profile string            `json:"profile"`
	Source  string            `json:"source,omitempty"`
	Pages   int               `json:"pages"`
	Records []question.Record `json:"records"`
	Defects []question.Defect `json:"defects"`
}

// FromResult builds a Document from a pipeline result.
func FromResult(source string, res *pipeline.Result) *Document {
	doc := &Document{
		Profile: res.Profile,
		Source:  source,
		Pages:   res.Pages,
		Records: res.Records,
		Defects: res.Defects,
	}
	if doc.Records == nil {
		doc.Records = []question.Record{}
	}
	if doc.Defects == nil {
		doc.Defects = []question.Defect{}
	}
	return doc
}

// InvalidDocumentError is returned when a document fails schema validation.
type InvalidDocumentError struct {
	Err error
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid document: %v", e.Err)
}

func (e *InvalidDocumentError) Unwrap() error {
	return e.Err
}

// Marshal encodes doc as indented JSON and checks it against the document
// schema.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Unmarshal validates data against the document schema and decodes it.
func Unmarshal(data []byte) (*Document, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// Validate checks raw JSON against the document schema.
func Validate(data []byte) error {
	sch, err := documentSchema()
	if err != nil {
		return err
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &InvalidDocumentError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := sch.Validate(parsed); err != nil {
		return &InvalidDocumentError{Err: err}
	}
	return nil
}

// WriteFile writes doc to path, creating parent directories as needed.
func WriteFile(path string, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile loads and validates a document written by WriteFile.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func documentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse document schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
