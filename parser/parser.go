package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/oasmodel/internal/options"
	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/oaserrors"
)

// DefaultMaxFileSize bounds the size of documents read from files and readers.
const DefaultMaxFileSize int64 = 64 << 20

// Result is a parsed document along with its source metadata.
type Result struct {
	// Document is the typed tree.
	Document *model.Document
	// Version is the declared version string, e.g. "3.0.2".
	Version string
	// SourcePath is the file path or source name, if any.
	SourcePath string
	// SourceFormat is the detected text format.
	SourceFormat SourceFormat
	// Data is the generic value the document was read from.
	Data any
}

// Type returns the document type.
func (r *Result) Type() model.DocumentType {
	return r.Document.Type()
}

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	logger      Logger
	maxFileSize int64
	sourceName  *string
	custom      *Reader
}

// ParseWithOptions parses a description using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithLogger(parser.NewSlogAdapter(nil)),
//	)
func ParseWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	var (
		data   []byte
		source string
	)
	switch {
	case cfg.filePath != nil:
		source = *cfg.filePath
		data, err = readFile(source, cfg.maxFileSize)
	case cfg.reader != nil:
		data, err = readLimited(cfg.reader, cfg.maxFileSize)
	default:
		data = cfg.bytes
	}
	if err != nil {
		return nil, err
	}
	if cfg.sourceName != nil {
		source = *cfg.sourceName
	}

	reader := cfg.custom
	if reader == nil {
		reader = NewReader(cfg.logger)
	}
	result, err := parseBytes(reader, data)
	if err != nil {
		var pe *oaserrors.ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = source
		}
		return nil, err
	}
	result.SourcePath = source
	cfg.logger.Debug("parsed document",
		"source", source,
		"type", result.Type().String(),
		"version", result.Version,
		"format", string(result.SourceFormat))
	return result, nil
}

// Parse reads JSON or YAML text into a document.
func Parse(data []byte) (*Result, error) {
	return parseBytes(NewReader(nil), data)
}

func parseBytes(r *Reader, data []byte) (*Result, error) {
	v, err := ParseText(data)
	if err != nil {
		return nil, err
	}
	_, ver, err := DetectVersion(v)
	if err != nil {
		return nil, err
	}
	doc, err := r.ReadDocument(v)
	if err != nil {
		return nil, err
	}
	return &Result{
		Document:     doc,
		Version:      ver,
		SourceFormat: DetectFormat(data),
		Data:         v,
	}, nil
}

func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		logger:      NopLogger{},
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := options.ValidateSingleInputSource(
		"parser: must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		"parser: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string, limit int64) ([]byte, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	defer func() { _ = f.Close() }()
	data, err := readLimited(f, limit)
	if err != nil {
		return nil, fmt.Errorf("parser: %s: %w", path, err)
	}
	return data, nil
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("parser: read input: %w", err)
	}
	if n > limit {
		return nil, &oaserrors.ConfigError{Option: "maxFileSize", Value: limit, Message: "input exceeds the maximum size"}
	}
	return buf.Bytes(), nil
}

// WithFilePath specifies a file path to parse.
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader to parse.
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice to parse.
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		cfg.bytes = data
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
// A nil logger is replaced by NopLogger.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}

// WithMaxFileSize bounds the input size in bytes.
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size <= 0 {
			return &oaserrors.ConfigError{Option: "maxFileSize", Value: size, Message: "must be positive"}
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithSourceName overrides Result.SourcePath, e.g. for stdin input.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// WithCustomReader reads with r instead of the default Reader, e.g. one
// built by NewReaderWithTable.
func WithCustomReader(r *Reader) Option {
	return func(cfg *parseConfig) error {
		cfg.custom = r
		return nil
	}
}
