package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasmodel/internal/options"
	"github.com/erraggy/oasmodel/parser"
)

// specInput is the document argument shared by every tool. Exactly one of
// File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI or AsyncAPI file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// cacheKey identifies the input for the document cache: file inputs by
// absolute path and modification time, inline content by its SHA-256. It
// returns "" when the input cannot be keyed.
func (s specInput) cacheKey() string {
	if s.Content != "" {
		sum := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(sum[:])
	}
	if s.File == "" {
		return ""
	}
	abs, err := filepath.Abs(s.File)
	if err != nil {
		return ""
	}
	info, err := os.Stat(abs)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("file:%s:%d", abs, info.ModTime().UnixNano())
}

// resolve reads and parses the document, going through the cache when it
// is enabled.
func (s specInput) resolve() (*parser.Result, error) {
	if err := options.ValidateSingleInputSource(
		"exactly one of file or content must be provided (got none)",
		"exactly one of file or content must be provided (got both)",
		s.File != "", s.Content != "",
	); err != nil {
		return nil, err
	}
	if n := int64(len(s.Content)); n > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASMODEL_MAX_INLINE_SIZE to increase",
			n, cfg.MaxInlineSize)
	}

	key := ""
	if cfg.CacheEnabled {
		key = s.cacheKey()
	}
	if key != "" {
		if result := documents.get(key); result != nil {
			return result, nil
		}
	}

	source := parser.WithFilePath(s.File)
	ttl := cfg.CacheFileTTL
	if s.Content != "" {
		source = parser.WithReader(strings.NewReader(s.Content))
		ttl = cfg.CacheContentTTL
	}
	result, err := parser.ParseWithOptions(source, parser.WithMaxFileSize(cfg.MaxInlineSize))
	if err != nil {
		return nil, err
	}
	if key != "" {
		documents.put(key, result, ttl)
	}
	return result, nil
}
