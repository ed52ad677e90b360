// Package render exports a line store as HTML, treating its content as
// GitHub-flavoured Markdown.
package render

import (
	"fmt"
	"io"

	"github.com/valyala/bytebufferpool"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"linestore/internal/lineio"
	"linestore/pkg/lines"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// HTML renders s to w.
func HTML(w io.Writer, s *lines.Store) error {
	src := bytebufferpool.Get()
	defer bytebufferpool.Put(src)

	if _, err := lineio.Encode(src, s); err != nil {
		return fmt.Errorf("encode lines: %w", err)
	}
	if err := markdown.Convert(src.B, w); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	return nil
}
