package lineio

import (
	"io"

	"github.com/valyala/bytebufferpool"

	"linestore/pkg/lines"
)

// Encode writes every line of s to w followed by a single '\n'. An empty
// store writes nothing. The whole payload is assembled in a pooled buffer and
// handed to w in one Write.
func Encode(w io.Writer, s *lines.Store) (int64, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, l := range s.All() {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	if buf.Len() == 0 {
		return 0, nil
	}
	return buf.WriteTo(w)
}
