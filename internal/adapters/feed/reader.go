// Package feed streams transcript segments from JSONL files.
// Each line is one segment object; gzip files are unwrapped transparently
package feed

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"strings"

	"mouthwash/internal/platform/logger"
)

const (
	maxScanTokenSize = 4 * 1024 * 1024
	sampleRawMax     = 2048 // max bytes of raw JSON to log for the sample
)

// Segment is one transcript line in a feed file
type Segment struct {
	SegmentID string `json:"segment_id,omitempty"`
	SessionID string `json:"session_id"`
	Seq       int    `json:"seq"`
	Speaker   string `json:"speaker,omitempty"`
	Text      string `json:"text"`
	StartMS   int64  `json:"start_ms"`
	EndMS     int64  `json:"end_ms"`
}

// Open opens path as a segment feed; names ending in .gz are gunzipped
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewReader(f, strings.HasSuffix(strings.ToLower(path), ".gz"))
}

// Reader streams Segment lines from a JSONL stream
type Reader struct {
	r  io.ReadCloser
	gz *gzip.Reader
	sc *bufio.Scanner

	err      error
	segments int
	skipped  int
	bytes    int64
	sampled  bool // logs exactly one sample raw line per feed
}

// NewReader wraps r; gzipped selects transparent gunzip
func NewReader(r io.ReadCloser, gzipped bool) (*Reader, error) {
	var src io.Reader = r
	var gz *gzip.Reader
	if gzipped {
		var err error
		gz, err = gzip.NewReader(r)
		if err != nil {
			if cerr := r.Close(); cerr != nil {
				return nil, cerr
			}
			return nil, err
		}
		src = gz
	}
	sc := bufio.NewScanner(src)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxScanTokenSize)
	return &Reader{r: r, gz: gz, sc: sc}, nil
}

// Next reads the next segment; returns io.EOF when done.
// Blank lines are ignored; malformed lines and lines missing session_id or
// text are counted as skipped rather than failing the whole feed
func (rd *Reader) Next() (Segment, error) {
	if rd.err != nil {
		return Segment{}, rd.err
	}
	for {
		if !rd.sc.Scan() {
			if err := rd.sc.Err(); err != nil {
				rd.err = err
				return Segment{}, err
			}
			rd.err = io.EOF
			return Segment{}, io.EOF
		}
		line := bytes.TrimSpace(rd.sc.Bytes())
		rd.bytes += int64(len(rd.sc.Bytes()) + 1) // include newline
		if len(line) == 0 {
			continue
		}

		var seg Segment
		if err := json.Unmarshal(line, &seg); err != nil {
			rd.skipped++
			continue
		}
		if strings.TrimSpace(seg.SessionID) == "" || strings.TrimSpace(seg.Text) == "" {
			rd.skipped++
			continue
		}
		rd.segments++

		// Log a single raw-line sample (first valid line in this feed)
		if !rd.sampled {
			rd.sampled = true
			logger.Named("feed").Debug().
				Int("line_bytes", len(line)).
				Str("sample_raw", truncateUTF8(line, sampleRawMax)).
				Msg("feed: sample raw line")
		}
		return seg, nil
	}
}

// Close closes the gzip layer and the underlying reader
func (rd *Reader) Close() error {
	var first error
	if rd.gz != nil {
		if err := rd.gz.Close(); err != nil {
			first = err
		}
	}
	if rd.r != nil {
		if err := rd.r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Stats returns segments parsed, lines skipped, and raw bytes read so far
func (rd *Reader) Stats() (segments, skipped int, bytes int64) {
	return rd.segments, rd.skipped, rd.bytes
}

// truncateUTF8 returns a string made from b, truncated to at most max bytes,
// backing up to a UTF-8 boundary if needed, and appending an ellipsis if truncated
func truncateUTF8(b []byte, max int) string {
	if max <= 0 || len(b) <= max {
		return string(b)
	}
	i := max
	// back up to the start of a rune (0b10xxxxxx indicates continuation byte)
	for i > 0 && (b[i]&0xC0) == 0x80 {
		i--
	}
	if i <= 0 {
		i = max
	}
	return string(b[:i]) + "..."
}
