// Package replay records one JSONL entry per handled turn, compressed
// with zstd, so a finished match can be replayed and inspected offline.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// TurnRecord is one line of a match recording. Response is absent for the
// FINISH turn, which sends none.
type TurnRecord struct {
	Turn     int             `json:"turn"`
	Phase    string          `json:"phase"`
	Request  json.RawMessage `json:"request"`
	Response json.RawMessage `json:"response,omitempty"`
}

// Recorder appends turn records to a single compressed JSONL file.
type Recorder struct {
	mu   sync.Mutex
	path string
	f    *os.File
	enc  *zstd.Encoder
	w    *bufio.Writer
}

// NewRecorder creates a timestamped recording file under dir.
func NewRecorder(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, fmt.Sprintf("match-%s.jsonl.zst", time.Now().UTC().Format("20060102-150405")))
	return newRecorderAt(path)
}

func newRecorderAt(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Recorder{
		path: path,
		f:    f,
		enc:  enc,
		w:    bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// Path returns the recording file's path.
func (r *Recorder) Path() string { return r.path }

// RecordTurn appends one record. Satisfies the runner's Recorder interface.
func (r *Recorder) RecordTurn(turn int, phase string, request, response []byte) error {
	rec := TurnRecord{
		Turn:     turn,
		Phase:    phase,
		Request:  json.RawMessage(request),
		Response: json.RawMessage(response),
	}
	if len(request) > 0 && !json.Valid(request) {
		// Malformed envelopes still get recorded, quoted as a string.
		rec.Request, _ = json.Marshal(string(request))
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return err
	}
	return r.w.Flush()
}

// Close flushes and closes the recording.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var err error
	if r.w != nil {
		_ = r.w.Flush()
	}
	if r.enc != nil {
		err = r.enc.Close()
		r.enc = nil
	}
	if r.f != nil {
		_ = r.f.Close()
		r.f = nil
	}
	return err
}

// ReadAll decodes every record from a recording file.
func ReadAll(path string) ([]TurnRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var records []TurnRecord
	scanner := bufio.NewScanner(io.Reader(dec))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec TurnRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("replay line %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
