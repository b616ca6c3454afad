// Package replay records observation frames and the actions sent back as
// zstd-compressed JSON lines, one file per session.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/nstehr/vimy/vimy-sc2/ipc"
)

const ext = ".jsonl.zst"

// Frame is one tick as seen and answered by the bot.
type Frame struct {
	Session     string                 `json:"session"`
	Player      string                 `json:"player,omitempty"`
	Observation ipc.ObservationMessage `json:"observation"`
	Actions     ipc.ActionsMessage     `json:"actions"`
}

// Recorder appends frames to a single compressed file. The file is created
// on the first write.
type Recorder struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewRecorder returns a recorder writing <dir>/<session>.jsonl.zst.
func NewRecorder(dir, session string) *Recorder {
	return &Recorder{path: filepath.Join(dir, session+ext)}
}

func (r *Recorder) Path() string { return r.path }

func (r *Recorder) Write(frame Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.w == nil {
		if err := r.openLocked(); err != nil {
			return err
		}
	}

	b, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return err
	}
	return r.w.Flush()
}

func (r *Recorder) openLocked() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create replay dir: %w", err)
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open replay: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("zstd writer: %w", err)
	}
	r.f = f
	r.enc = enc
	r.w = bufio.NewWriterSize(enc, 128*1024)
	return nil
}

// Close flushes and closes the file. A recorder that never wrote is a no-op.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.w != nil {
		err = r.w.Flush()
		r.w = nil
	}
	if r.enc != nil {
		if cerr := r.enc.Close(); err == nil {
			err = cerr
		}
		r.enc = nil
	}
	if r.f != nil {
		if cerr := r.f.Close(); err == nil {
			err = cerr
		}
		r.f = nil
	}
	return err
}

// Read decodes frames from a compressed stream in order, stopping at the
// first error fn returns.
func Read(src io.Reader, fn func(Frame) error) error {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		var frame Frame
		if err := json.Unmarshal(sc.Bytes(), &frame); err != nil {
			return fmt.Errorf("line %d: unmarshal: %w", line, err)
		}
		if err := fn(frame); err != nil {
			return err
		}
	}
	return sc.Err()
}

// ReadFile is Read over the file at path.
func ReadFile(path string, fn func(Frame) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Read(f, fn)
}
