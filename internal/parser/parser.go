package parser

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/rickgao/payments-engine/internal/model"
)

// Config holds parser configuration.
type Config struct {
	ChunkLines int // Raw lines decoded per batch. Default: 100
	BufferSize int // Capacity of the output channel. Default: 100
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		ChunkLines: 100,
		BufferSize: 100,
	}
}

// Stats contains parser statistics.
type Stats struct {
	LinesRead     int64 // Excluding the header
	EventsDecoded int64
	DecodeErrors  int64
	Unreadable    int64 // Invalid UTF-8 or I/O failure
}

// Parser turns an input file into a finite, single-use stream of events.
type Parser struct {
	cfg    Config
	logger *slog.Logger
	path   string
	file   *os.File

	consumed atomic.Bool

	mu    sync.Mutex
	stats Stats
}

// Open opens path for parsing. Failure is reported as *InputError.
func Open(path string, cfg Config, logger *slog.Logger) (*Parser, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ChunkLines < 1 {
		cfg.ChunkLines = 1
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}

	return &Parser{
		cfg:    cfg,
		logger: logger,
		path:   path,
		file:   f,
	}, nil
}

// NewChannel returns an output channel sized for this parser.
func (p *Parser) NewChannel() chan model.Event {
	return make(chan model.Event, p.cfg.BufferSize)
}

// Run reads the file and sends decoded events to out, blocking while out is
// full. out is closed and the file released when Run returns. Run may be
// called once; later calls return ErrConsumed.
func (p *Parser) Run(ctx context.Context, out chan<- model.Event) error {
	defer close(out)

	if !p.consumed.CompareAndSwap(false, true) {
		return ErrConsumed
	}
	defer p.file.Close()

	p.logger.Info("reading input", "path", p.path, "chunk_lines", p.cfg.ChunkLines)

	reader := bufio.NewReader(p.file)
	chunk := make([]rawLine, 0, p.cfg.ChunkLines)
	lineNum := 0

	for {
		text, err := reader.ReadString('\n')
		if len(text) > 0 {
			lineNum++
			if lineNum > 1 {
				chunk = append(chunk, rawLine{num: lineNum, text: text})
				if len(chunk) == p.cfg.ChunkLines {
					if ferr := p.flush(ctx, chunk, out); ferr != nil {
						return ferr
					}
					chunk = chunk[:0]
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			p.logger.Error("failed reading input", "line", lineNum+1, "error", err)
			p.count(func(s *Stats) { s.Unreadable++ })
			break
		}
	}

	if len(chunk) > 0 {
		if err := p.flush(ctx, chunk, out); err != nil {
			return err
		}
	}

	stats := p.Stats()
	p.logger.Info("input exhausted",
		"lines", stats.LinesRead,
		"events", stats.EventsDecoded,
		"decode_errors", stats.DecodeErrors,
	)
	return nil
}

// flush decodes a chunk and forwards its events in order.
func (p *Parser) flush(ctx context.Context, chunk []rawLine, out chan<- model.Event) error {
	for _, raw := range chunk {
		p.count(func(s *Stats) { s.LinesRead++ })

		text := strings.TrimRight(raw.text, "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if !utf8.ValidString(text) {
			p.logger.Error("can't read line", "line", raw.num)
			p.count(func(s *Stats) { s.Unreadable++ })
			continue
		}

		ev, err := decodeRecord(text)
		if err != nil {
			p.logger.Warn("failed to decode record", "error", &DecodeError{Line: raw.num, Err: err})
			p.count(func(s *Stats) { s.DecodeErrors++ })
			continue
		}
		p.count(func(s *Stats) { s.EventsDecoded++ })

		select {
		case out <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Close releases the file if Run was never called.
func (p *Parser) Close() error {
	if p.consumed.CompareAndSwap(false, true) {
		return p.file.Close()
	}
	return nil
}

// Stats returns current statistics.
func (p *Parser) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

func (p *Parser) count(fn func(*Stats)) {
	p.mu.Lock()
	fn(&p.stats)
	p.mu.Unlock()
}
