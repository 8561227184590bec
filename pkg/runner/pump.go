package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

type lineResult struct {
	text string
	err  error
}

// linePump reads lines on its own goroutine so a pending read can be
// abandoned when the context is cancelled. The goroutine starts on the
// first call to next and stops after the first read error.
type linePump struct {
	reader *bufio.Reader
	once   sync.Once
	lines  chan lineResult
}

func newLinePump(r io.Reader) *linePump {
	return &linePump{reader: bufio.NewReader(r)}
}

func (p *linePump) start() {
	p.once.Do(func() {
		p.lines = make(chan lineResult)
		go p.run()
	})
}

func (p *linePump) run() {
	defer close(p.lines)
	for {
		text, err := p.reader.ReadString('\n')
		if text != "" {
			p.lines <- lineResult{text: text}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.lines <- lineResult{err: fmt.Errorf("input error: %w", err)}
			}
			return
		}
	}
}

// next returns the next trimmed line, io.EOF once the input is exhausted,
// or ctx.Err() if ctx ends first.
func (p *linePump) next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.start()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.text), nil
	}
}
