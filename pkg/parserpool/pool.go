// Package parserpool provides a pool of gnparser instances for
// concurrent scientific-name checking. This is a pure package -
// parsing is computation, not I/O.
package parserpool

import (
	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool hands out gnparser instances for concurrent parsing. All
// parsers in the pool share one nomenclatural code; occurrence files
// are single-discipline, so one code per import run is enough.
type Pool interface {
	// Parse parses a scientific name string. It retrieves a parser
	// from the pool, parses the name, and returns the parser to the
	// pool. Safe for concurrent use.
	Parse(nameString string) parsed.Parsed

	// Close shuts down the pool and releases its parsers. After Close
	// the pool must not be used.
	Close()
}

type pool struct {
	ch       chan gnparser.GNparser
	poolSize int
}

// NewPool creates a parser pool of jobsNum workers for the given
// nomenclatural code. A jobsNum of 0 falls back to a single parser.
func NewPool(jobsNum int, code nomcode.Code) Pool {
	size := jobsNum
	if size <= 0 {
		size = 1
	}

	cfg := gnparser.NewConfig(gnparser.OptCode(code))
	ch := gnparser.NewPool(cfg, size)

	return &pool{ch: ch, poolSize: size}
}

// Code converts a config string to a nomenclatural code. Unknown
// values fall back to botanical, the discipline the original
// occurrence files came from.
func Code(s string) nomcode.Code {
	if s == "zoological" {
		return nomcode.Zoological
	}
	return nomcode.Botanical
}

func (p *pool) Parse(nameString string) parsed.Parsed {
	parser := <-p.ch
	res := parser.ParseName(nameString)
	p.ch <- parser
	return res
}

func (p *pool) Close() {
	if p.ch != nil {
		close(p.ch)
		for range p.ch {
		}
	}
}
