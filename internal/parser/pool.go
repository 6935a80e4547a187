package parser

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// readerBufferSize fits every line of a typical BDF file. Longer lines
// still read correctly, they just grow a temporary string.
const readerBufferSize = 4 * 1024

// lineReader yields the lines of a BDF source without their terminators.
// Readers are pooled because servers loading many fonts through the font
// cache would otherwise allocate a fresh buffer per file.
type lineReader struct {
	br  *bufio.Reader
	err error
}

var lineReaderPool = sync.Pool{
	New: func() interface{} {
		return &lineReader{br: bufio.NewReaderSize(nil, readerBufferSize)}
	},
}

// acquireLineReader takes a reader from the pool and points it at r.
func acquireLineReader(r io.Reader) *lineReader {
	lr, ok := lineReaderPool.Get().(*lineReader)
	if !ok {
		lr = &lineReader{br: bufio.NewReaderSize(nil, readerBufferSize)}
	}
	lr.br.Reset(r)
	lr.err = nil
	return lr
}

// releaseLineReader drops the source reference and returns lr to the pool.
func releaseLineReader(lr *lineReader) {
	if lr == nil {
		return
	}
	lr.br.Reset(nil)
	lr.err = nil
	lineReaderPool.Put(lr)
}

// next returns the following line with "\n" or "\r\n" stripped. It reports
// false at end of input or after a read failure; see Err.
func (lr *lineReader) next() (string, bool) {
	if lr.err != nil {
		return "", false
	}
	line, err := lr.br.ReadString('\n')
	if err != nil {
		lr.err = err
		if err != io.EOF || line == "" {
			return "", false
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), true
}

// Err returns the read failure that stopped next, or nil at a clean end.
func (lr *lineReader) Err() error {
	if lr.err == io.EOF {
		return nil
	}
	return lr.err
}
