package catio

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

type textReader struct {
	rd          io.ReadSeeker
	closer      io.Closer
	config      TextConfig
	size        int
	blockStarts []int
	blockEnds   []int
	buf         []byte
}

// newTextReader creates a new textReader associated with the I/O stream rd,
// which contains size bytes. An optional config can be provided, otherwise
// DefaultConfig will be used.
func newTextReader(
	rd io.ReadSeeker, size int, config ...TextConfig,
) (*textReader, error) {
	reader := &textReader{config: DefaultConfig, size: size, rd: rd}
	if len(config) > 0 {
		reader.config = config[0]
	}
	if reader.config.MaxBlockSize <= 0 || reader.config.MaxLineSize <= 0 {
		return nil, fmt.Errorf("MaxBlockSize and MaxLineSize must be "+
			"positive, but are %d and %d.", reader.config.MaxBlockSize,
			reader.config.MaxLineSize)
	}

	// Figure out how many blocks are in the file.
	blocks := 1 + size/reader.config.MaxBlockSize
	if blocks > 1 && (blocks-1)*reader.config.MaxBlockSize == size {
		blocks--
	}

	reader.blockStarts = make([]int, blocks)
	reader.blockEnds = make([]int, blocks)

	// Find the start of each block.
	buf := make([]byte, reader.config.MaxLineSize)
	for i := 0; i < blocks; i++ {
		start, err := reader.blockStart(i, buf)
		if err != nil {
			return nil, err
		}
		reader.blockStarts[i] = start
	}

	// Find the end of each block.
	for i := 0; i < len(reader.blockEnds)-1; i++ {
		reader.blockEnds[i] = reader.blockStarts[i+1]
	}
	reader.blockEnds[blocks-1] = size

	maxSize := 0
	for i := range reader.blockStarts {
		size := reader.blockEnds[i] - reader.blockStarts[i]
		if size > maxSize {
			maxSize = size
		}
	}
	reader.buf = make([]byte, maxSize)

	return reader, nil
}

// blockStart returns the index of the first byte of the given block. Blocks
// start just after the last newline before their nominal boundary. buf must
// be large enough to hold any line of the file.
func (t *textReader) blockStart(block int, buf []byte) (int, error) {
	if block == 0 {
		return 0, nil
	}

	lineEnd := block * t.config.MaxBlockSize
	if lineEnd > t.size {
		lineEnd = t.size
	}
	lineStart := lineEnd - len(buf)
	if lineStart < 0 {
		lineStart = 0
	}
	buf = buf[:lineEnd-lineStart]

	if _, err := t.rd.Seek(int64(lineStart), io.SeekStart); err != nil {
		return 0, err
	}
	if _, err := io.ReadFull(t.rd, buf); err != nil {
		return 0, err
	}

	idx := bytes.LastIndexByte(buf, '\n')
	if idx == -1 && lineStart == 0 {
		return 0, nil
	} else if idx == -1 {
		return 0, fmt.Errorf("There is a line near byte %d which is longer "+
			"than MaxLineSize = %d.", lineEnd, t.config.MaxLineSize)
	}

	return lineStart + idx + 1, nil
}

func (t *textReader) Blocks() int {
	return len(t.blockStarts)
}

func (t *textReader) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

// ReadFloat64s reads the specified columns from every block in the file and
// concatenates them together.
func (t *textReader) ReadFloat64s(columns []int) ([][]float64, error) {
	out := make([][]float64, len(columns))
	for i := 0; i < t.Blocks(); i++ {
		block, err := t.ReadFloat64Block(columns, i)
		if err != nil {
			return nil, err
		}
		for j := range out {
			out[j] = append(out[j], block[j]...)
		}
	}
	return out, nil
}

// ReadInts reads the specified columns from every block in the file,
// interprets them as ints and concatenates them together.
func (t *textReader) ReadInts(columns []int) ([][]int, error) {
	out := make([][]int, len(columns))
	for i := 0; i < t.Blocks(); i++ {
		lines, err := t.readLines(i)
		if err != nil {
			return nil, err
		}

		err = parseColumns(lines, t.config.Separator, columns,
			func(col int, tok []byte) error {
				x, err := strconv.Atoi(string(tok))
				if err != nil {
					return err
				}
				out[col] = append(out[col], x)
				return nil
			})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadFloat64Block reads the specified columns from the given block.
func (t *textReader) ReadFloat64Block(
	columns []int, i int,
) ([][]float64, error) {
	lines, err := t.readLines(i)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(columns))
	for j := range out {
		out[j] = make([]float64, 0, len(lines))
	}

	err = parseColumns(lines, t.config.Separator, columns,
		func(col int, tok []byte) error {
			x, err := strconv.ParseFloat(string(tok), 64)
			if err != nil {
				return err
			}
			out[col] = append(out[col], x)
			return nil
		})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// readLines reads block i and returns its non-empty, uncommented lines.
func (t *textReader) readLines(i int) ([][]byte, error) {
	if i < 0 || i >= t.Blocks() {
		return nil, fmt.Errorf("Block %d does not exist. There are only "+
			"%d blocks.", i, t.Blocks())
	}

	n := t.blockEnds[i] - t.blockStarts[i]
	if _, err := t.rd.Seek(int64(t.blockStarts[i]), io.SeekStart); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(t.rd, t.buf[:n]); err != nil {
		return nil, err
	}

	lines := bytes.Split(t.buf[:n], []byte{'\n'})
	if i == 0 {
		skip := t.config.SkipLines
		if skip > len(lines) {
			skip = len(lines)
		}
		lines = lines[skip:]
	}
	lines = uncomment(lines, t.config.Comment)
	return trim(lines, t.config.Separator), nil
}

// uncomment removes everything after the comment character on each line.
func uncomment(lines [][]byte, comment byte) [][]byte {
	for i := range lines {
		if idx := bytes.IndexByte(lines[i], comment); idx != -1 {
			lines[i] = lines[i][:idx]
		}
	}
	return lines
}

// trim strips separators and whitespace from both ends of each line and
// drops lines which end up empty.
func trim(lines [][]byte, sep byte) [][]byte {
	out := lines[:0]
	for i := range lines {
		line := bytes.TrimSpace(bytes.Trim(lines[i], string(sep)))
		if len(line) > 0 {
			out = append(out, line)
		}
	}
	return out
}

// fields splits a line into fields. Runs of whitespace count as a single
// separator when the separator is a space.
func fields(line []byte, sep byte) [][]byte {
	if sep == ' ' {
		return bytes.Fields(line)
	}
	tok := bytes.Split(line, []byte{sep})
	for i := range tok {
		tok[i] = bytes.TrimSpace(tok[i])
	}
	return tok
}

// parseColumns calls parse on column columns[j] of every line, passing j as
// the output column.
func parseColumns(
	lines [][]byte, sep byte, columns []int,
	parse func(col int, tok []byte) error,
) error {
	for _, line := range lines {
		tok := fields(line, sep)
		for j, c := range columns {
			if c < 0 || c >= len(tok) {
				return fmt.Errorf("The line '%s' has %d columns, so column "+
					"%d can't be read.", line, len(tok), c)
			}
			if err := parse(j, tok[c]); err != nil {
				return fmt.Errorf("Could not parse column %d of the line "+
					"'%s': %s", c, line, err.Error())
			}
		}
	}
	return nil
}
