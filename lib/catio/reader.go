/*package catio reads columns of numbers out of plain text files, such as
lists of point positions. Files are read in blocks so that very large files
don't need to fit in memory twice.
*/
package catio

import (
	"bytes"
	"io/ioutil"
	"os"
)

// TextConfig contains information necessary for parsing text files.
type TextConfig struct {
	Separator    byte // Character used to separate fields.
	Comment      byte // Character used to start comments.
	SkipLines    int  // Number of lines to skip at the start of file.
	MaxBlockSize int  // Largest amount of text you want to read at one time.
	MaxLineSize  int  // Largest possible line size.
}

// DefaultConfig is a TextConfig instance which can read whitespace-separated
// files with '#' comments.
var DefaultConfig = TextConfig{
	Separator: ' ',
	Comment:   '#',
	SkipLines: 0,

	MaxBlockSize: 1 << 30,
	MaxLineSize:  1 << 20,
}

// Reader allows the user to access columns of a text file, potentially in
// blocks.
type Reader interface {
	// Read* methods read data across all blocks.
	ReadInts(columns []int) ([][]int, error)
	ReadFloat64s(columns []int) ([][]float64, error)

	// Blocks returns the number of blocks in the file.
	Blocks() int

	// ReadFloat64Block reads data associated with block i.
	ReadFloat64Block(columns []int, i int) ([][]float64, error)

	// Close releases the underlying file, if there is one.
	Close() error
}

// TextFile creates a Reader for a text file.
func TextFile(fname string, config ...TextConfig) (Reader, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	rd, err := newTextReader(f, int(info.Size()), config...)
	if err != nil {
		f.Close()
		return nil, err
	}
	rd.closer = f
	return rd, nil
}

// Text creates a Reader for a block of text.
func Text(text []byte, config ...TextConfig) (Reader, error) {
	rd, err := newTextReader(bytes.NewReader(text), len(text), config...)
	if err != nil {
		return nil, err
	}
	return rd, nil
}

// Stdin creates a Reader for the text currently in stdin.
func Stdin(config ...TextConfig) (Reader, error) {
	text, err := ioutil.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}
	return Text(text, config...)
}
