package compress

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	// MagicNumber is an arbitrary number at the start of all index files
	// which should help identify when the code is run on something else by
	// accident.
	MagicNumber = 0xce11c0de
	// ReverseMagicNumber is the magic number if read on a machine with
	// flipped endianness.
	ReverseMagicNumber = 0xdec011ce
	// Version is the current version of the index file format.
	Version = 1
	// MaxIndices is the largest number of integers, nvec times the number
	// of tuples, an index file can hold.
	MaxIndices = 1 << 30
)

// Header is the fixed-width header at the start of an index file.
type Header struct {
	Magic, Version uint32
	// NVec is the number of components in each index tuple.
	NVec int64
	// N is the number of tuples.
	N int64
	// Period[k] is the number of grid points along axis k if that axis is
	// periodic and 0 otherwise.
	Period [3]int64
}

// WriteIndices writes the index tuples in idx to wr. Each tuple has nvec
// components, so len(idx) must be a multiple of nvec. period is either nil or
// has nvec elements. If period[k] > 0, axis k is a periodic grid axis with
// period[k] points and every index along it must be in [0, period[k]).
func WriteIndices(wr io.Writer, nvec int, period, idx []int) error {
	if nvec <= 0 || nvec > 3 {
		return fmt.Errorf("Index tuples must have 1, 2, or 3 components, "+
			"not %d.", nvec)
	} else if len(idx)%nvec != 0 {
		return fmt.Errorf("%d indices cannot be split into tuples of "+
			"length %d.", len(idx), nvec)
	} else if len(idx) > MaxIndices {
		return fmt.Errorf("%d indices were given, but index files can only "+
			"hold %d.", len(idx), MaxIndices)
	} else if period != nil && len(period) != nvec {
		return fmt.Errorf("%d periods were given for tuples with %d "+
			"components.", len(period), nvec)
	}

	n := len(idx) / nvec
	hd := Header{Magic: MagicNumber, Version: Version,
		NVec: int64(nvec), N: int64(n)}
	for k := range period {
		if period[k] < 0 {
			return fmt.Errorf("Axis %d has a negative period, %d.",
				k, period[k])
		}
		hd.Period[k] = int64(period[k])
		if period[k] == 0 {
			continue
		}
		for i := k; i < len(idx); i += nvec {
			if idx[i] < 0 || idx[i] >= period[k] {
				return fmt.Errorf("Index %d along axis %d is outside the "+
					"periodic range [0, %d).", idx[i], k, period[k])
			}
		}
	}

	if err := binary.Write(wr, binary.LittleEndian, &hd); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	cols := make([]int64, len(idx))
	splits := make([][]int64, nvec)
	lengths := make([]int, nvec)
	for k := range lengths {
		lengths[k] = n
	}
	splitArray(cols, lengths, splits)

	// Transpose so each axis is contiguous.
	for i := 0; i < n; i++ {
		for k := 0; k < nvec; k++ {
			splits[k][i] = int64(idx[i*nvec+k])
		}
	}

	b := make([]byte, n)
	var buf []byte
	for k := range splits {
		DeltaEncode(0, hd.Period[k], splits[k], splits[k])

		var err error
		buf, err = WriteCompressedIntsZStd(splits[k], b, buf, wr)
		if err != nil {
			return err
		}
	}

	return nil
}

// ReadIndices reads index tuples written by WriteIndices. It returns the
// number of components per tuple and the flattened tuples.
func ReadIndices(rd io.Reader) (nvec int, idx []int, err error) {
	hd := Header{}
	order, err := readHeader(rd, &hd)
	if err != nil {
		return 0, nil, err
	}
	if order != binary.LittleEndian {
		return 0, nil, fmt.Errorf("Index files are little endian, but " +
			"this one was written with big endian byte order.")
	}

	if hd.NVec <= 0 || hd.NVec > 3 {
		return 0, nil, fmt.Errorf("The header says tuples have %d "+
			"components, but only 1, 2, or 3 are possible.", hd.NVec)
	} else if hd.N < 0 || hd.N > MaxIndices/hd.NVec {
		return 0, nil, fmt.Errorf("The header says there are %d tuples, "+
			"but index files can hold between 0 and %d tuples with %d "+
			"components.", hd.N, MaxIndices/hd.NVec, hd.NVec)
	}
	for k := range hd.Period {
		if hd.Period[k] < 0 {
			return 0, nil, fmt.Errorf("The header says axis %d has "+
				"period %d.", k, hd.Period[k])
		}
	}

	nvec, n := int(hd.NVec), int(hd.N)
	idx = make([]int, n*nvec)
	if n == 0 {
		return nvec, idx, nil
	}

	var b, buf []byte
	q := make([]int64, n)
	for k := 0; k < nvec; k++ {
		b, buf, err = ReadCompressedIntsZStd(rd, b, buf, q)
		if err != nil {
			return 0, nil, err
		}
		DeltaDecode(0, hd.Period[k], q, q)

		for i := 0; i < n; i++ {
			idx[i*nvec+k] = int(q[i])
		}
	}

	return nvec, idx, nil
}

// readHeader reads the header and checks that it is actually an index file
// that this version of the code can read. If it can, the byte order is
// returned.
func readHeader(rd io.Reader, hd *Header) (binary.ByteOrder, error) {
	order := binary.ByteOrder(binary.LittleEndian)
	if err := binary.Read(rd, order, hd); err != nil {
		return nil, err
	}

	switch hd.Magic {
	case MagicNumber:
	case ReverseMagicNumber:
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("This is not an index file. All index files "+
			"begin with either the 32-bit integer %x or %x, but this one "+
			"begins with %x.", MagicNumber, ReverseMagicNumber, hd.Magic)
	}

	if order == binary.LittleEndian && hd.Version > Version {
		return nil, fmt.Errorf("The file was written with index format "+
			"version %d, but this code can only read up to version %d.",
			hd.Version, Version)
	}

	return order, nil
}

// WriteIndexFile writes idx to the file fname, creating or truncating it.
// period is the same as in WriteIndices.
func WriteIndexFile(fname string, nvec int, period, idx []int) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}

	wr := bufio.NewWriter(f)
	if err := WriteIndices(wr, nvec, period, idx); err != nil {
		f.Close()
		return err
	}
	if err := wr.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadIndexFile reads the tuples stored in the file fname.
func ReadIndexFile(fname string) (nvec int, idx []int, err error) {
	f, err := os.Open(fname)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()

	nvec, idx, err = ReadIndices(bufio.NewReader(f))
	if err != nil {
		return 0, nil, fmt.Errorf("Could not read index file %s: %s",
			fname, err.Error())
	}
	return nvec, idx, nil
}
