/*package compress stores lists of selected grid index tuples in a compact
binary format. Each axis column is delta encoded, split into eight one-byte
"planes" from least to most significant, and each plane is compressed with
zstd on its own. Index lists coming out of cell selection are short runs of
nearly consecutive integers, so the high planes compress to almost nothing.
*/
package compress

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

// zstdLevel is the compression level used for every plane. Level 1 is fast
// and already gets the zero planes down to a handful of bytes.
const zstdLevel = 1

// intToByte transfers a one-byte "column" from i64 to b. The bytes are indexed
// from least to most significant.
func intToByte(i64 []int64, b []byte, col int) {
	for i := range i64 {
		b[i] = byte((uint64(i64[i]) >> (8 * col)) & 0xff)
	}
}

// byteToInt adds a one-byte column back into i64. i64 must start out zeroed.
func byteToInt(b []byte, i64 []int64, col int) {
	for i := range i64 {
		i64[i] += int64(uint64(b[i]) << (8 * col))
	}
}

// resizeBytes resizes a byte buffer to have length n.
func resizeBytes(b []byte, n int) []byte {
	if cap(b) >= n {
		b = b[:n]
	} else {
		b = b[:cap(b)]
		b = append(b, make([]byte, n-len(b))...)
	}

	return b
}

// WriteCompressedIntsZStd writes an array of ints, q, to an io.Writer as eight
// zstd-compressed byte planes, each preceded by its compressed length. b is a
// temporary buffer which must be the same length as q. buf is a scratch buffer
// which will be resized as needed and returned, so keep passing the same one.
func WriteCompressedIntsZStd(
	q []int64, b, buf []byte, wr io.Writer,
) ([]byte, error) {
	if len(q) != len(b) {
		panic(fmt.Sprintf("Internal error: output byte buffer has length %d,"+
			" but int array had length %d.", len(b), len(q)))
	}

	for i := 0; i < 8; i++ {
		intToByte(q, b, i)

		var err error
		buf, err = zstd.CompressLevel(buf, b, zstdLevel)
		if err != nil {
			return nil, err
		}

		err = binary.Write(wr, binary.LittleEndian, int64(len(buf)))
		if err != nil {
			return nil, err
		}

		if _, err = wr.Write(buf); err != nil {
			return nil, err
		}
	}

	return buf[:0], nil
}

// ReadCompressedIntsZStd reads an array of ints written by
// WriteCompressedIntsZStd into q. The length of q must match the written
// array. b and buf are scratch buffers which will be resized as needed and
// returned.
func ReadCompressedIntsZStd(
	rd io.Reader, b, buf []byte, q []int64,
) (bOut, bufOut []byte, err error) {
	for i := range q {
		q[i] = 0
	}

	for i := 0; i < 8; i++ {
		nBuf := int64(0)
		if err := binary.Read(rd, binary.LittleEndian, &nBuf); err != nil {
			return nil, nil, err
		}
		if nBuf < 0 || nBuf > int64(zstd.CompressBound(len(q))) {
			return nil, nil, fmt.Errorf("Byte plane %d has length %d, but "+
				"%d values compress to between 0 and %d bytes.",
				i, nBuf, len(q), zstd.CompressBound(len(q)))
		}

		buf = resizeBytes(buf, int(nBuf))
		if _, err := io.ReadFull(rd, buf); err != nil {
			return nil, nil, err
		}

		b, err = zstd.Decompress(resizeBytes(b, len(q)), buf)
		if err != nil {
			return nil, nil, err
		}
		if len(b) != len(q) {
			return nil, nil, fmt.Errorf("Byte plane %d decompressed to %d "+
				"bytes, but %d were expected.", i, len(b), len(q))
		}

		byteToInt(b, q, i)
	}

	return b[:0], buf[:0], nil
}

// splitArray splits the array x into len(lengths) smaller arrays and writes
// their slice headers to splits.
func splitArray(x []int64, lengths []int, splits [][]int64) {
	sum := 0
	for _, n := range lengths {
		sum += n
	}

	if sum != len(x) {
		panic(fmt.Sprintf("Internal error: sum of length = %d, but length "+
			"of array is %d.", sum, len(x)))
	} else if len(lengths) != len(splits) {
		panic(fmt.Sprintf("Internal error: len(lengths) = %d, len(splits) "+
			"= %d.", len(lengths), len(splits)))
	}

	start := 0
	for i := range lengths {
		end := start + lengths[i]
		splits[i] = x[start:end]
		start = end
	}
}

// DeltaEncode delta encodes the array x into the array out. The element
// before x[0] is taken to be offset. x and out can be the same array. If
// qPeriod > 0, deltas are wrapped into [-qPeriod/2, qPeriod/2], which is
// what a periodic grid axis with qPeriod points needs.
func DeltaEncode(offset, qPeriod int64, x, out []int64) {
	if len(x) != len(out) {
		panic(fmt.Sprintf("Internal error: len(x) = %d, but len(out) = "+
			"%d in DeltaEncode", len(x), len(out)))
	}
	if len(x) == 0 {
		return
	}

	// Loop this way so the encoding can be done in place.
	prev := x[0]
	out[0] = prev - offset
	for i := 1; i < len(x); i++ {
		next := x[i]
		out[i] = next - prev
		prev = next
	}

	if qPeriod > 0 {
		for i := range out {
			if out[i] > qPeriod/2 {
				out[i] -= qPeriod
			} else if out[i] < -qPeriod/2 {
				out[i] += qPeriod
			}
		}
	}
}

// DeltaDecode decodes an integer array encoded with DeltaEncode. If
// qPeriod > 0, decoded values are wrapped into [0, qPeriod), which inverts
// DeltaEncode exactly when every encoded value was already in that range.
func DeltaDecode(offset, qPeriod int64, x, out []int64) {
	if len(x) != len(out) {
		panic(fmt.Sprintf("Internal error: len(x) = %d, but len(out) = "+
			"%d in DeltaDecode", len(x), len(out)))
	}
	if len(x) == 0 {
		return
	}

	out[0] = offset + x[0]
	for i := 1; i < len(out); i++ {
		out[i] = out[i-1] + x[i]
	}

	if qPeriod > 0 {
		for i := range out {
			out[i] %= qPeriod
			if out[i] < 0 {
				out[i] += qPeriod
			}
		}
	}
}
