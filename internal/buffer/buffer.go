package buffer

import "errors"

var (
	ErrSegmentTooLong = errors.New("segment exceeds the length limit")
	ErrOverflow       = errors.New("buffer exceeds the size limit")
)

// Buffer is a growable slice hosting a sequence of segments (e.g. lines of a single message)
// in a single place. Data is written streamingly into the current segment, which is then
// finished and returned as a whole. Both a single segment and the whole buffer are bounded.
type Buffer struct {
	memory     []byte
	begin      int
	maxSegment int
	maxSize    int
}

func New(initialSize, maxSegment, maxSize int) Buffer {
	return Buffer{
		memory:     make([]byte, 0, initialSize),
		maxSegment: maxSegment,
		maxSize:    maxSize,
	}
}

// Append writes data into the current segment. If either of limits is exceeded, the data
// is discarded.
func (b *Buffer) Append(elements []byte) error {
	if err := b.fits(len(elements)); err != nil {
		return err
	}

	b.memory = append(b.memory, elements...)
	return nil
}

// AppendByte writes a single byte into the current segment.
func (b *Buffer) AppendByte(c byte) error {
	if err := b.fits(1); err != nil {
		return err
	}

	b.memory = append(b.memory, c)
	return nil
}

func (b *Buffer) fits(n int) error {
	switch {
	case b.SegmentLength()+n > b.maxSegment:
		return ErrSegmentTooLong
	case len(b.memory)+n > b.maxSize:
		return ErrOverflow
	default:
		return nil
	}
}

// SegmentLength returns a number of bytes, taken by current segment.
func (b *Buffer) SegmentLength() int {
	return len(b.memory) - b.begin
}

// Finish completes current segment, returning its value. The returned slice stays valid
// until Clear is called.
func (b *Buffer) Finish() []byte {
	segment := b.memory[b.begin:]
	b.begin = len(b.memory)

	return segment
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.begin = 0
	b.memory = b.memory[:0]
}
