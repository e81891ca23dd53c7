package resp

import "bytes"

// FrameReader is the per-connection growable wire buffer (§ Wire buffer):
// inbound bytes accumulate via Write, and Next peels off complete frames one
// at a time. A NotComplete result leaves the buffered bytes untouched so the
// caller can append more and retry.
type FrameReader struct {
	buf bytes.Buffer
}

// NewFrameReader returns an empty FrameReader.
func NewFrameReader() *FrameReader {
	return &FrameReader{}
}

// Write appends p to the buffer.
func (r *FrameReader) Write(p []byte) {
	r.buf.Write(p)
}

// Len reports how many unconsumed bytes remain buffered.
func (r *FrameReader) Len() int {
	return r.buf.Len()
}

// Next attempts to decode one frame from the front of the buffer. On success
// the consumed bytes are discarded from the buffer and the frame is
// returned. On ErrNotComplete the buffer is left exactly as it was; on any
// other error the buffer is also left untouched, since the caller is
// expected to close the connection rather than keep reading.
func (r *FrameReader) Next() (Frame, error) {
	data := r.buf.Bytes()
	if len(data) == 0 {
		return Frame{}, ErrNotComplete
	}
	frame, n, err := Decode(data)
	if err != nil {
		return Frame{}, err
	}
	r.buf.Next(n)
	return frame, nil
}
