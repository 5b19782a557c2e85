package dumper

import (
	"bufio"
	"io"
)

const writerBufferSize = 32768

// dataWriter buffers the output and keeps track of the bytes written so far
type dataWriter struct {
	writer  *bufio.Writer
	written int64
}

func newDataWriter(w io.Writer) *dataWriter {
	return &dataWriter{writer: bufio.NewWriterSize(w, writerBufferSize)}
}

func (w *dataWriter) WriteString(s string) error {
	n, err := w.writer.WriteString(s)
	w.written += int64(n)
	return err
}

func (w *dataWriter) Written() int64 {
	return w.written
}

func (w *dataWriter) Flush() error {
	return w.writer.Flush()
}
