package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes handed to the underlying writer at once.
// Roughly one MTU keeps SSH channel writes smooth.
const maxChunkSize = 1400

// ANSI control sequences.
const (
	seqClearScreen  = "\033[H\033[2J"
	seqHideCursor   = "\033[?25l"
	seqShowCursor   = "\033[?25h"
	seqAltScreenOn  = "\033[?1049h"
	seqAltScreenOff = "\033[?1049l"
)

// ChunkWriter accumulates one frame of terminal output and writes it in
// chunks on Flush. Cursor positions passed to MoveCursor and WriteAt are
// relative to the render area; the centering offset is added automatically.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf [20]byte      // Scratch buffer for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends an ANSI cursor position sequence for the 1-based
// render area position (col, row).
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer so Canvas.Render can target the frame buffer.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends raw output, including escape sequences.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes s starting at the 1-based render area position (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// ClearScreen queues a full terminal clear.
func (cw *ChunkWriter) ClearScreen() {
	cw.buf.WriteString(seqClearScreen)
}

// Len returns the number of bytes waiting for Flush.
func (cw *ChunkWriter) Len() int {
	return cw.buf.Len()
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		if err := cw.bufw.Flush(); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// EnterScreen switches to the alternate screen, hides the cursor and clears.
func EnterScreen(w io.Writer) error {
	_, err := io.WriteString(w, seqAltScreenOn+seqHideCursor+seqClearScreen)
	return err
}

// LeaveScreen restores the cursor and the primary screen.
func LeaveScreen(w io.Writer) error {
	_, err := io.WriteString(w, seqClearScreen+seqShowCursor+seqAltScreenOff)
	return err
}
