package render

import (
	"bufio"
)

// Control sequence fragments. Only these are ever emitted.
var (
	csi            = []byte("\x1b[")
	csiBlinkOn     = []byte("\x1b[5m")
	csiBlinkOff    = []byte("\x1b[25m")
	csiEraseLine   = []byte("\x1b[0K")
	csiClearScreen = []byte("\x1b[2J")
	csiReset       = []byte("\x1b[0m")
)

// writeInt writes a non-negative integer without allocating.
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeCursorPos emits an absolute cursor move: ESC [ line ; col H.
func writeCursorPos(w *bufio.Writer, line, col int) {
	w.Write(csi)
	writeInt(w, line)
	w.WriteByte(';')
	writeInt(w, col)
	w.WriteByte('H')
}

// writeSGR emits ESC [ code m.
func writeSGR(w *bufio.Writer, code int) {
	w.Write(csi)
	writeInt(w, code)
	w.WriteByte('m')
}
