package lzss

// window is the decoder's circular history of the last MaxOffset bytes.
// Once full, the oldest byte is overwritten first. Capacity equals MaxOffset
// so every 12-bit offset from 1 to 4095 stays addressable.
type window struct {
	buf    [MaxOffset]byte
	next   int
	filled int
}

func (w *window) push(b byte) {
	w.buf[w.next] = b
	w.next++
	if w.next == len(w.buf) {
		w.next = 0
	}
	if w.filled < len(w.buf) {
		w.filled++
	}
}

// back returns the byte offset positions behind the most recent one pushed
// (offset 1 is the most recent). The caller checks 1 <= offset <= filled.
func (w *window) back(offset int) byte {
	i := w.next - offset
	if i < 0 {
		i += len(w.buf)
	}
	return w.buf[i]
}
