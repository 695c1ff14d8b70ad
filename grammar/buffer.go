package grammar

import "io"

// Buffer is the buffered, character-addressed read-only view over the
// grammar source that C3 (CopySourcePart) seeks around in to copy
// user-embedded semantic actions and resolver expressions verbatim.
//
// Grounded on the teacher's Parser.readAll: read the whole reader once
// into memory, then address it by byte offset — grammar sources are
// small enough that streaming isn't worth the complexity.
type Buffer struct {
	data []byte
	pos  int
}

// NewBuffer reads r fully and returns a Buffer positioned at 0.
func NewBuffer(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Buffer{data: data}, nil
}

// SetPos seeks to byte offset pos.
func (b *Buffer) SetPos(pos int) { b.pos = pos }

// GetPos returns the current byte offset.
func (b *Buffer) GetPos() int { return b.pos }

// Read returns the byte at the current position and advances by one,
// or -1 at end of input (mirroring the EOF sentinel of the teacher's
// byte-at-a-time scanners).
func (b *Buffer) Read() int {
	if b.pos >= len(b.data) {
		return -1
	}
	ch := int(b.data[b.pos])
	b.pos++
	return ch
}

// Bytes returns the full underlying buffer (read-only use only).
func (b *Buffer) Bytes() []byte { return b.data }
