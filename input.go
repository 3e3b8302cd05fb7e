package yangc

import (
	"fmt"
	"io"
	"os"
)

// InputType identifies where an Input's bytes came from.
type InputType int

const (
	InputMemory InputType = iota
	InputReader
	InputFile
	InputPath
)

func (t InputType) String() string {
	switch t {
	case InputMemory:
		return "memory"
	case InputReader:
		return "reader"
	case InputFile:
		return "file"
	case InputPath:
		return "filepath"
	}
	return "unknown"
}

// Input is a buffered input handle handed to the tree reader. It keeps a
// read position that moves forward and backward over the buffered bytes,
// so a consumer can re-read what it already consumed.
type Input struct {
	typ  InputType
	data []byte
	pos  int
	path string
	file *os.File // owned only by InPath
}

// InMemory wraps an in-memory buffer. The buffer is not copied.
// A NUL byte in the data terminates reading, like end of input.
func InMemory(data []byte) *Input {
	return &Input{typ: InputMemory, data: data}
}

// InReader buffers everything the reader yields.
func InReader(r io.Reader) (*Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return &Input{typ: InputReader, data: data}, nil
}

// InFile buffers the open file from its current offset. The caller keeps
// ownership of the file; Close does not touch it.
func InFile(f *os.File) (*Input, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name(), err)
	}
	return &Input{typ: InputFile, data: data}, nil
}

// InPath opens and buffers the named file. The handle owns the file and
// Close releases it.
func InPath(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Input{typ: InputPath, data: data, path: path, file: f}, nil
}

// Type reports where the input came from.
func (in *Input) Type() InputType { return in.typ }

// Filepath returns the opened path for InPath inputs, "" otherwise.
func (in *Input) Filepath() string { return in.path }

// Read copies up to count bytes at the current position into buf and
// advances. Forward reads stop at a NUL byte or the end of the data.
// A negative count moves backward, bounded by the start of the data,
// and copies the re-read bytes in ascending order. A nil buf just moves
// the position. Returns the number of bytes covered.
func (in *Input) Read(buf []byte, count int) int {
	if count == 0 {
		return 0
	}
	if count > 0 {
		if in.pos >= len(in.data) || in.data[in.pos] == 0 {
			return 0
		}
		n := 0
		for n < count && in.pos+n < len(in.data) && in.data[in.pos+n] != 0 {
			n++
		}
		if buf != nil {
			copy(buf, in.data[in.pos:in.pos+n])
		}
		in.pos += n
		return n
	}
	n := -count
	if n > in.pos {
		n = in.pos
	}
	in.pos -= n
	if buf != nil {
		copy(buf, in.data[in.pos:in.pos+n])
	}
	return n
}

// Reset moves the read position back to the start of the data.
func (in *Input) Reset() {
	in.pos = 0
}

// Close releases resources the handle opened itself. Inputs over memory,
// readers, and caller-owned files are unaffected.
func (in *Input) Close() error {
	if in.file != nil {
		err := in.file.Close()
		in.file = nil
		return err
	}
	return nil
}

// remaining returns the readable bytes from the current position up to
// the NUL sentinel or end of data, without moving the position.
func (in *Input) remaining() []byte {
	if in.pos >= len(in.data) {
		return nil
	}
	rest := in.data[in.pos:]
	for i, b := range rest {
		if b == 0 {
			return rest[:i]
		}
	}
	return rest
}
