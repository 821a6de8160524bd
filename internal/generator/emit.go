package generator

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInvalidBlockSize is returned when a Format asks for fewer than one
// byte per line.
var ErrInvalidBlockSize = errors.New("block size must be at least 1")

const hexDigits = "0123456789ABCDEF"

// EmitDeclaration writes the extern declarations for input's array and size
// symbols.
func EmitDeclaration(w io.Writer, input string) error {
	sym := SymbolName(input)
	_, err := fmt.Fprintf(w, "extern const unsigned char %[1]s_start[];\nextern const size_t %[1]s_size;\n", sym)
	return err
}

// EmitDefinition writes the array definition for input, f.BlockSize bytes
// per line, followed by the size constant. The size is left to the C
// compiler as sizeof the array.
func EmitDefinition(w io.Writer, input string, f Format) error {
	_, err := emitDefinition(w, input, f)
	return err
}

// emitDefinition is EmitDefinition that also reports the bytes embedded.
func emitDefinition(w io.Writer, input string, f Format) (int64, error) {
	if f.BlockSize < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidBlockSize, f.BlockSize)
	}

	sym := SymbolName(input)
	if _, err := fmt.Fprintf(w, "const unsigned char %s_start[] = {\n", sym); err != nil {
		return 0, err
	}

	// The opener is already written, so a missing input leaves it behind.
	in, err := os.Open(input)
	if err != nil {
		return 0, fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	n, err := writeBlocks(w, in, f)
	if err != nil {
		return n, fmt.Errorf("failed to read %s: %w", input, err)
	}

	if _, err := fmt.Fprintf(w, "};\nconst size_t %[1]s_size = sizeof(%[1]s_start);\n", sym); err != nil {
		return n, err
	}
	return n, nil
}

// writeBlocks copies r to w as data lines and returns the number of bytes
// read. A short block only happens at end of input.
func writeBlocks(w io.Writer, r io.Reader, f Format) (int64, error) {
	var total int64
	block := make([]byte, f.BlockSize)
	line := make([]byte, 0, len(f.Indent)+len(block)*6)
	for {
		n, err := io.ReadFull(r, block)
		if n > 0 {
			total += int64(n)
			line = appendLine(line[:0], f.Indent, block[:n])
			if _, werr := w.Write(line); werr != nil {
				return total, werr
			}
		}
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return total, nil
		default:
			return total, err
		}
	}
}

// appendLine formats block as "<indent>0xHH, 0xHH,\n".
func appendLine(dst []byte, indent string, block []byte) []byte {
	dst = append(dst, indent...)
	for i, b := range block {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = append(dst, '0', 'x', hexDigits[b>>4], hexDigits[b&0x0F], ',')
	}
	return append(dst, '\n')
}
