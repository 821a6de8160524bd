package generator

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/xll-gen/bin2c/internal/config"
	"github.com/xll-gen/bin2c/internal/templates"
)

// Tool is the name written into the banner of every generated file.
const Tool = "bin2c"

// Format controls how embedded bytes are laid out. It never changes the
// bytes themselves.
type Format struct {
	// BlockSize is the number of input bytes per data line. Must be >= 1.
	BlockSize int
	// Indent is prefixed to every data line.
	Indent string
}

// DefaultFormat is 16 bytes per line indented by one tab.
var DefaultFormat = Format{BlockSize: config.DefaultBlockSize, Indent: "\t"}

// Result describes one generated output set.
type Result struct {
	Header string
	Source string
	// Inputs is the number of files embedded.
	Inputs int
	// Bytes is the total size of the embedded files.
	Bytes int64
}

type preamble struct {
	Tool  string
	Guard string
}

// BuildOutputSet writes set.HeaderPath() and set.SourcePath(), truncating
// existing files. Inputs are declared and defined in order, so the header
// and source always list the same symbols in the same sequence.
//
// On error the outputs are left on disk as far as they were written.
//
// Parameters:
//   - set: The basename and inputs of the pair to generate.
//   - f: Line layout of the data.
//
// Returns:
//   - Result: Paths written and the amount of data embedded.
//   - error: The first file access or write failure.
func BuildOutputSet(set config.OutputSet, f Format) (res Result, err error) {
	res = Result{Header: set.HeaderPath(), Source: set.SourcePath()}
	if f.BlockSize < 1 {
		return res, fmt.Errorf("%w: got %d", ErrInvalidBlockSize, f.BlockSize)
	}

	hf, err := os.Create(res.Header)
	if err != nil {
		return res, err
	}
	h := bufio.NewWriter(hf)
	defer closeOutput(h, hf, &err)

	cf, err := os.Create(res.Source)
	if err != nil {
		return res, err
	}
	c := bufio.NewWriter(cf)
	defer closeOutput(c, cf, &err)

	data := preamble{Tool: Tool, Guard: GuardName(set.Basename)}
	if err := executeTemplate(h, templates.GuardOpen, data); err != nil {
		return res, err
	}
	if err := executeTemplate(h, templates.Banner, data); err != nil {
		return res, err
	}
	if err := executeTemplate(c, templates.Banner, data); err != nil {
		return res, err
	}

	for _, in := range set.Inputs {
		if err := EmitDeclaration(h, in); err != nil {
			return res, err
		}
		n, err := emitDefinition(c, in, f)
		if err != nil {
			return res, err
		}
		res.Inputs++
		res.Bytes += n
		slog.Debug("embedded input", "set", set.Basename, "input", in, "symbol", SymbolName(in), "bytes", n)
	}

	if err := executeTemplate(h, templates.GuardClose, data); err != nil {
		return res, err
	}
	return res, nil
}

// Generate builds every set in order and stops at the first failure.
// Results for the sets completed before the failure are returned.
func Generate(sets []config.OutputSet, f Format) ([]Result, error) {
	results := make([]Result, 0, len(sets))
	for _, set := range sets {
		res, err := BuildOutputSet(set, f)
		if err != nil {
			return results, fmt.Errorf("output set %s: %w", set.Basename, err)
		}
		slog.Info("generated output set", "set", set.Basename, "inputs", res.Inputs, "bytes", res.Bytes)
		results = append(results, res)
	}
	return results, nil
}
