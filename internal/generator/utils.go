package generator

import (
	"bufio"
	"io"
	"os"
	"text/template"

	"github.com/xll-gen/bin2c/internal/templates"
)

// executeTemplate loads a template, parses it and executes it into w.
func executeTemplate(w io.Writer, tmplName string, data interface{}) error {
	tmplContent, err := templates.Get(tmplName)
	if err != nil {
		return err
	}

	t, err := template.New(tmplName).Parse(tmplContent)
	if err != nil {
		return err
	}

	return t.Execute(w, data)
}

// closeOutput flushes w and closes f, keeping the first error in *errp.
// Partial content is flushed even when generation failed.
func closeOutput(w *bufio.Writer, f *os.File, errp *error) {
	if err := w.Flush(); err != nil && *errp == nil {
		*errp = err
	}
	if err := f.Close(); err != nil && *errp == nil {
		*errp = err
	}
}
