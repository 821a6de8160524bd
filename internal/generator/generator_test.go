package generator

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/xll-gen/bin2c/internal/config"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestBuildOutputSet_Combined(t *testing.T) {
	chdir(t, t.TempDir())
	writeInput(t, ".", "my-file.bin", []byte{0xDE, 0xAD, 0xBE})
	writeInput(t, ".", "b.dat", nil)

	set := config.OutputSet{Basename: "combined", Inputs: []string{"my-file.bin", "b.dat"}}
	res, err := BuildOutputSet(set, Format{BlockSize: 2, Indent: "\t"})
	if err != nil {
		t.Fatalf("BuildOutputSet failed: %v", err)
	}
	if res.Header != "combined.h" || res.Source != "combined.c" {
		t.Errorf("unexpected paths: %+v", res)
	}
	if res.Inputs != 2 || res.Bytes != 3 {
		t.Errorf("Inputs = %d, Bytes = %d, want 2, 3", res.Inputs, res.Bytes)
	}

	wantHeader := `#ifndef _COMBINED_H
#define _COMBINED_H
/* Auto-generated by bin2c */
#include <stddef.h>

extern const unsigned char my_file_bin_start[];
extern const size_t my_file_bin_size;
extern const unsigned char b_dat_start[];
extern const size_t b_dat_size;

#endif
`
	if got := readFile(t, "combined.h"); got != wantHeader {
		t.Errorf("header =\n%s\nwant\n%s", got, wantHeader)
	}

	wantSource := `/* Auto-generated by bin2c */
#include <stddef.h>

const unsigned char my_file_bin_start[] = {
	0xDE, 0xAD,
	0xBE,
};
const size_t my_file_bin_size = sizeof(my_file_bin_start);
const unsigned char b_dat_start[] = {
};
const size_t b_dat_size = sizeof(b_dat_start);
`
	if got := readFile(t, "combined.c"); got != wantSource {
		t.Errorf("source =\n%s\nwant\n%s", got, wantSource)
	}
}

func TestBuildOutputSet_Overwrites(t *testing.T) {
	chdir(t, t.TempDir())
	writeInput(t, ".", "a.bin", []byte{1})
	os.WriteFile("out.h", []byte(strings.Repeat("stale\n", 100)), 0644)
	os.WriteFile("out.c", []byte(strings.Repeat("stale\n", 100)), 0644)

	if _, err := BuildOutputSet(config.OutputSet{Basename: "out", Inputs: []string{"a.bin"}}, DefaultFormat); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{"out.h", "out.c"} {
		if strings.Contains(readFile(t, path), "stale") {
			t.Errorf("%s was not truncated", path)
		}
	}
}

func TestBuildOutputSet_Order(t *testing.T) {
	chdir(t, t.TempDir())
	names := []string{"z.bin", "a.bin", "m.bin"}
	for i, n := range names {
		writeInput(t, ".", n, []byte{byte(i)})
	}

	if _, err := BuildOutputSet(config.OutputSet{Basename: "ordered", Inputs: names}, DefaultFormat); err != nil {
		t.Fatal(err)
	}

	header := readFile(t, "ordered.h")
	source := readFile(t, "ordered.c")
	prevH, prevC := -1, -1
	for _, n := range names {
		sym := SymbolName(n)
		h := strings.Index(header, "extern const unsigned char "+sym+"_start[];")
		c := strings.Index(source, "const unsigned char "+sym+"_start[] = {")
		if h <= prevH || c <= prevC {
			t.Errorf("%s out of order: header %d (prev %d), source %d (prev %d)", sym, h, prevH, c, prevC)
		}
		if strings.Count(source, "const size_t "+sym+"_size = ") != 1 {
			t.Errorf("%s: expected exactly one size definition", sym)
		}
		prevH, prevC = h, c
	}
}

func TestBuildOutputSet_MissingInput(t *testing.T) {
	chdir(t, t.TempDir())
	writeInput(t, ".", "a.bin", []byte{1, 2})

	_, err := BuildOutputSet(config.OutputSet{Basename: "broken", Inputs: []string{"a.bin", "missing.bin"}}, DefaultFormat)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error = %v, want fs.ErrNotExist", err)
	}

	// Partial outputs stay on disk.
	source := readFile(t, "broken.c")
	if !strings.Contains(source, "a_bin_start") {
		t.Errorf("partial source missing first input:\n%s", source)
	}
	if !strings.HasSuffix(source, "const unsigned char missing_bin_start[] = {\n") {
		t.Errorf("partial source should end with the failed input's opener:\n%s", source)
	}
	if strings.Contains(readFile(t, "broken.h"), "#endif") {
		t.Error("partial header should not be closed")
	}
}

func TestBuildOutputSet_InvalidBlockSize(t *testing.T) {
	chdir(t, t.TempDir())
	writeInput(t, ".", "a.bin", []byte{1})

	_, err := BuildOutputSet(config.OutputSet{Basename: "out", Inputs: []string{"a.bin"}}, Format{BlockSize: 0})
	if !errors.Is(err, ErrInvalidBlockSize) {
		t.Fatalf("error = %v, want ErrInvalidBlockSize", err)
	}
	if _, err := os.Stat("out.h"); !os.IsNotExist(err) {
		t.Error("out.h should not be created")
	}
}

func TestGenerate_PerInput(t *testing.T) {
	chdir(t, t.TempDir())
	os.Mkdir("data", 0755)
	writeInput(t, "data", "one.bin", []byte{1})
	writeInput(t, ".", "two.bin", []byte{2, 2})

	cfg := &config.Config{Inputs: []string{"data/one.bin", "two.bin"}}
	results, err := Generate(config.Plan(cfg), DefaultFormat)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	expected := []string{"data/one.bin.h", "data/one.bin.c", "two.bin.h", "two.bin.c"}
	for _, f := range expected {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			t.Errorf("File missing: %s", f)
		}
	}

	header := readFile(t, "data/one.bin.h")
	if !strings.HasPrefix(header, "#ifndef _DATA_ONE_BIN_H\n#define _DATA_ONE_BIN_H\n") {
		t.Errorf("unexpected guard:\n%s", header)
	}
	if !strings.Contains(header, "extern const unsigned char one_bin_start[];") {
		t.Errorf("symbol should use the file name only:\n%s", header)
	}
	if strings.Contains(readFile(t, "two.bin.h"), "one_bin") {
		t.Error("per-input sets must not share symbols")
	}
}

func TestGenerate_StopsAtFirstError(t *testing.T) {
	chdir(t, t.TempDir())
	writeInput(t, ".", "ok.bin", []byte{1})

	sets := []config.OutputSet{
		{Basename: "first", Inputs: []string{"ok.bin"}},
		{Basename: "second", Inputs: []string{"missing.bin"}},
		{Basename: "third", Inputs: []string{"ok.bin"}},
	}
	results, err := Generate(sets, DefaultFormat)
	if err == nil || !strings.Contains(err.Error(), "output set second") {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Header != "first.h" {
		t.Errorf("results = %+v, want only first", results)
	}
	if _, err := os.Stat("third.h"); !os.IsNotExist(err) {
		t.Error("third set should not be generated")
	}
}
