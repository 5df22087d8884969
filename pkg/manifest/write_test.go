package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/depdoc/pkg/deps"
	"github.com/matzehuels/depdoc/pkg/errors"
)

func testInstalled() *deps.Inventory {
	return deps.NewInventory(
		deps.Package{Manager: deps.Node, Name: "lodash", Version: "4.17.21"},
		deps.Package{Manager: deps.Node, Name: "jest", Version: "29.7.0", Group: deps.DevGroup},
		deps.Package{Manager: deps.Composer, Name: "psr/log", Version: "3.0.0"},
		deps.Package{Manager: deps.Composer, Name: "monolog/monolog", Version: "2.9.1"},
		deps.Package{Manager: deps.Node, Name: "@types/node", Version: "20.10.0", Group: deps.DevGroup},
	)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testInstalled(), nil, DefaultWriterOptions()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := `# Dependencies

## Composer

- monolog/monolog: 2.9.1
- psr/log: 3.0.0

## Node

- lodash: 4.17.21

### dev

- @types/node: 20.10.0
- jest: 29.7.0
`
	if got := buf.String(); got != want {
		t.Errorf("Write() =\n%s\nwant\n%s", got, want)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	installed := testInstalled()

	var buf bytes.Buffer
	if err := Write(&buf, installed, nil, DefaultWriterOptions()); err != nil {
		t.Fatal(err)
	}
	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := parsed.Sorted().All(), installed.Sorted().All(); !reflect.DeepEqual(got, want) {
		t.Errorf("round trip =\n%v\nwant\n%v", got, want)
	}
}

func TestWrite_KeepsPreambleAndAnnotations(t *testing.T) {
	previous := `# Third-party software

Reviewed quarterly.

## Composer
- monolog/monolog: 2.8.0
  > pinned until the PSR-3 migration
- removed/pkg: 1.0.0
  > this note goes away
`
	doc, err := ParseDocument(strings.NewReader(previous))
	if err != nil {
		t.Fatal(err)
	}

	installed := deps.NewInventory(
		deps.Package{Manager: deps.Composer, Name: "monolog/monolog", Version: "2.9.1"},
	)

	var buf bytes.Buffer
	if err := Write(&buf, installed, doc, DefaultWriterOptions()); err != nil {
		t.Fatal(err)
	}

	want := `# Third-party software

Reviewed quarterly.

## Composer

- monolog/monolog: 2.9.1
  > pinned until the PSR-3 migration
`
	if got := buf.String(); got != want {
		t.Errorf("Write() =\n%s\nwant\n%s", got, want)
	}
}

func TestWrite_KeepsProseAndSections(t *testing.T) {
	previous := `# Dependencies

## Licensing

All MIT.

## Composer

This is just a note

- foo: 0.9.0

### Dev

Only needed in CI.

## Python

- requests: 2.31.0

## Notes

See the wiki.
`
	doc, err := ParseDocument(strings.NewReader(previous))
	if err != nil {
		t.Fatal(err)
	}

	installed := deps.NewInventory(
		deps.Package{Manager: deps.Composer, Name: "foo", Version: "1.0.0"},
	)

	var buf bytes.Buffer
	if err := Write(&buf, installed, doc, DefaultWriterOptions()); err != nil {
		t.Fatal(err)
	}

	want := `# Dependencies

## Licensing

All MIT.

## Composer

This is just a note

- foo: 1.0.0

### dev

Only needed in CI.

## Python

- requests: 2.31.0

## Notes

See the wiki.
`
	if got := buf.String(); got != want {
		t.Errorf("Write() =\n%s\nwant\n%s", got, want)
	}

	again, err := ParseDocument(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(again.Prose, doc.Prose) || !reflect.DeepEqual(again.Blocks, doc.Blocks) {
		t.Errorf("reparsed prose %q blocks %q, want %q %q", again.Prose, again.Blocks, doc.Prose, doc.Blocks)
	}
	if !again.Inventory.Has(deps.Key{Manager: deps.Pip, Name: "requests"}) {
		t.Error("unsupported section lost its packages")
	}
}

func TestWrite_Options(t *testing.T) {
	installed := deps.NewInventory(deps.Package{Manager: deps.Node, Name: "a", Version: "1"})

	var buf bytes.Buffer
	opts := WriterOptions{Title: "Deps", Newline: "\r\n"}
	if err := Write(&buf, installed, nil, opts); err != nil {
		t.Fatal(err)
	}
	if want := "# Deps\r\n\r\n## Node\r\n\r\n- a: 1\r\n"; buf.String() != want {
		t.Errorf("Write() = %q, want %q", buf.String(), want)
	}

	err := Write(&bytes.Buffer{}, installed, nil, WriterOptions{Newline: "\r"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Write(newline \\r) error = %v, want INVALID_INPUT", err)
	}
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, nil, WriterOptions{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "# Dependencies\n" {
		t.Errorf("Write(empty) = %q", buf.String())
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFilename)
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(path, testInstalled(), nil, DefaultWriterOptions()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	inv, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if inv.Len() != testInstalled().Len() {
		t.Errorf("ParseFile() returned %d packages, want %d", inv.Len(), testInstalled().Len())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %v", entries)
	}
}

func TestWriteFile_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", DefaultFilename)
	err := WriteFile(path, testInstalled(), nil, DefaultWriterOptions())
	if !errors.Is(err, errors.ErrCodeFileSystem) {
		t.Errorf("WriteFile() error = %v, want FILESYSTEM_ERROR", err)
	}
}
