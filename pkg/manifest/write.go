package manifest

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/depdoc/pkg/deps"
	"github.com/matzehuels/depdoc/pkg/errors"
)

// DefaultTitle heads a manifest written without a previous preamble.
const DefaultTitle = "Dependencies"

// WriterOptions configures manifest output.
type WriterOptions struct {
	Title   string // level-1 heading when there is no preamble to keep
	Newline string // "\n" or "\r\n"
}

// DefaultWriterOptions returns options producing "# Dependencies" with LF line endings.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{Title: DefaultTitle, Newline: "\n"}
}

func (o WriterOptions) withDefaults() (WriterOptions, error) {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	switch o.Newline {
	case "":
		o.Newline = "\n"
	case "\n", "\r\n":
	default:
		return o, errors.New(errors.ErrCodeInvalidInput, "unsupported newline %q", o.Newline)
	}
	return o, nil
}

// Write renders installed as manifest text.
//
// Managers appear in canonical order, each under a level-2 heading. The
// default group comes first, followed by one level-3 heading per named group
// in ascending order. If previous is non-nil its preamble replaces the title
// heading, prose of each section is written ahead of its items, annotations
// of packages that are still installed are copied below their items, and
// its verbatim blocks follow the generated sections.
func Write(w io.Writer, installed *deps.Inventory, previous *Document, opts WriterOptions) error {
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	line := func(s string) {
		bw.WriteString(s)
		bw.WriteString(opts.Newline)
	}

	if previous != nil && len(previous.Preamble) > 0 {
		for _, s := range previous.Preamble {
			line(s)
		}
	} else {
		line("# " + opts.Title)
	}

	sorted := installed.Sorted()
	for _, m := range sorted.Managers() {
		line("")
		line("## " + m.Title())

		groups := sorted.Groups(m)
		for sec := range previous.proseSections(m) {
			if _, ok := groups[sec.Group]; !ok {
				groups[sec.Group] = nil
			}
		}
		names := make([]string, 0, len(groups))
		for g := range groups {
			names = append(names, g)
		}
		slices.Sort(names)

		for _, g := range names {
			line("")
			if g != deps.DefaultGroup {
				line("### " + g)
				line("")
			}
			if prose := previous.prose(Section{Manager: m, Group: g}); len(prose) > 0 {
				for _, s := range prose {
					line(s)
				}
				if len(groups[g]) > 0 {
					line("")
				}
			}
			for _, p := range groups[g] {
				line("- " + p.Name + ": " + p.Version)
				for _, note := range previous.Annotations(p.Key()) {
					line(note)
				}
			}
		}
	}

	for _, b := range previous.blocks() {
		if b.Manager != "" && sorted.HasManager(b.Manager) {
			continue
		}
		line("")
		for _, s := range b.Lines {
			line(s)
		}
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeFileSystem, err, "write manifest")
	}
	return nil
}

// WriteFile writes the manifest to path atomically: the text goes to a
// temporary file in the same directory which then replaces path.
func WriteFile(path string, installed *deps.Inventory, previous *Document, opts WriterOptions) error {
	var buf bytes.Buffer
	if err := Write(&buf, installed, previous, opts); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileSystem, err, "create temp file for %s", path)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeFileSystem, err, "write %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeFileSystem, err, "close %s", tmpPath)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeFileSystem, err, "chmod %s", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeFileSystem, err, "replace %s", path)
	}
	return nil
}
