package manifest

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/depdoc/pkg/deps"
	"github.com/matzehuels/depdoc/pkg/errors"
)

// DefaultFilename is the manifest name looked up in a project directory.
const DefaultFilename = "DEPENDENCIES.md"

const maxLineSize = 1024 * 1024

// Document is a parsed manifest together with the hand-written parts the
// Writer preserves.
type Document struct {
	Inventory *deps.Inventory
	Preamble  []string              // lines before the first manager section
	Notes     map[deps.Key][]string // annotation lines per package, verbatim
	Prose     map[Section][]string  // other non-item lines of a supported section
	Blocks    []Block               // sections the Writer copies verbatim, in source order
}

// Section identifies one manager section or one of its groups.
type Section struct {
	Manager deps.Manager
	Group   string
}

// Block is a section kept as written: a heading that names no manager, or
// the section of a manager without an adapter. Manager is empty for the
// former.
type Block struct {
	Manager deps.Manager
	Lines   []string
}

// Annotations returns the annotation lines recorded for k.
func (d *Document) Annotations(k deps.Key) []string {
	if d == nil {
		return nil
	}
	return d.Notes[k]
}

func (d *Document) prose(sec Section) []string {
	if d == nil {
		return nil
	}
	return d.Prose[sec]
}

// proseSections returns the sections of m that carry prose.
func (d *Document) proseSections(m deps.Manager) map[Section]bool {
	out := make(map[Section]bool)
	if d == nil {
		return out
	}
	for sec := range d.Prose {
		if sec.Manager == m {
			out[sec] = true
		}
	}
	return out
}

func (d *Document) blocks() []Block {
	if d == nil {
		return nil
	}
	return d.Blocks
}

// Parse reads manifest text and returns the documented inventory in source
// order.
func Parse(r io.Reader) (*deps.Inventory, error) {
	doc, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}
	return doc.Inventory, nil
}

// ParseFile parses the manifest at path.
func ParseFile(path string) (*deps.Inventory, error) {
	doc, err := ParseDocumentFile(path)
	if err != nil {
		return nil, err
	}
	return doc.Inventory, nil
}

// ReadFile returns the raw manifest text at path. A missing file is
// reported as ErrCodeFileNotFound.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "Missing dependency file in: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileSystem, err, "read %s", path)
	}
	return data, nil
}

// ParseDocumentFile parses the manifest at path, keeping the parts the
// Writer preserves.
func ParseDocumentFile(path string) (*Document, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(bytes.NewReader(data))
}

// ParseDocument reads manifest text, keeping the preamble, per-package
// annotations, section prose and unrecognised sections alongside the
// inventory.
func ParseDocument(r io.Reader) (*Document, error) {
	p := parser{
		notes: make(map[deps.Key][]string),
		prose: make(map[Section][]string),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		p.line(strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileSystem, err, "read manifest")
	}

	for sec, lines := range p.prose {
		if lines = trimBlank(lines); len(lines) > 0 {
			p.prose[sec] = lines
		} else {
			delete(p.prose, sec)
		}
	}
	for i := range p.blocks {
		p.blocks[i].Lines = trimBlank(p.blocks[i].Lines)
	}

	return &Document{
		Inventory: p.inv.Inventory(),
		Preamble:  trimBlank(p.preamble),
		Notes:     p.notes,
		Prose:     p.prose,
		Blocks:    p.blocks,
	}, nil
}

type parserState int

const (
	statePreamble parserState = iota // before the first manager section
	stateManager                     // inside a manager section
	stateBlock                       // inside a section copied verbatim
)

type parser struct {
	inv      deps.Builder
	notes    map[deps.Key][]string
	prose    map[Section][]string
	preamble []string
	blocks   []Block

	state   parserState
	level   int // heading level of the open manager section
	manager deps.Manager
	group   string
	fence   string

	// last is the item annotations attach to; nil once the run is broken.
	last *deps.Key
}

func (p *parser) line(s string) {
	if p.fenced(s) {
		p.last = nil
		p.passthrough(s)
		return
	}

	if level, text, ok := heading(s); ok {
		p.last = nil
		p.heading(level, text, s)
		return
	}

	if p.state != stateManager {
		p.passthrough(s)
		return
	}
	p.keep(s)

	if p.last != nil && isAnnotation(s) {
		p.notes[*p.last] = append(p.notes[*p.last], s)
		return
	}
	p.last = nil

	name, version, ok := listItem(s)
	if !ok {
		p.addProse(s)
		return
	}
	pkg := deps.Package{Manager: p.manager, Group: p.group, Name: name, Version: version}
	k := pkg.Key()
	p.inv.Add(pkg)
	// A repeated entry replaces the earlier one, notes included.
	delete(p.notes, k)
	p.last = &k
}

// heading handles an ATX heading. A level-1 or level-2 heading naming a
// manager opens its section, and any deeper heading inside it names a
// group. Other headings at or above the section level close it.
func (p *parser) heading(level int, text, raw string) {
	if p.state == stateManager && level > p.level {
		p.group = strings.ToLower(text)
		p.keep(raw)
		return
	}
	if level <= 2 {
		if m, ok := deps.LookupManager(text); ok {
			p.open(level, m, raw)
			return
		}
		if p.state != statePreamble {
			p.state = stateBlock
			p.blocks = append(p.blocks, Block{Lines: []string{raw}})
			return
		}
	}
	p.passthrough(raw)
}

func (p *parser) open(level int, m deps.Manager, raw string) {
	p.state = stateManager
	p.level = level
	p.manager = m
	p.group = deps.DefaultGroup
	p.inv.Declare(m)
	if !deps.IsSupported(m) {
		p.blocks = append(p.blocks, Block{Manager: m})
	}
	p.keep(raw)
}

// passthrough records s outside any manager section.
func (p *parser) passthrough(s string) {
	switch p.state {
	case statePreamble:
		p.preamble = append(p.preamble, s)
	case stateBlock:
		p.keep(s)
	case stateManager:
		p.keep(s)
		p.addProse(s)
	}
}

// keep appends s to the open verbatim block, if any. Blocks only exist for
// sections that are not regenerated from the installed inventory.
func (p *parser) keep(s string) {
	if p.state == stateManager && deps.IsSupported(p.manager) {
		return
	}
	if n := len(p.blocks); n > 0 && p.state != statePreamble {
		p.blocks[n-1].Lines = append(p.blocks[n-1].Lines, s)
	}
}

// addProse records a non-item line of a supported section. Runs of blank
// lines collapse to one.
func (p *parser) addProse(s string) {
	if !deps.IsSupported(p.manager) {
		return
	}
	sec := Section{Manager: p.manager, Group: p.group}
	lines := p.prose[sec]
	if strings.TrimSpace(s) == "" && (len(lines) == 0 || strings.TrimSpace(lines[len(lines)-1]) == "") {
		return
	}
	p.prose[sec] = append(lines, s)
}

// fenced tracks ``` and ~~~ code fences and reports whether s is part of one.
func (p *parser) fenced(s string) bool {
	t := strings.TrimSpace(s)
	if p.fence != "" {
		if strings.HasPrefix(t, p.fence) {
			p.fence = ""
		}
		return true
	}
	for _, f := range []string{"```", "~~~"} {
		if strings.HasPrefix(t, f) {
			p.fence = f
			return true
		}
	}
	return false
}

// heading parses an ATX heading ("## Title ##") into its level and text.
func heading(s string) (int, string, bool) {
	if indent(s) > 3 {
		return 0, "", false
	}
	t := strings.TrimSpace(s)
	level := 0
	for level < len(t) && t[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	rest := t[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}
	text := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(rest), "#"))
	return level, text, true
}

// listItem parses "- name: version". Bullets "*" and "+" are accepted too.
func listItem(s string) (name, version string, ok bool) {
	if indent(s) > 1 {
		return "", "", false
	}
	t := strings.TrimSpace(s)
	if len(t) < 2 || !strings.ContainsRune("-*+", rune(t[0])) || (t[1] != ' ' && t[1] != '\t') {
		return "", "", false
	}
	t = t[2:]

	sep := -1
	for i := 0; i < len(t); i++ {
		if t[i] == ':' && (i+1 == len(t) || t[i+1] == ' ' || t[i+1] == '\t') {
			sep = i
			break
		}
	}
	if sep < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(t[:sep])
	version = strings.TrimSpace(t[sep+1:])
	if name == "" {
		return "", "", false
	}
	return name, version, true
}

func isAnnotation(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return indent(s) >= 2 || strings.HasPrefix(s, ">")
}

func indent(s string) int {
	n := 0
	for _, c := range s {
		switch c {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}

func trimBlank(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return slices.Clone(lines[start:end])
}
