package compiler

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxSubstitutionDepth bounds variable expansion so self-referencing variables terminate.
const maxSubstitutionDepth = 32

type nodeKind uint8

const (
	declNode nodeKind = iota
	ruleNode
	atBlockNode
	atStmtNode
	varNode
	importNode
)

// node is one element of a parsed stylesheet. name holds the property,
// selector, at-rule prelude, variable name or import reference depending on kind.
type node struct {
	kind     nodeKind
	name     string
	value    string
	children []*node
}

// sheetDialect holds the parts of stylesheet evaluation that differ between dialects.
type sheetDialect struct {
	parse func(content string) ([]*node, error)
	// follow maps an import reference to the file to inline. It reports false
	// for imports that stay in the output as plain CSS imports.
	follow func(dir, ref string) (string, bool)
	// substitute expands variable references in value.
	substitute func(value string, sc *scope, depth int) (string, error)
	// importStmt renders an import that is kept in the output.
	importStmt func(ref string) string
}

// compileSheet parses content, inlines imports, applies variables and writes compressed CSS.
func compileSheet(d *sheetDialect, sourcePath string, content []byte) ([]byte, error) {
	nodes, err := d.parse(stripComments(string(content)))
	if err != nil {
		return nil, zerr.With(err, "path", sourcePath)
	}

	nodes, err = d.expandImports(nodes, sourcePath, []string{sourcePath})
	if err != nil {
		return nil, err
	}

	nodes, err = d.resolve(nodes, nil)
	if err != nil {
		return nil, zerr.With(err, "path", sourcePath)
	}

	return []byte(writeCSS(nodes)), nil
}

func (d *sheetDialect) expandImports(nodes []*node, path string, stack []string) ([]*node, error) {
	out := make([]*node, 0, len(nodes))
	for _, n := range nodes {
		switch n.kind {
		case importNode:
			target, ok := d.follow(filepath.Dir(path), n.name)
			if !ok {
				out = append(out, &node{kind: atStmtNode, name: d.importStmt(n.name)})
				continue
			}
			if slices.Contains(stack, target) {
				return nil, zerr.With(zerr.With(domain.ErrCycleDetected, "import", n.name), "path", path)
			}
			imported, err := d.load(target, append(stack, target))
			if err != nil {
				return nil, zerr.With(err, "from", path)
			}
			out = append(out, imported...)
		case ruleNode, atBlockNode:
			children, err := d.expandImports(n.children, path, stack)
			if err != nil {
				return nil, err
			}
			out = append(out, &node{kind: n.kind, name: n.name, children: children})
		default:
			out = append(out, n)
		}
	}
	return out, nil
}

func (d *sheetDialect) load(path string, stack []string) ([]*node, error) {
	content, err := os.ReadFile(path) //nolint:gosec // import targets are relative to the source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(domain.ErrImportNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", path)
	}

	nodes, err := d.parse(stripComments(string(content)))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return d.expandImports(nodes, path, stack)
}

// resolve removes variable definitions and expands references. Every block
// sees all variables defined directly in it, wherever the definition appears.
func (d *sheetDialect) resolve(nodes []*node, parent *scope) ([]*node, error) {
	sc := &scope{vars: make(map[string]string), parent: parent}
	for _, n := range nodes {
		if n.kind == varNode {
			sc.vars[n.name] = n.value
		}
	}

	out := make([]*node, 0, len(nodes))
	for _, n := range nodes {
		switch n.kind {
		case varNode:
			continue
		case declNode:
			value, err := d.substitute(n.value, sc, 0)
			if err != nil {
				return nil, err
			}
			out = append(out, &node{kind: declNode, name: n.name, value: value})
		case atBlockNode:
			prelude, err := d.substitutePrelude(n.name, sc)
			if err != nil {
				return nil, err
			}
			children, err := d.resolve(n.children, sc)
			if err != nil {
				return nil, err
			}
			out = append(out, &node{kind: atBlockNode, name: prelude, children: children})
		case ruleNode:
			children, err := d.resolve(n.children, sc)
			if err != nil {
				return nil, err
			}
			out = append(out, &node{kind: ruleNode, name: n.name, children: children})
		default:
			out = append(out, n)
		}
	}
	return out, nil
}

// substitutePrelude expands variables after the at-keyword, e.g. in media queries.
func (d *sheetDialect) substitutePrelude(prelude string, sc *scope) (string, error) {
	keyword, rest, found := strings.Cut(prelude, " ")
	if !found {
		return prelude, nil
	}
	rest, err := d.substitute(rest, sc, 0)
	if err != nil {
		return "", err
	}
	return keyword + " " + rest, nil
}

type scope struct {
	vars   map[string]string
	parent *scope
}

func (s *scope) lookup(name string) (string, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return "", false
}

// stripComments removes block comments and line comments outside strings and
// parentheses. Newlines are kept so indentation-based parsing still works.
func stripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	var quote byte
	depth := 0
	for i := 0; i < len(src); i++ {
		c := src[i]

		if quote != 0 {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				i++
				b.WriteByte(src[i])
			} else if c == quote {
				quote = 0
			}
			continue
		}

		switch {
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				end = len(src) - i - 2
			}
			b.WriteString(strings.Repeat("\n", strings.Count(src[i:i+2+end], "\n")))
			i += end + 3
			continue
		case c == '/' && i+1 < len(src) && src[i+1] == '/' && depth == 0 && (i == 0 || startsComment(src[i-1])):
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// startsComment reports whether a line comment may follow c. Requiring a
// separator keeps protocol-relative URLs such as //cdn intact.
func startsComment(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', ';', '{', '}':
		return true
	}
	return false
}

// compact collapses runs of whitespace into single spaces.
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func splitSelectors(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = compact(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// combineSelectors nests children under parents. A child containing & has it
// replaced by the parent; otherwise the child becomes a descendant.
func combineSelectors(parents, children []string) []string {
	if len(parents) == 0 {
		return children
	}
	out := make([]string, 0, len(parents)*len(children))
	for _, p := range parents {
		for _, c := range children {
			if strings.Contains(c, "&") {
				out = append(out, strings.ReplaceAll(c, "&", p))
			} else {
				out = append(out, p+" "+c)
			}
		}
	}
	return out
}

// cssItem is a flattened rule or at-rule block ready to be written.
type cssItem struct {
	selector string
	decls    []string
	prelude  string
	children []cssItem
}

func flatten(nodes []*node, parents []string) []cssItem {
	var decls []string
	var items []cssItem

	for _, n := range nodes {
		switch n.kind {
		case declNode:
			decls = append(decls, compact(n.name)+":"+compact(n.value))
		case ruleNode:
			selectors := combineSelectors(parents, splitSelectors(n.name))
			items = append(items, flatten(n.children, selectors)...)
		case atBlockNode:
			children := flatten(n.children, parents)
			if len(children) > 0 {
				items = append(items, cssItem{prelude: compact(n.name), children: children})
			}
		}
	}

	if len(decls) == 0 {
		return items
	}
	own := cssItem{selector: strings.Join(parents, ","), decls: decls}
	return append([]cssItem{own}, items...)
}

func collectStatements(nodes []*node, out []string) []string {
	for _, n := range nodes {
		switch n.kind {
		case atStmtNode:
			out = append(out, compact(n.name))
		case ruleNode, atBlockNode:
			out = collectStatements(n.children, out)
		}
	}
	return out
}

// writeCSS renders nodes in compressed form: statements first, then one
// sel{prop:value;prop:value} per rule. Declarations without a selector are
// written bare, which is what at-rules such as @font-face need.
func writeCSS(nodes []*node) string {
	var b strings.Builder
	for _, stmt := range collectStatements(nodes, nil) {
		b.WriteString(stmt)
		b.WriteByte(';')
	}
	items := flatten(nodes, nil)
	if len(items) > 0 && items[0].selector == "" && items[0].prelude == "" {
		// Declarations outside any rule have nothing to apply to.
		items = items[1:]
	}
	writeItems(&b, items)
	return b.String()
}

func writeItems(b *strings.Builder, items []cssItem) {
	for _, item := range items {
		if item.prelude != "" {
			b.WriteString(item.prelude)
			b.WriteByte('{')
			writeItems(b, item.children)
			b.WriteByte('}')
			continue
		}
		if item.selector == "" {
			b.WriteString(strings.Join(item.decls, ";"))
			continue
		}
		b.WriteString(item.selector)
		b.WriteByte('{')
		b.WriteString(strings.Join(item.decls, ";"))
		b.WriteByte('}')
	}
}
