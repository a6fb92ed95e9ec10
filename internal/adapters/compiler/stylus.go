package compiler

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Stylus)(nil)

var (
	stylusVarDecl    = regexp.MustCompile(`^([$A-Za-z_][\w$-]*)\s*=\s*(.+)$`)
	stylusImportStmt = regexp.MustCompile(`^@import\s*(?:"([^"]+)"|'([^']+)')$`)
	stylusIdent      = regexp.MustCompile(`[$A-Za-z_][\w$-]*`)
)

// Stylus compiles an indentation-based subset of stylus to compressed CSS.
// Selectors own the more deeply indented lines below them; every other line
// is a declaration ("prop value" or "prop: value") or a "name = value" variable.
type Stylus struct {
	dialect *sheetDialect
}

// NewStylus creates a new Stylus compiler.
func NewStylus() *Stylus {
	return &Stylus{dialect: &sheetDialect{
		parse: parseStylus,
		follow: func(dir, ref string) (string, bool) {
			if filepath.Ext(ref) != "" {
				return "", false
			}
			return filepath.Join(dir, filepath.FromSlash(ref)) + ".styl", true
		},
		substitute: substituteStylus,
		importStmt: quotedImport,
	}}
}

// Compile implements ports.Compiler.
func (s *Stylus) Compile(_ context.Context, sourcePath string, content []byte) ([]byte, error) {
	content, err := sourceContent(sourcePath, content)
	if err != nil {
		return nil, err
	}
	return compileSheet(s.dialect, sourcePath, content)
}

type stylusLine struct {
	indent int
	text   string
}

func parseStylus(content string) ([]*node, error) {
	var lines []stylusLine
	for raw := range strings.SplitSeq(content, "\n") {
		raw = strings.TrimRight(raw, " \t\r")
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lines = append(lines, stylusLine{
			indent: len(raw) - len(strings.TrimLeft(raw, " \t")),
			text:   strings.TrimSuffix(text, ";"),
		})
	}

	type frame struct {
		indent int
		n      *node
	}
	root := &node{kind: ruleNode}
	stack := []frame{{indent: -1, n: root}}

	for i, line := range lines {
		for line.indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}

		hasChildren := i+1 < len(lines) && lines[i+1].indent > line.indent
		n, err := stylusLineNode(line.text, hasChildren)
		if err != nil {
			return nil, err
		}

		parent := stack[len(stack)-1].n
		parent.children = append(parent.children, n)
		if hasChildren {
			stack = append(stack, frame{indent: line.indent, n: n})
		}
	}

	return root.children, nil
}

func stylusLineNode(text string, hasChildren bool) (*node, error) {
	if hasChildren {
		if strings.HasPrefix(text, "@") {
			return &node{kind: atBlockNode, name: compact(text)}, nil
		}
		return &node{kind: ruleNode, name: text}, nil
	}

	if m := stylusImportStmt.FindStringSubmatch(text); m != nil {
		return &node{kind: importNode, name: m[1] + m[2]}, nil
	}
	if m := stylusVarDecl.FindStringSubmatch(text); m != nil {
		return &node{kind: varNode, name: m[1], value: compact(m[2])}, nil
	}
	if strings.HasPrefix(text, "@") {
		return &node{kind: atStmtNode, name: text}, nil
	}

	prop, value := splitStylusDecl(text)
	if prop == "" || value == "" {
		return nil, zerr.With(domain.ErrUnsupportedSyntax, "statement", text)
	}
	return &node{kind: declNode, name: prop, value: value}, nil
}

// splitStylusDecl accepts "prop value", "prop: value" and "prop:value".
func splitStylusDecl(text string) (string, string) {
	sep := strings.IndexAny(text, " \t")
	if colon := strings.IndexByte(text, ':'); colon > 0 && (sep < 0 || colon < sep) {
		return text[:colon], strings.TrimSpace(text[colon+1:])
	}
	if sep < 0 {
		return text, ""
	}
	return text[:sep], strings.TrimSpace(text[sep+1:])
}

// substituteStylus replaces identifiers naming a variable. Unknown identifiers
// are plain keywords and stay as written.
func substituteStylus(value string, sc *scope, depth int) (string, error) {
	if depth > maxSubstitutionDepth {
		return "", zerr.With(domain.ErrCycleDetected, "variable", value)
	}

	var b strings.Builder
	last := 0
	for _, m := range stylusIdent.FindAllStringIndex(value, -1) {
		resolved, ok := sc.lookup(value[m[0]:m[1]])
		if !ok {
			continue
		}
		expanded, err := substituteStylus(resolved, sc, depth+1)
		if err != nil {
			return "", err
		}
		b.WriteString(value[last:m[0]])
		b.WriteString(expanded)
		last = m[1]
	}
	b.WriteString(value[last:])
	return b.String(), nil
}
