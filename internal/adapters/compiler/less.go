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

var _ ports.Compiler = (*Less)(nil)

var (
	lessVarDecl    = regexp.MustCompile(`(?s)^@([\w-]+)\s*:\s*(.*)$`)
	lessImportStmt = regexp.MustCompile(`^@import\s*(?:"([^"]+)"|'([^']+)')$`)
	lessVarRef     = regexp.MustCompile(`@([\w-]+)`)
)

// Less compiles a subset of less to compressed CSS: .less imports are inlined,
// @variables are substituted and nested rules are flattened.
type Less struct {
	dialect *sheetDialect
}

// NewLess creates a new Less compiler.
func NewLess() *Less {
	return &Less{dialect: &sheetDialect{
		parse: parseLess,
		follow: func(dir, ref string) (string, bool) {
			if filepath.Ext(ref) != ".less" {
				return "", false
			}
			return filepath.Join(dir, filepath.FromSlash(ref)), true
		},
		substitute: substituteLess,
		importStmt: quotedImport,
	}}
}

// Compile implements ports.Compiler.
func (l *Less) Compile(_ context.Context, sourcePath string, content []byte) ([]byte, error) {
	content, err := sourceContent(sourcePath, content)
	if err != nil {
		return nil, err
	}
	return compileSheet(l.dialect, sourcePath, content)
}

func parseLess(content string) ([]*node, error) {
	root := &node{kind: ruleNode}
	stack := []*node{root}
	var buf strings.Builder

	flush := func() error {
		stmt := strings.TrimSpace(buf.String())
		buf.Reset()
		if stmt == "" {
			return nil
		}
		n, err := lessStatement(stmt)
		if err != nil {
			return err
		}
		top := stack[len(stack)-1]
		top.children = append(top.children, n)
		return nil
	}

	var quote byte
	depth := 0
	for i := 0; i < len(content); i++ {
		c := content[i]

		if quote != 0 {
			buf.WriteByte(c)
			if c == '\\' && i+1 < len(content) {
				i++
				buf.WriteByte(content[i])
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
		case c == ';' && depth == 0:
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		case c == '{' && depth == 0:
			prelude := compact(buf.String())
			buf.Reset()
			if prelude == "" {
				return nil, zerr.With(domain.ErrUnsupportedSyntax, "statement", "{")
			}
			kind := ruleNode
			if strings.HasPrefix(prelude, "@") {
				kind = atBlockNode
			}
			n := &node{kind: kind, name: prelude}
			top := stack[len(stack)-1]
			top.children = append(top.children, n)
			stack = append(stack, n)
			continue
		case c == '}' && depth == 0:
			if err := flush(); err != nil {
				return nil, err
			}
			if len(stack) == 1 {
				return nil, zerr.With(domain.ErrUnbalancedBlock, "offset", i)
			}
			stack = stack[:len(stack)-1]
			continue
		}
		buf.WriteByte(c)
	}

	if len(stack) > 1 {
		return nil, zerr.With(domain.ErrUnbalancedBlock, "block", stack[len(stack)-1].name)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return root.children, nil
}

func lessStatement(stmt string) (*node, error) {
	if m := lessImportStmt.FindStringSubmatch(stmt); m != nil {
		return &node{kind: importNode, name: m[1] + m[2]}, nil
	}
	if m := lessVarDecl.FindStringSubmatch(stmt); m != nil {
		return &node{kind: varNode, name: m[1], value: compact(m[2])}, nil
	}
	if strings.HasPrefix(stmt, "@") {
		return &node{kind: atStmtNode, name: stmt}, nil
	}

	prop, value, ok := strings.Cut(stmt, ":")
	if !ok || strings.TrimSpace(prop) == "" {
		return nil, zerr.With(domain.ErrUnsupportedSyntax, "statement", stmt)
	}
	return &node{kind: declNode, name: strings.TrimSpace(prop), value: strings.TrimSpace(value)}, nil
}

func substituteLess(value string, sc *scope, depth int) (string, error) {
	matches := lessVarRef.FindAllStringSubmatchIndex(value, -1)
	if len(matches) == 0 {
		return value, nil
	}
	if depth > maxSubstitutionDepth {
		return "", zerr.With(domain.ErrCycleDetected, "variable", value)
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		name := value[m[2]:m[3]]
		resolved, ok := sc.lookup(name)
		if !ok {
			return "", zerr.With(domain.ErrUndefinedVariable, "variable", "@"+name)
		}
		expanded, err := substituteLess(resolved, sc, depth+1)
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

func quotedImport(ref string) string {
	return `@import "` + ref + `"`
}
