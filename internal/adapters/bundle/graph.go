// Package bundle resolves Sprockets-style require directives into a link-ordered chain.
package bundle

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultExt is appended to require references without an extension.
const DefaultExt = ".js"

var directivePattern = regexp.MustCompile(`^(?://|#)=\s*require\s+(\S+)\s*$`)

// Graph reads require directives from the header of bundle sources.
// It keeps no state between calls, so every call sees the files as they are now.
type Graph struct{}

// NewGraph creates a new Graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Chain returns the files path transitively requires, in link order:
// every file appears after all files it requires. path itself is not included.
func (g *Graph) Chain(path string) ([]string, error) {
	w, err := g.walk(path)
	if err != nil {
		return nil, err
	}
	return w.order[:len(w.order)-1], nil
}

// Concatenation returns the chain followed by path, with directive lines removed.
// Each part ends with a newline.
func (g *Graph) Concatenation(path string) ([]byte, error) {
	w, err := g.walk(path)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, member := range w.order {
		body := stripDirectives(w.files[member].content)
		buf.Write(body)
		if len(body) > 0 && body[len(body)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

type sourceFile struct {
	content  []byte
	requires []string
}

type walkState struct {
	files   map[string]sourceFile
	visited map[string]int // 0: unvisited, 1: visiting, 2: visited
	path    []string
	order   []string
}

func (g *Graph) walk(root string) (*walkState, error) {
	w := &walkState{
		files:   make(map[string]sourceFile),
		visited: make(map[string]int),
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", root)
	}

	if err := w.visit(abs); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *walkState) visit(u string) error {
	w.visited[u] = 1
	w.path = append(w.path, u)

	file, err := readSource(u)
	if err != nil {
		return err
	}
	w.files[u] = file

	for _, ref := range file.requires {
		dep := resolveRef(u, ref)
		if w.visited[dep] == 1 {
			return w.buildCycleError(dep)
		}
		if w.visited[dep] == 2 {
			continue
		}
		if _, err := os.Stat(dep); err != nil {
			return zerr.With(zerr.With(domain.ErrRequireNotFound, "require", ref), "from", u)
		}
		if err := w.visit(dep); err != nil {
			return err
		}
	}

	w.visited[u] = 2
	w.path = w.path[:len(w.path)-1]
	w.order = append(w.order, u)
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (w *walkState) buildCycleError(dep string) error {
	startIdx := 0
	for i, node := range w.path {
		if node == dep {
			startIdx = i
			break
		}
	}

	var cyclePath strings.Builder
	for _, node := range w.path[startIdx:] {
		cyclePath.WriteString(filepath.Base(node))
		cyclePath.WriteString(" -> ")
	}
	cyclePath.WriteString(filepath.Base(dep))
	return zerr.With(domain.ErrCycleDetected, "cycle", cyclePath.String())
}

func readSource(path string) (sourceFile, error) {
	content, err := os.ReadFile(path) //nolint:gosec // paths come from the search path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sourceFile{}, zerr.With(domain.ErrRequireNotFound, "path", path)
		}
		return sourceFile{}, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", path)
	}
	return sourceFile{content: content, requires: parseRequires(content)}, nil
}

// parseRequires reads directives from the leading comment block. Scanning stops
// at the first line that is neither blank nor a comment.
func parseRequires(content []byte) []string {
	var refs []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !isComment(line) {
			break
		}
		if m := directivePattern.FindStringSubmatch(line); m != nil {
			refs = append(refs, m[1])
		}
	}
	return refs
}

func stripDirectives(content []byte) []byte {
	lines := bytes.SplitAfter(content, []byte("\n"))
	out := make([]byte, 0, len(content))
	inHeader := true
	for _, line := range lines {
		trimmed := strings.TrimSpace(string(line))
		if inHeader && trimmed != "" && !isComment(trimmed) {
			inHeader = false
		}
		if inHeader && directivePattern.MatchString(trimmed) {
			continue
		}
		out = append(out, line...)
	}
	return out
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#")
}

func resolveRef(from, ref string) string {
	if filepath.Ext(ref) == "" {
		ref += DefaultExt
	}
	return filepath.Join(filepath.Dir(from), filepath.FromSlash(ref))
}
