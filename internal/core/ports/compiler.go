package ports

import "context"

// Compiler turns a source file into its compiled output.
//
// Implementations must block until the final result is available. A compiler
// built around callbacks has to be wrapped so that Compile returns only after
// the callback fired.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile compiles the source at sourcePath. content is the root file's raw
	// bytes when a scanner already read them, nil otherwise.
	Compile(ctx context.Context, sourcePath string, content []byte) ([]byte, error)
}

// Dialect bundles the strategies used for one family of source files.
type Dialect struct {
	// Name identifies the dialect, e.g. "less".
	Name string
	// Scanner discovers dependencies. A nil Scanner records only the source itself.
	Scanner Scanner
	// Compiler produces the output bytes.
	Compiler Compiler
	// OutputExt is the extension of compiled files. Empty keeps the source extension.
	OutputExt string
}
