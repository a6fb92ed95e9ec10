package compiler

import (
	"context"
	"sync"

	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/zerr"
)

// CallbackFunc is a compiler that reports its result through done, possibly
// after it has returned.
type CallbackFunc func(ctx context.Context, sourcePath string, content []byte, done func([]byte, error))

type callbackCompiler struct {
	fn CallbackFunc
}

// FromCallback adapts a callback-style compiler to the blocking ports.Compiler
// contract. Compile returns only once done has been called. Later calls to
// done are ignored. If ctx ends first, Compile fails with domain.ErrCallbackNotInvoked.
func FromCallback(fn CallbackFunc) ports.Compiler {
	return &callbackCompiler{fn: fn}
}

type callbackResult struct {
	out []byte
	err error
}

func (c *callbackCompiler) Compile(ctx context.Context, sourcePath string, content []byte) ([]byte, error) {
	results := make(chan callbackResult, 1)
	var once sync.Once

	c.fn(ctx, sourcePath, content, func(out []byte, err error) {
		once.Do(func() {
			results <- callbackResult{out: out, err: err}
		})
	})

	select {
	case res := <-results:
		return res.out, res.err
	case <-ctx.Done():
		return nil, zerr.With(zerr.Wrap(ctx.Err(), domain.ErrCallbackNotInvoked.Error()), "path", sourcePath)
	}
}
