package scope

import "context"

// ExecuteFunc is the call shape the middleware wraps: one input, one
// output, one error.
type ExecuteFunc func(ctx context.Context, input any) (any, error)

// Middleware wraps function calls in an operation scope: parameters are
// captured as tags on the way in, the return value or error on the way
// out. A failure to begin the scope never breaks the wrapped call.
//
// Contract:
// - Concurrency: Wrap returns a function safe for concurrent use.
// - Errors: errors from the wrapped function are recorded and propagated
//   unchanged.
type Middleware struct {
	factory *Factory
}

// NewMiddleware creates a middleware over the given factory.
func NewMiddleware(f *Factory) *Middleware {
	return &Middleware{factory: f}
}

// Wrap instruments fn under the given operation name.
func (m *Middleware) Wrap(name string, fn ExecuteFunc, opts ...BeginOption) ExecuteFunc {
	return func(ctx context.Context, input any) (any, error) {
		ctx, sc, err := m.factory.Begin(ctx, name, opts...)
		if err != nil {
			return fn(ctx, input)
		}
		defer sc.End()

		if c := m.factory.capturer; c != nil {
			if params, perr := c.Parameters([]string{"input"}, []any{input}); perr == nil {
				for k, v := range params {
					sc.WithTag(k, v)
				}
			}
		}

		out, err := fn(ctx, input)
		if err != nil {
			sc.Fail(err)
			return out, err
		}
		sc.Succeed().WithResult(out)
		return out, nil
	}
}
