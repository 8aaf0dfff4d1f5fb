package request

import "maps"

// Builder accumulates request settings. It is a value type: every With*
// method returns a new Builder and leaves the receiver untouched, so a
// partially configured Builder can be shared as a template.
type Builder struct {
	opts Options
}

func NewBuilder(path string) Builder {
	return Builder{opts: Options{Path: path, Method: GET}}
}

func (b Builder) WithPath(path string) Builder {
	b.opts.Path = path
	return b
}

func (b Builder) WithMethod(m Method) Builder {
	b.opts.Method = m
	return b
}

// WithQueryParameters merges params into the query; later keys win.
func (b Builder) WithQueryParameters(params map[string]string) Builder {
	q := make(map[string]string, len(b.opts.Query)+len(params))
	maps.Copy(q, b.opts.Query)
	maps.Copy(q, params)
	b.opts.Query = q
	return b
}

// WithBodyParameters merges params into the body; later keys win.
func (b Builder) WithBodyParameters(params map[string]any) Builder {
	body := make(map[string]any, len(b.opts.Body)+len(params))
	maps.Copy(body, b.opts.Body)
	maps.Copy(body, params)
	b.opts.Body = body
	return b
}

func (b Builder) Build() (Descriptor, error) {
	return New(b.opts)
}

// MustBuild is like Build but panics on invalid input. Use it only with
// literal, known-good URLs.
func (b Builder) MustBuild() Descriptor {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}
