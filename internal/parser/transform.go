package parser

// WithTransform returns a parser of U that runs p, including its validation,
// and passes the result through fn. Wrap the result with WithValidation to
// check the transformed value.
func WithTransform[T, U any](p Parser[T], fn func(T) (U, error)) Parser[U] {
	return &transformed[T, U]{inner: p, fn: fn}
}

type transformed[T, U any] struct {
	inner Parser[T]
	fn    func(T) (U, error)
}

func (t *transformed[T, U]) Parse(value string) (U, error) {
	return t.apply(t.inner.Parse(value))
}

func (t *transformed[T, U]) Validate(U) error {
	return nil
}

func (t *transformed[T, U]) ParseAndValidate(value string) (U, error) {
	return t.apply(t.inner.ParseAndValidate(value))
}

func (t *transformed[T, U]) apply(v T, err error) (U, error) {
	if err != nil {
		var zero U
		return zero, err
	}
	return t.fn(v)
}
