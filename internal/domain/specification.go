package domain

// Specification is a composable predicate over a domain object with a
// human-readable failure reason. WhyNot is only consulted when
// IsSatisfiedBy returns false, so reasons are computed lazily.
type Specification[T any] interface {
	IsSatisfiedBy(candidate T) bool
	WhyNot(candidate T) string
}

// SpecFunc builds a Specification from a predicate and a static reason.
func SpecFunc[T any](reason string, predicate func(T) bool) Specification[T] {
	return funcSpec[T]{reason: reason, predicate: predicate}
}

type funcSpec[T any] struct {
	reason    string
	predicate func(T) bool
}

func (s funcSpec[T]) IsSatisfiedBy(candidate T) bool { return s.predicate(candidate) }
func (s funcSpec[T]) WhyNot(T) string                { return s.reason }

// And combines two specifications; both must hold. The failure reason joins
// every failing operand's reason with "AND".
func And[T any](left, right Specification[T]) Specification[T] {
	return andSpec[T]{left: left, right: right}
}

type andSpec[T any] struct {
	left, right Specification[T]
}

func (s andSpec[T]) IsSatisfiedBy(candidate T) bool {
	return s.left.IsSatisfiedBy(candidate) && s.right.IsSatisfiedBy(candidate)
}

func (s andSpec[T]) WhyNot(candidate T) string {
	leftOK := s.left.IsSatisfiedBy(candidate)
	rightOK := s.right.IsSatisfiedBy(candidate)
	switch {
	case !leftOK && !rightOK:
		return s.left.WhyNot(candidate) + " AND " + s.right.WhyNot(candidate)
	case !leftOK:
		return s.left.WhyNot(candidate)
	case !rightOK:
		return s.right.WhyNot(candidate)
	}
	return ""
}

// Or combines two specifications; either may hold. The failure reason joins
// both reasons with "OR" and is only produced when neither side passes.
func Or[T any](left, right Specification[T]) Specification[T] {
	return orSpec[T]{left: left, right: right}
}

type orSpec[T any] struct {
	left, right Specification[T]
}

func (s orSpec[T]) IsSatisfiedBy(candidate T) bool {
	return s.left.IsSatisfiedBy(candidate) || s.right.IsSatisfiedBy(candidate)
}

func (s orSpec[T]) WhyNot(candidate T) string {
	if s.IsSatisfiedBy(candidate) {
		return ""
	}
	return s.left.WhyNot(candidate) + " OR " + s.right.WhyNot(candidate)
}

// Not inverts a specification. The failure reason wraps the inner reason.
func Not[T any](inner Specification[T]) Specification[T] {
	return notSpec[T]{inner: inner}
}

type notSpec[T any] struct {
	inner Specification[T]
}

func (s notSpec[T]) IsSatisfiedBy(candidate T) bool {
	return !s.inner.IsSatisfiedBy(candidate)
}

func (s notSpec[T]) WhyNot(candidate T) string {
	return "NOT (" + s.inner.WhyNot(candidate) + ")"
}
