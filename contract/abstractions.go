package contract

// The interfaces below describe the abstraction families the fixture corpus covers.
// Loaded objects are checked against these by the conformance tests; the harness
// itself never calls the mathematical operations.

// Setoid is a set with a computable equality.
type Setoid interface {
	Contains(x any) bool
	Equal(a, b any) bool
}

// FiniteSet is a Setoid whose elements can be enumerated.
type FiniteSet interface {
	Setoid
	Size() int
	Elements() []any
}

// FiniteMap is a function between two finite sets.
type FiniteMap interface {
	Source() FiniteSet
	Target() FiniteSet
	Apply(a any) any
}

// FiniteRelation is a relation between two finite sets.
type FiniteRelation interface {
	Source() FiniteSet
	Target() FiniteSet
	Holds(a, b any) bool
}

// FinitePoset is a finite set with a partial order.
type FinitePoset interface {
	Carrier() FiniteSet
	Leq(a, b any) bool
}

// FiniteSemigroup is a finite set with an associative composition.
type FiniteSemigroup interface {
	Carrier() FiniteSet
	Compose(a, b any) any
}

// FiniteMonoid is a semigroup with an identity element.
type FiniteMonoid interface {
	FiniteSemigroup
	Identity() any
}

// FiniteGroup is a monoid where every element has an inverse.
type FiniteGroup interface {
	FiniteMonoid
	Inverse(a any) any
}

// FiniteCategory has finite sets of objects and of morphisms between them.
type FiniteCategory interface {
	Objects() FiniteSet
	Hom(a, b any) FiniteSet
	Identity(ob any) any
	Compose(f, g any) any
}

// FiniteNaturalTransformation maps the components of one functor to another.
type FiniteNaturalTransformation interface {
	Component(ob any) any
}

// FiniteDP is a monotone design problem between a functionality poset and a
// resource poset.
type FiniteDP interface {
	Functionality() FinitePoset
	Resources() FinitePoset
	Feasible(f, r any) bool
}
