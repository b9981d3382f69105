package solver

import "github.com/glu-lang/glu/internal/types"

// ConversionResult records how a Conversion/ArgumentConversion constraint
// was satisfied.
type ConversionResult struct {
	OK       bool
	Implicit bool // false means the conversion requires an explicit cast
	NeedsCast bool // true when a synthetic CastExpr must be inserted (non-identical concrete types)
}

func fail() ConversionResult  { return ConversionResult{} }
func identity() ConversionResult { return ConversionResult{OK: true, Implicit: true, NeedsCast: false} }
func implicitCast() ConversionResult { return ConversionResult{OK: true, Implicit: true, NeedsCast: true} }
func explicitOnly() ConversionResult { return ConversionResult{OK: true, Implicit: false, NeedsCast: true} }

// Convert implements the conversion visitor from spec.md §4.3: a visitor
// over the source type with the target and an isExplicit flag. Whenever
// it succeeds with NeedsCast set, the solver records a synthetic CastExpr
// against the originating expression (spec.md §4.3 "Conversion").
//
// Involving a TypeVariable on either side always succeeds by unifying;
// callers must call Unify separately in that case (Convert only reports
// "this shape is convertible", not the substitution).
func Convert(sub Substitution, from, to types.Type, isExplicit bool) ConversionResult {
	from = types.Unwrap(Apply(sub, from))
	to = types.Unwrap(Apply(sub, to))

	if _, ok := from.(*types.TypeVariable); ok {
		return identity()
	}
	if _, ok := to.(*types.TypeVariable); ok {
		return identity()
	}

	if from.Equals(to) {
		return identity()
	}

	switch f := from.(type) {
	case *types.Int:
		return convertFromInt(f, to, isExplicit)
	case *types.Float:
		return convertFromFloat(f, to, isExplicit)
	case *types.StaticArray:
		if t, ok := to.(*types.Pointer); ok && f.Elem.Equals(t.Pointee) {
			return implicitCast() // array-to-pointer decay
		}
		return fail()
	case *types.Pointer:
		return convertFromPointer(f, to, isExplicit)
	case *types.Enum:
		if _, ok := to.(*types.Int); ok {
			if isExplicit {
				return explicitOnly()
			}
			return fail()
		}
		return fail()
	case *types.Char:
		return convertFromChar(to, isExplicit)
	}

	if _, ok := to.(*types.Enum); ok {
		if _, fromInt := from.(*types.Int); fromInt && isExplicit {
			return explicitOnly()
		}
	}
	return fail()
}

func convertFromInt(f *types.Int, to types.Type, isExplicit bool) ConversionResult {
	switch t := to.(type) {
	case *types.Int:
		switch {
		case t.BitWidth > f.BitWidth:
			return implicitCast() // widening
		case t.BitWidth < f.BitWidth:
			if isExplicit {
				return explicitOnly()
			}
			return fail()
		default: // equal width, different signedness: bitcast-only
			if f.Signed != t.Signed {
				return implicitCast()
			}
			return identity()
		}
	case *types.Pointer:
		if isExplicit {
			return explicitOnly()
		}
		return fail()
	case *types.Char:
		// Int <-> Char: explicit only, extend/truncate/bitcast as appropriate.
		if isExplicit {
			return explicitOnly()
		}
		return fail()
	}
	return fail()
}

func convertFromFloat(f *types.Float, to types.Type, isExplicit bool) ConversionResult {
	t, ok := to.(*types.Float)
	if !ok {
		return fail()
	}
	switch {
	case t.BitWidth > f.BitWidth:
		return implicitCast()
	case t.BitWidth < f.BitWidth:
		if isExplicit {
			return explicitOnly()
		}
		return fail()
	default:
		return identity()
	}
}

func convertFromPointer(f *types.Pointer, to types.Type, isExplicit bool) ConversionResult {
	switch t := to.(type) {
	case *types.Pointer:
		if f.Pointee.Equals(t.Pointee) {
			return implicitCast()
		}
		if isExplicit {
			return explicitOnly()
		}
		return fail()
	case *types.Int:
		if isExplicit {
			return explicitOnly()
		}
		return fail()
	}
	return fail()
}

func convertFromChar(to types.Type, isExplicit bool) ConversionResult {
	if _, ok := to.(*types.Int); ok && isExplicit {
		return explicitOnly()
	}
	return fail()
}
