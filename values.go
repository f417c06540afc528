// values.go — the runtime value model.
//
// Values form a closed tagged union of six kinds: int, double, bool, pitch,
// sound, and array. The tag determines the dynamic type of Value.Data:
//
//	VTInt    int64
//	VTDouble float64
//	VTBool   bool
//	VTPitch  string            (note name + octave digit, e.g. "C2")
//	VTSound  SoundData
//	VTArray  []Value           (never empty, homogeneous by Classify)
//
// Classify maps a value to its type-name string; DefaultValue produces the
// zero value for each of the ten declarable type names. Both are used
// pervasively by the evaluator for dispatch and error messages.
//
// Arrays carry two construction-time invariants: they are never empty, and
// every element reports the same Classify tag as the first (nested arrays
// compare as "array", not recursively). The invariants are enforced once,
// where an array value is built, and not re-checked on access.
package lullabyte

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTInt ValueTag = iota // int64
	VTDouble              // float64
	VTBool                // bool
	VTPitch               // string, e.g. "C2"
	VTSound               // SoundData
	VTArray               // []Value

	// vtAlias is an internal-only kind: a deferred array-slot reference
	// bound to a loop variable. It never escapes an environment frame; every
	// read site resolves it before the value is used or stored. See exec.go.
	vtAlias ValueTag = -1
)

// Value is the universal runtime carrier used by the evaluator.
type Value struct {
	Tag  ValueTag
	Data any
}

// SoundData is the payload of a VTSound value: an ordered pitch-name
// sequence, a duration, and an amplitude. Sounds are immutable; the
// set* built-ins return fresh SoundData rather than editing in place.
type SoundData struct {
	Pitches   []string
	Duration  float64
	Amplitude int64
}

// aliasRef is the payload of a vtAlias value.
type aliasRef struct {
	Array string
	Index int64
}

// Constructors.
func Int(n int64) Value       { return Value{Tag: VTInt, Data: n} }
func Double(f float64) Value  { return Value{Tag: VTDouble, Data: f} }
func Bool(b bool) Value       { return Value{Tag: VTBool, Data: b} }
func Pitch(name string) Value { return Value{Tag: VTPitch, Data: name} }
func Arr(xs []Value) Value    { return Value{Tag: VTArray, Data: xs} }

// Sound builds a VTSound value. The pitch slice is copied so the value
// cannot be mutated through the caller's slice.
func Sound(pitches []string, duration float64, amplitude int64) Value {
	ps := make([]string, len(pitches))
	copy(ps, pitches)
	return Value{Tag: VTSound, Data: SoundData{Pitches: ps, Duration: duration, Amplitude: amplitude}}
}

func aliasVal(array string, index int64) Value {
	return Value{Tag: vtAlias, Data: aliasRef{Array: array, Index: index}}
}

// Classify maps a value to one of the six type-name tags: "int", "double",
// "bool", "pitch", "sound", "array". The fallback arm is unreachable for
// values built through the constructors above.
func Classify(v Value) string {
	switch v.Tag {
	case VTInt:
		return "int"
	case VTDouble:
		return "double"
	case VTBool:
		return "bool"
	case VTPitch:
		return "pitch"
	case VTSound:
		return "sound"
	case VTArray:
		return "array"
	default:
		return "unmatched type"
	}
}

// elemType reports the element type of an array value: the Classify tag of
// its first element. Valid by the non-empty invariant.
func elemType(v Value) string {
	return Classify(v.Data.([]Value)[0])
}

// declaredTypes lists every declarable type name, scalar and array.
var declaredTypes = map[string]bool{
	"int": true, "double": true, "bool": true, "pitch": true, "sound": true,
	"int[]": true, "double[]": true, "bool[]": true, "pitch[]": true, "sound[]": true,
}

// DefaultValue returns the zero value for a declared type name. Array
// defaults are one-element arrays of the scalar default, since an array may
// never be empty.
func DefaultValue(declType string) (Value, error) {
	switch declType {
	case "int":
		return Int(0), nil
	case "double":
		return Double(0), nil
	case "bool":
		return Bool(false), nil
	case "pitch":
		return Pitch("C0"), nil
	case "sound":
		return Sound([]string{"C0"}, 0, 0), nil
	case "int[]", "double[]", "bool[]", "pitch[]", "sound[]":
		scalar, err := DefaultValue(declType[:len(declType)-2])
		if err != nil {
			return Value{}, err
		}
		return Arr([]Value{scalar}), nil
	default:
		return Value{}, failf(ErrTypeMismatch, "unknown declared type %q", declType)
	}
}

// defaultOf returns the default value matching v's classification; used for
// gap filler when an index-assignment grows an array. For an array value the
// filler is a one-element array of its element-type default.
func defaultOf(v Value) (Value, error) {
	if v.Tag == VTArray {
		inner, err := DefaultValue(elemType(v))
		if err != nil {
			return Value{}, err
		}
		return Arr([]Value{inner}), nil
	}
	return DefaultValue(Classify(v))
}

// newArray applies the construction-time invariants to an evaluated element
// list: non-empty, homogeneous by Classify against the first element.
func newArray(elems []Value) (Value, error) {
	if len(elems) == 0 {
		return Value{}, failf(ErrEmptyArrayLiteral, "array literals may not be empty")
	}
	want := Classify(elems[0])
	for i := 1; i < len(elems); i++ {
		if got := Classify(elems[i]); got != want {
			return Value{}, failf(ErrHeterogeneousArrayLiteral,
				"array literal mixes %s and %s (element %d)", want, got, i)
		}
	}
	return Arr(elems), nil
}
