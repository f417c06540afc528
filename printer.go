// printer.go — canonical text rendering of runtime values.
//
// FormatValue is the single rendering used by the print built-in, the REPL
// echo, and error messages:
//
//	ints       decimal
//	doubles    shortest round-trip form ("1.5", "2")
//	bools      "true" / "false"
//	pitches    their name ("C#4")
//	sounds     "|C2, E2|:1.5:100"
//	arrays     "[x, y, z]", elements rendered recursively
//
// The track-file serialization is different (sounds use square brackets and
// array elements join with a bare comma) and lives in track.go.
package lullabyte

import (
	"strconv"
	"strings"
)

// FormatValue renders v in its canonical console form.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTDouble:
		return formatDouble(v.Data.(float64))
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTPitch:
		return v.Data.(string)
	case VTSound:
		sd := v.Data.(SoundData)
		var b strings.Builder
		b.WriteByte('|')
		b.WriteString(strings.Join(sd.Pitches, ", "))
		b.WriteByte('|')
		b.WriteByte(':')
		b.WriteString(formatDouble(sd.Duration))
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(sd.Amplitude, 10))
		return b.String()
	case VTArray:
		elems := v.Data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = FormatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<unmatched type>"
	}
}

func formatDouble(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
