// pitch.go — note-name <-> semitone conversion.
//
// A pitch token is a note letter A–G, an optional accidental ('#' or 'b'),
// and a single octave digit: "C0", "F#3", "Bb7". Its semitone value is
// octave*12 + offset-within-octave, with C as offset 0 — so "C0" is 0 and
// the representable range is [0, 120). Conversions in the other direction
// always spell accidentals as sharps.
package lullabyte

import "fmt"

var noteOffsets = map[byte]int64{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var sharpNames = [12]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// PitchToInt converts a pitch name to its semitone value.
func PitchToInt(name string) (int64, error) {
	if len(name) < 2 || len(name) > 3 {
		return 0, fmt.Errorf("malformed pitch %q", name)
	}
	off, ok := noteOffsets[name[0]]
	if !ok {
		return 0, fmt.Errorf("malformed pitch %q: bad note letter", name)
	}
	rest := name[1:]
	switch rest[0] {
	case '#':
		off++
		rest = rest[1:]
	case 'b':
		off--
		rest = rest[1:]
	}
	if len(rest) != 1 || rest[0] < '0' || rest[0] > '9' {
		return 0, fmt.Errorf("malformed pitch %q: bad octave digit", name)
	}
	octave := int64(rest[0] - '0')
	n := octave*12 + off
	if n < 0 || n >= 120 {
		return 0, fmt.Errorf("pitch %q out of range", name)
	}
	return n, nil
}

// IntToPitch converts a semitone value back to a pitch name, spelling
// accidentals as sharps.
func IntToPitch(n int64) (string, error) {
	if n < 0 || n >= 120 {
		return "", fmt.Errorf("semitone value %d out of pitch range [0,120)", n)
	}
	return fmt.Sprintf("%s%d", sharpNames[n%12], n/12), nil
}

// validPitch reports whether name parses as a pitch token.
func validPitch(name string) bool {
	_, err := PitchToInt(name)
	return err == nil
}
