// track.go — the track emitter.
//
// The Emitter owns the run's only process-wide mutable state: the tempo and
// the "has a track been written yet" flag. At run start the output file is
// reset to the single sentinel line "x" ("no playable track"), so a crashed
// or degenerate run never leaves a stale playable file. The first successful
// mixdown truncates the file and writes the tempo line followed by the first
// track line; every later mixdown appends one track line.
//
// Track file format (UTF-8, newline-terminated lines):
//
//	degenerate:  x
//	playable:    <tempo>
//	             <trackNumber><serialization>      (one per mixdown)
//
// A sound serializes as "[C2, E2]:1.5:100"; an array serializes as
// "[elem,elem,...]" with each element serialized recursively. Only sounds
// and arrays whose leaves are sounds are mixable.
package lullabyte

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultTempo is the beats-per-minute used when a program never calls bpm.
const DefaultTempo = 220

// SentinelLine is the degenerate track-file content.
const SentinelLine = "x"

// Emitter serializes sound values to the shared output file and tracks the
// run-wide tempo and emitted flag. It is constructed once per Interpreter
// and never exposed as package state.
type Emitter struct {
	path    string
	tempo   int64
	emitted bool
	stdout  io.Writer
}

func newEmitter(path string, stdout io.Writer) *Emitter {
	return &Emitter{path: path, tempo: DefaultTempo, stdout: stdout}
}

// Tempo returns the current beats-per-minute.
func (em *Emitter) Tempo() int64 { return em.tempo }

// Emitted reports whether any track has been written this run.
func (em *Emitter) Emitted() bool { return em.emitted }

// Reset truncates the output file down to the sentinel line.
func (em *Emitter) Reset() error {
	return os.WriteFile(em.path, []byte(SentinelLine+"\n"), 0o644)
}

// SetTempo updates the tempo. Tempo is mutable only before the first
// successful mixdown.
func (em *Emitter) SetTempo(n int64) error {
	if em.emitted {
		return failf(ErrInvalidOperation, "bpm cannot be changed after a track has been mixed down")
	}
	em.tempo = n
	return nil
}

// Mixdown serializes v onto the given track channel. The caller has already
// validated the track number range.
func (em *Emitter) Mixdown(v Value, track int64) error {
	body, err := serializeMixable(v)
	if err != nil {
		// A failed mixdown must not leave a stale playable file behind.
		_ = em.Reset()
		em.emitted = false
		return err
	}

	line := strconv.FormatInt(track, 10) + body + "\n"
	if !em.emitted {
		content := strconv.FormatInt(em.tempo, 10) + "\n" + line
		if err := os.WriteFile(em.path, []byte(content), 0o644); err != nil {
			return err
		}
	} else {
		f, err := os.OpenFile(em.path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		if _, err := f.WriteString(line); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	em.emitted = true
	fmt.Fprintf(em.stdout, "Mixed down track %d\n", track)
	return nil
}

// serializeMixable renders a mixdown argument for the track file. Sounds use
// square brackets around the pitch list; arrays join their recursively
// serialized elements with a bare comma.
func serializeMixable(v Value) (string, error) {
	switch v.Tag {
	case VTSound:
		sd := v.Data.(SoundData)
		return "[" + strings.Join(sd.Pitches, ", ") + "]:" +
			formatDouble(sd.Duration) + ":" + strconv.FormatInt(sd.Amplitude, 10), nil
	case VTArray:
		elems := v.Data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			s, err := serializeMixable(e)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ",") + "]", nil
	default:
		return "", failf(ErrNotMixable, "cannot mix down a %s; only sounds and arrays of sounds", Classify(v))
	}
}

// ---- track built-ins ---------------------------------------------------

func registerTrackBuiltins(ip *Interpreter) {
	// bpm(n: Int): set the run tempo. Must precede the first mixdown.
	ip.builtins["bpm"] = func(ip *Interpreter, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, failf(ErrWrongArgumentType, "bpm expects 1 argument, got %d", len(args))
		}
		if args[0].Tag != VTInt {
			return Value{}, failf(ErrWrongArgumentType, "bpm expects an int, got %s", Classify(args[0]))
		}
		if err := ip.emitter.SetTempo(args[0].Data.(int64)); err != nil {
			return Value{}, err
		}
		return Int(0), nil
	}

	// mixdown(soundOrArray[, track]): serialize onto a channel in [0,15];
	// track defaults to 0. Argument errors re-write the sentinel first.
	ip.builtins["mixdown"] = func(ip *Interpreter, args []Value) (Value, error) {
		bad := func(format string, a ...any) (Value, error) {
			_ = ip.emitter.Reset()
			return Value{}, failf(ErrInvalidMixdownArgs, format, a...)
		}
		if len(args) < 1 || len(args) > 2 {
			return bad("mixdown expects 1 or 2 arguments, got %d", len(args))
		}
		track := int64(0)
		if len(args) == 2 {
			if args[1].Tag != VTInt {
				return bad("mixdown track number must be an int, got %s", Classify(args[1]))
			}
			track = args[1].Data.(int64)
			if track < 0 || track > 15 {
				return bad("mixdown track number must be in [0,15], got %d", track)
			}
		}
		if err := ip.emitter.Mixdown(args[0], track); err != nil {
			return Value{}, err
		}
		return Int(0), nil
	}
}
