package lullabyte

// ---- sound built-ins ---------------------------------------------------
//
// Pure accessors and functional updaters over sound values. The set*
// builtins never mutate their argument: each returns a new sound with one
// field replaced.

func registerSoundBuiltins(ip *Interpreter) {
	one := func(name string, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, failf(ErrWrongArgumentType, "%s expects 1 argument, got %d", name, len(args))
		}
		return args[0], nil
	}
	two := func(name string, args []Value) (Value, Value, error) {
		if len(args) != 2 {
			return Value{}, Value{}, failf(ErrWrongArgumentType, "%s expects 2 arguments, got %d", name, len(args))
		}
		return args[0], args[1], nil
	}
	wantSound := func(name string, v Value) (SoundData, error) {
		if v.Tag != VTSound {
			return SoundData{}, failf(ErrWrongArgumentType, "%s expects a sound, got %s", name, Classify(v))
		}
		return v.Data.(SoundData), nil
	}

	ip.builtins["getAmplitude"] = func(_ *Interpreter, args []Value) (Value, error) {
		v, err := one("getAmplitude", args)
		if err != nil {
			return Value{}, err
		}
		sd, err := wantSound("getAmplitude", v)
		if err != nil {
			return Value{}, err
		}
		return Int(sd.Amplitude), nil
	}

	ip.builtins["getDuration"] = func(_ *Interpreter, args []Value) (Value, error) {
		v, err := one("getDuration", args)
		if err != nil {
			return Value{}, err
		}
		sd, err := wantSound("getDuration", v)
		if err != nil {
			return Value{}, err
		}
		return Double(sd.Duration), nil
	}

	// getPitches accepts a sound or a single pitch; either way the result is
	// a pitch array.
	ip.builtins["getPitches"] = func(_ *Interpreter, args []Value) (Value, error) {
		v, err := one("getPitches", args)
		if err != nil {
			return Value{}, err
		}
		switch v.Tag {
		case VTSound:
			sd := v.Data.(SoundData)
			out := make([]Value, len(sd.Pitches))
			for i, p := range sd.Pitches {
				out[i] = Pitch(p)
			}
			return Arr(out), nil
		case VTPitch:
			return Arr([]Value{v}), nil
		default:
			return Value{}, failf(ErrWrongArgumentType, "getPitches expects a sound or pitch, got %s", Classify(v))
		}
	}

	ip.builtins["setAmplitude"] = func(_ *Interpreter, args []Value) (Value, error) {
		sv, av, err := two("setAmplitude", args)
		if err != nil {
			return Value{}, err
		}
		sd, err := wantSound("setAmplitude", sv)
		if err != nil {
			return Value{}, err
		}
		if av.Tag != VTInt {
			return Value{}, failf(ErrWrongArgumentType, "setAmplitude expects an int, got %s", Classify(av))
		}
		return Sound(sd.Pitches, sd.Duration, av.Data.(int64)), nil
	}

	ip.builtins["setDuration"] = func(_ *Interpreter, args []Value) (Value, error) {
		sv, dv, err := two("setDuration", args)
		if err != nil {
			return Value{}, err
		}
		sd, err := wantSound("setDuration", sv)
		if err != nil {
			return Value{}, err
		}
		if dv.Tag != VTDouble {
			return Value{}, failf(ErrWrongArgumentType, "setDuration expects a double, got %s", Classify(dv))
		}
		return Sound(sd.Pitches, dv.Data.(float64), sd.Amplitude), nil
	}

	ip.builtins["setPitches"] = func(_ *Interpreter, args []Value) (Value, error) {
		sv, pv, err := two("setPitches", args)
		if err != nil {
			return Value{}, err
		}
		sd, err := wantSound("setPitches", sv)
		if err != nil {
			return Value{}, err
		}
		if pv.Tag != VTArray {
			return Value{}, failf(ErrWrongArgumentType, "setPitches expects a pitch array, got %s", Classify(pv))
		}
		elems := pv.Data.([]Value)
		names := make([]string, len(elems))
		for i, e := range elems {
			if e.Tag != VTPitch {
				return Value{}, failf(ErrWrongArgumentType, "setPitches expects a pitch array, element %d is %s", i, Classify(e))
			}
			names[i] = e.Data.(string)
		}
		return Sound(names, sd.Duration, sd.Amplitude), nil
	}
}
