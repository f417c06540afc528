package lullabyte

import "testing"

func Test_FormatValue(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Int(42), "42"},
		{Int(-3), "-3"},
		{Double(1.5), "1.5"},
		{Double(2), "2"},
		{Double(0.1), "0.1"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Pitch("C#4"), "C#4"},
		{Sound([]string{"C2", "E2"}, 1.5, 100), "|C2, E2|:1.5:100"},
		{Sound([]string{"C0"}, 0, 0), "|C0|:0:0"},
		{Arr([]Value{Int(1), Int(2), Int(3)}), "[1, 2, 3]"},
		{Arr([]Value{Arr([]Value{Int(1)}), Arr([]Value{Int(2)})}), "[[1], [2]]"},
		{Arr([]Value{Sound([]string{"C2"}, 1, 50)}), "[|C2|:1:50]"},
	}
	for _, c := range cases {
		if got := FormatValue(c.v); got != c.want {
			t.Fatalf("FormatValue(%#v) = %q, want %q", c.v, got, c.want)
		}
	}
}
