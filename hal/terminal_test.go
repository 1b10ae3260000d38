package hal

import "testing"

func TestDecodeTerminalCharacters(t *testing.T) {
	keys, rest := decodeTerminal([]byte("aZ\r\x7f"), false)
	if len(rest) != 0 {
		t.Fatalf("rest = %q, want empty", rest)
	}
	want := []rune{'a', 'Z', '\r', 0x7f}
	if len(keys) != len(want) {
		t.Fatalf("keys = %+v, want %d keys", keys, len(want))
	}
	for i, r := range want {
		if keys[i] != (RawKey{Char: r}) {
			t.Fatalf("keys[%d] = %+v, want char %q", i, keys[i], r)
		}
	}
}

func TestDecodeTerminalEscapeSequences(t *testing.T) {
	cases := []struct {
		in   string
		want RawKey
	}{
		{"\x1b[A", RawKey{Scan: ScanUp}},
		{"\x1b[D", RawKey{Scan: ScanLeft}},
		{"\x1bOC", RawKey{Scan: ScanRight}},
		{"\x1bOP", RawKey{Scan: ScanF1}},
		{"\x1b[3~", RawKey{Scan: ScanDelete}},
		{"\x1b[6~", RawKey{Scan: ScanPageDown}},
		{"\x1b[15~", RawKey{Scan: ScanF1 + 4}},
		{"\x1b[21~", RawKey{Scan: ScanF10}},
		{"\x1b[24~", RawKey{Scan: ScanF12}},
		{"\x1b[1;5A", RawKey{Scan: ScanUp}},
		{"\x1b[3;2~", RawKey{Scan: ScanDelete}},
	}
	for _, tc := range cases {
		keys, rest := decodeTerminal([]byte(tc.in), false)
		if len(rest) != 0 || len(keys) != 1 || keys[0] != tc.want {
			t.Fatalf("decodeTerminal(%q) = %+v, rest %q, want %+v", tc.in, keys, rest, tc.want)
		}
	}
}

func TestDecodeTerminalUnknownSequenceDropped(t *testing.T) {
	keys, rest := decodeTerminal([]byte("\x1b[99~x"), false)
	if len(rest) != 0 || len(keys) != 1 || keys[0] != (RawKey{Char: 'x'}) {
		t.Fatalf("keys = %+v, rest %q, want only 'x'", keys, rest)
	}
}

func TestDecodeTerminalPartialSequence(t *testing.T) {
	keys, rest := decodeTerminal([]byte("q\x1b["), false)
	if len(keys) != 1 || keys[0] != (RawKey{Char: 'q'}) {
		t.Fatalf("keys = %+v, want 'q'", keys)
	}
	if string(rest) != "\x1b[" {
		t.Fatalf("rest = %q, want the partial sequence", rest)
	}

	keys, rest = decodeTerminal(append(rest, 'B'), false)
	if len(rest) != 0 || len(keys) != 1 || keys[0] != (RawKey{Scan: ScanDown}) {
		t.Fatalf("completed sequence = %+v, rest %q, want down", keys, rest)
	}
}

func TestDecodeTerminalLoneEscape(t *testing.T) {
	keys, rest := decodeTerminal([]byte{0x1b}, false)
	if len(keys) != 0 || len(rest) != 1 {
		t.Fatalf("non-final ESC = %+v, rest %q, want held back", keys, rest)
	}
	keys, rest = decodeTerminal([]byte{0x1b}, true)
	if len(rest) != 0 || len(keys) != 1 || keys[0] != (RawKey{Scan: ScanEscape}) {
		t.Fatalf("final ESC = %+v, rest %q, want Escape", keys, rest)
	}

	keys, _ = decodeTerminal([]byte("\x1bx"), false)
	if len(keys) != 2 || keys[0] != (RawKey{Scan: ScanEscape}) || keys[1] != (RawKey{Char: 'x'}) {
		t.Fatalf("ESC x = %+v, want Escape then 'x'", keys)
	}
}
