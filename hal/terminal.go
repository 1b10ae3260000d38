package hal

// decodeTerminal splits raw terminal bytes into keystrokes. Incomplete
// escape sequences at the end of b are returned in rest so the caller can
// prepend them to the next read. A lone ESC at the end of the input is an
// Escape keystroke when final is set.
func decodeTerminal(b []byte, final bool) (keys []RawKey, rest []byte) {
	for len(b) > 0 {
		c := b[0]
		if c != 0x1b {
			keys = append(keys, RawKey{Char: rune(c)})
			b = b[1:]
			continue
		}

		if len(b) == 1 {
			if final {
				keys = append(keys, RawKey{Scan: ScanEscape})
				return keys, nil
			}
			return keys, b
		}

		switch b[1] {
		case '[':
			n, key, ok := decodeCSI(b)
			if n == 0 {
				if final {
					keys = append(keys, RawKey{Scan: ScanEscape})
					b = b[1:]
					continue
				}
				return keys, b
			}
			if ok {
				keys = append(keys, key)
			}
			b = b[n:]
		case 'O':
			if len(b) < 3 {
				if final {
					keys = append(keys, RawKey{Scan: ScanEscape})
					b = b[1:]
					continue
				}
				return keys, b
			}
			if key, ok := ss3Keys[b[2]]; ok {
				keys = append(keys, key)
			}
			b = b[3:]
		default:
			keys = append(keys, RawKey{Scan: ScanEscape})
			b = b[1:]
		}
	}
	return keys, nil
}

var ss3Keys = map[byte]RawKey{
	'A': {Scan: ScanUp},
	'B': {Scan: ScanDown},
	'C': {Scan: ScanRight},
	'D': {Scan: ScanLeft},
	'H': {Scan: ScanHome},
	'F': {Scan: ScanEnd},
	'P': {Scan: ScanF1},
	'Q': {Scan: ScanF1 + 1},
	'R': {Scan: ScanF1 + 2},
	'S': {Scan: ScanF1 + 3},
}

var csiTildeKeys = map[int]uint16{
	1:  ScanHome,
	2:  ScanInsert,
	3:  ScanDelete,
	4:  ScanEnd,
	5:  ScanPageUp,
	6:  ScanPageDown,
	15: ScanF1 + 4,
	17: ScanF1 + 5,
	18: ScanF1 + 6,
	19: ScanF1 + 7,
	20: ScanF1 + 8,
	21: ScanF10,
	23: ScanF11,
	24: ScanF12,
}

// decodeCSI parses ESC [ params final. n is 0 when the sequence is not
// complete yet.
func decodeCSI(b []byte) (n int, key RawKey, ok bool) {
	param := 0
	sep := false
	for i := 2; i < len(b); i++ {
		c := b[i]
		switch {
		case c >= '0' && c <= '9':
			if !sep {
				param = param*10 + int(c-'0')
			}
		case c == ';':
			// Modifier parameters follow; only the key number matters.
			sep = true
		case c >= 0x40 && c <= 0x7e:
			n = i + 1
			if c == '~' {
				scan, found := csiTildeKeys[param]
				return n, RawKey{Scan: scan}, found
			}
			k, found := ss3Keys[c]
			return n, k, found
		default:
			return i + 1, RawKey{}, false
		}
	}
	return 0, RawKey{}, false
}
