package parser

// isRegister matches r0..r17 with any number of indirection prefixes
// (rr0, rrr3), plus the sp and ra aliases.
func isRegister(w string) bool {
	if w == "sp" || w == "ra" {
		return true
	}
	i := 0
	for i < len(w) && w[i] == 'r' {
		i++
	}
	return i > 0 && isRegisterIndex(w[i:])
}

// isDevice matches d0..d5, db and the indirect forms dr0.., drr0...
func isDevice(w string) bool {
	if len(w) < 2 || w[0] != 'd' {
		return false
	}
	rest := w[1:]
	if rest == "b" {
		return true
	}
	if len(rest) == 1 && rest[0] >= '0' && rest[0] <= '5' {
		return true
	}
	i := 0
	for i < len(rest) && rest[i] == 'r' {
		i++
	}
	return i > 0 && isRegisterIndex(rest[i:])
}

func isRegisterIndex(s string) bool {
	switch len(s) {
	case 1:
		return s[0] >= '0' && s[0] <= '9'
	case 2:
		return s[0] == '1' && s[1] >= '0' && s[1] <= '7'
	}
	return false
}

func isChannel(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
