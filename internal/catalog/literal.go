package catalog

import (
	"strconv"
	"strings"
)

// Str packs up to six ASCII characters into the number STR("s") stands for,
// first character in the most significant byte.
func Str(s string) (int64, bool) {
	if len(s) > 6 {
		return 0, false
	}
	var v int64
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return 0, false
		}
		v = v<<8 | int64(s[i])
	}
	return v, true
}

// Evaluate returns the value of a number literal as written in source:
// decimal or float, $hex, %binary, HASH("..") or STR("..").
func Evaluate(text string) (float64, bool) {
	if inner, ok := callArg(text, "HASH"); ok {
		return float64(Hash(inner)), true
	}
	if inner, ok := callArg(text, "STR"); ok {
		v, ok := Str(inner)
		return float64(v), ok
	}
	if v, ok := IntegerLiteral(text); ok {
		return float64(v), true
	}
	f, err := strconv.ParseFloat(text, 64)
	return f, err == nil
}

// IntegerLiteral parses decimal, $hex and %binary integer literals. Floats
// and preprocessor calls are not integers.
func IntegerLiteral(text string) (int64, bool) {
	neg := strings.HasPrefix(text, "-")
	body := strings.TrimPrefix(text, "-")
	base := 10
	switch {
	case strings.HasPrefix(body, "$"):
		base, body = 16, body[1:]
	case strings.HasPrefix(body, "%"):
		base, body = 2, body[1:]
	}
	v, err := strconv.ParseInt(body, base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// CallArgument extracts the quoted argument of HASH("..") or STR("..").
func CallArgument(text string) (name, arg string, ok bool) {
	for _, fn := range []string{"HASH", "STR"} {
		if a, ok := callArg(text, fn); ok {
			return fn, a, true
		}
	}
	return "", "", false
}

func callArg(text, fn string) (string, bool) {
	rest, ok := strings.CutPrefix(text, fn+"(")
	if !ok {
		return "", false
	}
	rest, ok = strings.CutSuffix(rest, ")")
	if !ok || len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", false
	}
	return rest[1 : len(rest)-1], true
}
