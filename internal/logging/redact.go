package logging

import (
	"fmt"
	"log/slog"
	"regexp"
)

// panPattern matches 13-19 digit runs, optionally grouped by single spaces or
// dashes, which is the shape of every major card scheme's PAN.
var panPattern = regexp.MustCompile(`\d(?:[ -]?\d){12,18}`)

// MaskPAN replaces every card-like digit run in s with asterisks, keeping
// only the last four digits. Separators are preserved.
func MaskPAN(s string) string {
	return panPattern.ReplaceAllStringFunc(s, func(m string) string {
		digits := 0
		for i := 0; i < len(m); i++ {
			if m[i] >= '0' && m[i] <= '9' {
				digits++
			}
		}
		out := []byte(m)
		seen := 0
		for i := range out {
			if out[i] < '0' || out[i] > '9' {
				continue
			}
			seen++
			if seen <= digits-4 {
				out[i] = '*'
			}
		}
		return string(out)
	})
}

// RedactPAN is a slog ReplaceAttr hook. It applies MaskPAN to the message,
// to string attributes and to error or Stringer attributes, so that a PAN
// slipped into a log call by mistake never reaches the sink.
func RedactPAN(_ []string, a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if m := MaskPAN(s); m != s {
			a.Value = slog.StringValue(m)
		}
	case slog.KindAny:
		switch v := a.Value.Any().(type) {
		case error:
			a.Value = slog.StringValue(MaskPAN(v.Error()))
		case fmt.Stringer:
			a.Value = slog.StringValue(MaskPAN(v.String()))
		}
	}
	return a
}
