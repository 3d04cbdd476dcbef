package param

import (
	"strings"
	"unicode"
)

// Snake converts a camelCase key to snake_case: minPhi1 becomes min_phi1.
func Snake(camel string) string {
	return snake(camel, false)
}

// ScreamingSnake converts a camelCase key to an enum constant name:
// useGPU becomes USE_G_P_U, matching the generated simulation headers.
func ScreamingSnake(camel string) string {
	return snake(camel, true)
}

func snake(camel string, scream bool) string {
	var b strings.Builder
	for i, r := range camel {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			if !scream {
				r = unicode.ToLower(r)
			}
		} else if scream {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ConstName derives an enum-style constant from a display label such as
// "Mass 1 (kg)": MASS_1_KG.
func ConstName(label string) string {
	var b strings.Builder
	sep := false
	for _, r := range label {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			sep = false
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		sep = true
	}
	return b.String()
}
