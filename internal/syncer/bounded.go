package syncer

// MaxFieldLen is the largest text value, in characters, written to a single
// remote text field.
const MaxFieldLen = 2000

// Bounded clips value to its first limit characters. The second result
// reports whether the untruncated value was longer than limit.
func Bounded(value string, limit int) (string, bool) {
	n := 0
	for i := range value {
		if n == limit {
			return value[:i], true
		}
		n++
	}
	return value, false
}
