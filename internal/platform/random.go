package platform

import (
	"math/rand/v2"
)

// Letters is the alphabet used for session directory names
const Letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomString returns length random ASCII letters. Up to len(Letters)
// characters are drawn without repetition; longer strings reuse letters.
// Not suitable for anything security related.
func RandomString(length int) string {
	if length <= 0 {
		return ""
	}

	buf := make([]byte, 0, length)
	if length <= len(Letters) {
		for _, i := range rand.Perm(len(Letters))[:length] {
			buf = append(buf, Letters[i])
		}
		return string(buf)
	}

	for range length {
		buf = append(buf, Letters[rand.IntN(len(Letters))])
	}
	return string(buf)
}
