package test

import (
	"math/rand"
	"strings"
)

const (
	lowerAlnum = "abcdefghijklmnopqrstuvwxyz0123456789"
	nameRunes  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789    .,&'-_/()éü"
)

// RandomString returns a string of runes drawn from alphabet with a length in
// [minLen, maxLen].
func RandomString(alphabet string, minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	runes := []rune(alphabet)
	length := minLen + rand.Intn(maxLen-minLen+1)

	var b strings.Builder
	for i := 0; i < length; i++ {
		b.WriteRune(runes[rand.Intn(len(runes))])
	}
	return b.String()
}

// RandomEmail returns a lower-case address under the shop.test domain.
func RandomEmail() string {
	return RandomString(lowerAlnum, 6, 12) + "@shop.test"
}

// RandomClientName returns a client name mixing letters, digits, whitespace
// and punctuation, up to twice the length a storage name keeps.
func RandomClientName() string {
	return RandomString(nameRunes, 1, 60)
}
