package room

import "crypto/rand"

// CodeLength is the number of characters in a room code.
const CodeLength = 6

// codeAlphabet excludes nothing: codes are plain uppercase alphanumerics so
// players can read them aloud and type them on any keyboard.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewCode generates a 6-character uppercase alphanumeric room code using
// cryptographic randomness. It never blocks; uniqueness against live rooms
// is the store's job (see store.Create's bounded retry).
func NewCode() string {
	bytes := make([]byte, CodeLength)
	rand.Read(bytes)

	code := make([]byte, CodeLength)
	for i, b := range bytes {
		code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(code)
}
