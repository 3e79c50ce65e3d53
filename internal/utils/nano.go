package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idSize     = 32
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// PrefixedNanoID returns prefix_ followed by a 32 character random id,
// e.g. "ses_3kT...".
func PrefixedNanoID(prefix string) string {
	return prefix + "_" + gonanoid.MustGenerate(idAlphabet, idSize)
}
