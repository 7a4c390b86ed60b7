package util

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

const maxBinaryCheckBytes = 512

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var charReplacer = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201C", "\"", "\u201D", "\"",
	"\u2013", "-", "\u2014", "--", "\u2026", "...", "\u00a0", " ",
	"\u0096", "-", "\u0097", "--", "\u0091", "'", "\u0092", "'",
	"\u0093", "\"", "\u0094", "\"", "\r\n", "\n",
)

// IsLikelyBinary reports whether the first bytes of the file contain a NUL.
func IsLikelyBinary(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, maxBinaryCheckBytes)
	n, err := file.Read(buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	return bytes.Contains(buffer[:n], []byte{0}), nil
}

// CleanText normalises snippet text before it is stored: the BOM is dropped,
// invalid UTF-8 is replaced, typographic punctuation is folded to ASCII and
// CRLF line endings become LF. Surrounding whitespace is trimmed.
func CleanText(s string) string {
	b := bytes.TrimPrefix([]byte(s), utf8BOM)
	if !utf8.Valid(b) {
		log.Warn("Snippet content is not valid UTF-8, replacing invalid bytes")
		b = bytes.ToValidUTF8(b, []byte(string(utf8.RuneError)))
	}
	return strings.TrimSpace(charReplacer.Replace(string(b)))
}
