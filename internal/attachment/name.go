// Package attachment derives storage names for order files.
package attachment

import (
	"path"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
)

const (
	orderIDLength    = 8
	clientNameLength = 30
	fallbackClient   = "Order"
	fallbackExt      = "file"
)

var typeCodes = map[model.FileType]string{
	model.FileTypeDesignMockup:    "PROOF",
	model.FileTypePrintFile:       "PRINT",
	model.FileTypeClientReference: "REF",
}

// TypeCode returns the short code for fileType.
func TypeCode(fileType model.FileType) (string, bool) {
	code, ok := typeCodes[fileType]
	return code, ok
}

// BuildName returns ORD-{id8}_{Client}_{CODE}_{unixMillis}.{ext}.
func BuildName(orderID, clientName string, fileType model.FileType, original string, now time.Time) string {
	code, ok := TypeCode(fileType)
	if !ok {
		code = strings.ToUpper(string(fileType))
	}

	var b strings.Builder
	b.WriteString("ORD-")
	b.WriteString(shortID(orderID))
	b.WriteByte('_')
	b.WriteString(SanitizeClientName(clientName))
	b.WriteByte('_')
	b.WriteString(code)
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteByte('.')
	b.WriteString(Extension(original))
	return b.String()
}

// ObjectKey is the storage key for an attachment.
func ObjectKey(companyID, orderID uuid.UUID, name string) string {
	return path.Join(companyID.String(), orderID.String(), name)
}

// SanitizeClientName keeps letters, digits and whitespace, joins words with
// single underscores and truncates to 30 characters.
func SanitizeClientName(name string) string {
	var kept strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			kept.WriteRune(r)
		}
	}

	joined := strings.Join(strings.Fields(kept.String()), "_")
	for strings.Contains(joined, "__") {
		joined = strings.ReplaceAll(joined, "__", "_")
	}
	joined = truncate(joined, clientNameLength)
	if joined == "" {
		return fallbackClient
	}
	return joined
}

// Extension returns the lower-cased text after the last dot of name.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return fallbackExt
	}
	return strings.ToLower(name[i+1:])
}

func shortID(id string) string {
	return truncate(id, orderIDLength)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
