package utils

import (
	"strings"

	"github.com/google/uuid"
)

// IsUUID checks if the string is a valid UUID
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// SanitizeFilename strips path separators and characters that are unsafe
// in object-store keys, keeping the extension intact.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		" ", "_",
		"#", "_",
		"?", "_",
		"%", "_",
	)
	name = replacer.Replace(name)
	if name == "" {
		name = "file"
	}
	return name
}
