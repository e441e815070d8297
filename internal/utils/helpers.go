package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ValidatePostData reports whether a post can be created from the given input.
// A post needs non-blank content or an attached image.
func ValidatePostData(content, image string) (bool, string) {
	if strings.TrimSpace(content) == "" && image == "" {
		return false, "Post needs content or an image"
	}
	return true, ""
}

// ValidateCommentData validates comment content
func ValidateCommentData(content string) (bool, string) {
	if strings.TrimSpace(content) == "" {
		return false, "Comment content cannot be empty"
	}
	return true, ""
}

// ParseTags extracts tags from a tag input string: whitespace separated
// tokens starting with '#', without the '#'. Order and duplicates are kept.
func ParseTags(input string) []string {
	tags := []string{}
	for _, token := range strings.Fields(input) {
		if strings.HasPrefix(token, "#") {
			tags = append(tags, token[1:])
		}
	}
	return tags
}

// ParseID converts a loosely typed JSON value into an integer id
func ParseID(value interface{}) (int, bool) {
	switch v := value.(type) {
	case float64:
		// whole numbers within the int range only
		if v != math.Trunc(v) || v < float64(math.MinInt) || v >= -float64(math.MinInt) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case json.Number:
		id, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, false
		}
		return id, true
	case string:
		if v == "" {
			return 0, false
		}
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

// Truncate shortens s to at most length runes, appending "..." when cut
func Truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + "..."
}
