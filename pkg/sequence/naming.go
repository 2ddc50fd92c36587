package sequence

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultPadding is the zero-padding width of resequenced frame numbers.
// Sequences longer than 10^DefaultPadding frames no longer sort correctly.
const DefaultPadding = 4

const digits = "0123456789"

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// FramePrefix returns name with its final contiguous run of digits removed.
// Everything else, including the extension and inner digits, is kept:
//
//	"take2_0001.png" -> "take2_.png"
//
// Names without digits are returned unchanged.
func FramePrefix(name string) string {
	end := strings.LastIndexAny(name, digits)
	if end < 0 {
		return name
	}
	start := end
	for start > 0 && isDigit(name[start-1]) {
		start--
	}
	return name[:start] + name[end+1:]
}

// CommonPrefix returns the longest common leading substring of names
func CommonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := names[0]
	for _, name := range names[1:] {
		n := len(prefix)
		if len(name) < n {
			n = len(name)
		}
		i := 0
		for i < n && prefix[i] == name[i] {
			i++
		}
		prefix = prefix[:i]
		if prefix == "" {
			break
		}
	}
	return prefix
}

// SequencePrefix derives the shared name prefix for a resequenced folder:
// the common prefix of the names' stems with trailing digits stripped.
func SequencePrefix(names []string) string {
	stems := make([]string, len(names))
	for i, name := range names {
		stems[i] = Stem(name)
	}
	return strings.TrimRight(CommonPrefix(stems), digits)
}

// Stem returns name without its extension
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// FrameName builds "<prefix><zero-padded index><ext>". ext keeps its dot
// and original casing.
func FrameName(prefix string, index, padding int, ext string) string {
	return fmt.Sprintf("%s%0*d%s", prefix, padding, index, ext)
}
