// Package naming allocates non-overwriting output filenames of the form
// prefix + sequence number + extension.
//
// The next number is derived from the directory contents at call time and never cached,
// so files added or removed between calls are reflected. Two processes allocating in the
// same directory at once can be handed the same name.
package naming

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/menta2k/photo-merge/internal/utils"
	"github.com/menta2k/photo-merge/pkg/types"
)

// NextName returns the path of the next unused numbered file in dir.
// The directory must already exist; the file is not created.
func NextName(dir, prefix, extension string) (string, error) {
	names, err := utils.ListFileNames(dir)
	if err != nil {
		return "", types.NewPathError("list", dir, types.ErrIO, err)
	}
	return filepath.Join(dir, FormatName(prefix, NextSequence(names, prefix, extension), extension)), nil
}

// NextSequence returns max(existing sequence numbers) + 1, or 1 when nothing matches.
func NextSequence(names []string, prefix, extension string) int {
	highest := 0
	for _, name := range names {
		if n, ok := ParseSequence(name, prefix, extension); ok && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// ParseSequence extracts the sequence number from a name of the form prefix<digits>extension.
// Names that don't match exactly report false.
func ParseSequence(name, prefix, extension string) (int, bool) {
	if len(name) <= len(prefix)+len(extension) {
		return 0, false
	}
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, extension) {
		return 0, false
	}

	digits := name[len(prefix) : len(name)-len(extension)]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		// overflow
		return 0, false
	}
	return n, true
}

// FormatName builds the filename for sequence number n
func FormatName(prefix string, n int, extension string) string {
	return prefix + strconv.Itoa(n) + extension
}
