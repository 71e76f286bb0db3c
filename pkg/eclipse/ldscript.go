package eclipse

import (
	"regexp"
	"strings"
)

// flashLine matches memory regions holding executable code, e.g.
// "FLASH (rx) : ORIGIN = 0x00000000, LENGTH = 1024K".
var flashLine = regexp.MustCompile(`FLASH .[rx]`)

// PatchFlashOrigin rewrites flash region lines whose origin is the all-zero
// address to the STM32 flash base address. It returns the patched content and
// whether a change was made.
func PatchFlashOrigin(data []byte) ([]byte, bool) {
	// patch matching lines
	lines := strings.Split(string(data), "\n")
	changed := false
	for i, line := range lines {
		if !flashLine.MatchString(line) {
			continue
		}
		if !strings.Contains(line, "0x00000000") {
			continue
		}
		lines[i] = strings.Replace(line, "0x00000000", "0x08000000", 1)
		changed = true
	}

	// keep input when nothing matched
	if !changed {
		return data, false
	}

	return []byte(strings.Join(lines, "\n")), true
}
