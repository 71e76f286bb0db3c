package eclipse

import (
	"fmt"
	"regexp"
	"strings"
)

// deviceInclude matches include directives referencing a device header.
var deviceInclude = regexp.MustCompile(`^#include .*stm32.*\.h`)

// RewriteDeviceInclude points the include directives of the CMSIS dispatch
// header at the given device header, e.g. stm32f4xx. It returns the rewritten
// content and whether a change was made.
func RewriteDeviceInclude(data []byte, device string) ([]byte, bool) {
	// rewrite matching lines
	directive := fmt.Sprintf("#include %q", device+".h")
	lines := strings.Split(string(data), "\n")
	changed := false
	for i, line := range lines {
		if !deviceInclude.MatchString(line) {
			continue
		}
		if line == directive {
			continue
		}
		lines[i] = directive
		changed = true
	}

	// keep input when nothing matched
	if !changed {
		return data, false
	}

	return []byte(strings.Join(lines, "\n")), true
}
