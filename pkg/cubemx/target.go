package cubemx

import (
	"fmt"
	"regexp"
	"strings"
)

// the option class carrying the preprocessor symbols in generated descriptors
const symbolsClass = "gnu.c.compiler.option.preprocessor.def.symbols"

// familyPattern extracts the series code from an MCU identifier, e.g. F4 from
// STM32F429xx.
var familyPattern = regexp.MustCompile(`[FL][0-9]`)

// A Target identifies the microcontroller a project was generated for.
type Target struct {
	// the full MCU identifier, e.g. STM32F429xx
	MCU string

	// the device family, e.g. F4
	Family string
}

// Series returns the lower-case series prefix, e.g. stm32f4.
func (t Target) Series() string {
	return "stm32" + strings.ToLower(t.Family)
}

// Device returns the generic device name, e.g. stm32f4xx.
func (t Target) Device() string {
	return t.Series() + "xx"
}

// DeviceDir returns the vendor device folder name, e.g. STM32F4xx.
func (t Target) DeviceDir() string {
	return "STM32" + t.Family + "xx"
}

// DetectTarget will scan the tool-chain descriptor for the MCU identifier and
// derive the device family from it.
func (p *Project) DetectTarget() (Target, error) {
	// load descriptor
	doc, err := p.loadDescriptor()
	if err != nil {
		return Target{}, err
	}

	// find the first preprocessor symbol carrying the vendor prefix and a
	// recognizable family
	for _, value := range doc.OptionValues(symbolsClass) {
		if !strings.Contains(value, "STM32") {
			continue
		}
		family := familyPattern.FindString(value)
		if family == "" {
			continue
		}
		return Target{MCU: value, Family: family}, nil
	}

	return Target{}, fmt.Errorf("%w: no MCU symbol in descriptor", ErrNotSW4STM32Project)
}
