package textformat

import (
	"golang.org/x/text/language"
)

// SpecificCulture resolves a culture to a specific culture, i.e. a language
// bound to a region. A neutral culture (“en”) is resolved to its most likely
// region (“en-US”). The undefined culture cannot be resolved and is reported
// with false.
func SpecificCulture(tag language.Tag) (language.Tag, bool) {
	if tag == language.Und {
		return language.Und, false
	}
	region, conf := tag.Region()
	if conf == language.Exact {
		return tag, true
	}
	if conf == language.No {
		tracer().Debugf("culture %v has no likely region", tag)
		return language.Und, false
	}
	base, _ := tag.Base()
	parts := []interface{}{base}
	if script, sconf := tag.Script(); sconf == language.Exact {
		parts = append(parts, script)
	}
	parts = append(parts, region)
	specific, err := language.Compose(parts...)
	if err != nil {
		tracer().Errorf("cannot compose culture for %v: %v", tag, err)
		return language.Und, false
	}
	return specific, true
}
