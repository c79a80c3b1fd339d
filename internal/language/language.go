// Package language resolves the BCP 47 tags carried on transcript segments
// into human-readable names. All language display conversions are
// consolidated here so commands do not each parse tags on their own.
package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DisplayName returns the English display name for a BCP 47 tag ("en-US"
// yields "American English"). Unparseable input is returned unchanged so a
// raw tag still shows up rather than nothing.
func DisplayName(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	if name := display.English.Languages().Name(parsed); name != "" {
		return name
	}
	return tag
}

// Base returns the two-letter base language of a BCP 47 tag ("en-US" yields
// "en"), or the input unchanged when it cannot be parsed.
func Base(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	base, _ := parsed.Base()
	return base.String()
}
