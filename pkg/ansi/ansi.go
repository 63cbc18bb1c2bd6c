// Package ansi applies and strips terminal styles. It only maps style
// names to SGR escape sequences; deciding which style a record gets is up
// to the calling stage.
package ansi

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// attribute codes, applied before colors in a combined sequence
var attributes = map[string]string{
	"bold":          "1",
	"dimmed":        "2",
	"italic":        "3",
	"underline":     "4",
	"blink":         "5",
	"reversed":      "7",
	"hidden":        "8",
	"strikethrough": "9",
}

// foreground color codes
var foregrounds = map[string]string{
	"black":          "30",
	"red":            "31",
	"green":          "32",
	"yellow":         "33",
	"blue":           "34",
	"magenta":        "35",
	"cyan":           "36",
	"white":          "37",
	"bright_black":   "90",
	"bright_red":     "91",
	"bright_green":   "92",
	"bright_yellow":  "93",
	"bright_blue":    "94",
	"bright_magenta": "95",
	"bright_cyan":    "96",
	"bright_white":   "97",
}

// background color codes, selected with an "on_" prefix
var backgrounds = map[string]string{
	"on_black":          "40",
	"on_red":            "41",
	"on_green":          "42",
	"on_yellow":         "43",
	"on_blue":           "44",
	"on_magenta":        "45",
	"on_cyan":           "46",
	"on_white":          "47",
	"on_bright_black":   "100",
	"on_bright_red":     "101",
	"on_bright_green":   "102",
	"on_bright_yellow":  "103",
	"on_bright_blue":    "104",
	"on_bright_magenta": "105",
	"on_bright_cyan":    "106",
	"on_bright_white":   "107",
}

var stripRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// IsStyle reports whether name is a known attribute, foreground or
// background style name.
func IsStyle(name string) bool {
	if _, ok := attributes[name]; ok {
		return true
	}
	if _, ok := foregrounds[name]; ok {
		return true
	}
	_, ok := backgrounds[name]
	return ok
}

// Styles returns all known style names sorted alphabetically.
func Styles() []string {
	names := make([]string, 0, len(attributes)+len(foregrounds)+len(backgrounds))
	for name := range attributes {
		names = append(names, name)
	}
	for name := range foregrounds {
		names = append(names, name)
	}
	for name := range backgrounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply wraps s in a single SGR sequence combining the given styles.
// Codes are emitted attributes first, then foreground, then background,
// matching the conventional ordering of combined sequences. Unknown style
// names are ignored; if nothing matches, s is returned unchanged.
func Apply(s string, styles ...string) string {
	var codes []string
	var fg, bg string

	for _, style := range styles {
		switch {
		case attributes[style] != "":
			codes = append(codes, attributes[style])
		case foregrounds[style] != "":
			fg = foregrounds[style]
		case backgrounds[style] != "":
			bg = backgrounds[style]
		}
	}
	if fg != "" {
		codes = append(codes, fg)
	}
	if bg != "" {
		codes = append(codes, bg)
	}
	if len(codes) == 0 {
		return s
	}

	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", strings.Join(codes, ";"), s)
}

// Strip removes every SGR escape sequence from s. A string without
// sequences is returned unchanged.
func Strip(s string) string {
	if !strings.Contains(s, "\x1b") {
		return s
	}
	return stripRegex.ReplaceAllString(s, "")
}
