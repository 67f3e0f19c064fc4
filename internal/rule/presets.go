package rule

import "sort"

// Default is the rule a new sandbox starts with.
const Default = "4/4/5"

var presets = map[string]string{
	"445":     Default,
	"brain":   "/2/3",
	"life":    "2,3/3/2",
	"crystal": "0,1,2,3,4,5,6/1,3/2",
	"clouds":  "13,14,15,16,17,18,19,20,21,22,23,24,25,26/13,14,17,18,19/2",
	"amoeba":  "9,10,11,12,13,14,15,16,17,18,19,20,21,22,23,24,25,26/5,6,7,12,13,15/5",
}

// Preset returns the named rule text.
func Preset(name string) (string, bool) {
	text, ok := presets[name]
	return text, ok
}

// Presets lists the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
