package ui

import (
	"voxel-ca/internal/rule"
)

const maxRuleRunes = 160

// RuleField is the HUD's single-line editor for rule text. Only the
// characters a rule can contain are accepted.
type RuleField struct {
	text    []rune
	focused bool
}

// Focus starts editing with current as the initial text.
func (f *RuleField) Focus(current string) {
	f.text = append(f.text[:0], []rune(current)...)
	f.focused = true
}

// Blur stops editing and keeps the draft.
func (f *RuleField) Blur() { f.focused = false }

// Focused reports whether keystrokes go to the field.
func (f *RuleField) Focused() bool { return f.focused }

// Text returns the draft.
func (f *RuleField) Text() string { return string(f.text) }

// Insert appends typed characters, dropping anything outside digits, ','
// and '/'.
func (f *RuleField) Insert(rs []rune) {
	if !f.focused {
		return
	}
	for _, r := range rs {
		if len(f.text) >= maxRuleRunes {
			return
		}
		if (r >= '0' && r <= '9') || r == ',' || r == '/' {
			f.text = append(f.text, r)
		}
	}
}

// Backspace removes the last character.
func (f *RuleField) Backspace() {
	if !f.focused || len(f.text) == 0 {
		return
	}
	f.text = f.text[:len(f.text)-1]
}

// Check parses the draft without applying it.
func (f *RuleField) Check() error {
	_, err := rule.Parse(f.Text())
	return err
}

// Pending reports whether the draft is a valid rule that differs from
// active, i.e. whether Enter would change the running rule.
func (f *RuleField) Pending(active rule.Rule) bool {
	if !f.focused {
		return false
	}
	r, err := rule.Parse(f.Text())
	return err == nil && !r.Equal(active)
}
