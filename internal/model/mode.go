package model

import "strings"

// Mode is a separation mode offered to the operator.
type Mode int

const (
	// ModeFourStems splits into drums, bass, vocals and other. It is also the
	// mode used for any unrecognised choice.
	ModeFourStems Mode = iota

	// ModeTwoStems splits into one stem (vocals by default) and accompaniment.
	ModeTwoStems
)

// Menu tokens accepted from the operator.
const (
	TokenFourStems = "1"
	TokenTwoStems  = "2"
)

// DefaultMode is used when the operator's choice is not a known token.
const DefaultMode = ModeFourStems

// ParseMode maps a menu token to a Mode.
//
// Surrounding whitespace is ignored. The second return value is false when
// the token is not recognised, in which case DefaultMode is returned.
func ParseMode(token string) (Mode, bool) {
	switch strings.TrimSpace(token) {
	case TokenFourStems:
		return ModeFourStems, true
	case TokenTwoStems:
		return ModeTwoStems, true
	default:
		return DefaultMode, false
	}
}

// Token returns the menu token that selects m.
func (m Mode) Token() string {
	if m == ModeTwoStems {
		return TokenTwoStems
	}
	return TokenFourStems
}

// String returns a human readable description used in menus and summaries.
func (m Mode) String() string {
	switch m {
	case ModeTwoStems:
		return "2-stems (vocals and accompaniment)"
	default:
		return "Default (4 stems: drums, bass, vocals, other)"
	}
}

// Modes lists the selectable modes in menu order.
func Modes() []Mode {
	return []Mode{ModeFourStems, ModeTwoStems}
}
