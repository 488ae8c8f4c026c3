package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only failed spans
	LevelPhase               // runs and formatting calls
	LevelDetail              // plus conversions
	LevelDebug               // plus engine attempts
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

// deepest scope each level admits for ordinary events
var levelScope = [...]Scope{
	LevelPhase:  ScopeCall,
	LevelDetail: ScopeSpec,
	LevelDebug:  ScopeRender,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the level names case-insensitively.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for l, n := range levelNames {
		if n == name {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether ordinary events of scope pass at this level.
// Failures are reported separately through ShouldEmitFailure.
func (l Level) ShouldEmit(scope Scope) bool {
	if l < LevelPhase || int(l) >= len(levelScope) {
		return false
	}
	return scope <= levelScope[l]
}

// ShouldEmitFailure reports whether a failed span of scope is recorded.
func (l Level) ShouldEmitFailure(scope Scope) bool {
	return l == LevelError || l.ShouldEmit(scope)
}
