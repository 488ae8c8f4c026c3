// Package scan splits printf templates into literal text and conversions.
//
// A conversion follows the C grammar
//
//	%[+- #0]*[0-9]*(.[0-9]*)?(hh|h|l|ll|j|z|t|L)?[diuoxXfFeEgGaAcsp?]
//
// where '?' is a placeholder type asking the substituter to use the
// argument's default length and type character. "%%" is literal text and is
// collapsed to a single '%' in Info.Prefix.
package scan
