// Package bizno validates Korean business registration numbers (사업자등록번호).
package bizno

import (
	"context"
	"strings"

	"github.com/justsurfingit/senior-job-match/internal/common"
)

// Length is the number of digits in a registration number.
const Length = 10

var weights = [9]int{1, 3, 7, 1, 3, 7, 1, 3, 5}

// Registry looks a number up in an authoritative business registry.
// No implementation ships with this module; Verify only checks the checksum.
type Registry interface {
	Lookup(ctx context.Context, number string) (active bool, err error)
}

// Normalize strips every non-digit character.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Verify returns nil when s holds a checksum-valid registration number.
// Separators are ignored.
func Verify(s string) error {
	digits := Normalize(s)
	if len(digits) != Length {
		return common.NewError(common.CodeInvalidLength, "business number must have 10 digits", nil)
	}
	if checkDigit(digits) != int(digits[9]-'0') {
		return common.NewError(common.CodeChecksumMismatch, "business number checksum does not match", nil)
	}
	return nil
}

// Valid is Verify as a predicate.
func Valid(s string) bool {
	return Verify(s) == nil
}

// Format renders a number as 000-00-00000. Input that is not 10 digits is
// returned as its digits only.
func Format(s string) string {
	digits := Normalize(s)
	if len(digits) != Length {
		return digits
	}
	return digits[:3] + "-" + digits[3:5] + "-" + digits[5:]
}

// checkDigit expects exactly 10 ASCII digits.
func checkDigit(digits string) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	sum += int(digits[8]-'0') * 5 / 10
	return (10 - sum%10) % 10
}
