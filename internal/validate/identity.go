// Package validate normalizes and checks user-supplied identity and money input.
package validate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// IdentityLength is the number of digits in a valid mobile number.
const IdentityLength = 10

// NormalizeIdentity strips every non-digit from the string form of raw and
// returns the result when it is exactly IdentityLength digits long. Numeric
// input is rendered without exponent notation first. ok is false for anything
// that does not normalize; callers treat that as invalid input, not a failure.
func NormalizeIdentity(raw any) (string, bool) {
	s, ok := identityText(raw)
	if !ok {
		return "", false
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if len(digits) != IdentityLength {
		return "", false
	}
	return digits, true
}

func identityText(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case []byte:
		return string(v), true
	default:
		return fmt.Sprint(v), true
	}
}
