package httputil

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ValidateAddress checks if a string is a 20-byte hex address, with or without
// the 0x prefix.
func ValidateAddress(address string) bool {
	return common.IsHexAddress(strings.TrimSpace(address))
}

// ValidateAddresses returns the first invalid address of the list, if any.
func ValidateAddresses(addresses []string) (string, bool) {
	for _, a := range addresses {
		if !ValidateAddress(a) {
			return a, false
		}
	}
	return "", true
}

// Token ids are uint256 values in decimal notation.
var tokenIDRegex = regexp.MustCompile(`^[0-9]{1,78}$`)

// ValidateTokenID checks if a string is a decimal token id.
func ValidateTokenID(id string) bool {
	return tokenIDRegex.MatchString(strings.TrimSpace(id))
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsNotEmpty checks if a string is not empty after trimming whitespace.
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}
