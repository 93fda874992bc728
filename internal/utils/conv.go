package utils

import (
	"strconv"
	"strings"
)

// StringToUint converts a surrogate key arriving as a wire string, returns 0
// if it is not a valid key (generated keys start at 1)
func StringToUint(s string) uint {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
