package strcoll

import (
	"sort"
)

func Nth(nth int, slice []string) string {
	if slice != nil && len(slice) > nth {
		return slice[nth]
	}
	return ""
}

func Rest(nth int, slice []string) []string {
	if slice != nil && len(slice) > nth {
		return slice[nth:]
	}
	return make([]string, 0)
}

// returns true if s is contained in xs
func Contains(s string, xs []string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// returns the keys of m, sorted
func Keys(m map[string]interface{}) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
