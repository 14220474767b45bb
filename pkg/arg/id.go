package arg

import (
	"fmt"
	"strconv"
	"strings"
)

func HandleID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("error: No prompt id given. Try again")
	}
	return ParseID(args[0])
}

func HandleIDs(args []string) ([]int64, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("error: No prompt ids given. Try again")
	}
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := ParseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid prompt id %q", s)
	}
	return id, nil
}

// HandleTags splits comma or space separated tag names.
func HandleTags(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := fields[:0]
	seen := map[string]bool{}
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
