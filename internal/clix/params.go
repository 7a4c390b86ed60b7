package clix

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

type PaginationParams struct {
	Limit  int
	Offset int
}

func ParsePagination(flags *pflag.FlagSet) (PaginationParams, error) {
	limit, _ := flags.GetInt("limit")
	offset, _ := flags.GetInt("offset")
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		return PaginationParams{}, errors.New("--offset must not be negative")
	}
	return PaginationParams{Limit: limit, Offset: offset}, nil
}

// ParseTags reads the comma-separated --tags flag plus any extra arguments
// as tags. Blank entries are dropped.
func ParseTags(flags *pflag.FlagSet, extra ...string) ([]string, error) {
	tagsStr, _ := flags.GetString("tags")
	var tags []string
	for _, raw := range append(strings.Split(tagsStr, ","), extra...) {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags, nil
}

// TextFromArgs joins args with spaces. With no args, or a single "-", the
// text is read from stdin instead.
func TextFromArgs(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		if stdin == nil {
			return "", errors.New("no text given")
		}
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	return strings.Join(args, " "), nil
}
