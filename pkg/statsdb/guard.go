package statsdb

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrQueryRejected means a statement failed the read-only guard. The original
// statement is never forwarded to SQLite once rejected.
var ErrQueryRejected = errors.New("query rejected by read-only guard")

// forbiddenKeywords are matched as whole words anywhere in the statement.
// CREATE/ATTACH/PRAGMA are blocked too: the stats databases are strictly
// read-only from the agent's point of view.
var forbiddenKeywords = []string{
	"INSERT", "UPDATE", "DELETE", "DROP", "ALTER", "CREATE",
	"REPLACE", "TRUNCATE", "ATTACH", "DETACH", "PRAGMA", "VACUUM", "REINDEX",
}

var wordPatterns = compileWordPatterns()

func compileWordPatterns() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(forbiddenKeywords))
	for _, kw := range forbiddenKeywords {
		m[kw] = regexp.MustCompile(`(?i)\b` + kw + `\b`)
	}
	return m
}

// GuardQuery validates that a statement is a single read-only SELECT.
// It rejects everything else: writes, DDL, pragmas, and stacked statements.
func GuardQuery(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fmt.Errorf("%w: empty statement", ErrQueryRejected)
	}

	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return fmt.Errorf("%w: only SELECT statements are allowed", ErrQueryRejected)
	}

	// A single trailing semicolon is tolerated; any other semicolon means a
	// second statement is stacked behind the first.
	body := strings.TrimSuffix(trimmed, ";")
	if strings.Contains(body, ";") {
		return fmt.Errorf("%w: multiple statements are not allowed", ErrQueryRejected)
	}

	for kw, pattern := range wordPatterns {
		if pattern.MatchString(body) {
			return fmt.Errorf("%w: statement contains %s", ErrQueryRejected, kw)
		}
	}
	return nil
}
