package sqlstore

import (
	"strconv"
	"strings"

	"github.com/pratik-mahalle/streamvault/internal/config"
)

// dialect smooths over placeholder and insert differences between drivers.
// Queries are written with ? placeholders.
type dialect string

func (d dialect) rebind(query string) string {
	if d != config.DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// supportsLastInsertID reports whether sql.Result.LastInsertId works for the driver
func (d dialect) supportsLastInsertID() bool {
	return d != config.DriverPostgres
}

// searchClause returns the WHERE fragment for a case-insensitive client name
// search. SQLite's LOWER and LIKE fold ASCII only, so the sqlite dialect
// returns "" and the search runs in Go over the scanned rows.
func (d dialect) searchClause() string {
	switch d {
	case config.DriverSQLite:
		return ""
	case config.DriverPostgres:
		return "client_name ILIKE ? ESCAPE '" + string(likeEscape) + "'"
	}
	return "LOWER(client_name) LIKE ? ESCAPE '" + string(likeEscape) + "'"
}

// likeEscape is the escape character used in LIKE patterns
const likeEscape = '!'

// containsPattern builds a lower-cased LIKE pattern matching s anywhere,
// with LIKE metacharacters in s taken literally
func containsPattern(s string) string {
	var b strings.Builder
	b.WriteByte('%')
	for _, r := range strings.ToLower(s) {
		switch r {
		case '%', '_', likeEscape:
			b.WriteRune(likeEscape)
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}
