package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const maxTracedQueryLength = 512

var (
	queryWhitespace = regexp.MustCompile(`\s+`)
	queryLiteral    = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// dbTarget is a parsed DB_URL. Both URL and key=value DSNs are accepted.
type dbTarget struct {
	dsn  string
	name string
	host string
}

func parseDBTarget(raw string, disablePreparedBinary bool) dbTarget {
	raw = strings.TrimSpace(raw)
	target := dbTarget{dsn: raw}

	parsed, err := url.Parse(raw)
	if err == nil && parsed.Scheme != "" {
		target.name = strings.TrimPrefix(parsed.Path, "/")
		target.host = parsed.Host
		if disablePreparedBinary {
			query := parsed.Query()
			if query.Get("disable_prepared_binary_result") == "" {
				query.Set("disable_prepared_binary_result", "yes")
				parsed.RawQuery = query.Encode()
				target.dsn = parsed.String()
			}
		}
		return target
	}

	for _, token := range strings.Fields(raw) {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"'`)
		switch key {
		case "dbname":
			target.name = value
		case "host":
			target.host = value
		}
	}
	if disablePreparedBinary && !strings.Contains(raw, "disable_prepared_binary_result=") {
		target.dsn = raw + " disable_prepared_binary_result=yes"
	}
	return target
}

// formatQueryForTrace collapses whitespace, masks string literals and caps
// the length. Listing notes and invite links never reach span attributes.
func formatQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespace.ReplaceAllString(query, " ")
	normalized = queryLiteral.ReplaceAllString(normalized, "'?'")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}

func openDB(ctx context.Context, target dbTarget) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", target.dsn,
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("server.address", target.host),
		),
		otelsql.WithDBName(target.name),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", target.name, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database %q at %s: %w", target.name, target.host, err)
	}
	return db, nil
}
