package helpers

import (
	"database/sql"
	"strings"
)

// GetNullInt64 converts an optional id to sql.NullInt64; nil and zero become NULL.
func GetNullInt64(i *int64) sql.NullInt64 {
	if i == nil || *i == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

// Int64Ptr converts a scanned sql.NullInt64 back to an optional id
func Int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

// LikePattern builds a case-insensitive substring pattern for LIKE,
// escaping the wildcard characters a user may type. Use with ESCAPE '\'.
func LikePattern(query string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.ToLower(strings.TrimSpace(query))) + "%"
}
