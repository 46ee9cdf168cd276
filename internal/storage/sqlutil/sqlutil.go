// Package sqlutil holds the column encodings shared by the SQL backends.
package sqlutil

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/ventureboard/internal/models"
)

// FormatTime renders t for a TEXT column. The zero time is stored as "".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime reverses FormatTime.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// EncodeStrings stores a string list as a JSON array.
func EncodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodeStrings(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(s), &values); err != nil {
		return nil, fmt.Errorf("invalid string list %q: %w", s, err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

// EncodeAsset returns the investment kind and its JSON details column.
func EncodeAsset(asset models.Asset) (string, string, error) {
	if asset == nil {
		return "", "", fmt.Errorf("investment has no asset details")
	}
	b, err := json.Marshal(asset)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal %s details: %w", asset.Kind(), err)
	}
	return string(asset.Kind()), string(b), nil
}

// DecodeAsset rebuilds the asset stored in a kind/details pair.
func DecodeAsset(kind, details string) (models.Asset, error) {
	if details == "" {
		details = "{}"
	}
	return models.DecodeAsset(models.InvestmentKind(kind), func(v interface{}) error {
		return json.Unmarshal([]byte(details), v)
	})
}

// NotFound wraps models.ErrNotFound with the record kind and key.
func NotFound(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, models.ErrNotFound)
}

// ExpectAffected turns a statement that touched no rows into NotFound.
func ExpectAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return NotFound(what, id)
	}
	return nil
}
