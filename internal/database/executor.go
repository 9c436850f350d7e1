package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// Query executes a raw SurrealQL query with parameters and returns the rows of
// the first statement, unmarshalled into T.
//
// Example:
//
//	query := "SELECT * FROM tickets WHERE user_id = $user_id"
//	tickets, err := Query[domain.Ticket](ctx, db, query, map[string]any{"user_id": id})
func Query[T any](ctx context.Context, db *surrealdb.DB, query string, params map[string]any) ([]T, error) {
	if db == nil {
		return nil, NewDBError("query", ErrNotConnected)
	}
	queryResults, err := surrealdb.Query[[]T](ctx, db, query, params)
	if err != nil {
		return nil, NewDBError("query", fmt.Errorf("%w: %v", ErrQueryFailed, err)).WithQuery(query)
	}
	if queryResults == nil || len(*queryResults) == 0 {
		return nil, nil
	}
	first := (*queryResults)[0]
	if first.Status != "" && first.Status != "OK" {
		return nil, NewDBError("query", fmt.Errorf("%w: status %s", ErrQueryFailed, first.Status)).WithQuery(query)
	}
	return first.Result, nil
}

// QueryOne executes a query and returns a single result.
// If no results are found, it returns nil, nil.
func QueryOne[T any](ctx context.Context, db *surrealdb.DB, query string, params map[string]any) (*T, error) {
	// CREATE/UPDATE/UPSERT statements don't support LIMIT.
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") && !hasLimitClause(query) {
		query += " LIMIT 1"
	}

	results, err := Query[T](ctx, db, query, params)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// Execute runs statements whose results are not needed, such as DEFINE or DELETE.
func Execute(ctx context.Context, db *surrealdb.DB, query string, params map[string]any) error {
	if db == nil {
		return NewDBError("execute", ErrNotConnected)
	}
	results, err := surrealdb.Query[any](ctx, db, query, params)
	if err != nil {
		return NewDBError("execute", fmt.Errorf("%w: %v", ErrQueryFailed, err)).WithQuery(query)
	}
	if results != nil {
		for i, r := range *results {
			if r.Status != "" && r.Status != "OK" {
				return NewDBError("execute", fmt.Errorf("%w: statement %d status %s", ErrQueryFailed, i, r.Status)).WithQuery(query)
			}
		}
	}
	return nil
}

func hasLimitClause(query string) bool {
	query = " " + strings.ToUpper(query) + " "
	return strings.Contains(query, " LIMIT ")
}
