package telemetry

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type queryStartKey struct{}

// markQueryStart stores the statement start time in its context
func markQueryStart(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	db.Statement.Context = context.WithValue(ctx, queryStartKey{}, time.Now())
}

// queryElapsed returns the time since markQueryStart, or false when unset
func queryElapsed(db *gorm.DB) (time.Duration, bool) {
	if db.Statement.Context == nil {
		return 0, false
	}
	start, ok := db.Statement.Context.Value(queryStartKey{}).(time.Time)
	if !ok {
		return 0, false
	}
	return time.Since(start), true
}

// registerAround registers name:before_* and name:after_* callbacks around
// every gorm processor. after receives the SQL verb of the statement.
func registerAround(db *gorm.DB, name string, after func(db *gorm.DB, operation string)) error {
	fixed := func(op string) func(*gorm.DB) {
		return func(db *gorm.DB) { after(db, op) }
	}
	detected := func(db *gorm.DB) {
		after(db, detectOperationType(db.Statement.SQL.String()))
	}

	cb := db.Callback()
	for _, err := range []error{
		cb.Create().Before("gorm:create").Register(name+":before_create", markQueryStart),
		cb.Query().Before("gorm:query").Register(name+":before_query", markQueryStart),
		cb.Update().Before("gorm:update").Register(name+":before_update", markQueryStart),
		cb.Delete().Before("gorm:delete").Register(name+":before_delete", markQueryStart),
		cb.Row().Before("gorm:row").Register(name+":before_row", markQueryStart),
		cb.Raw().Before("gorm:raw").Register(name+":before_raw", markQueryStart),

		cb.Create().After("gorm:create").Register(name+":after_create", fixed("INSERT")),
		cb.Query().After("gorm:query").Register(name+":after_query", fixed("SELECT")),
		cb.Update().After("gorm:update").Register(name+":after_update", fixed("UPDATE")),
		cb.Delete().After("gorm:delete").Register(name+":after_delete", fixed("DELETE")),
		cb.Row().After("gorm:row").Register(name+":after_row", detected),
		cb.Raw().After("gorm:raw").Register(name+":after_raw", detected),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// detectOperationType reads the SQL verb of a raw statement
func detectOperationType(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	for _, verb := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, verb) {
			return verb
		}
	}
	return "OTHER"
}
