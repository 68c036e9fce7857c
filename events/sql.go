// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aclements/go-gg/table"
)

// Driver returns the database/sql driver name for dsn. Postgres URLs
// use "postgres" (github.com/lib/pq). Everything else is taken to be
// a SQLite file name or file: URI and uses "sqlite"
// (modernc.org/sqlite). The caller must import the driver.
func Driver(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

// Open opens and pings the database named by dsn.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(Driver(dsn), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", Driver(dsn), err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s database: %w", Driver(dsn), err)
	}
	return db, nil
}

// Query runs query on db and returns the result set as an event
// table. Column values are typed as for ReadCSV; NULL is read as the
// empty string.
func Query(ctx context.Context, db *sql.DB, query string, args ...interface{}) (*table.Table, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var records [][]string
	vals := make([]sql.NullString, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		record := make([]string, len(cols))
		for i, v := range vals {
			record[i] = v.String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return FromStrings(cols, records, nil)
}
