package geoassist

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goforj/geoassist/geocore"
	"github.com/goforj/geoassist/storetest"
)

func newSQLiteStore(t *testing.T, dsn, prefix string) Store {
	t.Helper()
	store, err := newSQLStore(context.Background(), StoreConfig{
		BaseConfig:    geocore.BaseConfig{Prefix: prefix, Retention: time.Minute},
		SQLDriverName: "sqlite",
		SQLDSN:        dsn,
		SQLTable:      "geoassist_entries",
	})
	if err != nil {
		t.Fatalf("sqlite store create failed: %v", err)
	}
	return store
}

func TestSQLStoreContractSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "geoassist.db")
	storetest.RunStoreContract(t, newSQLiteStore(t, dsn, "geoassist"), storetest.Options{
		Retention: 20 * time.Millisecond,
		Wait:      time.Second,
		Neighbor:  newSQLiteStore(t, dsn, "other"),
	})
}

func TestSQLStoreDialectStatements(t *testing.T) {
	pg := &sqlStore{driverName: "pgx", table: "t"}
	if !strings.Contains(pg.upsertSQL(), "ON CONFLICT") || !strings.Contains(pg.upsertSQL(), "$5") {
		t.Fatalf("expected postgres upsert with numbered placeholders, got %q", pg.upsertSQL())
	}
	my := &sqlStore{driverName: "mysql", table: "t"}
	if !strings.Contains(my.upsertSQL(), "ON DUPLICATE KEY UPDATE") {
		t.Fatalf("expected mysql upsert, got %q", my.upsertSQL())
	}
	lite := &sqlStore{driverName: "sqlite", table: "t"}
	if lite.ph(3) != "?" || lite.dialect() != "sqlite" {
		t.Fatalf("expected sqlite placeholders")
	}
}

func TestSQLStoreConstructionErrors(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		cfg  StoreConfig
	}{
		{name: "missing dsn", cfg: StoreConfig{SQLDriverName: "sqlite", SQLTable: "t"}},
		{name: "bad table", cfg: StoreConfig{SQLDriverName: "sqlite", SQLDSN: "x", SQLTable: "drop table;"}},
		{name: "ping", cfg: StoreConfig{SQLDriverName: "pingfail", SQLDSN: "x", SQLTable: "t"}},
		{name: "schema", cfg: StoreConfig{SQLDriverName: "pgfail", SQLDSN: "x", SQLTable: "t"}},
		{name: "prepare", cfg: StoreConfig{SQLDriverName: "pgfake", SQLDSN: "x", SQLTable: "t"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := newSQLStore(ctx, tc.cfg); err == nil {
				t.Fatalf("expected construction error")
			}
		})
	}
}

func TestValidateSQLTableName(t *testing.T) {
	for _, name := range []string{"entries", "geo.entries", "_t1"} {
		if err := validateSQLTableName(name); err != nil {
			t.Fatalf("expected %q valid: %v", name, err)
		}
	}
	for _, name := range []string{"", " ", "1abc", "a-b", "a.b.c;"} {
		if err := validateSQLTableName(name); err == nil {
			t.Fatalf("expected %q invalid", name)
		}
	}
}
