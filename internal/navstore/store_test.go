package navstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/finsightapp/market-data-backend/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nav.db"))
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func strptr(s string) *string { return &s }

func TestStore_SaveLoad(t *testing.T) {
	t.Run("empty store loads nothing without error", func(t *testing.T) {
		store := openTestStore(t)

		records, fetchedAt, err := store.Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if records != nil || !fetchedAt.IsZero() {
			t.Errorf("Expected empty snapshot, got %d records at %v", len(records), fetchedAt)
		}
	})

	t.Run("round trips records in ingestion order", func(t *testing.T) {
		store := openTestStore(t)
		fetched := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)

		saved := []model.NavRecord{
			{SchemeCode: "101", SchemeName: "ABC Growth Fund", Nav: 45.67, NavDate: "01-Jan-2025",
				Category: strptr("Equity Scheme - Growth"), FundHouse: strptr("ABC Mutual Fund House")},
			{SchemeCode: "202", SchemeName: "XYZ Liquid Fund", Nav: 10.01, NavDate: "01-Jan-2025"},
		}
		if err := store.Save(saved, fetched); err != nil {
			t.Fatalf("Save() returned unexpected error: %v", err)
		}

		records, fetchedAt, err := store.Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(records))
		}
		if records[0].SchemeCode != "101" || records[1].SchemeCode != "202" {
			t.Errorf("Expected ingestion order preserved, got %+v", records)
		}
		if records[0].FundHouse == nil || *records[0].FundHouse != "ABC Mutual Fund House" {
			t.Errorf("Expected fund house round-tripped, got %v", records[0].FundHouse)
		}
		if records[1].Category != nil {
			t.Errorf("Expected nil category preserved, got %v", *records[1].Category)
		}
		if !fetchedAt.Equal(fetched) {
			t.Errorf("Expected fetched_at %v, got %v", fetched, fetchedAt)
		}
	})

	t.Run("save replaces the prior snapshot wholesale", func(t *testing.T) {
		store := openTestStore(t)

		first := []model.NavRecord{{SchemeCode: "101", SchemeName: "Old", Nav: 1, NavDate: "01-Jan-2025"}}
		if err := store.Save(first, time.Now()); err != nil {
			t.Fatalf("Save() returned unexpected error: %v", err)
		}

		second := []model.NavRecord{
			{SchemeCode: "202", SchemeName: "New A", Nav: 2, NavDate: "02-Jan-2025"},
			{SchemeCode: "303", SchemeName: "New B", Nav: 3, NavDate: "02-Jan-2025"},
		}
		if err := store.Save(second, time.Now()); err != nil {
			t.Fatalf("Save() returned unexpected error: %v", err)
		}

		records, _, err := store.Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if len(records) != 2 || records[0].SchemeCode != "202" {
			t.Errorf("Expected only the new snapshot, got %+v", records)
		}
	})
}
