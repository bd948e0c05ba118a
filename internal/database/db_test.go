package database

import (
	"testing"

	"github.com/iliyamo/restaurant-reviews/internal/model"
)

func TestDialect(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@localhost/db", "postgres"},
		{"postgresql://u:p@localhost:5432/db?sslmode=disable", "postgres"},
		{"dbname=reviews host=db.example.com user=app password=secret", "postgres"},
		{"restaurants.db", "sqlite"},
		{"file::memory:?cache=shared", "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			if got := Dialect(tt.dsn); got != tt.want {
				t.Errorf("Dialect(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}

func TestOpenMigratesSQLite(t *testing.T) {
	db, err := Open("file::memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer Close(db)

	for _, m := range []any{&model.Restaurant{}, &model.Review{}} {
		if !db.Migrator().HasTable(m) {
			t.Errorf("table for %T not created", m)
		}
	}
	if !db.Migrator().HasColumn(&model.Review{}, "restaurant") {
		t.Error("review.restaurant column missing")
	}
}
