package querybuilder

import (
	"testing"
	"time"
)

type auditColumns struct {
	CreatedAt time.Time `db:"created_at"`
}

type tagRow struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name,omitempty"`
	Ignored  string `db:"-"`
	auditColumns
}

func TestInsertModel_FlattensEmbeddedColumns(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	query, args, err := InsertModel("play_style_tags", &tagRow{
		PublicID:     "tag-1",
		Name:         "ガチ",
		Ignored:      "x",
		auditColumns: auditColumns{CreatedAt: created},
	}, "ON CONFLICT (name) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO play_style_tags (public_id, name, created_at) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 || args[1] != "ガチ" || args[2] != created {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_Rejects(t *testing.T) {
	t.Parallel()

	var nilRow *tagRow
	type untagged struct{ Name string }

	tests := []struct {
		name  string
		model any
	}{
		{name: "nil pointer", model: nilRow},
		{name: "not a struct", model: "listing"},
		{name: "no columns", model: untagged{Name: "x"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := InsertModel("listings", tc.model, ""); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if _, _, err := InsertModels[tagRow]("play_style_tags", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}
