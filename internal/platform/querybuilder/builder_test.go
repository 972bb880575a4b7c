package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("l.id", "COUNT(a.id)").
		From("listings l LEFT JOIN applications a ON a.listing_id = l.id").
		Where(Eq("l.owner_user_id", "u1"), Expr("NOT l.is_closed"), Expr("l.created_at > ?", "t0")).
		GroupBy("l.id").
		OrderBy("l.created_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT l.id, COUNT(a.id) FROM listings l LEFT JOIN applications a ON a.listing_id = l.id" +
		" WHERE l.owner_user_id = $1 AND NOT l.is_closed AND l.created_at > $2 GROUP BY l.id ORDER BY l.created_at DESC LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "u1" || args[1] != "t0" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInCondition(t *testing.T) {
	query, args, err := Select("user_id").From("profiles").Where(In("user_id", []any{"a", "b"})).ToSQL()
	if err != nil {
		t.Fatalf("build in query: %v", err)
	}
	if query != "SELECT user_id FROM profiles WHERE user_id IN ($1, $2)" || len(args) != 2 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}

	query, _, err = Select("user_id").From("profiles").Where(In("user_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build empty in query: %v", err)
	}
	if query != "SELECT user_id FROM profiles WHERE 1=0" {
		t.Fatalf("expected empty set to match nothing, got %q", query)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("play_style_tags").
		Columns("public_id", "name").
		Values("tag-1", "ガチ").
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO play_style_tags (public_id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "tag-1" || args[1] != "ガチ" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("listings").
		Set("is_closed", true).
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "l1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE listings SET is_closed = $1, updated_at = NOW() WHERE public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != true || args[1] != "l1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("listings").
		Where(Eq("id", "l1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM listings WHERE id = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "l1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("listings").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		ID     string `db:"id"`
		Status string `db:"status"`
		skip   string
	}

	query, args, err := InsertModels("result_notices", []row{
		{ID: "n1", Status: "selected"},
		{ID: "n2", Status: "rejected"},
	}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO result_notices (id, status) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "n2" || args[3] != "rejected" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
