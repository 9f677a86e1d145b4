package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("players").
		Where(Eq("team_id", int64(3)), Eq("position", "DEL")).
		OrderBy("id DESC").
		Limit(10).
		Offset(20).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM players WHERE team_id = $1 AND position = $2 ORDER BY id DESC LIMIT 10 OFFSET 20"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(3) || args[1] != "DEL" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_OrGroupAndCount(t *testing.T) {
	base := Select("*").
		From("players").
		Where(
			Or(ILike("name", Contains("ana")), ILike("position", Contains("ana")), Eq("number", 0)),
			In("team_id", []any{int64(1), int64(2)}),
		).
		OrderBy("name ASC", "id DESC").
		Limit(5)

	query, args, err := base.ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	wantQuery := "SELECT * FROM players WHERE (name ILIKE $1 OR position ILIKE $2 OR number = $3) AND team_id IN ($4, $5) ORDER BY name ASC, id DESC LIMIT 5"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 5 || args[0] != "%ana%" {
		t.Fatalf("unexpected args: %+v", args)
	}

	countQuery, countArgs, err := base.Count().ToSQL()
	if err != nil {
		t.Fatalf("build count query: %v", err)
	}
	wantCount := "SELECT COUNT(*) FROM players WHERE (name ILIKE $1 OR position ILIKE $2 OR number = $3) AND team_id IN ($4, $5)"
	if countQuery != wantCount {
		t.Fatalf("unexpected count query:\nwant: %s\ngot:  %s", wantCount, countQuery)
	}
	if len(countArgs) != len(args) {
		t.Fatalf("expected count args to match select args, got %+v", countArgs)
	}
}

func TestInEmptyForcesNoRows(t *testing.T) {
	query, args, err := Select("id").From("players").Where(In("team_id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM players WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestContainsEscapesWildcards(t *testing.T) {
	if got := Contains(`50%_off\`); got != `%50\%\_off\\%` {
		t.Fatalf("unexpected pattern: %s", got)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("players").Where(Eq("id", int64(9))).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM players WHERE id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != int64(9) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("players").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditioned delete")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("players").
		Columns("id", "name").
		Values("u1", "name-1").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO players (id, name) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "u1" || args[1] != "name-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("players").
		Set("name", "new").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "u1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE players SET name = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "new" || args[1] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_SkipsReadonlyColumns(t *testing.T) {
	type row struct {
		ID       int64   `db:"id,readonly"`
		Name     string  `db:"name"`
		PhotoURL *string `db:"photo_url"`
		internal string
	}

	query, args, err := InsertModel("players", row{ID: 4, Name: "Ana", internal: "x"}, "RETURNING id")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}
	if query != "INSERT INTO players (name, photo_url) VALUES ($1, $2) RETURNING id" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[0] != "Ana" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
