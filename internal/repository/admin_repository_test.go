package repository

import (
	"errors"
	"strings"
	"testing"
)

func TestAllowedTables(t *testing.T) {
	tables := AllowedTables()
	if len(tables) != 5 {
		t.Fatalf("ожидали 5 таблиц, получили %d: %v", len(tables), tables)
	}

	want := map[string]bool{"work_experience": true, "projects": true, "tools": true, "skills": true, "gallery": true}
	for _, table := range tables {
		if !want[table] {
			t.Fatalf("неожиданная таблица в списке: %s", table)
		}
	}
}

func TestBuildInsert_DeterministicOrder(t *testing.T) {
	values := map[string]interface{}{
		"name":           "React.js",
		"category":       "frontend",
		"ai_description": "react framework",
	}

	query, args, err := buildInsert("tools", values)
	if err != nil {
		t.Fatalf("buildInsert не должен падать: %v", err)
	}

	// Колонки отсортированы по алфавиту независимо от порядка map.
	if !strings.Contains(query, "(ai_description, category, name)") {
		t.Fatalf("колонки не отсортированы: %q", query)
	}
	if !strings.Contains(query, "VALUES ($1, $2, $3)") {
		t.Fatalf("ожидали плейсхолдеры: %q", query)
	}
	if len(args) != 3 {
		t.Fatalf("ожидали 3 аргумента, получили %d", len(args))
	}
	if args[0] != "react framework" || args[1] != "frontend" || args[2] != "React.js" {
		t.Fatalf("аргументы не соответствуют колонкам: %v", args)
	}
	if !strings.HasSuffix(query, "RETURNING id") {
		t.Fatalf("запрос должен возвращать id: %q", query)
	}
}

func TestBuildInsert_UpsertByIdentifier(t *testing.T) {
	values := map[string]interface{}{
		"identifier":     "tool_react",
		"ai_description": "react framework",
		"name":           "React.js",
		"category":       "frontend",
	}

	query, _, err := buildInsert("tools", values)
	if err != nil {
		t.Fatalf("buildInsert не должен падать: %v", err)
	}

	if !strings.Contains(query, "ON CONFLICT (identifier) DO UPDATE SET") {
		t.Fatalf("ожидали upsert по identifier: %q", query)
	}
	if strings.Contains(query, "identifier = EXCLUDED.identifier") {
		t.Fatalf("identifier не должен перезаписываться: %q", query)
	}
	if !strings.Contains(query, "name = EXCLUDED.name") {
		t.Fatalf("остальные колонки должны обновляться: %q", query)
	}
	if !strings.Contains(query, "updated_at = NOW()") {
		t.Fatalf("upsert должен обновлять updated_at: %q", query)
	}
}

func TestBuildInsert_NoUpsertWithoutIdentifier(t *testing.T) {
	query, _, err := buildInsert("tools", map[string]interface{}{"name": "Docker"})
	if err != nil {
		t.Fatalf("buildInsert не должен падать: %v", err)
	}
	if strings.Contains(query, "ON CONFLICT") {
		t.Fatalf("без identifier upsert не нужен: %q", query)
	}
}

func TestBuildInsert_TableNotAllowed(t *testing.T) {
	_, _, err := buildInsert("users", map[string]interface{}{"name": "x"})
	if !errors.Is(err, ErrTableNotAllowed) {
		t.Fatalf("ожидали ErrTableNotAllowed, получили %v", err)
	}

	// SQL-инъекция в имени таблицы отбрасывается тем же путём.
	_, _, err = buildInsert("tools; DROP TABLE tools", map[string]interface{}{"name": "x"})
	if !errors.Is(err, ErrTableNotAllowed) {
		t.Fatalf("ожидали ErrTableNotAllowed, получили %v", err)
	}
}

func TestBuildInsert_ColumnNotAllowed(t *testing.T) {
	_, _, err := buildInsert("tools", map[string]interface{}{"id": 42})
	if !errors.Is(err, ErrColumnNotAllowed) {
		t.Fatalf("id не должен быть редактируемым, получили %v", err)
	}

	_, _, err = buildInsert("tools", map[string]interface{}{"name) VALUES ('x'); --": "инъекция"})
	if !errors.Is(err, ErrColumnNotAllowed) {
		t.Fatalf("ожидали ErrColumnNotAllowed, получили %v", err)
	}
}

func TestBuildInsert_EmptyValues(t *testing.T) {
	_, _, err := buildInsert("tools", map[string]interface{}{})
	if !errors.Is(err, ErrNoEditableValues) {
		t.Fatalf("ожидали ErrNoEditableValues, получили %v", err)
	}
}

func TestBuildUpdate(t *testing.T) {
	values := map[string]interface{}{
		"name":     "React.js",
		"category": "frontend",
	}

	query, args, err := buildUpdate("tools", 7, values)
	if err != nil {
		t.Fatalf("buildUpdate не должен падать: %v", err)
	}

	if !strings.Contains(query, "category = $1, name = $2, updated_at = NOW()") {
		t.Fatalf("неожиданный SET: %q", query)
	}
	if !strings.Contains(query, "WHERE id = $3") {
		t.Fatalf("id должен идти последним плейсхолдером: %q", query)
	}
	if len(args) != 3 || args[2] != int64(7) {
		t.Fatalf("неожиданные аргументы: %v", args)
	}
}

func TestBuildUpdate_TableNotAllowed(t *testing.T) {
	_, _, err := buildUpdate("sessions", 1, map[string]interface{}{"name": "x"})
	if !errors.Is(err, ErrTableNotAllowed) {
		t.Fatalf("ожидали ErrTableNotAllowed, получили %v", err)
	}
}

func TestNormalizeRow(t *testing.T) {
	row := map[string]interface{}{
		"name":  []byte("React.js"),
		"count": int64(3),
	}
	normalizeRow(row)

	if row["name"] != "React.js" {
		t.Fatalf("[]byte должен стать строкой: %v", row["name"])
	}
	if row["count"] != int64(3) {
		t.Fatalf("остальные значения не должны меняться: %v", row["count"])
	}
}
