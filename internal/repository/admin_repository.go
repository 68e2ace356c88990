package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Ошибки валидации админских запросов. Проверка выполняется до генерации SQL.
var (
	ErrTableNotAllowed  = errors.New("table not allowed")
	ErrColumnNotAllowed = errors.New("column not allowed")
	ErrNoEditableValues = errors.New("no editable values")
)

// editableColumns - статический allowlist таблиц и редактируемых колонок.
// Всё, чего здесь нет, через админку недоступно.
var editableColumns = map[string]map[string]bool{
	"work_experience": toSet(
		"identifier", "ai_description", "company_name", "position_title",
		"employment_type", "location", "start_date", "end_date", "is_current",
		"description", "achievements", "company_logo_url", "company_website",
		"display_order", "is_active",
	),
	"projects": toSet(
		"identifier", "ai_description", "title", "slug", "short_description",
		"full_description", "project_type", "status", "github_url", "live_demo_url",
		"featured_image_url", "tech_stack", "start_date", "end_date", "is_featured",
		"display_order", "is_active",
	),
	"tools": toSet(
		"identifier", "ai_description", "name", "category", "description",
		"icon_url", "website_url", "proficiency_level", "years_experience",
		"is_featured", "display_order", "is_active",
	),
	"skills": toSet(
		"identifier", "ai_description", "name", "category", "description",
		"proficiency_percentage", "skill_type", "is_featured", "display_order",
		"is_active",
	),
	"gallery": toSet(
		"identifier", "ai_description", "title", "description", "image_url",
		"alt_text", "category", "metadata", "project_id", "is_featured",
		"display_order", "is_active",
	),
}

func toSet(columns ...string) map[string]bool {
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}
	return set
}

// AllowedTables возвращает отсортированный список таблиц allowlist'а.
func AllowedTables() []string {
	tables := make([]string, 0, len(editableColumns))
	for t := range editableColumns {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	return tables
}

// AdminRepository выполняет CRUD по allowlist'у таблиц контента.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository создаёт экземпляр репозитория.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// List возвращает все строки таблицы, включая неактивные, в порядке
// display_order - админка показывает и скрытый контент.
func (r *AdminRepository) List(ctx context.Context, table string) ([]map[string]interface{}, error) {
	if _, ok := editableColumns[table]; !ok {
		return nil, fmt.Errorf("admin repository: %q: %w", table, ErrTableNotAllowed)
	}

	// Имя таблицы берётся строго из allowlist'а, подстановка безопасна.
	rows, err := r.db.QueryxContext(ctx, fmt.Sprintf(`SELECT * FROM %s ORDER BY display_order ASC, id ASC`, table))
	if err != nil {
		return nil, fmt.Errorf("admin repository: list %s %w", table, err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("admin repository: scan %s %w", table, err)
		}
		normalizeRow(row)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("admin repository: rows %s %w", table, err)
	}
	return result, nil
}

// Get возвращает одну строку таблицы по id.
func (r *AdminRepository) Get(ctx context.Context, table string, id int64) (map[string]interface{}, error) {
	if _, ok := editableColumns[table]; !ok {
		return nil, fmt.Errorf("admin repository: %q: %w", table, ErrTableNotAllowed)
	}

	rows, err := r.db.QueryxContext(ctx, fmt.Sprintf(`SELECT * FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return nil, fmt.Errorf("admin repository: get %s %w", table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("admin repository: get %s %w", table, err)
		}
		return nil, ErrItemNotFound
	}
	row := make(map[string]interface{})
	if err := rows.MapScan(row); err != nil {
		return nil, fmt.Errorf("admin repository: scan %s %w", table, err)
	}
	normalizeRow(row)
	return row, nil
}

// Insert вставляет строку. Если среди значений есть identifier, операция
// превращается в upsert по identifier: существующая строка обновляется.
func (r *AdminRepository) Insert(ctx context.Context, table string, values map[string]interface{}) (int64, error) {
	query, args, err := buildInsert(table, values)
	if err != nil {
		return 0, fmt.Errorf("admin repository: insert %s: %w", table, err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("admin repository: insert %s %w", table, err)
	}
	return id, nil
}

// Update обновляет редактируемые колонки строки по id.
func (r *AdminRepository) Update(ctx context.Context, table string, id int64, values map[string]interface{}) error {
	query, args, err := buildUpdate(table, id, values)
	if err != nil {
		return fmt.Errorf("admin repository: update %s: %w", table, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("admin repository: update %s %w", table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("admin repository: update %s rows affected %w", table, err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Delete удаляет строку по id.
func (r *AdminRepository) Delete(ctx context.Context, table string, id int64) error {
	if _, ok := editableColumns[table]; !ok {
		return fmt.Errorf("admin repository: %q: %w", table, ErrTableNotAllowed)
	}

	result, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("admin repository: delete %s %w", table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("admin repository: delete %s rows affected %w", table, err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// buildInsert генерирует параметризованный INSERT (или upsert по identifier).
// Порядок колонок детерминированный, значения только через плейсхолдеры.
func buildInsert(table string, values map[string]interface{}) (string, []interface{}, error) {
	columns, args, err := filterValues(table, values)
	if err != nil {
		return "", nil, err
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	if _, hasIdentifier := values["identifier"]; hasIdentifier {
		b.WriteString(" ON CONFLICT (identifier) DO UPDATE SET ")
		sets := make([]string, 0, len(columns))
		for _, col := range columns {
			if col == "identifier" {
				continue
			}
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
		sets = append(sets, "updated_at = NOW()")
		b.WriteString(strings.Join(sets, ", "))
	}

	b.WriteString(" RETURNING id")
	return b.String(), args, nil
}

// buildUpdate генерирует параметризованный UPDATE по id.
func buildUpdate(table string, id int64, values map[string]interface{}) (string, []interface{}, error) {
	columns, args, err := filterValues(table, values)
	if err != nil {
		return "", nil, err
	}

	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		table, strings.Join(sets, ", "), len(columns)+1)
	args = append(args, id)
	return query, args, nil
}

// filterValues проверяет таблицу и колонки по allowlist'у и возвращает
// детерминированно отсортированные пары колонка/значение.
func filterValues(table string, values map[string]interface{}) ([]string, []interface{}, error) {
	allowed, ok := editableColumns[table]
	if !ok {
		return nil, nil, fmt.Errorf("%q: %w", table, ErrTableNotAllowed)
	}

	columns := make([]string, 0, len(values))
	for col := range values {
		if !allowed[col] {
			return nil, nil, fmt.Errorf("%q: %w", col, ErrColumnNotAllowed)
		}
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		return nil, nil, ErrNoEditableValues
	}
	sort.Strings(columns)

	args := make([]interface{}, len(columns))
	for i, col := range columns {
		args[i] = values[col]
	}
	return columns, args, nil
}

// normalizeRow приводит []byte из MapScan к строкам, чтобы JSON-ответ
// не превращал текстовые колонки в base64.
func normalizeRow(row map[string]interface{}) {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
}
