package repositories

import (
	"strings"

	"catalog/internal/models"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func searchScope(search string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		pattern := containsPattern(search)
		conds := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			conds[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
			args[i] = pattern
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// Sortable fields exposed by the API, mapped to their columns.
var (
	namedSortColumns = map[string]string{
		"name":      "name",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
	productSortColumns = map[string]string{
		"name":      "name",
		"category":  "category",
		"price":     "price",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
)

func sortColumn(field string, allowed map[string]string) string {
	if col, ok := allowed[field]; ok {
		return col
	}
	return "created_at"
}

func orderScope(q models.ListQuery, allowed map[string]string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		dir := "DESC"
		if q.SortOrder == "asc" {
			dir = "ASC"
		}
		return db.Order(sortColumn(q.SortBy, allowed) + " " + dir).Order("id " + dir)
	}
}

func pageScope(q models.ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(q.Offset()).Limit(q.Limit)
	}
}

func nameTaken(tx *gorm.DB, model any, key, exceptID string) (bool, error) {
	var n int64
	q := tx.Model(model).Where("name_key = ?", key)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
