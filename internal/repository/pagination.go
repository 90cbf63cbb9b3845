package repository

import (
	"math"
	"strings"

	"gorm.io/gorm"
)

const defaultOrder = "created_at DESC, id DESC"

// applyPagination 应用分页窗口，非法页码按第一页处理
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	// keep the offset representable; such a window is empty anyway
	if maxPage := math.MaxInt / pageSize; page > maxPage {
		page = maxPage
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern that matches term literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// anyColumnContains returns "LOWER(a) LIKE ? ESCAPE '\' OR ..." with one argument per column.
func anyColumnContains(columns []string, term string) (string, []interface{}) {
	pattern := containsPattern(term)
	parts := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		parts[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
		args[i] = pattern
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}
