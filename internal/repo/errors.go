package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrCategoryNotFound: штора ссылается на несуществующую категорию.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryInUse: у категории ещё есть шторы, удалять нельзя.
	ErrCategoryInUse = errors.New("category has curtains")
)

// isForeignKeyViolation распознаёт нарушение внешнего ключа.
// PostgreSQL переводится gorm в ErrForeignKeyViolated, у modernc SQLite остаётся только текст ошибки.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
