package psqlbuilder

import "github.com/Masterminds/squirrel"

// Dialect SQL-диалект хранилища
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// For возвращает построитель запросов с плейсхолдерами нужного диалекта
// Postgres: $1, $2...; SQLite: ?
func For(d Dialect) squirrel.StatementBuilderType {
	if d == SQLite {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// SupportsRowLocks возвращает true, если диалект поддерживает SELECT ... FOR UPDATE
func (d Dialect) SupportsRowLocks() bool {
	return d == Postgres
}

// Valid проверяет, что диалект поддерживается
func (d Dialect) Valid() bool {
	return d == Postgres || d == SQLite
}
