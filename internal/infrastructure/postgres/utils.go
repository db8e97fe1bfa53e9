package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/textnorm"
)

// psql builder de squirrel con placeholders $n.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// mapWriteError traduce las violaciones de constraints a errores de dominio.
func mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrInUse)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// searchCondition arma un OR de "contiene" sin acentos ni mayúsculas sobre las columnas.
// Devuelve nil si no hay término.
func searchCondition(term string, columns ...string) sq.Sqlizer {
	folded := textnorm.Fold(term)
	if folded == "" {
		return nil
	}
	pattern := textnorm.LikePattern(folded)
	or := make(sq.Or, 0, len(columns))
	for _, c := range columns {
		or = append(or, sq.Expr("lower(unaccent("+c+")) LIKE ?", pattern))
	}
	return or
}

// affectOne devuelve domain.ErrNotFound si la sentencia no modificó ninguna fila.
func affectOne(tag pgconn.CommandTag, what string, id any) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %v: %w", what, id, domain.ErrNotFound)
	}
	return nil
}

// count ejecuta el SELECT COUNT(*) del builder.
func count(ctx context.Context, q Querier, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return total, nil
}

// columns une una lista de columnas para un SELECT.
func columns(cols ...string) string {
	return strings.Join(cols, ", ")
}

// paginate aplica LIMIT/OFFSET cuando Limit > 0.
func paginate(b sq.SelectBuilder, limit, offset int) sq.SelectBuilder {
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}
	return b
}
