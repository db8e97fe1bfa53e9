package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/repository"
)

var (
	_ repository.SocietyRepository     = (*SocietyRepo)(nil)
	_ repository.UserSocietyRepository = (*UserSocietyRepo)(nil)
)

const societyColumns = "id, code, cuit, description, created_at, updated_at, deleted_at"

// SocietyRepo implementación del puerto SocietyRepository sobre PostgreSQL.
type SocietyRepo struct {
	q Querier
}

// NewSocietyRepository construye el adaptador de persistencia para sociedades.
func NewSocietyRepository(q Querier) *SocietyRepo {
	return &SocietyRepo{q: q}
}

func scanSociety(row pgx.Row) (*entity.Society, error) {
	var s entity.Society
	err := row.Scan(&s.ID, &s.Code, &s.CUIT, &s.Description, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt)
	return &s, err
}

func (r *SocietyRepo) Create(ctx context.Context, s *entity.Society) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO societies (code, cuit, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.Code, s.CUIT, s.Description, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return mapWriteError("insert society", err)
	}
	return nil
}

func (r *SocietyRepo) GetByID(ctx context.Context, id int64) (*entity.Society, error) {
	return getOne(ctx, r.q, "get society",
		`SELECT `+societyColumns+` FROM societies WHERE id = $1 AND deleted_at IS NULL`, scanSociety, id)
}

func (r *SocietyRepo) GetByCode(ctx context.Context, code string) (*entity.Society, error) {
	return getOne(ctx, r.q, "get society by code",
		`SELECT `+societyColumns+` FROM societies WHERE code = $1 AND deleted_at IS NULL`, scanSociety, code)
}

func (r *SocietyRepo) GetByCUIT(ctx context.Context, cuit string) (*entity.Society, error) {
	return getOne(ctx, r.q, "get society by cuit",
		`SELECT `+societyColumns+` FROM societies WHERE cuit = $1 AND deleted_at IS NULL`, scanSociety, cuit)
}

func (r *SocietyRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Society, int, error) {
	where := sq.And{sq.Eq{"deleted_at": nil}}
	if cond := searchCondition(p.Search, "code", "description"); cond != nil {
		where = append(where, cond)
	}
	total, err := count(ctx, r.q, psql.Select("COUNT(*)").From("societies").Where(where))
	if err != nil {
		return nil, 0, fmt.Errorf("list societies: %w", err)
	}
	query, args, err := paginate(psql.Select(societyColumns).From("societies").Where(where).OrderBy("code"), p.Limit, p.Offset).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list societies: %w", err)
	}
	out, err := querySocieties(ctx, r.q, query, args...)
	return out, total, err
}

func (r *SocietyRepo) Update(ctx context.Context, s *entity.Society) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE societies SET code = $2, cuit = $3, description = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL`,
		s.ID, s.Code, s.CUIT, s.Description, s.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update society", err)
	}
	return affectOne(tag, "sociedad", s.ID)
}

// Delete baja lógica.
func (r *SocietyRepo) Delete(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE societies SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("delete society: %w", err)
	}
	return affectOne(tag, "sociedad", id)
}

func querySocieties(ctx context.Context, q Querier, query string, args ...any) ([]*entity.Society, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query societies: %w", err)
	}
	defer rows.Close()
	var out []*entity.Society
	for rows.Next() {
		s, err := scanSociety(rows)
		if err != nil {
			return nil, fmt.Errorf("scan society: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ─── Asignaciones usuario-sociedad ──────────────────────────────────────────

const assignmentColumns = "id, user_id, society_id, created_at"

// UserSocietyRepo implementación del puerto UserSocietyRepository sobre PostgreSQL.
type UserSocietyRepo struct {
	q Querier
}

// NewUserSocietyRepository construye el adaptador de persistencia para asignaciones.
func NewUserSocietyRepository(q Querier) *UserSocietyRepo {
	return &UserSocietyRepo{q: q}
}

func scanAssignment(row pgx.Row) (*entity.UserSocietyAssignment, error) {
	var a entity.UserSocietyAssignment
	err := row.Scan(&a.ID, &a.UserID, &a.SocietyID, &a.CreatedAt)
	return &a, err
}

func (r *UserSocietyRepo) Create(ctx context.Context, a *entity.UserSocietyAssignment) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO user_societies (user_id, society_id, created_at)
		VALUES ($1, $2, $3) RETURNING id`,
		a.UserID, a.SocietyID, a.CreatedAt,
	).Scan(&a.ID)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("sociedad %d: %w", a.SocietyID, domain.ErrNotFound)
	}
	if err != nil {
		return mapWriteError("insert user society", err)
	}
	return nil
}

func (r *UserSocietyRepo) GetByID(ctx context.Context, id int64) (*entity.UserSocietyAssignment, error) {
	return getOne(ctx, r.q, "get user society",
		`SELECT `+assignmentColumns+` FROM user_societies WHERE id = $1`, scanAssignment, id)
}

func (r *UserSocietyRepo) Exists(ctx context.Context, userID string, societyID int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_societies WHERE user_id = $1 AND society_id = $2)`,
		userID, societyID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists user society: %w", err)
	}
	return ok, nil
}

func (r *UserSocietyRepo) ListByUser(ctx context.Context, userID string) ([]*entity.UserSocietyAssignment, error) {
	return r.list(ctx, `SELECT `+assignmentColumns+` FROM user_societies WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *UserSocietyRepo) ListBySociety(ctx context.Context, societyID int64) ([]*entity.UserSocietyAssignment, error) {
	return r.list(ctx, `SELECT `+assignmentColumns+` FROM user_societies WHERE society_id = $1 ORDER BY id`, societyID)
}

// ListSocietiesByUser devuelve las sociedades vivas asignadas al usuario.
func (r *UserSocietyRepo) ListSocietiesByUser(ctx context.Context, userID string) ([]*entity.Society, error) {
	return querySocieties(ctx, r.q, `
		SELECT s.id, s.code, s.cuit, s.description, s.created_at, s.updated_at, s.deleted_at
		FROM societies s
		JOIN user_societies us ON us.society_id = s.id
		WHERE us.user_id = $1 AND s.deleted_at IS NULL
		ORDER BY s.code`, userID)
}

func (r *UserSocietyRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM user_societies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user society: %w", err)
	}
	return affectOne(tag, "asignación", id)
}

func (r *UserSocietyRepo) list(ctx context.Context, query string, arg any) ([]*entity.UserSocietyAssignment, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list user societies: %w", err)
	}
	defer rows.Close()
	var out []*entity.UserSocietyAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user society: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
