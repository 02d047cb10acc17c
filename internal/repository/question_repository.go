package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crud-backends/internal/domain"
)

// QuestionFilter narrows question listings. A non-positive Limit returns every match.
type QuestionFilter struct {
	CategoryID *int64
	SearchTerm *string
	ExcludeIDs []int64
	Limit      int
	Offset     int
}

// QuestionRepository encapsulates question persistence.
type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Question, error)
	ListWithFilter(ctx context.Context, filter QuestionFilter) ([]domain.Question, error)
	Count(ctx context.Context, filter QuestionFilter) (int, error)
}

type questionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository instantiates repository.
func NewQuestionRepository(pool *pgxpool.Pool) QuestionRepository {
	return &questionRepository{pool: pool}
}

func (r *questionRepository) Create(ctx context.Context, q *domain.Question) error {
	const query = `
        INSERT INTO questions (question, answer, category, difficulty)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	return r.pool.QueryRow(ctx, query, q.Question, q.Answer, q.Category, q.Difficulty).Scan(&q.ID)
}

func (r *questionRepository) Delete(ctx context.Context, id int64) error {
	return expectRows(r.pool.Exec(ctx, `DELETE FROM questions WHERE id=$1`, id))
}

func (r *questionRepository) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	const query = `SELECT id, question, answer, category, difficulty FROM questions WHERE id=$1`
	var q domain.Question
	if err := r.pool.QueryRow(ctx, query, id).Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) ListWithFilter(ctx context.Context, filter QuestionFilter) ([]domain.Question, error) {
	where, args := questionWhere(filter)
	query := `SELECT id, question, answer, category, difficulty FROM questions WHERE ` + where + ` ORDER BY id`
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (r *questionRepository) Count(ctx context.Context, filter QuestionFilter) (int, error) {
	where, args := questionWhere(filter)
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE `+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func questionWhere(filter QuestionFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, likePattern(*filter.SearchTerm))
		clauses = append(clauses, fmt.Sprintf("question ILIKE $%d", len(args)))
	}
	if len(filter.ExcludeIDs) > 0 {
		args = append(args, filter.ExcludeIDs)
		clauses = append(clauses, fmt.Sprintf("NOT (id = ANY($%d))", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func scanQuestions(rows pgx.Rows) ([]domain.Question, error) {
	var result []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	return result, rows.Err()
}
