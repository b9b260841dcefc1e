package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/hackhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresHackathonStore stores each hackathon as a JSONB document next to a
// few indexed columns used for filtering and the version used for
// compare-and-swap.
type PostgresHackathonStore struct {
	db *pgxpool.Pool
}

// NewPostgresHackathonStore constructs a PostgresHackathonStore.
func NewPostgresHackathonStore(db *pgxpool.Pool) *PostgresHackathonStore {
	return &PostgresHackathonStore{db: db}
}

// Create inserts a new hackathon document with version 1.
func (r *PostgresHackathonStore) Create(ctx context.Context, h *model.Hackathon) error {
	h.Version = 1
	doc, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encode hackathon: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO hackathons (id, organizer_id, is_approved, status, version, doc, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		h.ID, h.OrganizerID, h.IsApproved, string(h.Status), h.Version, doc, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert hackathon: %w", err)
	}
	return nil
}

// Get returns a single hackathon or ErrNotFound.
func (r *PostgresHackathonStore) Get(ctx context.Context, id string) (*model.Hackathon, error) {
	var (
		version int64
		doc     []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT version, doc FROM hackathons WHERE id = $1`,
		id,
	).Scan(&version, &doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get hackathon: %w", err)
	}
	return decodeHackathon(version, doc)
}

// List returns hackathons matching filter ordered by creation time descending.
func (r *PostgresHackathonStore) List(ctx context.Context, filter model.HackathonFilter) ([]model.Hackathon, error) {
	var (
		conds []string
		args  []any
	)
	if filter.ApprovedOnly {
		conds = append(conds, "is_approved")
	}
	if filter.OrganizerID != "" {
		args = append(args, filter.OrganizerID)
		conds = append(conds, fmt.Sprintf("organizer_id = $%d", len(args)))
	}
	if filter.MemberUserID != "" {
		asParticipant, err := json.Marshal(map[string]any{"participants": []string{filter.MemberUserID}})
		if err != nil {
			return nil, fmt.Errorf("encode participant filter: %w", err)
		}
		asMember, err := json.Marshal(map[string]any{
			"teams": []any{map[string]any{"members": []any{map[string]string{"user": filter.MemberUserID}}}},
		})
		if err != nil {
			return nil, fmt.Errorf("encode member filter: %w", err)
		}
		args = append(args, asParticipant, asMember)
		conds = append(conds, fmt.Sprintf("(doc @> $%d::jsonb OR doc @> $%d::jsonb)", len(args)-1, len(args)))
	}

	query := `SELECT version, doc FROM hackathons`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list hackathons: %w", err)
	}
	defer rows.Close()

	var out []model.Hackathon
	for rows.Next() {
		var (
			version int64
			doc     []byte
		)
		if err := rows.Scan(&version, &doc); err != nil {
			return nil, fmt.Errorf("scan hackathon: %w", err)
		}
		h, err := decodeHackathon(version, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

// CompareAndSwap writes updated only if the row still carries
// expectedVersion.
//
// The version predicate in the UPDATE makes the check and the write a single
// statement: two writers that read the same version cannot both match it,
// the loser sees zero affected rows and gets ErrVersionConflict.
func (r *PostgresHackathonStore) CompareAndSwap(ctx context.Context, id string, expectedVersion int64, updated *model.Hackathon) error {
	next := *updated
	next.Version = expectedVersion + 1
	doc, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("encode hackathon: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE hackathons
		 SET organizer_id = $3, is_approved = $4, status = $5, version = version + 1, doc = $6, updated_at = $7
		 WHERE id = $1 AND version = $2`,
		id, expectedVersion, next.OrganizerID, next.IsApproved, string(next.Status), doc, next.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update hackathon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM hackathons WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check hackathon: %w", err)
		}
		if !exists {
			return ErrNotFound
		}
		return ErrVersionConflict
	}

	updated.Version = next.Version
	return nil
}

// Delete removes a hackathon immediately.
func (r *PostgresHackathonStore) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM hackathons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete hackathon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeHackathon(version int64, doc []byte) (*model.Hackathon, error) {
	var h model.Hackathon
	if err := json.Unmarshal(doc, &h); err != nil {
		return nil, fmt.Errorf("decode hackathon: %w", err)
	}
	h.Version = version
	return &h, nil
}

// PostgresFeedbackStore handles persistence for feedback messages.
type PostgresFeedbackStore struct {
	db *pgxpool.Pool
}

// NewPostgresFeedbackStore constructs a PostgresFeedbackStore.
func NewPostgresFeedbackStore(db *pgxpool.Pool) *PostgresFeedbackStore {
	return &PostgresFeedbackStore{db: db}
}

const feedbackColumns = `id, name, email, subject, message, category, priority, status,
	admin_notes, resolved_by, resolved_at, created_at, updated_at`

func (r *PostgresFeedbackStore) Create(ctx context.Context, f *model.Feedback) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO feedback (`+feedbackColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		f.ID, f.Name, f.Email, f.Subject, f.Message, string(f.Category), string(f.Priority), string(f.Status),
		f.AdminNotes, f.ResolvedBy, f.ResolvedAt, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *PostgresFeedbackStore) Get(ctx context.Context, id string) (*model.Feedback, error) {
	row := r.db.QueryRow(ctx, `SELECT `+feedbackColumns+` FROM feedback WHERE id = $1`, id)
	f, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	return f, nil
}

func (r *PostgresFeedbackStore) List(ctx context.Context, filter model.FeedbackFilter) ([]model.Feedback, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+feedbackColumns+`
		 FROM feedback
		 WHERE ($1 = '' OR status = $1) AND ($2 = '' OR priority = $2)
		 ORDER BY created_at DESC`,
		string(filter.Status), string(filter.Priority),
	)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var out []model.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func (r *PostgresFeedbackStore) Update(ctx context.Context, f *model.Feedback) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE feedback
		 SET priority = $2, status = $3, admin_notes = $4, resolved_by = $5, resolved_at = $6, updated_at = $7
		 WHERE id = $1`,
		f.ID, string(f.Priority), string(f.Status), f.AdminNotes, f.ResolvedBy, f.ResolvedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresFeedbackStore) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanFeedback(row pgx.Row) (*model.Feedback, error) {
	var (
		f                          model.Feedback
		category, priority, status string
		resolvedAt                 *time.Time
	)
	err := row.Scan(&f.ID, &f.Name, &f.Email, &f.Subject, &f.Message, &category, &priority, &status,
		&f.AdminNotes, &f.ResolvedBy, &resolvedAt, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.Category = model.FeedbackCategory(category)
	f.Priority = model.FeedbackPriority(priority)
	f.Status = model.FeedbackStatus(status)
	f.ResolvedAt = resolvedAt
	return &f, nil
}
