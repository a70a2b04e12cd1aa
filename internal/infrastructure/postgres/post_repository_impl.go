package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/internal/domain/pagination"
	"github.com/chirper-app/chirper/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// extendedCols is the projection shared by every ExtendedPost query.
// p must alias the posts row, u the author row.
const extendedCols = `
	p.id, p.author_id, p.content, p.images, p.post_type, p.parent_id, p.created_at, p.updated_at,
	u.id, u.name, u.username, COALESCE(u.profile_picture, ''),
	(SELECT count(*) FROM reactions r WHERE r.post_id = p.id AND r.type = 'LIKE')::int,
	(SELECT count(*) FROM reactions r WHERE r.post_id = p.id AND r.type = 'RETWEET')::int,
	(SELECT count(*) FROM posts c WHERE c.parent_id = p.id)::int`

// visibleCond gates rows by the visibility rule. $1 must be the viewer id.
const visibleCond = `
	(p.author_id = $1
		OR NOT u.is_private
		OR EXISTS (SELECT 1 FROM follows f WHERE f.follower_id = $1 AND f.followed_id = p.author_id))`

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	var parent any
	if p.ParentID != "" {
		parent = p.ParentID
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (author_id, content, images, post_type, parent_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.AuthorID, p.Content, p.Images, p.Type, parent)

	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return translateError(err)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.ExtendedPost, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+extendedCols+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`, id)
	p, err := scanExtendedPostRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// GetFeedPaginated walks top-level posts visible to the viewer, newest
// first, post id ascending as the stable tiebreak. The cursor row's sort
// key is resolved in the cur CTE; an unknown cursor yields an empty page.
func (r *PostRepository) GetFeedPaginated(ctx context.Context, viewerID string, p pagination.Cursor) ([]entity.ExtendedPost, error) {
	cursor, backwards := cursorID(p)

	query := `
		SELECT ` + extendedCols + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.post_type = 'POST' AND ` + visibleCond + `
		ORDER BY p.created_at DESC, p.id ASC
		LIMIT $2
	`
	args := []any{viewerID, p.Limit}
	if cursor != "" {
		cmp := `(p.created_at < cur.created_at OR (p.created_at = cur.created_at AND p.id > cur.id))`
		order := `p.created_at DESC, p.id ASC`
		if backwards {
			cmp = `(p.created_at > cur.created_at OR (p.created_at = cur.created_at AND p.id < cur.id))`
			order = `p.created_at ASC, p.id DESC`
		}
		query = `
			WITH cur AS (SELECT id, created_at FROM posts WHERE id = $3)
			SELECT ` + extendedCols + `
			FROM posts p
			JOIN users u ON u.id = p.author_id
			CROSS JOIN cur
			WHERE p.post_type = 'POST' AND ` + visibleCond + ` AND ` + cmp + `
			ORDER BY ` + order + `
			LIMIT $2
		`
		args = append(args, cursor)
	}

	posts, err := r.queryExtended(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if backwards {
		reverseInPlace(posts)
	}
	return posts, nil
}

func (r *PostRepository) GetByAuthor(ctx context.Context, authorID string, t entity.PostType) ([]entity.ExtendedPost, error) {
	return r.queryExtended(ctx, `
		SELECT `+extendedCols+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $1 AND p.post_type = $2
		ORDER BY p.created_at DESC, p.id ASC
	`, authorID, t)
}

// GetCommentsPaginated orders comments by total reaction count so the most
// engaged replies surface first; comment id ascending breaks count ties.
func (r *PostRepository) GetCommentsPaginated(ctx context.Context, postID string, p pagination.Cursor) ([]entity.ExtendedPost, error) {
	cursor, backwards := cursorID(p)

	base := `
		ranked AS (
			SELECT p.*, (SELECT count(*) FROM reactions r WHERE r.post_id = p.id)::int AS qty_reactions
			FROM posts p
			WHERE p.parent_id = $1 AND p.post_type = 'COMMENT'
		)`
	cols := `
		p.id, p.author_id, p.content, p.images, p.post_type, p.parent_id, p.created_at, p.updated_at,
		u.id, u.name, u.username, COALESCE(u.profile_picture, ''),
		(SELECT count(*) FROM reactions r WHERE r.post_id = p.id AND r.type = 'LIKE')::int,
		(SELECT count(*) FROM reactions r WHERE r.post_id = p.id AND r.type = 'RETWEET')::int,
		(SELECT count(*) FROM posts c WHERE c.parent_id = p.id)::int`

	query := `
		WITH ` + base + `
		SELECT ` + cols + `
		FROM ranked p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.qty_reactions DESC, p.id ASC
		LIMIT $2
	`
	args := []any{postID, p.Limit}
	if cursor != "" {
		cmp := `(p.qty_reactions < cur.qty_reactions OR (p.qty_reactions = cur.qty_reactions AND p.id > cur.id))`
		order := `p.qty_reactions DESC, p.id ASC`
		if backwards {
			cmp = `(p.qty_reactions > cur.qty_reactions OR (p.qty_reactions = cur.qty_reactions AND p.id < cur.id))`
			order = `p.qty_reactions ASC, p.id DESC`
		}
		query = `
			WITH ` + base + `,
			cur AS (SELECT id, qty_reactions FROM ranked WHERE id = $3)
			SELECT ` + cols + `
			FROM ranked p
			JOIN users u ON u.id = p.author_id
			CROSS JOIN cur
			WHERE ` + cmp + `
			ORDER BY ` + order + `
			LIMIT $2
		`
		args = append(args, cursor)
	}

	posts, err := r.queryExtended(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if backwards {
		reverseInPlace(posts)
	}
	return posts, nil
}

func (r *PostRepository) GetReactedPaginated(ctx context.Context, userID string, t entity.ReactionType, p pagination.Cursor) ([]entity.ExtendedPost, error) {
	cursor, backwards := cursorID(p)

	query := `
		SELECT ` + extendedCols + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		JOIN reactions rx ON rx.post_id = p.id
		WHERE rx.user_id = $1 AND rx.type = $2
		ORDER BY p.id ASC
		LIMIT $3
	`
	args := []any{userID, t, p.Limit}
	if cursor != "" {
		cmp, order := `p.id > $4`, `p.id ASC`
		if backwards {
			cmp, order = `p.id < $4`, `p.id DESC`
		}
		query = `
			SELECT ` + extendedCols + `
			FROM posts p
			JOIN users u ON u.id = p.author_id
			JOIN reactions rx ON rx.post_id = p.id
			WHERE rx.user_id = $1 AND rx.type = $2 AND ` + cmp + `
			ORDER BY ` + order + `
			LIMIT $3
		`
		args = append(args, cursor)
	}

	posts, err := r.queryExtended(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if backwards {
		reverseInPlace(posts)
	}
	return posts, nil
}

func (r *PostRepository) queryExtended(ctx context.Context, query string, args ...any) ([]entity.ExtendedPost, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]entity.ExtendedPost, 0)
	for rows.Next() {
		p, err := scanExtendedPostRow(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func scanExtendedPostRow(row pgx.Row) (*entity.ExtendedPost, error) {
	p := &entity.ExtendedPost{}
	var parent *string
	if err := row.Scan(
		&p.ID, &p.AuthorID, &p.Content, &p.Images, &p.Type, &parent, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.ID, &p.Author.Name, &p.Author.Username, &p.Author.ProfilePicture,
		&p.QtyLikes, &p.QtyRetweets, &p.QtyComments,
	); err != nil {
		return nil, err
	}
	if parent != nil {
		p.ParentID = *parent
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return p, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
