package repository

import (
	"context"

	"vertical/backend/internal/models"
)

const commentColumns = `
	comment_id, comment_post_id, comment_content, comment_author,
	comment_author_email, user_id, comment_date::text, comment_approved,
	COALESCE(comment_agent, ''), COALESCE(comment_type, 'comment'), comment_parent`

// ListPostComments returns every comment attached to a post, oldest first.
// A post without comments yields an empty list, not an error.
func (r *Repository) ListPostComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := r.pool.Query(ctx, `
SELECT`+commentColumns+`
FROM comments
WHERE comment_post_id = $1
ORDER BY comment_date, comment_id;`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetComment returns one comment row.
func (r *Repository) GetComment(ctx context.Context, commentID int64) (models.Comment, error) {
	row := r.pool.QueryRow(ctx, `
SELECT`+commentColumns+`
FROM comments
WHERE comment_id = $1;`, commentID)
	c, err := scanComment(row)
	if err != nil {
		return models.Comment{}, notFound(err)
	}
	return c, nil
}

// CreateComment inserts an approved comment authored by a known user and
// returns the stored row. A non-zero parent threads the comment under it.
func (r *Repository) CreateComment(ctx context.Context, postID int64, user models.User, content, agent string, parent int64) (models.Comment, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO comments (
	comment_post_id, comment_content, comment_author, comment_author_email,
	user_id, comment_date, comment_approved, comment_agent, comment_type, comment_parent
) VALUES ($1, $2, $3, $4, $5, now(), '1', $6, 'comment', $7)
RETURNING`+commentColumns+`;`,
		postID, content, user.DisplayName, user.Email, user.ID, nullString(agent), parent)
	c, err := scanComment(row)
	if err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// UpdateComment replaces a comment's content. Only the comment's author may
// edit it, enforced here with the user filter.
func (r *Repository) UpdateComment(ctx context.Context, commentID, userID int64, content string) (models.Comment, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE comments
SET comment_content = $3
WHERE comment_id = $1 AND user_id = $2
RETURNING`+commentColumns+`;`, commentID, userID, content)
	c, err := scanComment(row)
	if err != nil {
		return models.Comment{}, notFound(err)
	}
	return c, nil
}

// DeleteComment removes one comment owned by the given user.
func (r *Repository) DeleteComment(ctx context.Context, commentID, userID int64) error {
	tag, err := r.pool.Exec(ctx, `
DELETE FROM comments WHERE comment_id = $1 AND user_id = $2;`, commentID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUserComments removes every comment a user left on a post and returns
// how many rows went away.
func (r *Repository) DeleteUserComments(ctx context.Context, postID, userID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
DELETE FROM comments WHERE comment_post_id = $1 AND user_id = $2;`, postID, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteAllComments clears a post's comment thread and returns the count.
func (r *Repository) DeleteAllComments(ctx context.Context, postID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
DELETE FROM comments WHERE comment_post_id = $1;`, postID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanComment(row rowScanner) (models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.CommentID, &c.PostID, &c.Content, &c.Author, &c.Email,
		&c.UserID, &c.Date, &c.Approved, &c.Agent, &c.Type, &c.Parent)
	if err != nil {
		return models.Comment{}, err
	}
	return c, nil
}
