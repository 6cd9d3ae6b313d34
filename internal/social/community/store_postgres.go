package community

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/niramaya/api/internal/platform/database/schema"
	"github.com/niramaya/api/internal/platform/dberr"
	"github.com/niramaya/api/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// publicNameExpr selects the community-safe author name for the aliased
// users.account row: the pseudonymous handle wins when opted in.
func publicNameExpr(alias string) string {
	account := schema.UserAccount
	return fmt.Sprintf("CASE WHEN %s.%s THEN %s.%s ELSE %s.%s END",
		alias, account.IsAnonymousHandle, alias, account.AnonymousHandle, alias, account.DisplayName)
}

func (repository *PostgresRepository) Create(context context.Context, community *Community) error {
	table := schema.SocialCommunity
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		table.Table,
		table.ID, table.Name, table.Slug, table.Description, table.Category,
		table.CreatedBy, table.CreatedAt, table.UpdatedAt,
	)

	now := time.Now()
	if community.CreatedAt.IsZero() {
		community.CreatedAt = now
	}
	community.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		community.ID, community.Name, community.Slug, community.Description,
		community.Category, community.CreatedBy, community.CreatedAt, community.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_community")
	}

	return nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, communitySlug string) (*Community, error) {
	table := schema.SocialCommunity
	membership := schema.SocialCommunityMembership

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
		       (SELECT COUNT(*) FROM %s m WHERE m.%s = c.%s)
		FROM %s c
		WHERE c.%s = $1 AND c.%s IS NULL`,
		table.ID, table.Name, table.Slug, table.Description, table.Category,
		table.CreatedBy, table.CreatedAt, table.UpdatedAt,
		membership.Table, membership.CommunityID, table.ID,
		table.Table, table.Slug, table.DeletedAt,
	)

	community := &Community{}
	err := repository.db.QueryRow(context, query, communitySlug).Scan(
		&community.ID, &community.Name, &community.Slug, &community.Description,
		&community.Category, &community.CreatedBy, &community.CreatedAt,
		&community.UpdatedAt, &community.MemberCount,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_community_by_slug")
	}

	return community, nil
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]*Community, int, error) {
	table := schema.SocialCommunity
	membership := schema.SocialCommunityMembership

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s IS NULL`, table.Table, table.DeletedAt)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_communities")
	}

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
		       (SELECT COUNT(*) FROM %s m WHERE m.%s = c.%s)
		FROM %s c
		WHERE c.%s IS NULL
		ORDER BY c.%s ASC
		LIMIT $1 OFFSET $2`,
		table.ID, table.Name, table.Slug, table.Description, table.Category,
		table.CreatedBy, table.CreatedAt, table.UpdatedAt,
		membership.Table, membership.CommunityID, table.ID,
		table.Table, table.DeletedAt, table.Name,
	)

	rows, err := repository.db.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_communities")
	}
	defer rows.Close()

	communities := make([]*Community, 0)
	for rows.Next() {
		community := &Community{}
		if err := rows.Scan(
			&community.ID, &community.Name, &community.Slug, &community.Description,
			&community.Category, &community.CreatedBy, &community.CreatedAt,
			&community.UpdatedAt, &community.MemberCount,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_community")
		}
		communities = append(communities, community)
	}

	return communities, total, nil
}

func (repository *PostgresRepository) Join(context context.Context, membership *Membership) error {
	table := schema.SocialCommunityMembership
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s) DO NOTHING`,
		table.Table,
		table.ID, table.CommunityID, table.UserID, table.JoinedAt,
		table.CommunityID, table.UserID,
	)

	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = time.Now()
	}

	_, err := repository.db.Exec(context, query,
		membership.ID, membership.CommunityID, membership.UserID, membership.JoinedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "join_community")
	}

	return nil
}

func (repository *PostgresRepository) Leave(context context.Context, communityID, userID string) error {
	table := schema.SocialCommunityMembership
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		table.Table, table.CommunityID, table.UserID)

	if _, err := repository.db.Exec(context, query, communityID, userID); err != nil {
		return dberr.Wrap(err, "leave_community")
	}

	return nil
}

func (repository *PostgresRepository) IsMember(context context.Context, communityID, userID string) (bool, error) {
	table := schema.SocialCommunityMembership
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		table.Table, table.CommunityID, table.UserID)

	var member bool
	if err := repository.db.QueryRow(context, query, communityID, userID).Scan(&member); err != nil {
		return false, dberr.Wrap(err, "check_membership")
	}

	return member, nil
}

func (repository *PostgresRepository) CreatePost(context context.Context, post *Post) error {
	table := schema.SocialCommunityPost
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		table.Table,
		table.ID, table.CommunityID, table.AuthorID, table.Title, table.Content,
		table.CreatedAt, table.UpdatedAt,
	)

	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		post.ID, post.CommunityID, post.AuthorID, post.Title, post.Content,
		post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_community_post")
	}

	return nil
}

func (repository *PostgresRepository) FindPostByID(context context.Context, id string) (*Post, error) {
	post := schema.SocialCommunityPost
	account := schema.UserAccount

	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, %s, p.%s, p.%s, p.%s, p.%s
		FROM %s p
		JOIN %s a ON p.%s = a.%s
		WHERE p.%s = $1 AND p.%s IS NULL`,
		post.ID, post.CommunityID, post.AuthorID, publicNameExpr("a"),
		post.Title, post.Content, post.CreatedAt, post.UpdatedAt,
		post.Table, account.Table, post.AuthorID, account.ID,
		post.ID, post.DeletedAt,
	)

	result := &Post{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&result.ID, &result.CommunityID, &result.AuthorID, &result.AuthorName,
		&result.Title, &result.Content, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_community_post")
	}

	return result, nil
}

func (repository *PostgresRepository) ListPosts(context context.Context, communityID string, params pagination.Params) ([]*Post, int, error) {
	post := schema.SocialCommunityPost
	account := schema.UserAccount

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s IS NULL`,
		post.Table, post.CommunityID, post.DeletedAt)
	if err := repository.db.QueryRow(context, countQuery, communityID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_community_posts")
	}

	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, %s, p.%s, p.%s, p.%s, p.%s
		FROM %s p
		JOIN %s a ON p.%s = a.%s
		WHERE p.%s = $1 AND p.%s IS NULL
		ORDER BY p.%s DESC
		LIMIT $2 OFFSET $3`,
		post.ID, post.CommunityID, post.AuthorID, publicNameExpr("a"),
		post.Title, post.Content, post.CreatedAt, post.UpdatedAt,
		post.Table, account.Table, post.AuthorID, account.ID,
		post.CommunityID, post.DeletedAt, post.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, communityID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_community_posts")
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	for rows.Next() {
		result := &Post{}
		if err := rows.Scan(
			&result.ID, &result.CommunityID, &result.AuthorID, &result.AuthorName,
			&result.Title, &result.Content, &result.CreatedAt, &result.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_community_post")
		}
		posts = append(posts, result)
	}

	return posts, total, nil
}

func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	table := schema.SocialCommunityComment
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		table.Table,
		table.ID, table.PostID, table.AuthorID, table.Content,
		table.CreatedAt, table.UpdatedAt,
	)

	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}

	_, err := repository.db.Exec(context, query,
		comment.ID, comment.PostID, comment.AuthorID, comment.Content,
		comment.CreatedAt, now,
	)
	if err != nil {
		return dberr.Wrap(err, "create_community_comment")
	}

	return nil
}

func (repository *PostgresRepository) ListComments(context context.Context, postID string, params pagination.Params) ([]*Comment, int, error) {
	comment := schema.SocialCommunityComment
	account := schema.UserAccount

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s IS NULL`,
		comment.Table, comment.PostID, comment.DeletedAt)
	if err := repository.db.QueryRow(context, countQuery, postID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_community_comments")
	}

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, %s, c.%s, c.%s
		FROM %s c
		JOIN %s a ON c.%s = a.%s
		WHERE c.%s = $1 AND c.%s IS NULL
		ORDER BY c.%s ASC
		LIMIT $2 OFFSET $3`,
		comment.ID, comment.PostID, comment.AuthorID, publicNameExpr("a"),
		comment.Content, comment.CreatedAt,
		comment.Table, account.Table, comment.AuthorID, account.ID,
		comment.PostID, comment.DeletedAt, comment.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, postID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_community_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		result := &Comment{}
		if err := rows.Scan(
			&result.ID, &result.PostID, &result.AuthorID, &result.AuthorName,
			&result.Content, &result.CreatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_community_comment")
		}
		comments = append(comments, result)
	}

	return comments, total, nil
}
