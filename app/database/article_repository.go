package database

import (
	"database/sql"
	"fmt"
)

var _ ArticleRepository = (*articleRepository)(nil)

type articleRepository struct {
	db *DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *DB) ArticleRepository {
	return &articleRepository{db: db}
}

const articleColumns = `id, feed_id, url, read, pub_date, content, title, created_at`

func (r *articleRepository) InsertArticles(articles []Article) ([]Article, error) {
	if len(articles) == 0 {
		return nil, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO articles (feed_id, url, read, pub_date, content, title)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
		RETURNING id, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare article insert: %w", err)
	}
	defer stmt.Close()

	var inserted []Article
	for _, article := range articles {
		article.PubDate = article.PubDate.UTC()

		err := stmt.QueryRow(article.FeedID, article.URL, article.Read,
			article.PubDate, article.Content, article.Title).
			Scan(&article.ID, &article.CreatedAt)
		if err == sql.ErrNoRows {
			// natural-key duplicate, skipped by the store
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to insert article: %w", err)
		}

		inserted = append(inserted, article)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit article inserts: %w", err)
	}

	return inserted, nil
}

func (r *articleRepository) GetArticlesByFeed(feedID int64) ([]Article, error) {
	return r.queryArticles(`
		SELECT `+articleColumns+`
		FROM articles
		WHERE feed_id = ?
		ORDER BY pub_date DESC, id DESC
	`, feedID)
}

func (r *articleRepository) GetAllArticles() ([]Article, error) {
	return r.queryArticles(`
		SELECT ` + articleColumns + `
		FROM articles
		ORDER BY pub_date DESC, id DESC
	`)
}

func (r *articleRepository) GetArticleTitles(feedID int64) ([]string, error) {
	rows, err := r.db.Query(`SELECT title FROM articles WHERE feed_id = ?`, feedID)
	if err != nil {
		return nil, fmt.Errorf("failed to query article titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan title row: %w", err)
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating title rows: %w", err)
	}

	return titles, nil
}

func (r *articleRepository) SetArticleRead(id int64, read bool) error {
	result, err := r.db.Exec(`UPDATE articles SET read = ? WHERE id = ?`, read, id)
	if err != nil {
		return fmt.Errorf("failed to update read flag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *articleRepository) GetArticlesMissingContent(placeholder string, limit int) ([]Article, error) {
	return r.queryArticles(`
		SELECT `+articleColumns+`
		FROM articles
		WHERE content = ?
		  AND url IS NOT NULL
		  AND url != ''
		ORDER BY id
		LIMIT ?
	`, placeholder, limit)
}

func (r *articleRepository) UpdateArticleContent(id int64, content string) error {
	_, err := r.db.Exec(`UPDATE articles SET content = ? WHERE id = ?`, content, id)
	if err != nil {
		return fmt.Errorf("failed to update article content: %w", err)
	}
	return nil
}

func (r *articleRepository) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

func (r *articleRepository) queryArticles(query string, args ...interface{}) ([]Article, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var article Article
		var url sql.NullString
		err := rows.Scan(&article.ID, &article.FeedID, &url, &article.Read,
			&article.PubDate, &article.Content, &article.Title, &article.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		if url.Valid {
			article.URL = &url.String
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}
