package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"bookshelf/internal/shared"
)

// SQLiteStore keeps records in SQLite. List order follows rowid, which an
// ON CONFLICT update leaves untouched, so it matches first-insert order.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

const bookColumns = `title, author, country, language, link, pages, year, genres_json, rating`

var bookFieldColumns = map[BookField]string{
	FieldAuthor:   "author",
	FieldLanguage: "language",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*shared.Book, error) {
	var b shared.Book
	var genresJSON string
	var rating sql.NullFloat64
	if err := row.Scan(&b.Title, &b.Author, &b.Country, &b.Language, &b.Link, &b.Pages, &b.Year, &genresJSON, &rating); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(genresJSON), &b.Genres); err != nil {
		return nil, fmt.Errorf("decode genres for %q: %w", b.Title, err)
	}
	if b.Genres == nil {
		b.Genres = []string{}
	}
	if rating.Valid {
		r := rating.Float64
		b.Rating = &r
	}
	return &b, nil
}

func (s *SQLiteStore) queryBooks(ctx context.Context, query string, args ...any) ([]shared.Book, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []shared.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}

func (s *SQLiteStore) ListBooks(ctx context.Context) ([]shared.Book, error) {
	return s.queryBooks(ctx, `SELECT `+bookColumns+` FROM books ORDER BY rowid`)
}

func (s *SQLiteStore) GetBook(ctx context.Context, title string) (*shared.Book, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE title = ?`, title)
	b, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (s *SQLiteStore) FindBooks(ctx context.Context, field BookField, value string) ([]shared.Book, error) {
	col, ok := bookFieldColumns[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return s.queryBooks(ctx, `SELECT `+bookColumns+` FROM books WHERE `+col+` = ? ORDER BY rowid`, value)
}

func (s *SQLiteStore) UpsertBook(ctx context.Context, b shared.Book) (bool, error) {
	genres := b.Genres
	if genres == nil {
		genres = []string{}
	}
	genresJSON, err := json.Marshal(genres)
	if err != nil {
		return false, err
	}
	var rating sql.NullFloat64
	if b.Rating != nil {
		rating = sql.NullFloat64{Float64: *b.Rating, Valid: true}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM books WHERE title = ?`, b.Title).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	created := errors.Is(err, sql.ErrNoRows)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO books (`+bookColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(title) DO UPDATE SET
			author=excluded.author, country=excluded.country, language=excluded.language,
			link=excluded.link, pages=excluded.pages, year=excluded.year,
			genres_json=excluded.genres_json`,
		b.Title, b.Author, b.Country, b.Language, b.Link, b.Pages, b.Year, string(genresJSON), rating,
	)
	if err != nil {
		return false, err
	}
	return created, tx.Commit()
}

func (s *SQLiteStore) RateBook(ctx context.Context, title string, rating float64) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `UPDATE books SET rating = ? WHERE title = ?`, rating, title)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]shared.User, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT name, age FROM users ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []shared.User{}
	for rows.Next() {
		var u shared.User
		if err := rows.Scan(&u.Name, &u.Age); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLiteStore) UpsertUser(ctx context.Context, u shared.User) (bool, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE name = ?`, u.Name).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	created := errors.Is(err, sql.ErrNoRows)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (name, age) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET age=excluded.age`,
		u.Name, u.Age,
	)
	if err != nil {
		return false, err
	}
	return created, tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}
