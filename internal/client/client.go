// Package client is a typed HTTP client for the bookshelf API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookshelf/internal/shared"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(cfg *shared.ClientConfig) *Client {
	return &Client{
		BaseURL: strings.TrimRight(cfg.ServerURL, "/"),
		HTTP:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// APIError is a non-2xx response. Message and ID come from the JSON
// envelope and are empty when the server sent no body.
type APIError struct {
	Status  int
	Message string
	ID      string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	if e.ID == "" {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("%s (status %d, %s)", e.Message, e.Status, e.ID)
}

// HasID reports whether err is an *APIError carrying id.
func HasID(err error, id string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.ID == id
}

func (c *Client) newRequest(ctx context.Context, method, path string, query, form url.Values) (*http.Request, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do sends the request and decodes the envelope. Status codes of 400 and
// above become *APIError.
func (c *Client) do(ctx context.Context, method, path string, query, form url.Values) (*shared.Envelope, int, error) {
	req, err := c.newRequest(ctx, method, path, query, form)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	var env shared.Envelope
	if len(b) > 0 {
		if err := json.Unmarshal(b, &env); err != nil {
			return nil, resp.StatusCode, fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}

	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, &APIError{Status: resp.StatusCode, Message: env.Message, ID: env.ID}
	}
	return &env, resp.StatusCode, nil
}

func (c *Client) ListBooks(ctx context.Context) ([]shared.Book, error) {
	env, _, err := c.do(ctx, http.MethodGet, shared.PathGetAllBooks, nil, nil)
	if err != nil {
		return nil, err
	}
	return env.Books, nil
}

// GetBook returns the book titled title; an unknown title is an *APIError
// with ID bookNotFound.
func (c *Client) GetBook(ctx context.Context, title string) (*shared.Book, error) {
	env, _, err := c.do(ctx, http.MethodGet, shared.PathGetBookByTitle, url.Values{"title": {title}}, nil)
	if err != nil {
		return nil, err
	}
	return env.SearchedBook, nil
}

// FindBooks filters on "author" or "language".
func (c *Client) FindBooks(ctx context.Context, field, value string) ([]shared.Book, error) {
	var path string
	switch field {
	case "author":
		path = shared.PathGetBooksByAuthor
	case "language":
		path = shared.PathGetBooksByLanguage
	default:
		return nil, fmt.Errorf("cannot filter books by %q", field)
	}

	env, _, err := c.do(ctx, http.MethodGet, path, url.Values{field: {value}}, nil)
	if err != nil {
		return nil, err
	}
	if env.SearchedBooks == nil {
		return []shared.Book{}, nil
	}
	return env.SearchedBooks, nil
}

// AddBook creates or replaces b. Only the first two genres are sent.
func (c *Client) AddBook(ctx context.Context, b shared.Book) (created bool, err error) {
	form := url.Values{
		"title":    {b.Title},
		"author":   {b.Author},
		"country":  {b.Country},
		"language": {b.Language},
		"link":     {b.Link},
		"pages":    {strconv.Itoa(b.Pages)},
		"year":     {strconv.Itoa(b.Year)},
	}
	for i := 0; i < 2 && i < len(b.Genres); i++ {
		form.Set("genre"+strconv.Itoa(i+1), b.Genres[i])
	}

	_, status, err := c.do(ctx, http.MethodPost, shared.PathAddBook, nil, form)
	if err != nil {
		return false, err
	}
	return status == http.StatusCreated, nil
}

func (c *Client) RateBook(ctx context.Context, title string, rating float64) error {
	form := url.Values{
		"title":  {title},
		"rating": {strconv.FormatFloat(rating, 'f', -1, 64)},
	}
	_, _, err := c.do(ctx, http.MethodPost, shared.PathAddBookReview, nil, form)
	return err
}

func (c *Client) ListUsers(ctx context.Context) (map[string]shared.User, error) {
	env, _, err := c.do(ctx, http.MethodGet, shared.PathGetUsers, nil, nil)
	if err != nil {
		return nil, err
	}
	if env.Users == nil {
		return map[string]shared.User{}, nil
	}
	return env.Users, nil
}

func (c *Client) AddUser(ctx context.Context, u shared.User) (created bool, err error) {
	form := url.Values{"name": {u.Name}, "age": {strconv.Itoa(u.Age)}}
	_, status, err := c.do(ctx, http.MethodPost, shared.PathAddUser, nil, form)
	if err != nil {
		return false, err
	}
	return status == http.StatusCreated, nil
}

// Head issues a HEAD request and returns the status and declared Content-Length.
func (c *Client) Head(ctx context.Context, path string, query url.Values) (status int, contentLength int64, err error) {
	req, err := c.newRequest(ctx, http.MethodHead, path, query, nil)
	if err != nil {
		return 0, 0, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, resp.ContentLength, nil
}
