package server

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bookshelf/internal/shared"
)

// BookField names a secondary book field that can be filtered on.
type BookField string

const (
	FieldAuthor   BookField = "author"
	FieldLanguage BookField = "language"
)

var ErrUnknownField = errors.New("unknown book field")

// Store is the keyed record collection behind the API. Books are keyed by
// title and users by name. Getters return nil when the key is absent.
type Store interface {
	ListBooks(ctx context.Context) ([]shared.Book, error)
	GetBook(ctx context.Context, title string) (*shared.Book, error)
	FindBooks(ctx context.Context, field BookField, value string) ([]shared.Book, error)
	// UpsertBook replaces every field of the book stored under b.Title except
	// its rating, or inserts it. created reports which branch was taken.
	UpsertBook(ctx context.Context, b shared.Book) (created bool, err error)
	RateBook(ctx context.Context, title string, rating float64) (found bool, err error)

	ListUsers(ctx context.Context) ([]shared.User, error)
	UpsertUser(ctx context.Context, u shared.User) (created bool, err error)

	Close() error
}

// MemoryStore keeps records in maps, remembering insertion order so lists
// come back in the order records were first created.
type MemoryStore struct {
	mu sync.RWMutex

	books     map[string]*shared.Book
	bookOrder []string
	users     map[string]*shared.User
	userOrder []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books: map[string]*shared.Book{},
		users: map[string]*shared.User{},
	}
}

func (s *MemoryStore) ListBooks(ctx context.Context) ([]shared.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]shared.Book, 0, len(s.bookOrder))
	for _, title := range s.bookOrder {
		out = append(out, cloneBook(*s.books[title]))
	}
	return out, nil
}

func (s *MemoryStore) GetBook(ctx context.Context, title string) (*shared.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.books[title]
	if !ok {
		return nil, nil
	}
	c := cloneBook(*b)
	return &c, nil
}

func (s *MemoryStore) FindBooks(ctx context.Context, field BookField, value string) ([]shared.Book, error) {
	var get func(*shared.Book) string
	switch field {
	case FieldAuthor:
		get = func(b *shared.Book) string { return b.Author }
	case FieldLanguage:
		get = func(b *shared.Book) string { return b.Language }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []shared.Book{}
	for _, title := range s.bookOrder {
		if b := s.books[title]; get(b) == value {
			out = append(out, cloneBook(*b))
		}
	}
	return out, nil
}

func (s *MemoryStore) UpsertBook(ctx context.Context, b shared.Book) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneBook(b)
	existing, ok := s.books[b.Title]
	if ok {
		next.Rating = existing.Rating
		*existing = next
		return false, nil
	}
	s.books[b.Title] = &next
	s.bookOrder = append(s.bookOrder, b.Title)
	return true, nil
}

func (s *MemoryStore) RateBook(ctx context.Context, title string, rating float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[title]
	if !ok {
		return false, nil
	}
	b.Rating = &rating
	return true, nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]shared.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]shared.User, 0, len(s.userOrder))
	for _, name := range s.userOrder {
		out = append(out, *s.users[name])
	}
	return out, nil
}

func (s *MemoryStore) UpsertUser(ctx context.Context, u shared.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[u.Name]; ok {
		*existing = u
		return false, nil
	}
	s.users[u.Name] = &u
	s.userOrder = append(s.userOrder, u.Name)
	return true, nil
}

func (s *MemoryStore) Close() error { return nil }

// cloneBook copies b so callers never share slices or the rating pointer
// with the store. A nil genre list becomes empty so it encodes as [].
func cloneBook(b shared.Book) shared.Book {
	genres := make([]string, len(b.Genres))
	copy(genres, b.Genres)
	b.Genres = genres
	if b.Rating != nil {
		r := *b.Rating
		b.Rating = &r
	}
	return b
}

// Seed upserts books into st and returns how many were newly created.
func Seed(ctx context.Context, st Store, books []shared.Book) (int, error) {
	created := 0
	for _, b := range books {
		ok, err := st.UpsertBook(ctx, b)
		if err != nil {
			return created, fmt.Errorf("seed %q: %w", b.Title, err)
		}
		if ok {
			created++
		}
		if b.Rating != nil {
			if _, err := st.RateBook(ctx, b.Title, *b.Rating); err != nil {
				return created, fmt.Errorf("seed rating %q: %w", b.Title, err)
			}
		}
	}
	return created, nil
}
