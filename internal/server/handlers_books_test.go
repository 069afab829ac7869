package server

import (
	"context"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"testing"
)

func TestAddBookCreatesThenGetReturnsFields(t *testing.T) {
	s, store := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/addBook", crimeAndPunishment)
	expectStatus(t, w, http.StatusCreated)
	if body := decodeBody(t, w); body["message"] != "Created Successfully" {
		t.Errorf("Expected created message, got %v", body["message"])
	}

	w = doRequest(t, s, http.MethodGet, "/getBookByTitle?title=Crime+and+Punishment", "")
	expectStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	book, ok := body["searchedBook"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected searchedBook object, got %v", body)
	}
	want := map[string]interface{}{
		"title":    "Crime and Punishment",
		"author":   "Dostoyevsky",
		"country":  "Russia",
		"language": "Russian",
		"link":     "x",
		"pages":    float64(551),
		"year":     float64(1866),
		"genres":   []interface{}{"Novel", "Philosophical"},
	}
	if !reflect.DeepEqual(book, want) {
		t.Errorf("Expected %v, got %v", want, book)
	}
	if _, ok := body["message"]; ok {
		t.Errorf("Expected no message on success, got %v", body["message"])
	}

	stored, _ := store.GetBook(context.Background(), "Crime and Punishment")
	if stored == nil || stored.Pages != 551 {
		t.Errorf("Expected stored pages 551, got %+v", stored)
	}
}

func TestAddBookUpdateReplacesFields(t *testing.T) {
	s, store := newTestServer(t)
	expectStatus(t, doRequest(t, s, http.MethodPost, "/addBook", crimeAndPunishment), http.StatusCreated)

	update := url.Values{
		"title": {"Crime and Punishment"}, "author": {"Fyodor Dostoevsky"}, "country": {"Russian Empire"},
		"language": {"Russian"}, "link": {"https://example.org/cp"}, "pages": {"671"}, "year": {"1867"},
		"genre1": {"Fiction"}, "genre2": {"Psychological"},
	}.Encode()

	for i := 0; i < 2; i++ {
		w := doRequest(t, s, http.MethodPost, "/addBook", update)
		expectStatus(t, w, http.StatusNoContent)
		if w.Body.Len() != 0 {
			t.Errorf("Expected empty body on update, got %q", w.Body.String())
		}

		book, _ := store.GetBook(context.Background(), "Crime and Punishment")
		if book.Author != "Fyodor Dostoevsky" || book.Country != "Russian Empire" || book.Link != "https://example.org/cp" ||
			book.Pages != 671 || book.Year != 1867 || !reflect.DeepEqual(book.Genres, []string{"Fiction", "Psychological"}) {
			t.Errorf("Update %d: unexpected stored book %+v", i, book)
		}
	}

	books, _ := store.ListBooks(context.Background())
	if len(books) != 1 {
		t.Errorf("Expected one record after updates, got %d", len(books))
	}
}

func TestAddBookUpdateKeepsRating(t *testing.T) {
	s, store := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/addBook", crimeAndPunishment)
	expectStatus(t, doRequest(t, s, http.MethodPost, "/addBookReview", "title=Crime+and+Punishment&rating=5"), http.StatusNoContent)
	expectStatus(t, doRequest(t, s, http.MethodPost, "/addBook", crimeAndPunishment), http.StatusNoContent)

	book, _ := store.GetBook(context.Background(), "Crime and Punishment")
	if book.Rating == nil || *book.Rating != 5 {
		t.Errorf("Expected rating 5 to survive update, got %v", book.Rating)
	}
}

func TestAddBookMissingParams(t *testing.T) {
	full, _ := url.ParseQuery(crimeAndPunishment)

	for _, field := range bookFields {
		t.Run(field, func(t *testing.T) {
			s, store := newTestServer(t)

			for _, variant := range []string{"absent", "blank"} {
				values := url.Values{}
				for k, v := range full {
					values[k] = v
				}
				if variant == "absent" {
					values.Del(field)
				} else {
					values.Set(field, "  ")
				}

				w := doRequest(t, s, http.MethodPost, "/addBook", values.Encode())
				expectStatus(t, w, http.StatusBadRequest)
				expectEnvelope(t, w, "All fields are required.", "missingParams")
			}

			books, _ := store.ListBooks(context.Background())
			if len(books) != 0 {
				t.Errorf("Expected store unchanged, got %v", books)
			}
		})
	}
}

func TestAddBookZeroIsPresent(t *testing.T) {
	s, _ := newTestServer(t)
	values, _ := url.ParseQuery(crimeAndPunishment)
	values.Set("year", "0")

	expectStatus(t, doRequest(t, s, http.MethodPost, "/addBook", values.Encode()), http.StatusCreated)
}

func TestAddBookMalformedNumbers(t *testing.T) {
	for _, tt := range []struct{ field, value string }{
		{"pages", "many"},
		{"pages", "55.1"},
		{"year", "1866AD"},
	} {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			s, store := newTestServer(t)
			values, _ := url.ParseQuery(crimeAndPunishment)
			values.Set(tt.field, tt.value)

			w := doRequest(t, s, http.MethodPost, "/addBook", values.Encode())
			expectStatus(t, w, http.StatusBadRequest)
			expectEnvelope(t, w, "Pages and year must be whole numbers.", "invalidParams")

			if b, _ := store.GetBook(context.Background(), "Crime and Punishment"); b != nil {
				t.Error("Expected no record for malformed input")
			}
		})
	}
}

func TestGetBookByTitleNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/getBookByTitle?title=Unknown", "")
	expectStatus(t, w, http.StatusNotFound)
	expectEnvelope(t, w, "No book with title Unknown", "bookNotFound")
}

func TestGetBookByTitleMissingParam(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/getBookByTitle", "")
	expectStatus(t, w, http.StatusBadRequest)
	expectEnvelope(t, w, "Title is required.", "missingParams")
}

func TestGetAllBooks(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/getAllBooks", "")
	expectStatus(t, w, http.StatusOK)
	if got := w.Body.String(); got != `{"books":[]}` {
		t.Errorf("Expected empty books array, got %q", got)
	}

	doRequest(t, s, http.MethodPost, "/addBook", crimeAndPunishment)
	doRequest(t, s, http.MethodPost, "/addBook", "title=Beloved&author=Toni+Morrison&country=United+States&language=English&link=y&pages=324&year=1987&genre1=Novel&genre2=Historical")

	w = doRequest(t, s, http.MethodGet, "/getAllBooks", "")
	books := decodeBody(t, w)["books"].([]interface{})
	if len(books) != 2 {
		t.Fatalf("Expected 2 books, got %d", len(books))
	}
	if books[0].(map[string]interface{})["title"] != "Crime and Punishment" {
		t.Errorf("Expected insertion order, got %v", books)
	}
}

func TestHeadMatchesGetLength(t *testing.T) {
	s, _ := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/addBook", crimeAndPunishment)

	for _, target := range []string{
		"/getAllBooks",
		"/getBookByTitle?title=Crime+and+Punishment",
		"/getBooksByAuthor?author=Dostoyevsky",
		"/getUsers",
	} {
		get := doRequest(t, s, http.MethodGet, target, "")
		head := doRequest(t, s, http.MethodHead, target, "")

		expectStatus(t, head, http.StatusOK)
		if head.Body.Len() != 0 {
			t.Errorf("%s: expected no HEAD body, got %q", target, head.Body.String())
		}
		if head.Header().Get("Content-Length") != strconv.Itoa(get.Body.Len()) {
			t.Errorf("%s: expected Content-Length %d, got %s", target, get.Body.Len(), head.Header().Get("Content-Length"))
		}
	}
}

func TestGetBooksByFilter(t *testing.T) {
	s, _ := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/addBook", crimeAndPunishment)
	doRequest(t, s, http.MethodPost, "/addBook", "title=The+Idiot&author=Dostoyevsky&country=Russia&language=Russian&link=z&pages=656&year=1869&genre1=Novel&genre2=Philosophical")
	doRequest(t, s, http.MethodPost, "/addBook", "title=Beloved&author=Toni+Morrison&country=United+States&language=English&link=y&pages=324&year=1987&genre1=Novel&genre2=Historical")

	tests := []struct {
		target string
		titles []string
	}{
		{"/getBooksByAuthor?author=Dostoyevsky", []string{"Crime and Punishment", "The Idiot"}},
		{"/getBookByAuthor?author=Toni+Morrison", []string{"Beloved"}},
		{"/getBooksByLanguage?language=English", []string{"Beloved"}},
		{"/getBookByLanguage?language=Russian", []string{"Crime and Punishment", "The Idiot"}},
	}

	for _, tt := range tests {
		w := doRequest(t, s, http.MethodGet, tt.target, "")
		expectStatus(t, w, http.StatusOK)

		var titles []string
		for _, b := range decodeBody(t, w)["searchedBooks"].([]interface{}) {
			titles = append(titles, b.(map[string]interface{})["title"].(string))
		}
		if !reflect.DeepEqual(titles, tt.titles) {
			t.Errorf("%s: expected %v, got %v", tt.target, tt.titles, titles)
		}
	}
}

func TestGetBooksByFilterNoMatchIsEmpty200(t *testing.T) {
	s, _ := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/addBook", crimeAndPunishment)

	for _, target := range []string{"/getBooksByAuthor?author=Nobody", "/getBooksByLanguage?language=Klingon"} {
		w := doRequest(t, s, http.MethodGet, target, "")
		expectStatus(t, w, http.StatusOK)
		if got := w.Body.String(); got != `{"searchedBooks":[]}` {
			t.Errorf("%s: expected empty list, got %q", target, got)
		}
	}
}

func TestGetBooksByFilterMissingParam(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/getBooksByAuthor", "")
	expectStatus(t, w, http.StatusBadRequest)
	expectEnvelope(t, w, "The author field is required.", "missingParams")

	w = doRequest(t, s, http.MethodGet, "/getBooksByLanguage?language=", "")
	expectStatus(t, w, http.StatusBadRequest)
	expectEnvelope(t, w, "The language field is required.", "missingParams")
}

func TestAddBookReview(t *testing.T) {
	s, store := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/addBook", crimeAndPunishment)

	w := doRequest(t, s, http.MethodPost, "/addBookReview", "title=Crime+and+Punishment&rating=4.5")
	expectStatus(t, w, http.StatusNoContent)
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty body, got %q", w.Body.String())
	}

	book, _ := store.GetBook(context.Background(), "Crime and Punishment")
	if book.Rating == nil || *book.Rating != 4.5 {
		t.Errorf("Expected rating 4.5, got %v", book.Rating)
	}
	if book.Author != "Dostoyevsky" || book.Pages != 551 {
		t.Errorf("Expected other fields untouched, got %+v", book)
	}

	w = doRequest(t, s, http.MethodGet, "/getBookByTitle?title=Crime+and+Punishment", "")
	if r := decodeBody(t, w)["searchedBook"].(map[string]interface{})["rating"]; r != 4.5 {
		t.Errorf("Expected rating in response, got %v", r)
	}
}

func TestAddBookReviewNoBook(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/addBookReview", "title=Unknown&rating=5")
	expectStatus(t, w, http.StatusBadRequest)
	expectEnvelope(t, w, "No book to rate with title Unknown", "noBookToRate")
}

func TestAddBookReviewMissingParams(t *testing.T) {
	s, _ := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/addBook", crimeAndPunishment)

	for _, body := range []string{"title=Crime+and+Punishment", "rating=5", ""} {
		w := doRequest(t, s, http.MethodPost, "/addBookReview", body)
		expectStatus(t, w, http.StatusBadRequest)
		expectEnvelope(t, w, "Both title and rating are required.", "missingParams")
	}
}

func TestAddBookReviewMalformedRating(t *testing.T) {
	s, store := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/addBook", crimeAndPunishment)

	for _, rating := range []string{"great", "NaN", "Inf"} {
		w := doRequest(t, s, http.MethodPost, "/addBookReview", "title=Crime+and+Punishment&rating="+rating)
		expectStatus(t, w, http.StatusBadRequest)
		expectEnvelope(t, w, "Rating must be a number.", "invalidParams")
	}

	book, _ := store.GetBook(context.Background(), "Crime and Punishment")
	if book.Rating != nil {
		t.Errorf("Expected no rating, got %v", *book.Rating)
	}
}
