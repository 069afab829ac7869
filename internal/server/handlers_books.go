package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"bookshelf/internal/shared"
)

var bookFields = []string{"author", "country", "language", "link", "pages", "title", "year", "genre1", "genre2"}

func (a *API) GetAllBooks(w http.ResponseWriter, r *http.Request) {
	books, err := a.Store.ListBooks(r.Context())
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, envelope{"books": books})
}

func (a *API) GetBookByTitle(w http.ResponseWriter, r *http.Request) {
	resp := envelope{"message": "Title is required."}

	title, ok := requestContext(r).Param("title")
	if !ok {
		missingParams(w, r, resp)
		return
	}

	book, err := a.Store.GetBook(r.Context(), title)
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	if book == nil {
		resp["message"] = fmt.Sprintf("No book with title %s", title)
		resp["id"] = shared.IDBookNotFound
		respondJSON(w, r, http.StatusNotFound, resp)
		return
	}

	respondJSON(w, r, http.StatusOK, envelope{"searchedBook": book})
}

// GetBooksBy filters books on field. No match is an empty list, not a 404.
func (a *API) GetBooksBy(field BookField) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := envelope{"message": fmt.Sprintf("The %s field is required.", field)}

		value, ok := requestContext(r).Param(string(field))
		if !ok {
			missingParams(w, r, resp)
			return
		}

		books, err := a.Store.FindBooks(r.Context(), field, value)
		if err != nil {
			a.internalError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, envelope{"searchedBooks": books})
	}
}

// AddBook creates the book named by the title field (201) or replaces
// every field of the existing one (204).
func (a *API) AddBook(w http.ResponseWriter, r *http.Request) {
	resp := envelope{"message": "All fields are required."}

	v, ok := requestContext(r).Require(bookFields...)
	if !ok {
		missingParams(w, r, resp)
		return
	}

	pages, errPages := strconv.Atoi(v["pages"])
	year, errYear := strconv.Atoi(v["year"])
	if errPages != nil || errYear != nil {
		invalidParams(w, r, "Pages and year must be whole numbers.")
		return
	}

	created, err := a.Store.UpsertBook(r.Context(), shared.Book{
		Title:    v["title"],
		Author:   v["author"],
		Country:  v["country"],
		Language: v["language"],
		Link:     v["link"],
		Pages:    pages,
		Year:     year,
		Genres:   []string{v["genre1"], v["genre2"]},
	})
	if err != nil {
		a.internalError(w, r, err)
		return
	}

	if created {
		resp["message"] = shared.MessageCreated
		respondJSON(w, r, http.StatusCreated, resp)
		return
	}
	respondJSON(w, r, http.StatusNoContent, envelope{})
}

// AddBookReview sets the rating of an existing book. An unknown title is a
// 400 noBookToRate, not a 404.
func (a *API) AddBookReview(w http.ResponseWriter, r *http.Request) {
	resp := envelope{"message": "Both title and rating are required."}

	v, ok := requestContext(r).Require("title", "rating")
	if !ok {
		missingParams(w, r, resp)
		return
	}

	rating, err := strconv.ParseFloat(v["rating"], 64)
	if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
		invalidParams(w, r, "Rating must be a number.")
		return
	}

	found, err := a.Store.RateBook(r.Context(), v["title"], rating)
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	if !found {
		resp["message"] = fmt.Sprintf("No book to rate with title %s", v["title"])
		resp["id"] = shared.IDNoBookToRate
		respondJSON(w, r, http.StatusBadRequest, resp)
		return
	}

	respondJSON(w, r, http.StatusNoContent, envelope{})
}
