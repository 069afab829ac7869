package server

import (
	"net/http"
	"strconv"

	"bookshelf/internal/shared"
)

// GetUsers returns users as an object keyed by name.
func (a *API) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.Store.ListUsers(r.Context())
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	byName := make(map[string]shared.User, len(users))
	for _, u := range users {
		byName[u.Name] = u
	}
	respondJSON(w, r, http.StatusOK, envelope{"users": byName})
}

func (a *API) AddUser(w http.ResponseWriter, r *http.Request) {
	resp := envelope{"message": "Name and age are both required."}

	v, ok := requestContext(r).Require("name", "age")
	if !ok {
		missingParams(w, r, resp)
		return
	}

	age, err := strconv.Atoi(v["age"])
	if err != nil {
		invalidParams(w, r, "Age must be a whole number.")
		return
	}

	created, err := a.Store.UpsertUser(r.Context(), shared.User{Name: v["name"], Age: age})
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
