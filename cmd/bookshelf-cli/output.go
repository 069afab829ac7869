package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"bookshelf/internal/shared"

	"github.com/fatih/color"
)

var (
	okColor   = color.New(color.FgGreen)
	infoColor = color.New(color.FgCyan)
	dimColor  = color.New(color.Faint)
)

func printBooks(w io.Writer, books []shared.Book) {
	if len(books) == 0 {
		dimColor.Fprintln(w, "no books")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tAUTHOR\tLANGUAGE\tYEAR\tPAGES\tGENRES\tRATING")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			b.Title, b.Author, b.Language, b.Year, b.Pages, strings.Join(b.Genres, ", "), formatRating(b.Rating))
	}
	tw.Flush()
}

func printBook(w io.Writer, b *shared.Book) {
	infoColor.Fprintln(w, b.Title)
	fmt.Fprintf(w, "  author:   %s\n", b.Author)
	fmt.Fprintf(w, "  country:  %s\n", b.Country)
	fmt.Fprintf(w, "  language: %s\n", b.Language)
	fmt.Fprintf(w, "  year:     %d\n", b.Year)
	fmt.Fprintf(w, "  pages:    %d\n", b.Pages)
	fmt.Fprintf(w, "  genres:   %s\n", strings.Join(b.Genres, ", "))
	fmt.Fprintf(w, "  link:     %s\n", b.Link)
	fmt.Fprintf(w, "  rating:   %s\n", formatRating(b.Rating))
}

func printUsers(w io.Writer, users map[string]shared.User) {
	if len(users) == 0 {
		dimColor.Fprintln(w, "no users")
		return
	}
	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tAGE")
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%d\n", name, users[name].Age)
	}
	tw.Flush()
}

func printSaved(w io.Writer, kind, name string, created bool) {
	verb := "updated"
	if created {
		verb = "created"
	}
	okColor.Fprintf(w, "%s %s: %s\n", kind, verb, name)
}

func formatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}
