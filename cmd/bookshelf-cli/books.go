package main

import (
	"fmt"
	"strconv"

	"bookshelf/internal/shared"

	"github.com/spf13/cobra"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List every book",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		books, err := c.ListBooks(cmd.Context())
		if err != nil {
			return err
		}
		printBooks(cmd.OutOrStdout(), books)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <title>",
	Short: "Show one book by title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		b, err := c.GetBook(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printBook(cmd.OutOrStdout(), b)
		return nil
	},
}

var findCmd = &cobra.Command{
	Use:       "find <author|language> <value>",
	Short:     "List books whose author or language matches exactly",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"author", "language"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		books, err := c.FindBooks(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		printBooks(cmd.OutOrStdout(), books)
		return nil
	},
}

var newBook struct {
	shared.Book
	genre1, genre2 string
}

var addBookCmd = &cobra.Command{
	Use:   "add-book",
	Short: "Create or replace a book",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		b := newBook.Book
		b.Genres = []string{newBook.genre1, newBook.genre2}
		created, err := c.AddBook(cmd.Context(), b)
		if err != nil {
			return err
		}
		printSaved(cmd.OutOrStdout(), "book", b.Title, created)
		return nil
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate <title> <rating>",
	Short: "Set the rating of an existing book",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("rating %q is not a number", args[1])
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		if err := c.RateBook(cmd.Context(), args[0], rating); err != nil {
			return err
		}
		okColor.Fprintf(cmd.OutOrStdout(), "rated %s: %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	f := addBookCmd.Flags()
	f.StringVar(&newBook.Title, "title", "", "book title")
	f.StringVar(&newBook.Author, "author", "", "author")
	f.StringVar(&newBook.Country, "country", "", "country of origin")
	f.StringVar(&newBook.Language, "language", "", "original language")
	f.StringVar(&newBook.Link, "link", "", "reference link")
	f.IntVar(&newBook.Pages, "pages", 0, "page count")
	f.IntVar(&newBook.Year, "year", 0, "publication year")
	f.StringVar(&newBook.genre1, "genre1", "", "first genre")
	f.StringVar(&newBook.genre2, "genre2", "", "second genre")
	for _, name := range []string{"title", "author", "country", "language", "link", "pages", "year", "genre1", "genre2"} {
		_ = addBookCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(booksCmd, getCmd, findCmd, addBookCmd, rateCmd)
}
