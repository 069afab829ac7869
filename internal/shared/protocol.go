package shared

// Book is a catalogue entry. Title is its identity key.
type Book struct {
	Title    string   `json:"title" yaml:"title" toml:"title"`
	Author   string   `json:"author" yaml:"author" toml:"author"`
	Country  string   `json:"country" yaml:"country" toml:"country"`
	Language string   `json:"language" yaml:"language" toml:"language"`
	Link     string   `json:"link" yaml:"link" toml:"link"`
	Pages    int      `json:"pages" yaml:"pages" toml:"pages"`
	Year     int      `json:"year" yaml:"year" toml:"year"`
	Genres   []string `json:"genres" yaml:"genres" toml:"genres"`
	Rating   *float64 `json:"rating,omitempty" yaml:"rating,omitempty" toml:"rating,omitempty"`
}

// User is keyed by Name.
type User struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// Routes
const (
	PathIndex              = "/"
	PathStyle              = "/style.css"
	PathGetAllBooks        = "/getAllBooks"
	PathGetBooks           = "/getBooks"
	PathGetBookByTitle     = "/getBookByTitle"
	PathGetBookByLanguage  = "/getBookByLanguage"
	PathGetBooksByLanguage = "/getBooksByLanguage"
	PathGetBookByAuthor    = "/getBookByAuthor"
	PathGetBooksByAuthor   = "/getBooksByAuthor"
	PathGetUsers           = "/getUsers"
	PathAddBook            = "/addBook"
	PathAddBookReview      = "/addBookReview"
	PathAddUser            = "/addUser"
)

// Error ids carried in the "id" field of failure envelopes.
const (
	IDMissingParams = "missingParams"
	IDInvalidParams = "invalidParams"
	IDBookNotFound  = "bookNotFound"
	IDNoBookToRate  = "noBookToRate"
	IDNotFound      = "notFound"
	IDInternalError = "internalError"
)

const MessageCreated = "Created Successfully"

// Envelope is the client-side view of any JSON response body.
type Envelope struct {
	Message       string          `json:"message,omitempty"`
	ID            string          `json:"id,omitempty"`
	Books         []Book          `json:"books,omitempty"`
	SearchedBook  *Book           `json:"searchedBook,omitempty"`
	SearchedBooks []Book          `json:"searchedBooks,omitempty"`
	Users         map[string]User `json:"users,omitempty"`
}
