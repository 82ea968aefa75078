package document

// DefaultTitle is substituted when the backend returns a document without a title.
const DefaultTitle = "Untitled"

// Document is a retrieved index entry (immutable value object).
// Field values arrive verbatim from the search backend.
type Document struct {
	title    string
	content  string
	author   string
	category string
	date     string
}

// New creates a Document. An absent title becomes DefaultTitle;
// other absent fields stay empty strings.
func New(title, content, author, category, date string) Document {
	if title == "" {
		title = DefaultTitle
	}
	return Document{
		title:    title,
		content:  content,
		author:   author,
		category: category,
		date:     date,
	}
}

// Title returns the document title.
func (d Document) Title() string { return d.title }

// Content returns the document text content.
func (d Document) Content() string { return d.content }

// Author returns the document author.
func (d Document) Author() string { return d.author }

// Category returns the document category.
func (d Document) Category() string { return d.category }

// Date returns the document date string.
func (d Document) Date() string { return d.date }
