package contentful

import "github.com/eringen/cmsblog/richtext"

// Post is a blog article as returned by Contentful. Optional fields are
// empty (or nil) when the entry leaves them unset.
type Post struct {
	Slug          string
	Title         string
	Date          string // ISO 8601, as stored in Contentful
	Excerpt       string
	CoverImageURL string
	Author        *Author
	Content       *richtext.Document
}

// Author is the person credited on a post.
type Author struct {
	Name       string
	PictureURL string
}

// PostWithRelated is a post plus a few other posts to show next to it.
// Post is nil when the slug does not exist.
type PostWithRelated struct {
	Post    *Post
	Related []Post
}

type urlField struct {
	URL string `json:"url"`
}

type wirePost struct {
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	CoverImage *urlField `json:"coverImage"`
	Date       string    `json:"date"`
	Author     *struct {
		Name    string    `json:"name"`
		Picture *urlField `json:"picture"`
	} `json:"author"`
	Excerpt string             `json:"excerpt"`
	Content *richtext.Document `json:"content"`
}

func (w wirePost) post() Post {
	p := Post{
		Slug:    w.Slug,
		Title:   w.Title,
		Date:    w.Date,
		Excerpt: w.Excerpt,
		Content: w.Content,
	}
	if w.CoverImage != nil {
		p.CoverImageURL = w.CoverImage.URL
	}
	if w.Author != nil {
		p.Author = &Author{Name: w.Author.Name}
		if w.Author.Picture != nil {
			p.Author.PictureURL = w.Author.Picture.URL
		}
	}
	return p
}

type graphQLError struct {
	Message string `json:"message"`
}

// envelope is the GraphQL response body. Every level is a pointer so that an
// absent or null level can be told apart from an empty item list.
type envelope struct {
	Data *struct {
		PostCollection *struct {
			Items []*wirePost `json:"items"`
		} `json:"postCollection"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

func (e *envelope) items() ([]*wirePost, bool) {
	if e.Data == nil || e.Data.PostCollection == nil || e.Data.PostCollection.Items == nil {
		return nil, false
	}
	return e.Data.PostCollection.Items, true
}
