// Package notion provides a client for the Notion REST API and an adapter
// exposing a Notion database as a remote.Database.
package notion

// RichText is one rich text object.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

// TextContent is the content of a text rich text object.
type TextContent struct {
	Content string `json:"content"`
}

// Property is a page property value as returned by the API. Only the text
// variants are decoded.
type Property struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
}

// PlainText returns the concatenated plain text of a title or rich_text
// property, or "" for other property types.
func (p Property) PlainText() string {
	var parts []RichText
	switch p.Type {
	case "title":
		parts = p.Title
	case "rich_text":
		parts = p.RichText
	default:
		return ""
	}

	text := ""
	for _, rt := range parts {
		if rt.PlainText != "" {
			text += rt.PlainText
		} else if rt.Text != nil {
			text += rt.Text.Content
		}
	}
	return text
}

// Page is a Notion page, i.e. one database row.
type Page struct {
	Object     string              `json:"object"`
	ID         string              `json:"id"`
	URL        string              `json:"url,omitempty"`
	Properties map[string]Property `json:"properties"`
}

// QueryRequest is the body of a database query.
type QueryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

// QueryResponse is one page of database query results.
type QueryResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

// Parent identifies the database a page is created in.
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// CreatePageRequest is the body of a page creation.
type CreatePageRequest struct {
	Parent     Parent     `json:"parent"`
	Properties Properties `json:"properties"`
}

// errorResponse is the error object returned by the API.
type errorResponse struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
