package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomashirtz/notion-scholar/internal/remote"
)

func TestDatabase_QueryPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"object": "list",
			"results": [
				{
					"object": "page",
					"id": "p1",
					"properties": {
						"Title": {"id": "title", "type": "title", "title": [{"type": "text", "plain_text": "The "}, {"type": "text", "plain_text": "Paper"}]},
						"Filename": {"id": "a", "type": "rich_text", "rich_text": [{"type": "text", "plain_text": "A1"}]},
						"Abstract": {"id": "b", "type": "rich_text", "rich_text": []},
						"Year": {"id": "c", "type": "number", "number": 2020}
					}
				},
				{
					"object": "page",
					"id": "p2",
					"properties": {
						"Filename": {"id": "a", "type": "rich_text", "rich_text": []}
					}
				}
			],
			"next_cursor": "next",
			"has_more": true
		}`))
	})

	db := NewDatabase(client, "db1")
	page, err := db.QueryPage(context.Background(), "", 100)
	require.NoError(t, err)
	require.Len(t, page.Rows, 2)

	assert.Equal(t, remote.Row{"Title": "The Paper", "Filename": "A1"}, page.Rows[0])
	assert.Empty(t, page.Rows[1])
	assert.Equal(t, "next", page.NextCursor)
}

func TestDatabase_QueryPage_LastPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"object":"list","results":[],"next_cursor":null,"has_more":false}`))
	})

	page, err := NewDatabase(client, "db1").QueryPage(context.Background(), "cur", 100)
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
	assert.Empty(t, page.NextCursor)
}

func TestDatabase_CreateRecord(t *testing.T) {
	var props map[string]json.RawMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Properties map[string]json.RawMessage `json:"properties"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		props = body.Properties
		w.Write([]byte(`{"object":"page","id":"page-1","properties":{}}`))
	})

	year := 2020
	url := "https://example.org/paper"
	id, err := NewDatabase(client, "db1").CreateRecord(context.Background(), remote.Record{
		Title:    "T",
		Authors:  "X Y",
		Filename: "A1",
		Year:     &year,
		URL:      &url,
		Inbox:    true,
		Type:     "article",
	})
	require.NoError(t, err)
	assert.Equal(t, "page-1", id)

	assert.JSONEq(t, `{"title":[{"text":{"content":"T"}}]}`, string(props["Title"]))
	assert.JSONEq(t, `{"rich_text":[{"text":{"content":"A1"}}]}`, string(props["Filename"]))
	assert.JSONEq(t, `{"rich_text":[]}`, string(props["Abstract"]))
	assert.JSONEq(t, `{"number":2020}`, string(props["Year"]))
	assert.JSONEq(t, `{"url":"https://example.org/paper"}`, string(props["URL"]))
	assert.JSONEq(t, `{"checkbox":true}`, string(props["Inbox"]))
	assert.JSONEq(t, `{"select":{"name":"article"}}`, string(props["Type"]))
	assert.NotContains(t, props, "Category")
	assert.NotContains(t, props, "Keywords")
}

func TestRecordProperties_EmptyValues(t *testing.T) {
	props := RecordProperties(remote.Record{})

	data, err := json.Marshal(props)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.JSONEq(t, `{"number":null}`, string(decoded["Year"]))
	assert.JSONEq(t, `{"url":null}`, string(decoded["URL"]))
	assert.JSONEq(t, `{"select":null}`, string(decoded["Type"]))
	assert.JSONEq(t, `{"checkbox":false}`, string(decoded["Inbox"]))
	assert.Len(t, decoded, 11)
}

func TestRecordProperties_Optional(t *testing.T) {
	props := RecordProperties(remote.Record{
		Categories: []string{"cat-1", "cat-2"},
		Keywords:   []string{"rl", "control"},
	})

	data, err := json.Marshal(props)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.JSONEq(t, `{"relation":[{"id":"cat-1"},{"id":"cat-2"}]}`, string(decoded["Category"]))
	assert.JSONEq(t, `{"multi_select":[{"name":"rl"},{"name":"control"}]}`, string(decoded["Keywords"]))
}
