package notion

// PropertyValue is a property value written to a page, e.g.
// {"rich_text": [...]}.
type PropertyValue map[string]any

// Properties maps property names to values.
type Properties map[string]PropertyValue

func textObjects(value string) []map[string]any {
	if value == "" {
		return []map[string]any{}
	}
	return []map[string]any{
		{"text": map[string]any{"content": value}},
	}
}

// TitleValue returns a title property value.
func TitleValue(value string) PropertyValue {
	return PropertyValue{"title": textObjects(value)}
}

// RichTextValue returns a rich_text property value.
func RichTextValue(value string) PropertyValue {
	return PropertyValue{"rich_text": textObjects(value)}
}

// NumberValue returns a number property value; nil clears the number.
func NumberValue(n *int) PropertyValue {
	if n == nil {
		return PropertyValue{"number": nil}
	}
	return PropertyValue{"number": *n}
}

// URLValue returns a url property value; nil or "" clears the URL.
func URLValue(url *string) PropertyValue {
	if url == nil || *url == "" {
		return PropertyValue{"url": nil}
	}
	return PropertyValue{"url": *url}
}

// CheckboxValue returns a checkbox property value.
func CheckboxValue(checked bool) PropertyValue {
	return PropertyValue{"checkbox": checked}
}

// SelectValue returns a select property value; "" clears the selection.
func SelectValue(name string) PropertyValue {
	if name == "" {
		return PropertyValue{"select": nil}
	}
	return PropertyValue{"select": map[string]any{"name": name}}
}

// MultiSelectValue returns a multi_select property value.
func MultiSelectValue(names []string) PropertyValue {
	options := make([]map[string]any, len(names))
	for i, n := range names {
		options[i] = map[string]any{"name": n}
	}
	return PropertyValue{"multi_select": options}
}

// RelationValue returns a relation property value linking to page IDs.
func RelationValue(ids []string) PropertyValue {
	pages := make([]map[string]any, len(ids))
	for i, id := range ids {
		pages[i] = map[string]any{"id": id}
	}
	return PropertyValue{"relation": pages}
}
