package column

// Fluent setters for the DataTables column options that are set most often.
// Anything else goes through Set.

// WithTitle sets the header label.
func (c *Column) WithTitle(title string) *Column {
	c.Title = title
	return c
}

// Width sets the CSS width of the column, e.g. "120px" or "10%".
func (c *Column) Width(width string) *Column {
	return c.Set("width", width)
}

// ClassName sets the CSS class applied to every cell in the column.
func (c *Column) ClassName(class string) *Column {
	return c.Set("className", class)
}

// Orderable toggles user ordering on the column.
func (c *Column) Orderable(flag bool) *Column {
	return c.Set("orderable", flag)
}

// Searchable toggles inclusion of the column in global search.
func (c *Column) Searchable(flag bool) *Column {
	return c.Set("searchable", flag)
}

// Visible toggles column visibility.
func (c *Column) Visible(flag bool) *Column {
	return c.Set("visible", flag)
}

// Exportable toggles inclusion of the column in button exports.
func (c *Column) Exportable(flag bool) *Column {
	return c.Set("exportable", flag)
}

// Printable toggles inclusion of the column in the print view.
func (c *Column) Printable(flag bool) *Column {
	return c.Set("printable", flag)
}

// Footer sets the footer cell content.
func (c *Column) Footer(footer string) *Column {
	return c.Set("footer", footer)
}

// Render sets the client-side render function reference, e.g.
// "$.fn.dataTable.render.number(',', '.', 2)".
func (c *Column) Render(fn string) *Column {
	return c.Set("render", fn)
}

// DefaultContent sets the content shown when the data source is null.
func (c *Column) DefaultContent(content string) *Column {
	return c.Set("defaultContent", content)
}

// Hidden is shorthand for Visible(false).
func (c *Column) Hidden() *Column {
	return c.Visible(false)
}
