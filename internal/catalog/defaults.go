package catalog

// Default returns the built-in category table. Each call returns a new Table
// so callers never share mutable state.
func Default() *Table {
	t, err := New(DefaultCategories())
	if err != nil {
		panic("catalog: invalid built-in table: " + err.Error())
	}
	return t
}

// DefaultCategories returns the built-in category definitions in
// classification order.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Documents", Extensions: []string{"pdf", "doc", "docx", "odt", "rtf", "txt", "md", "xls", "xlsx", "ods", "csv", "ppt", "pptx", "odp", "epub"}},
		{Name: "Images", Extensions: []string{"jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff", "webp", "svg", "heic", "raw"}},
		{Name: "Videos", Extensions: []string{"mp4", "mkv", "avi", "mov", "wmv", "flv", "webm", "m4v", "mpeg", "mpg"}},
		{Name: "Music", Extensions: []string{"mp3", "wav", "flac", "aac", "ogg", "m4a", "wma", "opus"}},
	}
}
