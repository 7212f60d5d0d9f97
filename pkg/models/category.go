package models

// Category classifies a file by its extension
type Category string

const (
	// CategoryDocuments holds office text documents (doc, docx)
	CategoryDocuments Category = "Documents"
	// CategoryPDFs holds PDF files
	CategoryPDFs Category = "PDFs"
	// CategoryPresentations holds slide decks (ppt, pptx)
	CategoryPresentations Category = "Presentations"
	// CategorySpreadsheets holds spreadsheets (xls, xlsx)
	CategorySpreadsheets Category = "Spreadsheets"
	// CategoryImages holds photos and other raster images
	CategoryImages Category = "Images"
	// CategoryVideos holds video files
	CategoryVideos Category = "Videos"
	// CategoryAudio holds audio files
	CategoryAudio Category = "Audio"
)

// String returns the category name, which is also the folder name
// files of this category are organized into
func (c Category) String() string {
	return string(c)
}

// Color returns the display color name used by the human formatter
func (c Category) Color() string {
	switch c {
	case CategoryDocuments:
		return "blue"
	case CategoryPDFs:
		return "red"
	case CategoryPresentations:
		return "magenta"
	case CategorySpreadsheets:
		return "green"
	case CategoryImages:
		return "cyan"
	case CategoryVideos:
		return "yellow"
	case CategoryAudio:
		return "red"
	default:
		return "white"
	}
}

// CategoryOrder returns all categories in stable display order
func CategoryOrder() []Category {
	return []Category{
		CategoryDocuments,
		CategoryPDFs,
		CategoryPresentations,
		CategorySpreadsheets,
		CategoryImages,
		CategoryVideos,
		CategoryAudio,
	}
}

// ParseCategory resolves a category by name
// Returns false if the name does not match any known category
func ParseCategory(name string) (Category, bool) {
	for _, c := range CategoryOrder() {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}
