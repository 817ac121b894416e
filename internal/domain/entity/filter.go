package entity

import "strings"

// FilterName имя фильтра из фиксированного набора
type FilterName string

const (
	FilterRemoveBackground FilterName = "Remove Background"
	FilterGrayscale        FilterName = "Grayscale"
	FilterLaplacian        FilterName = "Laplacian Derivatives"
	FilterCanny            FilterName = "Canny Edge Detection"
)

// filterSlugs короткие имена для URL и команд бота
var filterSlugs = map[FilterName]string{
	FilterRemoveBackground: "remove-background",
	FilterGrayscale:        "grayscale",
	FilterLaplacian:        "laplacian",
	FilterCanny:            "canny",
}

// Filters возвращает все фильтры в порядке отображения в интерфейсе.
func Filters() []FilterName {
	return []FilterName{
		FilterRemoveBackground,
		FilterGrayscale,
		FilterLaplacian,
		FilterCanny,
	}
}

// Slug возвращает короткое имя фильтра.
func (f FilterName) Slug() string {
	return filterSlugs[f]
}

// Valid сообщает, входит ли фильтр в набор.
func (f FilterName) Valid() bool {
	_, ok := filterSlugs[f]
	return ok
}

// ParseFilter принимает полное имя или slug без учёта регистра.
func ParseFilter(s string) (FilterName, error) {
	s = strings.TrimSpace(s)
	for _, f := range Filters() {
		if strings.EqualFold(s, string(f)) || strings.EqualFold(s, f.Slug()) {
			return f, nil
		}
	}
	return "", &UnknownFilterError{Name: s}
}
