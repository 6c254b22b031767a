package models

// FacetCatalog is the fixed vocabulary of predefined facet categories a
// product may activate. It is built once at startup and handed to the
// catalog store, so tests and deployments can swap it out.
type FacetCatalog struct {
	Categories []FacetCategory
}

type FacetCategory struct {
	Name    string
	Options []string
}

func DefaultFacetCatalog() FacetCatalog {
	return FacetCatalog{
		Categories: []FacetCategory{
			{Name: "size", Options: []string{"XS", "S", "M", "L", "XL", "XXL"}},
			{Name: "color", Options: []string{"black", "white", "red", "blue", "green", "beige", "brown"}},
			{Name: "material", Options: []string{"cotton", "linen", "wool", "silk", "leather", "synthetic"}},
			{Name: "style", Options: []string{"casual", "formal", "sport", "vintage", "bohemian"}},
		},
	}
}

// Options returns the allowed option values for a category.
func (fc FacetCatalog) Options(category string) ([]string, bool) {
	for _, c := range fc.Categories {
		if c.Name == category {
			return c.Options, true
		}
	}
	return nil, false
}

// DefaultPredefinedFields builds the initial facet groups for a product
// created without any: one inactive group per category, nothing selected.
func (fc FacetCatalog) DefaultPredefinedFields() []PredefinedField {
	fields := make([]PredefinedField, 0, len(fc.Categories))
	for _, c := range fc.Categories {
		options := make([]string, len(c.Options))
		copy(options, c.Options)
		fields = append(fields, PredefinedField{
			Category:        c.Name,
			Options:         options,
			SelectedOptions: []string{},
			IsActive:        false,
		})
	}
	return fields
}
