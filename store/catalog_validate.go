package store

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/karimelhadi/atelierbackend/dto"
	"github.com/karimelhadi/atelierbackend/models"
)

const (
	nameMinLen        = 2
	nameMaxLen        = 100
	descriptionMinLen = 10
	descriptionMaxLen = 1000
	dynamicKeyMaxLen  = 50
	placeholderMaxLen = 100
	referenceMaxLen   = 200
)

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// validateProduct checks the full entity against every invariant and
// returns one entry per violated field. offersFromCaller tightens the
// offer discount range to [1,99]: a 0% or 100% offer in a request is
// always operator error, even though [0,100] is representable.
func validateProduct(p *models.Product, facets models.FacetCatalog, offersFromCaller bool) []FieldError {
	var fields []FieldError

	name := strings.TrimSpace(p.Name)
	if n := utf8.RuneCountInString(name); n < nameMinLen || n > nameMaxLen {
		fields = append(fields, FieldError{
			Field:   "name",
			Message: fmt.Sprintf("name must be between %d and %d characters", nameMinLen, nameMaxLen),
			Value:   p.Name,
		})
	}

	if p.Price <= 0 {
		fields = append(fields, FieldError{
			Field:   "price",
			Message: "price must be greater than 0",
			Value:   p.Price,
		})
	}

	if p.DiscountPrice != nil {
		switch {
		case *p.DiscountPrice < 0:
			fields = append(fields, FieldError{
				Field:   "discountPrice",
				Message: "discount price cannot be negative",
				Value:   *p.DiscountPrice,
			})
		case *p.DiscountPrice >= p.Price:
			fields = append(fields, FieldError{
				Field:   "discountPrice",
				Message: "discount price must be less than price",
				Value:   *p.DiscountPrice,
			})
		}
	}

	desc := strings.TrimSpace(p.Description)
	if n := utf8.RuneCountInString(desc); n < descriptionMinLen || n > descriptionMaxLen {
		fields = append(fields, FieldError{
			Field:   "description",
			Message: fmt.Sprintf("description must be between %d and %d characters", descriptionMinLen, descriptionMaxLen),
			Value:   p.Description,
		})
	}

	if len(p.Images) == 0 {
		fields = append(fields, FieldError{
			Field:   "images",
			Message: "at least one image is required",
		})
	}
	for i, img := range p.Images {
		if !isHTTPURL(img) {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("images[%d]", i),
				Message: "image must be a valid http(s) URL",
				Value:   img,
			})
		}
	}

	for i, df := range p.DynamicFields {
		if strings.TrimSpace(df.Key) == "" || utf8.RuneCountInString(df.Key) > dynamicKeyMaxLen {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("dynamicFields[%d].key", i),
				Message: fmt.Sprintf("key is required and must be at most %d characters", dynamicKeyMaxLen),
				Value:   df.Key,
			})
		}
		if strings.TrimSpace(df.Placeholder) == "" || utf8.RuneCountInString(df.Placeholder) > placeholderMaxLen {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("dynamicFields[%d].placeholder", i),
				Message: fmt.Sprintf("placeholder is required and must be at most %d characters", placeholderMaxLen),
				Value:   df.Placeholder,
			})
		}
	}

	fields = append(fields, validatePredefinedFields(p.PredefinedFields, facets)...)
	fields = append(fields, validateOffers(p.Offers, offersFromCaller)...)

	for i, hf := range p.HiddenFields {
		if strings.TrimSpace(hf.Key) == "" {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("hiddenFields[%d].key", i),
				Message: "key is required",
			})
		}
	}

	if utf8.RuneCountInString(p.Reference) > referenceMaxLen {
		fields = append(fields, FieldError{
			Field:   "reference",
			Message: fmt.Sprintf("reference must be at most %d characters", referenceMaxLen),
			Value:   p.Reference,
		})
	}

	return fields
}

// validateProductPatch checks only the fields a bulk patch supplies.
// The discount/price invariant is enforced when both sides travel in the
// same patch; when only one travels, guardPricePair narrows the bulk
// match filter so no product ends up with discountPrice >= price.
func validateProductPatch(patch dto.UpdateProductDTO, facets models.FacetCatalog) []FieldError {
	var fields []FieldError

	if patch.Name != nil {
		if n := utf8.RuneCountInString(strings.TrimSpace(*patch.Name)); n < nameMinLen || n > nameMaxLen {
			fields = append(fields, FieldError{
				Field:   "patch.name",
				Message: fmt.Sprintf("name must be between %d and %d characters", nameMinLen, nameMaxLen),
				Value:   *patch.Name,
			})
		}
	}
	if patch.Price != nil && *patch.Price <= 0 {
		fields = append(fields, FieldError{
			Field:   "patch.price",
			Message: "price must be greater than 0",
			Value:   *patch.Price,
		})
	}
	if patch.DiscountPrice != nil {
		if *patch.DiscountPrice < 0 {
			fields = append(fields, FieldError{
				Field:   "patch.discountPrice",
				Message: "discount price cannot be negative",
				Value:   *patch.DiscountPrice,
			})
		} else if patch.Price != nil && *patch.DiscountPrice >= *patch.Price {
			fields = append(fields, FieldError{
				Field:   "patch.discountPrice",
				Message: "discount price must be less than price",
				Value:   *patch.DiscountPrice,
			})
		}
	}
	if patch.Description != nil {
		if n := utf8.RuneCountInString(strings.TrimSpace(*patch.Description)); n < descriptionMinLen || n > descriptionMaxLen {
			fields = append(fields, FieldError{
				Field:   "patch.description",
				Message: fmt.Sprintf("description must be between %d and %d characters", descriptionMinLen, descriptionMaxLen),
				Value:   *patch.Description,
			})
		}
	}
	if patch.Images != nil {
		if len(*patch.Images) == 0 {
			fields = append(fields, FieldError{
				Field:   "patch.images",
				Message: "at least one image is required",
			})
		}
		for i, img := range *patch.Images {
			if !isHTTPURL(img) {
				fields = append(fields, FieldError{
					Field:   fmt.Sprintf("patch.images[%d]", i),
					Message: "image must be a valid http(s) URL",
					Value:   img,
				})
			}
		}
	}
	if patch.PredefinedFields != nil {
		fields = append(fields, validatePredefinedFields(predefinedFieldsFromDTO(*patch.PredefinedFields), facets)...)
	}
	if patch.Offers != nil {
		fields = append(fields, validateOffers(offersFromDTO(*patch.Offers), true)...)
	}
	if patch.Reference != nil && utf8.RuneCountInString(*patch.Reference) > referenceMaxLen {
		fields = append(fields, FieldError{
			Field:   "patch.reference",
			Message: fmt.Sprintf("reference must be at most %d characters", referenceMaxLen),
			Value:   *patch.Reference,
		})
	}

	return fields
}

func validatePredefinedFields(groups []models.PredefinedField, facets models.FacetCatalog) []FieldError {
	var fields []FieldError

	for i, pf := range groups {
		vocabulary, known := facets.Options(pf.Category)
		if !known {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("predefinedFields[%d].category", i),
				Message: "unknown facet category",
				Value:   pf.Category,
			})
			continue
		}

		allowed := make(map[string]struct{}, len(vocabulary))
		for _, o := range vocabulary {
			allowed[o] = struct{}{}
		}
		for _, o := range pf.Options {
			if _, ok := allowed[o]; !ok {
				fields = append(fields, FieldError{
					Field:   fmt.Sprintf("predefinedFields[%d].options", i),
					Message: "option is not part of the facet vocabulary",
					Value:   o,
				})
			}
		}

		options := make(map[string]struct{}, len(pf.Options))
		for _, o := range pf.Options {
			options[o] = struct{}{}
		}
		for _, s := range pf.SelectedOptions {
			if _, ok := options[s]; !ok {
				fields = append(fields, FieldError{
					Field:   fmt.Sprintf("predefinedFields[%d].selectedOptions", i),
					Message: "selected option is not among the group options",
					Value:   s,
				})
			}
		}
	}

	return fields
}

func validateOffers(offers []models.Offer, fromCaller bool) []FieldError {
	var fields []FieldError

	min, max := 0, 100
	if fromCaller {
		min, max = 1, 99
	}

	for i, o := range offers {
		if strings.TrimSpace(o.Title) == "" {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("offers[%d].title", i),
				Message: "title is required",
			})
		}
		if o.Discount < min || o.Discount > max {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("offers[%d].discount", i),
				Message: fmt.Sprintf("discount must be between %d and %d", min, max),
				Value:   o.Discount,
			})
		}
	}

	return fields
}
