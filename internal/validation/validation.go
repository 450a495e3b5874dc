// Package validation checks raw entity payloads before they reach storage.
//
// Each check stops at the first violation. Fields are checked in a fixed order
// and every field goes through presence, type, bounds and then format.
// Accepted string values are written back into the record trimmed.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"catalog/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// Record is an entity payload as decoded from the wire.
type Record map[string]any

// Mode selects how absent fields are treated.
type Mode int

const (
	// Create requires every mandatory field.
	Create Mode = iota
	// Patch checks only the fields present in the record.
	Patch
)

const (
	EntityProduct       = "Product"
	EntityCategory      = "Category"
	EntityGroupCategory = "GroupCategory"
)

const (
	MaxPrice = 999999.99

	productNameMax     = 200
	productCategoryMax = 100
	productImageMax    = 500
	categoryNameMin    = 2
	categoryNameMax    = 50
	groupNameMin       = 2
	groupNameMax       = 100
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9\s\-_]+$`)

// Validator runs the catalog rule sets.
type Validator struct {
	validate *validator.Validate
}

// New creates a new Validator.
func New() *Validator {
	v := validator.New()
	// the tag name is a package constant, registration cannot fail
	_ = v.RegisterValidation("catalogname", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

type stringRule struct {
	field       string
	min, max    int
	charset     bool
	required    apperror.Code
	invalidType apperror.Code
	tooShort    apperror.Code
	tooLong     apperror.Code
}

func (v *Validator) checkString(rec Record, mode Mode, entity string, r stringRule) error {
	raw, present := rec[r.field]
	if !present && mode == Patch {
		return nil
	}
	if raw == nil {
		return apperror.Validation(r.required, entity, r.field, nil, "")
	}
	s, ok := raw.(string)
	if !ok {
		return apperror.Validation(r.invalidType, entity, r.field, raw,
			fmt.Sprintf("%s %s must be a string", entity, r.field))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return apperror.Validation(r.required, entity, r.field, raw, "")
	}
	if r.min > 0 && v.validate.Var(s, fmt.Sprintf("min=%d", r.min)) != nil {
		return apperror.Validation(r.tooShort, entity, r.field, s, "")
	}
	if v.validate.Var(s, fmt.Sprintf("max=%d", r.max)) != nil {
		return apperror.Validation(r.tooLong, entity, r.field, s, "")
	}
	if r.charset && v.validate.Var(s, "catalogname") != nil {
		return apperror.Validation(apperror.CodeNameContainsInvalidChars, entity, r.field, s,
			fmt.Sprintf("%s %s may only contain letters, numbers, spaces, hyphens and underscores", entity, r.field))
	}
	rec[r.field] = s
	return nil
}

// Product checks name, category, price and image.
func (v *Validator) Product(rec Record, mode Mode) error {
	rules := []stringRule{
		{
			field: "name", max: productNameMax,
			required:    apperror.CodeProductNameRequired,
			invalidType: apperror.CodeProductInvalidData,
			tooLong:     apperror.CodeProductNameTooLong,
		},
		{
			field: "category", max: productCategoryMax,
			required:    apperror.CodeProductCategoryRequired,
			invalidType: apperror.CodeProductInvalidCategory,
			tooLong:     apperror.CodeProductInvalidCategory,
		},
	}
	for _, r := range rules {
		if err := v.checkString(rec, mode, EntityProduct, r); err != nil {
			return err
		}
	}
	if err := v.checkPrice(rec, mode); err != nil {
		return err
	}
	return v.checkString(rec, mode, EntityProduct, stringRule{
		field: "image", max: productImageMax,
		required:    apperror.CodeProductImageRequired,
		invalidType: apperror.CodeProductInvalidImage,
		tooLong:     apperror.CodeProductInvalidImage,
	})
}

func (v *Validator) checkPrice(rec Record, mode Mode) error {
	raw, present := rec["price"]
	if !present && mode == Patch {
		return nil
	}
	if raw == nil {
		return apperror.Validation(apperror.CodeProductInvalidPrice, EntityProduct, "price", nil,
			"Product price is required")
	}
	price, ok := toFloat(raw)
	if !ok {
		return apperror.Validation(apperror.CodeProductInvalidPrice, EntityProduct, "price", raw,
			"Product price must be a number")
	}
	if v.validate.Var(price, fmt.Sprintf("gt=0,lte=%.2f", MaxPrice)) != nil {
		return apperror.Validation(apperror.CodeProductInvalidPrice, EntityProduct, "price", raw,
			fmt.Sprintf("Product price must be greater than 0 and at most %.2f", MaxPrice))
	}
	rec["price"] = price
	return nil
}

// Category checks the category name.
func (v *Validator) Category(rec Record, mode Mode) error {
	return v.checkString(rec, mode, EntityCategory, stringRule{
		field: "name", min: categoryNameMin, max: categoryNameMax, charset: true,
		required:    apperror.CodeCategoryNameRequired,
		invalidType: apperror.CodeCategoryInvalidName,
		tooShort:    apperror.CodeCategoryNameTooShort,
		tooLong:     apperror.CodeCategoryNameTooLong,
	})
}

// GroupCategory checks the group name and its category id list. An absent
// list is stored as empty on create.
func (v *Validator) GroupCategory(rec Record, mode Mode) error {
	err := v.checkString(rec, mode, EntityGroupCategory, stringRule{
		field: "name", min: groupNameMin, max: groupNameMax, charset: true,
		required:    apperror.CodeGroupCategoryNameRequired,
		invalidType: apperror.CodeGroupCategoryInvalidName,
		tooShort:    apperror.CodeGroupCategoryNameTooShort,
		tooLong:     apperror.CodeGroupCategoryNameTooLong,
	})
	if err != nil {
		return err
	}
	raw, present := rec["categories"]
	if !present {
		if mode == Create {
			rec["categories"] = []string{}
		}
		return nil
	}
	ids, err := v.categoryIDs(raw)
	if err != nil {
		return err
	}
	rec["categories"] = ids
	return nil
}

// CategoryAssignment checks the list given to an assign-categories call,
// which must be present.
func (v *Validator) CategoryAssignment(rec Record) error {
	raw, present := rec["categories"]
	if !present || raw == nil {
		return apperror.Validation(apperror.CodeGroupCategoryInvalidCategories, EntityGroupCategory,
			"categories", nil, "Categories are required")
	}
	ids, err := v.categoryIDs(raw)
	if err != nil {
		return err
	}
	rec["categories"] = ids
	return nil
}

func (v *Validator) categoryIDs(raw any) ([]string, error) {
	var items []any
	switch list := raw.(type) {
	case []any:
		items = list
	case []string:
		items = make([]any, len(list))
		for i, s := range list {
			items[i] = s
		}
	default:
		return nil, apperror.Validation(apperror.CodeGroupCategoryInvalidCategories, EntityGroupCategory,
			"categories", raw, "Categories must be an array")
	}

	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, apperror.Validation(apperror.CodeGroupCategoryInvalidCategories, EntityGroupCategory,
				"categories", item, fmt.Sprintf("Category at index %d must be a non-empty string", i))
		}
		s = strings.TrimSpace(s)
		if v.validate.Var(s, "uuid") != nil {
			return nil, apperror.Validation(apperror.CodeGroupCategoryInvalidCategories, EntityGroupCategory,
				"categories", s, fmt.Sprintf("Category at index %d is not a valid id", i))
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		ids = append(ids, s)
	}
	return ids, nil
}

// ID checks a record identifier and returns it trimmed.
func (v *Validator) ID(entity string, raw any) (string, error) {
	if raw == nil {
		return "", apperror.Validation(apperror.CodeIDRequired, entity, "_id", nil, "")
	}
	s, ok := raw.(string)
	if !ok {
		return "", apperror.Validation(apperror.CodeInvalidIDFormat, entity, "_id", raw, "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperror.Validation(apperror.CodeIDRequired, entity, "_id", nil, "")
	}
	if v.validate.Var(s, "uuid") != nil {
		return "", apperror.Validation(apperror.CodeInvalidIDFormat, entity, "_id", s, "")
	}
	return s, nil
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
