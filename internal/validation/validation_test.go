package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"catalog/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertCode(t *testing.T, err error, code apperror.Code) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %T", err)
	assert.Equal(t, code, appErr.Code, appErr.Message)
}

func validProduct() Record {
	return Record{"name": "X", "category": "Headphones", "price": 9.99, "image": "/x.svg"}
}

func TestCategoryName(t *testing.T) {
	v := New()
	tests := []struct {
		name string
		rec  Record
		code apperror.Code
		ok   bool
	}{
		{"valid", Record{"name": "Headphones"}, 0, true},
		{"two chars", Record{"name": "TV"}, 0, true},
		{"fifty chars", Record{"name": strings.Repeat("a", 50)}, 0, true},
		{"allowed punctuation", Record{"name": "In-Ear_Monitors 2"}, 0, true},
		{"missing", Record{}, apperror.CodeCategoryNameRequired, false},
		{"null", Record{"name": nil}, apperror.CodeCategoryNameRequired, false},
		{"blank", Record{"name": "   "}, apperror.CodeCategoryNameRequired, false},
		{"number", Record{"name": 42.0}, apperror.CodeCategoryInvalidName, false},
		{"too short", Record{"name": "A"}, apperror.CodeCategoryNameTooShort, false},
		{"too short after trim", Record{"name": "  A  "}, apperror.CodeCategoryNameTooShort, false},
		{"too long", Record{"name": strings.Repeat("a", 51)}, apperror.CodeCategoryNameTooLong, false},
		{"bad chars", Record{"name": "Audio & Video"}, apperror.CodeNameContainsInvalidChars, false},
		{"slash", Record{"name": "Audio/Video"}, apperror.CodeNameContainsInvalidChars, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Category(tt.rec, Create)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assertCode(t, err, tt.code)
		})
	}
}

func TestCategoryTrimsInPlace(t *testing.T) {
	rec := Record{"name": "  Speakers  "}
	require.NoError(t, New().Category(rec, Create))
	assert.Equal(t, "Speakers", rec["name"])
}

func TestBoundsCheckedBeforeCharset(t *testing.T) {
	err := New().Category(Record{"name": "&"}, Create)
	assertCode(t, err, apperror.CodeCategoryNameTooShort)
}

func TestCategoryErrorDetails(t *testing.T) {
	err := New().Category(Record{"name": "A"}, Create)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	require.NotNil(t, appErr.Details)
	assert.Equal(t, EntityCategory, appErr.Details.Entity)
	assert.Equal(t, "name", appErr.Details.Field)
	assert.Equal(t, "A", appErr.Details.Value)
}

func TestPatchModeSkipsAbsentFields(t *testing.T) {
	v := New()
	assert.NoError(t, v.Category(Record{}, Patch))
	assert.NoError(t, v.Product(Record{"price": 5.0}, Patch))
	assertCode(t, v.Product(Record{"name": nil}, Patch), apperror.CodeProductNameRequired)
	assertCode(t, v.Product(Record{"price": 0.0}, Patch), apperror.CodeProductInvalidPrice)
}

func TestProductPrice(t *testing.T) {
	v := New()
	rejected := []any{0.0, -1.0, 1000000.0, 999999.991, "9.99", true, nil}
	for _, price := range rejected {
		rec := validProduct()
		rec["price"] = price
		assertCode(t, v.Product(rec, Create), apperror.CodeProductInvalidPrice)
	}

	accepted := []any{0.01, 999999.99, 5, json.Number("12.50")}
	for _, price := range accepted {
		rec := validProduct()
		rec["price"] = price
		require.NoError(t, v.Product(rec, Create), "%v", price)
		assert.IsType(t, float64(0), rec["price"])
	}
}

func TestProductFieldOrder(t *testing.T) {
	v := New()
	assertCode(t, v.Product(Record{}, Create), apperror.CodeProductNameRequired)
	assertCode(t, v.Product(Record{"name": "X"}, Create), apperror.CodeProductCategoryRequired)
	assertCode(t, v.Product(Record{"name": "X", "category": "C"}, Create), apperror.CodeProductInvalidPrice)
	assertCode(t, v.Product(Record{"name": "X", "category": "C", "price": 1.0}, Create), apperror.CodeProductImageRequired)
}

func TestProductBounds(t *testing.T) {
	v := New()
	cases := []struct {
		field string
		value any
		code  apperror.Code
	}{
		{"name", strings.Repeat("n", 201), apperror.CodeProductNameTooLong},
		{"name", 12.0, apperror.CodeProductInvalidData},
		{"category", strings.Repeat("c", 101), apperror.CodeProductInvalidCategory},
		{"category", []any{"x"}, apperror.CodeProductInvalidCategory},
		{"image", strings.Repeat("i", 501), apperror.CodeProductInvalidImage},
		{"image", "", apperror.CodeProductImageRequired},
	}
	for _, c := range cases {
		rec := validProduct()
		rec[c.field] = c.value
		assertCode(t, v.Product(rec, Create), c.code)
	}

	rec := validProduct()
	rec["name"] = strings.Repeat("n", 200)
	assert.NoError(t, v.Product(rec, Create))
}

func TestGroupCategory(t *testing.T) {
	v := New()
	id := uuid.New().String()

	rec := Record{"name": " Audio Gear "}
	require.NoError(t, v.GroupCategory(rec, Create))
	assert.Equal(t, "Audio Gear", rec["name"])
	assert.Equal(t, []string{}, rec["categories"])

	rec = Record{"name": "Audio Gear", "categories": []any{id, id}}
	require.NoError(t, v.GroupCategory(rec, Create))
	assert.Equal(t, []string{id}, rec["categories"])

	assertCode(t, v.GroupCategory(Record{"name": "A"}, Create), apperror.CodeGroupCategoryNameTooShort)
	assertCode(t, v.GroupCategory(Record{"name": strings.Repeat("g", 101)}, Create), apperror.CodeGroupCategoryNameTooLong)
	assertCode(t, v.GroupCategory(Record{"name": "Audio", "categories": "x"}, Create), apperror.CodeGroupCategoryInvalidCategories)
	assertCode(t, v.GroupCategory(Record{"name": "Audio", "categories": []any{""}}, Create), apperror.CodeGroupCategoryInvalidCategories)
	assertCode(t, v.GroupCategory(Record{"name": "Audio", "categories": []any{1.0}}, Create), apperror.CodeGroupCategoryInvalidCategories)
	assertCode(t, v.GroupCategory(Record{"name": "Audio", "categories": []any{"not-an-id"}}, Create), apperror.CodeGroupCategoryInvalidCategories)

	rec = Record{"categories": []any{}}
	require.NoError(t, v.GroupCategory(rec, Patch))
	assert.Equal(t, []string{}, rec["categories"])
}

func TestCategoryAssignment(t *testing.T) {
	v := New()
	assertCode(t, v.CategoryAssignment(Record{}), apperror.CodeGroupCategoryInvalidCategories)
	rec := Record{"categories": []any{}}
	assert.NoError(t, v.CategoryAssignment(rec))
}

func TestID(t *testing.T) {
	v := New()
	id := uuid.New().String()

	got, err := v.ID(EntityProduct, " "+id+" ")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = v.ID(EntityProduct, nil)
	assertCode(t, err, apperror.CodeIDRequired)
	_, err = v.ID(EntityProduct, "")
	assertCode(t, err, apperror.CodeIDRequired)
	_, err = v.ID(EntityProduct, 12.0)
	assertCode(t, err, apperror.CodeInvalidIDFormat)
	_, err = v.ID(EntityProduct, "abc")
	assertCode(t, err, apperror.CodeInvalidIDFormat)
}
