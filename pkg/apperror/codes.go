package apperror

import (
	"fmt"
	"net/http"
)

// Code identifies one failure condition of the catalog API. The set is closed:
// every Code has exactly one wire name, one default message and one HTTP status.
type Code int

// Generic codes.
const (
	CodeValidation Code = iota
	CodeNotFound
	CodeUnauthorized
	CodeForbidden
	CodeInternal
	CodeBadRequest
	CodeConflict
	CodeInvalidIDFormat
	CodeIDRequired

	// Category codes.
	CodeCategoryNotFound
	CodeCategoryAlreadyExists
	CodeCategoryInvalidName
	CodeCategoryCreateFailed
	CodeCategoryUpdateFailed
	CodeCategoryDeleteFailed
	CodeCategoryFetchFailed
	CodeCategoryValidation
	CodeCategoryNameRequired
	CodeCategoryNameTooShort
	CodeCategoryNameTooLong
	CodeCategoryNameDuplicate
	CodeCategoryHasProducts
	CodeCategoryCascadeRemovalFailed
	CodeCategoryDeletionNotConfirmed
	CodeCategoryRemovalFromGroupsFailed

	// Group category codes.
	CodeGroupCategoryNotFound
	CodeGroupCategoryAlreadyExists
	CodeGroupCategoryInvalidName
	CodeGroupCategoryCreateFailed
	CodeGroupCategoryUpdateFailed
	CodeGroupCategoryDeleteFailed
	CodeGroupCategoryFetchFailed
	CodeGroupCategoryValidation
	CodeGroupCategoryAssignmentFailed
	CodeGroupCategoryNameRequired
	CodeGroupCategoryNameTooShort
	CodeGroupCategoryNameTooLong
	CodeGroupCategoryNameDuplicate
	CodeGroupCategoryInvalidCategories

	// Product codes.
	CodeProductNotFound
	CodeProductAlreadyExists
	CodeProductInvalidData
	CodeProductCreateFailed
	CodeProductUpdateFailed
	CodeProductDeleteFailed
	CodeProductFetchFailed
	CodeProductValidation
	CodeProductInvalidPrice
	CodeProductInvalidCategory
	CodeProductCategoryRequired
	CodeProductNameRequired
	CodeProductNameTooLong
	CodeProductNameDuplicate
	CodeProductImageRequired
	CodeProductInvalidImage

	CodeRelationshipViolation

	CodeInvalidNameFormat
	CodeNameContainsInvalidChars

	CodeWarningDisplayFailed
	CodeWarningMessageInvalid

	CodeDatabaseConnectionFailed
	CodeDatabaseQueryFailed
	CodeDatabaseTransactionFailed
	CodeDatabaseDuplicateKey
	CodeDatabaseConstraintViolation

	CodeAPIInvalidRequest
	CodeAPIRateLimitExceeded
	CodeAPITimeout
	CodeAPIServiceUnavailable

	numCodes
)

type definition struct {
	code    Code
	name    string
	message string
	status  int
}

// definitions is positional: entry i describes Code(i).
var definitions = [...]definition{
	{CodeValidation, "GENERIC_VALIDATION_ERROR", "Validation error occurred", http.StatusBadRequest},
	{CodeNotFound, "GENERIC_NOT_FOUND", "Resource not found", http.StatusNotFound},
	{CodeUnauthorized, "GENERIC_UNAUTHORIZED", "Unauthorized access", http.StatusUnauthorized},
	{CodeForbidden, "GENERIC_FORBIDDEN", "Access forbidden", http.StatusForbidden},
	{CodeInternal, "GENERIC_INTERNAL_ERROR", "Internal server error", http.StatusInternalServerError},
	{CodeBadRequest, "GENERIC_BAD_REQUEST", "Bad request", http.StatusBadRequest},
	{CodeConflict, "GENERIC_CONFLICT", "Resource conflict", http.StatusConflict},
	{CodeInvalidIDFormat, "INVALID_ID_FORMAT", "Invalid ID format", http.StatusBadRequest},
	{CodeIDRequired, "ID_REQUIRED", "ID is required", http.StatusBadRequest},

	{CodeCategoryNotFound, "CATEGORY_NOT_FOUND", "Category not found", http.StatusNotFound},
	{CodeCategoryAlreadyExists, "CATEGORY_ALREADY_EXISTS", "Category already exists", http.StatusConflict},
	{CodeCategoryInvalidName, "CATEGORY_INVALID_NAME", "Invalid category name", http.StatusBadRequest},
	{CodeCategoryCreateFailed, "CATEGORY_CREATE_FAILED", "Failed to create category", http.StatusInternalServerError},
	{CodeCategoryUpdateFailed, "CATEGORY_UPDATE_FAILED", "Failed to update category", http.StatusInternalServerError},
	{CodeCategoryDeleteFailed, "CATEGORY_DELETE_FAILED", "Failed to delete category", http.StatusInternalServerError},
	{CodeCategoryFetchFailed, "CATEGORY_FETCH_FAILED", "Failed to fetch categories", http.StatusInternalServerError},
	{CodeCategoryValidation, "CATEGORY_VALIDATION_ERROR", "Category validation error", http.StatusBadRequest},
	{CodeCategoryNameRequired, "CATEGORY_NAME_REQUIRED", "Category name is required", http.StatusBadRequest},
	{CodeCategoryNameTooShort, "CATEGORY_NAME_TOO_SHORT", "Category name must be at least 2 characters", http.StatusBadRequest},
	{CodeCategoryNameTooLong, "CATEGORY_NAME_TOO_LONG", "Category name must be at most 50 characters", http.StatusBadRequest},
	{CodeCategoryNameDuplicate, "CATEGORY_NAME_DUPLICATE", "Category name already exists", http.StatusConflict},
	{CodeCategoryHasProducts, "CATEGORY_HAS_PRODUCTS", "Cannot delete category with associated products", http.StatusBadRequest},
	{CodeCategoryCascadeRemovalFailed, "CATEGORY_CASCADE_REMOVAL_FAILED", "Failed to remove category from group categories", http.StatusInternalServerError},
	{CodeCategoryDeletionNotConfirmed, "DELETION_NOT_CONFIRMED", "Category deletion not confirmed", http.StatusBadRequest},
	{CodeCategoryRemovalFromGroupsFailed, "CATEGORY_REMOVAL_FROM_GROUPS_FAILED", "Failed to remove category from group categories", http.StatusInternalServerError},

	{CodeGroupCategoryNotFound, "GROUP_CATEGORY_NOT_FOUND", "Group category not found", http.StatusNotFound},
	{CodeGroupCategoryAlreadyExists, "GROUP_CATEGORY_ALREADY_EXISTS", "Group category already exists", http.StatusConflict},
	{CodeGroupCategoryInvalidName, "GROUP_CATEGORY_INVALID_NAME", "Invalid group category name", http.StatusBadRequest},
	{CodeGroupCategoryCreateFailed, "GROUP_CATEGORY_CREATE_FAILED", "Failed to create group category", http.StatusInternalServerError},
	{CodeGroupCategoryUpdateFailed, "GROUP_CATEGORY_UPDATE_FAILED", "Failed to update group category", http.StatusInternalServerError},
	{CodeGroupCategoryDeleteFailed, "GROUP_CATEGORY_DELETE_FAILED", "Failed to delete group category", http.StatusInternalServerError},
	{CodeGroupCategoryFetchFailed, "GROUP_CATEGORY_FETCH_FAILED", "Failed to fetch group categories", http.StatusInternalServerError},
	{CodeGroupCategoryValidation, "GROUP_CATEGORY_VALIDATION_ERROR", "Group category validation error", http.StatusBadRequest},
	{CodeGroupCategoryAssignmentFailed, "GROUP_CATEGORY_CATEGORY_ASSIGNMENT_FAILED", "Failed to assign categories to group", http.StatusInternalServerError},
	{CodeGroupCategoryNameRequired, "GROUP_CATEGORY_NAME_REQUIRED", "Group category name is required", http.StatusBadRequest},
	{CodeGroupCategoryNameTooShort, "GROUP_CATEGORY_NAME_TOO_SHORT", "Group category name must be at least 2 characters", http.StatusBadRequest},
	{CodeGroupCategoryNameTooLong, "GROUP_CATEGORY_NAME_TOO_LONG", "Group category name must be at most 100 characters", http.StatusBadRequest},
	{CodeGroupCategoryNameDuplicate, "GROUP_CATEGORY_NAME_DUPLICATE", "Group category name already exists", http.StatusConflict},
	{CodeGroupCategoryInvalidCategories, "GROUP_CATEGORY_INVALID_CATEGORIES", "Categories must be a list of category IDs", http.StatusBadRequest},

	{CodeProductNotFound, "PRODUCT_NOT_FOUND", "Product not found", http.StatusNotFound},
	{CodeProductAlreadyExists, "PRODUCT_ALREADY_EXISTS", "Product already exists", http.StatusConflict},
	{CodeProductInvalidData, "PRODUCT_INVALID_DATA", "Invalid product data", http.StatusBadRequest},
	{CodeProductCreateFailed, "PRODUCT_CREATE_FAILED", "Failed to create product", http.StatusInternalServerError},
	{CodeProductUpdateFailed, "PRODUCT_UPDATE_FAILED", "Failed to update product", http.StatusInternalServerError},
	{CodeProductDeleteFailed, "PRODUCT_DELETE_FAILED", "Failed to delete product", http.StatusInternalServerError},
	{CodeProductFetchFailed, "PRODUCT_FETCH_FAILED", "Failed to fetch products", http.StatusInternalServerError},
	{CodeProductValidation, "PRODUCT_VALIDATION_ERROR", "Product validation error", http.StatusBadRequest},
	{CodeProductInvalidPrice, "PRODUCT_INVALID_PRICE", "Invalid product price", http.StatusBadRequest},
	{CodeProductInvalidCategory, "PRODUCT_INVALID_CATEGORY", "Invalid product category", http.StatusBadRequest},
	{CodeProductCategoryRequired, "PRODUCT_CATEGORY_REQUIRED", "Product category is required", http.StatusBadRequest},
	{CodeProductNameRequired, "PRODUCT_NAME_REQUIRED", "Product name is required", http.StatusBadRequest},
	{CodeProductNameTooLong, "PRODUCT_NAME_TOO_LONG", "Product name must be at most 200 characters", http.StatusBadRequest},
	{CodeProductNameDuplicate, "PRODUCT_NAME_DUPLICATE", "Product name already exists", http.StatusConflict},
	{CodeProductImageRequired, "PRODUCT_IMAGE_REQUIRED", "Product image is required", http.StatusBadRequest},
	{CodeProductInvalidImage, "PRODUCT_INVALID_IMAGE", "Invalid product image", http.StatusBadRequest},

	{CodeRelationshipViolation, "RELATIONSHIP_VIOLATION", "Relationship violation", http.StatusBadRequest},

	{CodeInvalidNameFormat, "INVALID_NAME_FORMAT", "Invalid name format", http.StatusBadRequest},
	{CodeNameContainsInvalidChars, "NAME_CONTAINS_INVALID_CHARS", "Name contains invalid characters", http.StatusBadRequest},

	{CodeWarningDisplayFailed, "WARNING_DISPLAY_FAILED", "Warning display failed", http.StatusInternalServerError},
	{CodeWarningMessageInvalid, "WARNING_MESSAGE_INVALID", "Warning message invalid", http.StatusInternalServerError},

	{CodeDatabaseConnectionFailed, "DATABASE_CONNECTION_FAILED", "Database connection failed", http.StatusInternalServerError},
	{CodeDatabaseQueryFailed, "DATABASE_QUERY_FAILED", "Database query failed", http.StatusInternalServerError},
	{CodeDatabaseTransactionFailed, "DATABASE_TRANSACTION_FAILED", "Database transaction failed", http.StatusInternalServerError},
	{CodeDatabaseDuplicateKey, "DATABASE_DUPLICATE_KEY", "Duplicate key error", http.StatusConflict},
	{CodeDatabaseConstraintViolation, "DATABASE_CONSTRAINT_VIOLATION", "Database constraint violation", http.StatusBadRequest},

	{CodeAPIInvalidRequest, "API_INVALID_REQUEST", "Invalid API request", http.StatusBadRequest},
	{CodeAPIRateLimitExceeded, "API_RATE_LIMIT_EXCEEDED", "Rate limit exceeded", http.StatusTooManyRequests},
	{CodeAPITimeout, "API_TIMEOUT", "API request timeout", http.StatusRequestTimeout},
	{CodeAPIServiceUnavailable, "API_SERVICE_UNAVAILABLE", "Service unavailable", http.StatusServiceUnavailable},
}

// Both arrays below fail to compile unless the table has one entry per code.
var (
	_ [int(numCodes) - len(definitions)]struct{}
	_ [len(definitions) - int(numCodes)]struct{}
)

var byName map[string]Code

func init() {
	byName = make(map[string]Code, len(definitions))
	for i, d := range definitions {
		if d.code != Code(i) {
			panic(fmt.Sprintf("apperror: definition %d (%s) is out of order", i, d.name))
		}
		if _, dup := byName[d.name]; dup {
			panic(fmt.Sprintf("apperror: duplicate code name %s", d.name))
		}
		byName[d.name] = d.code
	}
}

// Valid reports whether c belongs to the closed code set.
func (c Code) Valid() bool {
	return c >= 0 && c < numCodes
}

func (c Code) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Code(%d)", int(c))
	}
	return definitions[c].name
}

// Message returns the default human readable message for c.
func (c Code) Message() string {
	if !c.Valid() {
		return definitions[CodeInternal].message
	}
	return definitions[c].message
}

// Status returns the HTTP status code bound to c.
func (c Code) Status() int {
	if !c.Valid() {
		return http.StatusInternalServerError
	}
	return definitions[c].status
}

// MarshalText encodes the code as its wire name.
func (c Code) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("apperror: invalid code %d", int(c))
	}
	return []byte(definitions[c].name), nil
}

// UnmarshalText decodes a wire name. Unknown names are rejected.
func (c *Code) UnmarshalText(text []byte) error {
	code, ok := ParseCode(string(text))
	if !ok {
		return fmt.Errorf("apperror: unknown code %q", string(text))
	}
	*c = code
	return nil
}

// ParseCode looks a code up by its wire name.
func ParseCode(name string) (Code, bool) {
	code, ok := byName[name]
	return code, ok
}

// Codes returns every code in declaration order.
func Codes() []Code {
	codes := make([]Code, 0, numCodes)
	for c := Code(0); c < numCodes; c++ {
		codes = append(codes, c)
	}
	return codes
}
