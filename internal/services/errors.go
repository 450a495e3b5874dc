package services

import (
	"context"
	"errors"

	"catalog/internal/database"
	"catalog/internal/repositories"
	"catalog/pkg/apperror"
)

// entityCodes holds the taxonomy codes one entity reports storage failures with.
type entityCodes struct {
	entity    string
	notFound  apperror.Code
	duplicate apperror.Code
	fetch     apperror.Code
	create    apperror.Code
	update    apperror.Code
	delete    apperror.Code
}

var (
	categoryCodes = entityCodes{
		entity:    "Category",
		notFound:  apperror.CodeCategoryNotFound,
		duplicate: apperror.CodeCategoryNameDuplicate,
		fetch:     apperror.CodeCategoryFetchFailed,
		create:    apperror.CodeCategoryCreateFailed,
		update:    apperror.CodeCategoryUpdateFailed,
		delete:    apperror.CodeCategoryDeleteFailed,
	}
	groupCategoryCodes = entityCodes{
		entity:    "GroupCategory",
		notFound:  apperror.CodeGroupCategoryNotFound,
		duplicate: apperror.CodeGroupCategoryNameDuplicate,
		fetch:     apperror.CodeGroupCategoryFetchFailed,
		create:    apperror.CodeGroupCategoryCreateFailed,
		update:    apperror.CodeGroupCategoryUpdateFailed,
		delete:    apperror.CodeGroupCategoryDeleteFailed,
	}
	productCodes = entityCodes{
		entity:    "Product",
		notFound:  apperror.CodeProductNotFound,
		duplicate: apperror.CodeProductNameDuplicate,
		fetch:     apperror.CodeProductFetchFailed,
		create:    apperror.CodeProductCreateFailed,
		update:    apperror.CodeProductUpdateFailed,
		delete:    apperror.CodeProductDeleteFailed,
	}
)

// wrap maps a repository error onto the taxonomy. Errors that match no known
// condition are reported with the failed code of the operation.
func (ec entityCodes) wrap(err error, failed apperror.Code, id, name string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return apperror.NotFound(ec.notFound, ec.entity, id).WithCause(err)
	case errors.Is(err, repositories.ErrDuplicateName):
		return apperror.New(ec.duplicate).
			WithDetails(apperror.Details{Entity: ec.entity, Field: "name", Value: name}).
			WithCause(err)
	case errors.Is(err, repositories.ErrUnknownCategory):
		return apperror.Newf(apperror.CodeRelationshipViolation, "One or more categories do not exist").
			WithDetails(apperror.Details{Entity: ec.entity, Field: "categories"}).
			WithCause(err)
	case errors.Is(err, database.ErrUnavailable):
		return apperror.New(apperror.CodeDatabaseConnectionFailed).WithCause(err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperror.New(apperror.CodeAPITimeout).WithCause(err)
	default:
		return apperror.New(failed).
			WithDetails(apperror.Details{Entity: ec.entity, Value: id}).
			WithCause(err)
	}
}
