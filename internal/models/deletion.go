package models

// CategoryRef identifies a category in deletion payloads.
type CategoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// DeletionWarnings lists what a confirmed category deletion would touch.
type DeletionWarnings struct {
	AffectedGroupCategories int      `json:"affectedGroupCategories"`
	GroupCategoryNames      []string `json:"groupCategoryNames"`
	AffectedProducts        int      `json:"affectedProducts"`
	ProductNames            []string `json:"productNames"`
}

// CategoryDeletionWarning is returned by an unconfirmed category delete.
type CategoryDeletionWarning struct {
	Category CategoryRef      `json:"category"`
	Warnings DeletionWarnings `json:"warnings"`
}

// CategoryDeletion is returned by a confirmed category delete.
type CategoryDeletion struct {
	Message                 string   `json:"message"`
	Category                Category `json:"category"`
	ModifiedGroupCategories int      `json:"modifiedGroupCategories"`
}

// CategoryDeleteResult holds exactly one of Warning or Deleted.
type CategoryDeleteResult struct {
	Warning *CategoryDeletionWarning
	Deleted *CategoryDeletion
}
