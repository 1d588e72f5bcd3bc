package listing

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SortItem is one sorted column reported by the data grid.
type SortItem struct {
	Field string `json:"field" validate:"required"`
	Sort  string `json:"sort" validate:"omitempty,oneof=asc desc"`
}

// SortModel is the grid's sort descriptor. Only the first item is honoured.
type SortModel []SortItem

// FilterItem is one field filter reported by the data grid.
type FilterItem struct {
	Field    string `json:"field" validate:"required"`
	Operator string `json:"operator,omitempty"`
	Value    any    `json:"value"`
}

// FilterModel is the grid's filter descriptor.
type FilterModel struct {
	Items []FilterItem `json:"items" validate:"dive"`
}

// PaginationModel is the grid's pagination descriptor.
type PaginationModel struct {
	Page     int `json:"page" validate:"gte=0"`
	PageSize int `json:"pageSize" validate:"gt=0,lte=100"`
}

// Validate checks every item of the sort model.
func (m SortModel) Validate() error {
	for i, item := range m {
		if err := validate.Struct(item); err != nil {
			return fmt.Errorf("listing: sort item %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks every filter item.
func (m FilterModel) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("listing: filter model: %w", err)
	}
	return nil
}

// Validate checks the page bounds.
func (m PaginationModel) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("listing: pagination model: %w", err)
	}
	return nil
}
