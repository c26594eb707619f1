// Package directory looks up drug information from external sources, with
// request caching and cooperative rate limiting so repeated use stays
// practical.
package directory

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by sources when the upstream has no data for a
// query. The client treats it as a valid "no data" outcome, never an error.
var ErrNotFound = errors.New("no upstream match")

// DrugInfo is a single directory search hit.
type DrugInfo struct {
	ID               string   `json:"id"`
	BrandName        string   `json:"brandName,omitempty"`
	GenericName      string   `json:"genericName,omitempty"`
	ActiveIngredient string   `json:"activeIngredient,omitempty"`
	Manufacturer     string   `json:"manufacturer,omitempty"`
	DosageForm       string   `json:"dosageForm,omitempty"`
	Route            []string `json:"route,omitempty"`
	ProductNDC       string   `json:"productNdc,omitempty"`
}

// DisplayName resolves the name shown to users: brand first, then generic,
// then active ingredient.
func (d DrugInfo) DisplayName() string {
	switch {
	case d.BrandName != "":
		return d.BrandName
	case d.GenericName != "":
		return d.GenericName
	default:
		return d.ActiveIngredient
	}
}

// DrugLabel is the text of a drug's label, reduced to the sections this
// engine reads.
type DrugLabel struct {
	BrandName        string `json:"brandName,omitempty"`
	GenericName      string `json:"genericName,omitempty"`
	Indications      string `json:"indications,omitempty"`
	DrugInteractions string `json:"drugInteractions,omitempty"`
	Warnings         string `json:"warnings,omitempty"`
}

// LabelSource is the upstream exposing search-by-name and label-text-by-name.
type LabelSource interface {
	Search(ctx context.Context, query string, limit int) ([]DrugInfo, error)
	Label(ctx context.Context, name string) (*DrugLabel, error)
}

// cacheKey case-folds a query so "Aspirin" and "aspirin" share an entry.
func cacheKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
