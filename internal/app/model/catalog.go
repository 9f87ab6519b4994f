package model

import (
	"errors"
	"strconv"
)

var (
	ErrNoCatalogID        error = errors.New("neither brand_id nor rubric_id is provided")
	ErrAmbiguousCatalogID error = errors.New("both brand_id and rubric_id are provided")
)

// CatalogKind is the kind of upstream catalog entry a show is sourced
// from.
type CatalogKind string

const (
	KindBrand  CatalogKind = "brand"
	KindRubric CatalogKind = "rubric"
)

// CatalogID identifies the upstream episode list of a show.
type CatalogID struct {
	Kind  CatalogKind
	Value int64
}

// QueryParam returns the name of the API query parameter for the kind.
func (c CatalogID) QueryParam() string {
	switch c.Kind {
	case KindRubric:
		return "rubricId"
	default:
		return "brandId"
	}
}

// Dir returns the directory the raw payload of this catalog entry is
// mirrored into under the data dir.
func (c CatalogID) Dir() string {
	return string(c.Kind) + "s"
}

func (c CatalogID) String() string {
	return string(c.Kind) + ":" + strconv.FormatInt(c.Value, 10)
}

func (c CatalogID) IsZero() bool {
	return c.Value == 0
}
