package domain

import "errors"

var (
	ErrWordNotFound     = errors.New("word not found")
	ErrEmptyCatalog     = errors.New("no words found")
	ErrInvalidDimension = errors.New("unknown rating dimension")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)
