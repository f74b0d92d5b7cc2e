package lloyd

import "errors"

var (
	ErrInvalidK     = errors.New("k must be in [1, number of points]")
	ErrEmptyDataset = errors.New("dataset has no points")
)
