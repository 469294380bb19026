package domain

import "errors"

var (
	ErrVacancyNotFound = errors.New("vacancy not found")
	ErrNoPriorStep     = errors.New("missing prior step data")
	ErrNoUsername      = errors.New("user has no username")
)
