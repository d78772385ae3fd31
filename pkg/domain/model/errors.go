package model

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidInput = goerr.New("invalid crash inputs")
)
