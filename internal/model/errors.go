package model

import "errors"

var (
	ErrParse               = errors.New("situation is not valid JSON")
	ErrTransport           = errors.New("calculator unreachable")
	ErrInvalidResponse     = errors.New("calculator returned a non-JSON body")
	ErrUnknownJurisdiction = errors.New("unknown jurisdiction")
	ErrUnknownMode         = errors.New("unknown mode")
)
