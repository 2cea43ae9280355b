package mcp

import "errors"

// ErrMissingQuerier indicates the server was built without a query
// service.
var ErrMissingQuerier = errors.New("mcp: querier is required")
