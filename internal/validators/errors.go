package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyContentItemID = errors.New("content item id is required")
	ErrParentRequired     = errors.New("parent id is required for child records")
	ErrInvalidPayload     = errors.New("payload must be a JSON object")
)
