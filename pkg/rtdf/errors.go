package rtdf

import "errors"

// Validation errors - bad input, rejected before touching inventory
var ErrUnknownStation = errors.New("station does not exist on route")
var ErrInvalidStationRange = errors.New("station range is not an ordered sub-path of the route")
var ErrInvalidDate = errors.New("date is invalid")

// ErrInconsistentState marks cross-references that fail to resolve (a schedule
// whose route is missing, an order without its recorded transaction). These are
// corrupted upstream state, not user input problems.
var ErrInconsistentState = errors.New("inconsistent upstream state")
