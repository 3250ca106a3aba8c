package rate

import "errors"

var (
	ErrPolicyNotFound = errors.New("no rate policy found for employee")
)
