package user

import "errors"

var (
	ErrAdminPrivilegeRequired   = errors.New("admin privilege required")
	ErrSupervisorAccessRequired = errors.New("supervisor or admin access required")
)
