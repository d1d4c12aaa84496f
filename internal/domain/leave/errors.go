package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request already processed")
	ErrOverlappingLeave      = errors.New("an overlapping leave request already exists")
	ErrLeaveBeforeJoinDate   = errors.New("leave starts before the employee's join date")
	ErrRangeRegularized      = errors.New("a day in the range has a regularization in progress")
	ErrNotAuthorized         = errors.New("not authorized to act on this leave request")
)
