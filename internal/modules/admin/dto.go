package admin

import "encoding/json"

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type UpdateScheduleRequest struct {
	Schedule json.RawMessage `json:"schedule" binding:"required"`
}
