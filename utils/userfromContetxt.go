package utils

import (
	"context"
	"maskon/globals"
)

func GetUserIDFromContext(ctx context.Context) string {
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, ok := ctx.Value(globals.UserRoleKey).(string)
	if !ok {
		return ""
	}
	return role
}
