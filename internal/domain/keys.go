package domain

type CtxKey string

const (
	KeyUser     CtxKey = "User"
	KeyUserID   CtxKey = "UserID"
	KeyUserRole CtxKey = "Role"
)
