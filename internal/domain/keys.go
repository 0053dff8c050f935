package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
	KeyRequestID CtxKey = "RequestID"
)

// Recruiter roles carried in the Supabase JWT app_metadata.
const (
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// SystemActor is recorded on activities produced by background work.
const SystemActor = "system"
