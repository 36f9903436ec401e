package service

import "errors"

// Sentinel errors returned by all services. Handlers map these to HTTP
// statuses in one place; services never write transport concerns.
var (
	// ErrAuthRequired means the operation needs a session and none was present.
	ErrAuthRequired = errors.New("authentication required")
	// ErrRoleForbidden means the session role disallows the operation,
	// e.g. the admin attempting a matchmaking action or a member attempting
	// an approval.
	ErrRoleForbidden = errors.New("role not allowed for this operation")
	// ErrSelfActionForbidden means the caller targeted their own profile
	// where that is disallowed (shortlist, interest, block, report, chat).
	ErrSelfActionForbidden = errors.New("cannot perform this action on your own profile")
	// ErrNotFound means the referenced entity does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail means the registration email is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrInvalidCredential means the login password did not match.
	ErrInvalidCredential = errors.New("invalid credentials")
	// ErrBlocked means the caller has blocked the target and must unblock
	// before sending interests or chatting.
	ErrBlocked = errors.New("profile is blocked")
	// ErrValidation means a required field was missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrStorageExceeded means the backing store refused the write for
	// size reasons; the operation was rolled back entirely.
	ErrStorageExceeded = errors.New("storage limit exceeded")

	// ErrInvalidToken and ErrTokenExpired classify session token failures.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)
