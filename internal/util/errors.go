package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrCourseNotFound      = errors.New("course not found")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrInvalidProgress     = errors.New("progress must be between 0 and 100")
	ErrAlreadyCompleted    = errors.New("course already completed")
	ErrCourseNotCompleted  = errors.New("course not completed or enrollment not found")
	ErrCertificateExists   = errors.New("certificate already generated for this course")
	ErrCertificateNotFound = errors.New("certificate not found or invalid")
	ErrCodeExhausted       = errors.New("could not allocate a unique verification code")
)
