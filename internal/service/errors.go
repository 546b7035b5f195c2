package service

import "errors"

// 业务错误。handler层据此映射HTTP状态码，错误文案即接口返回的detail。
var (
	ErrEmailRegistered    = errors.New("Email already registered")
	ErrUserNotFound       = errors.New("User not found")
	ErrEmailNotFound      = errors.New("Email not found")
	ErrInvalidCredentials = errors.New("Invalid credentials")

	ErrInvalidGrant  = errors.New("Invalid Google authorization code")
	ErrProviderError = errors.New("Failed to retrieve Google user info")

	ErrStrategyNotFound = errors.New("Strategy not found")
	ErrNoStrategies     = errors.New("No valid strategies found")

	ErrScriptNotFound = errors.New("Script file not found")
	ErrScriptFailed   = errors.New("Script execution failed")
	ErrNoRecordFound  = errors.New("No input portfolio found for the session")
)
