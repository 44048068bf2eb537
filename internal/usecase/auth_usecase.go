// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"vikrithi/internal/domain/entity"
)

// --- Input DTOs ---
// Field names mirror the web forms the original frontend posts, so the
// delivery layer can bind either JSON or urlencoded bodies straight into them.

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	Username    string `json:"username" form:"username"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
	Password    string `json:"password" form:"password"`
	UserType    string `json:"userType" form:"userType"`
	CompanyName string `json:"companyName" form:"companyName"`
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Name     string `json:"name" form:"name"`
	Password string `json:"password" form:"password"`
	UserType string `json:"userType" form:"userType"`
}

// ForgotPasswordInput identifies the account asking for a password reset.
type ForgotPasswordInput struct {
	Name     string `json:"name" form:"name"`
	UserType string `json:"userType" form:"userType"`
}

// ResetPasswordInput carries the replacement credential.
type ResetPasswordInput struct {
	Name        string `json:"name" form:"name"`
	NewPassword string `json:"newPassword" form:"newPassword"`
	UserType    string `json:"userType" form:"userType"`
}

// --- Output DTOs ---

// SignupOutput returns the newly created account.
type SignupOutput struct {
	Account *entity.Account
}

// LoginOutput returns the authenticated account.
type LoginOutput struct {
	Account *entity.Account
}

// ForgotPasswordOutput signals "proceed to reset" for the confirmed account.
type ForgotPasswordOutput struct {
	Name string
	Kind entity.Kind
}

// AuthUsecase defines the interface for the account credential workflows.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	ForgotPassword(ctx context.Context, input *ForgotPasswordInput) (*ForgotPasswordOutput, error)
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
}
