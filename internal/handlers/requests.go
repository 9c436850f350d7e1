package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// AuthRequest is the sign-in / sign-up form.
type AuthRequest struct {
	Mode     string `form:"mode" validate:"omitempty,oneof=login signup"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Remember bool   `form:"remember"`
}

// PreferencesRequest is the onboarding questionnaire.
type PreferencesRequest struct {
	TravelStyle string   `form:"travel_style" validate:"required,oneof=adventure relaxation culture family business"`
	Budget      string   `form:"budget" validate:"required,oneof=budget moderate luxury"`
	Interests   []string `form:"interests" validate:"max=10,dive,max=40"`
	HomeCity    string   `form:"home_city" validate:"max=100"`
}

// BookingRequest is any post of a booking wizard. Which fields matter depends
// on Action; the flow itself checks that they are filled in.
type BookingRequest struct {
	Action     string `form:"action" validate:"required,oneof=search select confirm back"`
	From       string `form:"from"`
	To         string `form:"to"`
	Date       string `form:"date"`
	Passengers int    `form:"passengers" validate:"omitempty,min=1,max=9"`
	ID         string `form:"id"`
	FullName   string `form:"full_name"`
	Email      string `form:"email" validate:"omitempty,email"`
	Phone      string `form:"phone"`
}
