package handlers

import (
	"fmt"
	"log"

	"bozor/internal/response"
	"bozor/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
}

// RegisterRequest represents the registration form.
type RegisterRequest struct {
	FullName  string `json:"full_name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password1 string `json:"password1" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
	ImageID   *uint  `json:"image_id"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return response.Fail(c, fiber.StatusBadRequest, err.Error(), "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	info, err := h.authService.Register(services.RegisterInput{
		FullName:  req.FullName,
		Phone:     req.Phone,
		Email:     req.Email,
		Password1: req.Password1,
		Password2: req.Password2,
		ImageID:   req.ImageID,
	})
	if err != nil {
		log.Printf("Error registering user %s: %v", req.Email, err)
		return response.FailWith(c, err)
	}
	return response.OK(c, info)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues the token pair.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return response.Fail(c, fiber.StatusBadRequest, err.Error(), "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return response.FailWith(c, err)
	}
	return response.OK(c, result)
}

// failValidation renders validator errors as a single client-error
// envelope listing the first failing field.
func failValidation(c *fiber.Ctx, err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		e := validationErrors[0]
		msg := fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		return response.Fail(c, fiber.StatusBadRequest, msg, "Validation failed")
	}
	return response.Fail(c, fiber.StatusBadRequest, err.Error(), "Validation failed")
}
