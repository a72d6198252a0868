package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/selene/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SetupStatus tells a fresh install whether the owner account still
// needs to be created.
func (handler *Handler) SetupStatus(c *fiber.Ctx) error {
	count, err := handler.users.CountUsers()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to check setup status")
	}
	return c.JSON(fiber.Map{"needs_setup": count == 0})
}

// Register creates the owner account. Selene is single-tenant: once an
// owner exists, registration is closed.
func (handler *Handler) Register(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	email := normalizeEmail(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return apiError(c, fiber.StatusBadRequest, "valid email is required")
	}
	if len(input.Password) < minPasswordLength {
		return apiError(c, fiber.StatusBadRequest, "password is too short")
	}

	count, err := handler.users.CountUsers()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}
	if count > 0 {
		return apiError(c, fiber.StatusForbidden, "registration is closed")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	user := models.User{Email: email, PasswordHash: string(passwordHash)}
	if err := handler.users.Create(&user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.ID, "email": user.Email})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.users.FindByNormalizedEmail(normalizeEmail(input.Email))
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}
	return c.JSON(fiber.Map{"id": user.ID, "email": user.Email})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
