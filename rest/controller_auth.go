package rest

import (
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-shop/auth"
)

// AuthController exposes the session lifecycle over HTTP. Handlers only
// parse, validate, delegate, and attach carriers; failures flow untouched
// to the error boundary.
type AuthController struct {
	Auther   *auth.Auther
	Carriers *auth.Carriers
	Logger   auth.Logger
}

func NewAuthController(auther *auth.Auther, carriers *auth.Carriers, logger auth.Logger) *AuthController {
	return &AuthController{
		Auther:   auther,
		Carriers: carriers,
		Logger:   logger,
	}
}

func (a *AuthController) Register(c *fiber.Ctx) error {
	payload := new(RegisterPayload)
	if err := c.BodyParser(payload); err != nil {
		return errBadBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	user, token, err := a.Auther.Register(c.UserContext(), auth.RegisterInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Password:  payload.Password,
	})
	if err != nil {
		return err
	}

	a.Carriers.Attach(c, auth.TokenKindAccess, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "registered successfully",
		"user":    user,
		"token":   token,
	})
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginPayload)
	if err := c.BodyParser(payload); err != nil {
		return errBadBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	result, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	a.Carriers.Attach(c, auth.TokenKindAccess, result.AccessToken)
	a.Carriers.Attach(c, auth.TokenKindRefresh, result.RefreshToken)

	return c.JSON(fiber.Map{
		"message":       "logged in",
		"user":          result.User,
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
	})
}

func (a *AuthController) Refresh(c *fiber.Ctx) error {
	raw := a.Carriers.Extract(c, auth.TokenKindRefresh)

	pair, err := a.Auther.Refresh(c.UserContext(), raw)
	if err != nil {
		return err
	}

	a.Carriers.Attach(c, auth.TokenKindAccess, pair.AccessToken)
	a.Carriers.Attach(c, auth.TokenKindRefresh, pair.RefreshToken)

	return c.JSON(fiber.Map{
		"message":       "refreshed",
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Logout only detaches the carriers. It takes no gate and cannot fail, so
// repeated calls are harmless.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	a.Carriers.ClearAll(c)

	return c.JSON(fiber.Map{
		"message": "successfully logged out",
	})
}

func (a *AuthController) LogoutAll(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := a.Auther.LogoutAll(c.UserContext(), userID); err != nil {
		return err
	}

	a.Carriers.ClearAll(c)

	return c.JSON(fiber.Map{
		"message": "logged out from all devices",
	})
}

func (a *AuthController) Me(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := a.Auther.Me(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user": user,
	})
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, ok := auth.ClaimsFromLocals(c)
	if !ok {
		return uuid.Nil, auth.ErrUnauthenticated
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		return uuid.Nil, auth.ErrUnauthenticated
	}

	return id, nil
}

func errBadBody(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
		WithCode(goerrors.CodeBadRequest)
}
