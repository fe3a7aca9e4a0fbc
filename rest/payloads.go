// Package rest is the transport boundary: fiber controllers, the payload
// validation gate, and the single error translator. Nothing below this
// package knows about HTTP status codes.
package rest

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	reLower   = regexp.MustCompile(`[a-z]`)
	reUpper   = regexp.MustCompile(`[A-Z]`)
	reDigit   = regexp.MustCompile(`\d`)
	reSpecial = regexp.MustCompile(`[^A-Za-z0-9\s]`)
)

func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(8, 64),
		validation.Match(reLower).Error("must include a lowercase letter"),
		validation.Match(reUpper).Error("must include an uppercase letter"),
		validation.Match(reDigit).Error("must include a number"),
		validation.Match(reSpecial).Error("must include a special character"),
	}
}

// RegisterPayload is the registration request body.
type RegisterPayload struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, passwordRules()...),
	)
}

// LoginPayload is the login request body.
type LoginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// CategoryPayload is the category create/update body.
type CategoryPayload struct {
	Category string `form:"category" json:"category"`
}

// Validate will validate the payload
func (r CategoryPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category, validation.Required, validation.Length(4, 200)),
	)
}

// ProductPayload is the product create/update body. Image files travel as
// multipart parts alongside these fields.
type ProductPayload struct {
	Title       string  `form:"title" json:"title"`
	Description string  `form:"description" json:"description"`
	Category    string  `form:"category" json:"category"`
	Price       float64 `form:"price" json:"price"`
	Quantity    int     `form:"quantity" json:"quantity"`
}

// Validate will validate the payload
func (r ProductPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(4, 200)),
		validation.Field(&r.Description, validation.Required, validation.Length(4, 2000)),
		validation.Field(&r.Category, validation.Required, validation.Length(4, 200)),
		validation.Field(&r.Price, validation.Min(0.0)),
		validation.Field(&r.Quantity, validation.Min(0)),
	)
}

// OrderLinePayload is one requested order line.
type OrderLinePayload struct {
	ProductID string `form:"product_id" json:"product_id"`
	Quantity  int    `form:"quantity" json:"quantity"`
}

// Validate will validate the payload
func (r OrderLinePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, is.UUID),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

// OrderPayload is the order create/update body.
type OrderPayload struct {
	Products []OrderLinePayload `form:"products" json:"products"`
}

// Validate will validate the payload
func (r OrderPayload) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Products, validation.Required, validation.Length(1, 0)),
	); err != nil {
		return err
	}

	for _, line := range r.Products {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	return nil
}
