package rest

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/goliatone/go-shop/auth"
	"github.com/goliatone/go-shop/catalog"
)

// CategoriesController handles the admin-managed category CRUD.
type CategoriesController struct {
	Repo   catalog.RepositoryManager
	Logger auth.Logger
}

func (a *CategoriesController) List(c *fiber.Ctx) error {
	records, err := a.Repo.Categories().List(c.UserContext())
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return auth.ErrResourceNotFound
	}

	return c.JSON(records)
}

func (a *CategoriesController) Get(c *fiber.Ctx) error {
	id, err := resourceID(c)
	if err != nil {
		return err
	}

	record, err := a.Repo.Categories().GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

func (a *CategoriesController) Create(c *fiber.Ctx) error {
	payload := new(CategoryPayload)
	if err := c.BodyParser(payload); err != nil {
		return errBadBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	record, err := a.Repo.Categories().Create(c.UserContext(), &catalog.Category{
		Name: payload.Category,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (a *CategoriesController) Update(c *fiber.Ctx) error {
	id, err := resourceID(c)
	if err != nil {
		return err
	}

	payload := new(CategoryPayload)
	if err := c.BodyParser(payload); err != nil {
		return errBadBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	record, err := a.Repo.Categories().Update(c.UserContext(), &catalog.Category{
		ID:   id,
		Name: payload.Category,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":  "category updated successfully",
		"category": record,
	})
}

func (a *CategoriesController) Delete(c *fiber.Ctx) error {
	id, err := resourceID(c)
	if err != nil {
		return err
	}

	if err := a.Repo.Categories().Delete(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("category with id:%s was deleted", id),
	})
}

// resourceID parses the :id route parameter; malformed ids read as absent
// resources so the API does not leak id format expectations.
func resourceID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, auth.ErrResourceNotFound
	}
	return id, nil
}
