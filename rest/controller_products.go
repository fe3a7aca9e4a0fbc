package rest

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-shop/auth"
	"github.com/goliatone/go-shop/catalog"
)

// maxProductImages caps the number of multipart images accepted per product.
const maxProductImages = 5

// uploadFormField is the multipart field carrying product images.
const uploadFormField = "image"

// ProductsController handles the admin-managed product CRUD plus image
// uploads.
type ProductsController struct {
	Repo      catalog.RepositoryManager
	Logger    auth.Logger
	UploadDir string
}

func (a *ProductsController) List(c *fiber.Ctx) error {
	records, err := a.Repo.Products().List(c.UserContext())
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return auth.ErrResourceNotFound
	}

	return c.JSON(records)
}

func (a *ProductsController) Get(c *fiber.Ctx) error {
	id, err := resourceID(c)
	if err != nil {
		return err
	}

	record, err := a.Repo.Products().GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

func (a *ProductsController) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	payload := new(ProductPayload)
	if err := c.BodyParser(payload); err != nil {
		return errBadBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	images, err := a.saveUploads(c)
	if err != nil {
		return err
	}

	record, err := a.Repo.Products().Create(c.UserContext(), &catalog.Product{
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Price:       payload.Price,
		Quantity:    payload.Quantity,
		UserID:      userID,
		ImageURLs:   images,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (a *ProductsController) Update(c *fiber.Ctx) error {
	id, err := resourceID(c)
	if err != nil {
		return err
	}

	payload := new(ProductPayload)
	if err := c.BodyParser(payload); err != nil {
		return errBadBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	images, err := a.saveUploads(c)
	if err != nil {
		return err
	}

	record, err := a.Repo.Products().Update(c.UserContext(), &catalog.Product{
		ID:          id,
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Price:       payload.Price,
		Quantity:    payload.Quantity,
		ImageURLs:   images,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "product updated successfully",
		"product": record,
	})
}

func (a *ProductsController) Delete(c *fiber.Ctx) error {
	id, err := resourceID(c)
	if err != nil {
		return err
	}

	if err := a.Repo.Products().Delete(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("product with id:%s was deleted", id),
	})
}

// saveUploads persists multipart image files and returns their public URL
// paths. A plain JSON body yields no uploads and no error.
func (a *ProductsController) saveUploads(c *fiber.Ctx) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	files := form.File[uploadFormField]
	if len(files) > maxProductImages {
		files = files[:maxProductImages]
	}

	var urls []string
	for _, file := range files {
		name := uuid.NewString() + filepath.Ext(file.Filename)
		if err := c.SaveFile(file, filepath.Join(a.UploadDir, name)); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store upload")
		}
		urls = append(urls, path.Join("/uploads", name))
	}

	return urls, nil
}
