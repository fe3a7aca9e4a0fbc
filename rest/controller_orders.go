package rest

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-shop/auth"
	"github.com/goliatone/go-shop/catalog"
)

// OrdersController handles order CRUD. Totals are always computed from the
// stored product prices, never taken from the request.
type OrdersController struct {
	Repo   catalog.RepositoryManager
	Logger auth.Logger
}

func (a *OrdersController) List(c *fiber.Ctx) error {
	records, err := a.Repo.Orders().List(c.UserContext())
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return auth.ErrResourceNotFound
	}

	return c.JSON(records)
}

func (a *OrdersController) Get(c *fiber.Ctx) error {
	id, err := resourceID(c)
	if err != nil {
		return err
	}

	record, err := a.Repo.Orders().GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

func (a *OrdersController) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	payload := new(OrderPayload)
	if err := c.BodyParser(payload); err != nil {
		return errBadBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	items, total, err := a.buildItems(c, payload.Products)
	if err != nil {
		return err
	}

	record, err := a.Repo.Orders().Create(c.UserContext(), &catalog.Order{
		UserID: userID,
		Items:  items,
		Total:  total,
		Status: catalog.OrderStatusPending,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (a *OrdersController) Update(c *fiber.Ctx) error {
	id, err := resourceID(c)
	if err != nil {
		return err
	}

	payload := new(OrderPayload)
	if err := c.BodyParser(payload); err != nil {
		return errBadBody(err)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	current, err := a.Repo.Orders().GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	items, total, err := a.buildItems(c, payload.Products)
	if err != nil {
		return err
	}

	current.Items = items
	current.Total = total

	record, err := a.Repo.Orders().Update(c.UserContext(), current)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "order updated successfully",
		"order":   record,
	})
}

func (a *OrdersController) Delete(c *fiber.Ctx) error {
	id, err := resourceID(c)
	if err != nil {
		return err
	}

	if err := a.Repo.Orders().Delete(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("order with id:%s was deleted", id),
	})
}

// buildItems resolves the requested lines against stored products and
// computes line and order totals from their current prices.
func (a *OrdersController) buildItems(c *fiber.Ctx, lines []OrderLinePayload) ([]catalog.OrderItem, float64, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		id, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, 0, errUnknownProducts()
		}
		ids = append(ids, id)
	}

	products, err := a.Repo.Products().GetByIDs(c.UserContext(), ids)
	if err != nil {
		return nil, 0, err
	}

	prices := make(map[uuid.UUID]float64, len(products))
	for _, product := range products {
		prices[product.ID] = product.Price
	}

	items := make([]catalog.OrderItem, 0, len(lines))
	var total float64
	for i, line := range lines {
		price, ok := prices[ids[i]]
		if !ok {
			return nil, 0, errUnknownProducts()
		}

		lineTotal := price * float64(line.Quantity)
		items = append(items, catalog.OrderItem{
			ProductID: ids[i],
			Quantity:  line.Quantity,
			Total:     lineTotal,
		})
		total += lineTotal
	}

	return items, total, nil
}

func errUnknownProducts() error {
	return goerrors.New("one or more products do not exist", goerrors.CategoryBadInput).
		WithCode(goerrors.CodeBadRequest)
}
