package httpapi

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/service"
	"github.com/shopspring/decimal"
)

const defaultAuditLimit = 100

type productRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Collection    string          `json:"collection"`
	SubCollection string          `json:"subCollection"`
	Price         decimal.Decimal `json:"price"`
	MRP           decimal.Decimal `json:"mrp"`
	Images        []string        `json:"images"`
	Sizes         []string        `json:"sizes"`
	Colors        []string        `json:"colors"`
	Stock         int             `json:"stock"`
	Trending      bool            `json:"isTrending"`
	NewArrival    bool            `json:"isNewArrival"`
	Status        string          `json:"status"`
}

func (r productRequest) input() service.ProductInput {
	return service.ProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Collection:    r.Collection,
		SubCollection: r.SubCollection,
		Price:         r.Price,
		MRP:           r.MRP,
		Images:        r.Images,
		Sizes:         r.Sizes,
		Colors:        r.Colors,
		Stock:         r.Stock,
		Trending:      r.Trending,
		NewArrival:    r.NewArrival,
		Status:        r.Status,
	}
}

func (h *handler) adminListProducts(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	products, err := h.svc.Admin.ListProducts(c.UserContext(), identity)
	if err != nil {
		return err
	}

	return c.JSON(toProducts(products))
}

func (h *handler) adminCreateProduct(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("body: %s", err.Error())
	}

	product, err := h.svc.Admin.CreateProduct(c.UserContext(), identity, req.input())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toProduct(product))
}

func (h *handler) adminUpdateProduct(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("body: %s", err.Error())
	}

	product, err := h.svc.Admin.UpdateProduct(c.UserContext(), identity, c.Params("id"), req.input())
	if err != nil {
		return err
	}

	return c.JSON(toProduct(product))
}

func (h *handler) adminDeleteProduct(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	if err := h.svc.Admin.DeleteProduct(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handler) adminUploadImage(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return badRequest("file is required")
	}

	f, err := file.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxImageBytes+1))
	if err != nil {
		return err
	}

	product, err := h.svc.Admin.UploadImage(c.UserContext(), identity, c.Params("id"), service.ImageUpload{
		FileName:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toProduct(product))
}

func (h *handler) adminListOrders(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	orders, err := h.svc.Admin.ListOrders(c.UserContext(), identity)
	if err != nil {
		return err
	}

	return c.JSON(toOrders(orders))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *handler) adminUpdateOrderStatus(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("body: %s", err.Error())
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		return err
	}

	order, err := h.svc.Admin.UpdateOrderStatus(c.UserContext(), identity, c.Params("id"), status)
	if err != nil {
		return err
	}

	return c.JSON(toOrder(order))
}

func (h *handler) adminListCustomers(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	customers, err := h.svc.Admin.ListCustomers(c.UserContext(), identity)
	if err != nil {
		return err
	}

	out := make([]customerResponse, 0, len(customers))
	for _, cu := range customers {
		out = append(out, customerResponse{
			UID:        cu.UID,
			Email:      cu.Email,
			Name:       cu.Name,
			CreatedAt:  cu.CreatedAt,
			LastSeenAt: cu.LastSeenAt,
		})
	}

	return c.JSON(out)
}

func (h *handler) adminListSubscribers(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	subscribers, err := h.svc.Admin.ListSubscribers(c.UserContext(), identity)
	if err != nil {
		return err
	}

	out := make([]subscriberResponse, 0, len(subscribers))
	for _, sub := range subscribers {
		out = append(out, subscriberResponse{Email: sub.Email, CreatedAt: sub.CreatedAt})
	}

	return c.JSON(out)
}

type adminRequest struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *handler) adminAddAdmin(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req adminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("body: %s", err.Error())
	}

	profile, err := h.svc.Admin.AddAdmin(c.UserContext(), identity, service.AdminInput{
		UID:   req.UID,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(adminResponse{
		UID:       profile.UID,
		Name:      profile.Name,
		Email:     profile.Email,
		CreatedAt: profile.CreatedAt,
	})
}

func (h *handler) adminAnalytics(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	summary, err := h.svc.Admin.Analytics(c.UserContext(), identity)
	if err != nil {
		return err
	}

	return c.JSON(toSummary(summary))
}

func (h *handler) adminAuditLog(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", defaultAuditLimit)
	if limit <= 0 {
		return badRequest("limit[%d] must be positive", limit)
	}

	entries, err := h.svc.Admin.AuditLog(c.UserContext(), identity, limit)
	if err != nil {
		return err
	}

	out := make([]auditResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, auditResponse{ID: e.ID, Action: e.Action, Actor: e.Actor, Payload: e.Payload, At: e.At})
	}

	return c.JSON(out)
}
