package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/service"
)

func (h *handler) signIn(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	session, err := h.svc.Sessions.Enter(c.UserContext(), identity)
	if err != nil {
		return err
	}
	defer session.Close()

	return c.JSON(fiber.Map{
		"identity":    toIdentity(session.Identity()),
		"cart":        toCart(session.Cart(), session.Quote()),
		"wishlistIds": session.Wishlist().ProductIDs(),
	})
}

func (h *handler) browseProducts(c *fiber.Ctx) error {
	minPrice, maxPrice, err := domain.ParsePriceRange(c.Query("price"))
	if err != nil {
		return err
	}
	productType, err := domain.ParseProductType(c.Query("type"))
	if err != nil {
		return err
	}
	sort, err := domain.ParseProductSort(c.Query("sort"))
	if err != nil {
		return err
	}

	collection := strings.TrimSpace(c.Query("category"))
	if collection == "all" {
		collection = ""
	}

	products, err := h.svc.Catalog.Browse(c.UserContext(), domain.ProductFilter{
		Collection: collection,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Type:       productType,
		Sort:       sort,
	})
	if err != nil {
		return err
	}

	return c.JSON(toProducts(products))
}

func (h *handler) getProduct(c *fiber.Ctx) error {
	product, err := h.svc.Catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(toProduct(product))
}

func (h *handler) getCart(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	cart, err := h.svc.Carts.Reload(c.UserContext(), identity)
	if err != nil {
		return err
	}

	return h.cartJSON(c, cart)
}

type addLineRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

func (h *handler) addCartLine(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req addLineRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("body: %s", err.Error())
	}

	cart, err := h.svc.Carts.AddLine(c.UserContext(), identity, service.AddLineInput{
		ProductID: req.ProductID,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return err
	}

	return h.cartJSON(c, cart)
}

type updateLineRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *handler) updateCartLine(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req updateLineRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("body: %s", err.Error())
	}
	if req.Quantity == nil {
		return badRequest("quantity is required")
	}

	cart, err := h.svc.Carts.UpdateLine(c.UserContext(), identity, c.Params("id"), *req.Quantity)
	if err != nil {
		return err
	}

	return h.cartJSON(c, cart)
}

func (h *handler) removeCartLine(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	cart, err := h.svc.Carts.RemoveLine(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}

	return h.cartJSON(c, cart)
}

func (h *handler) clearCart(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	cart, err := h.svc.Carts.Clear(c.UserContext(), identity)
	if err != nil {
		return err
	}

	return h.cartJSON(c, cart)
}

func (h *handler) cartJSON(c *fiber.Ctx, cart domain.Cart) error {
	return c.JSON(toCart(cart, h.svc.Checkout.Quote(cart)))
}

func (h *handler) getWishlist(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	wishlist, err := h.svc.Wishlists.Reload(c.UserContext(), identity)
	if err != nil {
		return err
	}

	return c.JSON(toWishlist(wishlist))
}

type wishlistRequest struct {
	ProductID string `json:"productId"`
}

func (h *handler) addToWishlist(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req wishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("body: %s", err.Error())
	}

	wishlist, err := h.svc.Wishlists.Add(c.UserContext(), identity, req.ProductID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toWishlist(wishlist))
}

func (h *handler) removeFromWishlist(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	wishlist, err := h.svc.Wishlists.Remove(c.UserContext(), identity, c.Params("productId"))
	if err != nil {
		return err
	}

	return c.JSON(toWishlist(wishlist))
}

func (h *handler) quote(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	cart, err := h.svc.Carts.Reload(c.UserContext(), identity)
	if err != nil {
		return err
	}

	return c.JSON(toTotals(h.svc.Checkout.Quote(cart)))
}

type checkoutRequest struct {
	PaymentMethod   string                 `json:"paymentMethod"`
	UPIID           string                 `json:"upiId"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
}

func (h *handler) placeOrder(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("body: %s", err.Error())
	}

	order, err := h.svc.Checkout.PlaceOrder(c.UserContext(), identity, service.CheckoutInput{
		PaymentMethod:   req.PaymentMethod,
		PaymentRef:      req.UPIID,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toOrder(order))
}

func (h *handler) listOrders(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	orders, err := h.svc.Orders.List(c.UserContext(), identity)
	if err != nil {
		return err
	}

	return c.JSON(toOrders(orders))
}

func (h *handler) getOrder(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	order, err := h.svc.Orders.Get(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(toOrder(order))
}
