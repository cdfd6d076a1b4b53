package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/service"
)

type profileRequest struct {
	FullName       string         `json:"fullName"`
	Phone          string         `json:"phone"`
	DefaultAddress profileAddress `json:"defaultAddress"`
}

func (h *handler) getProfile(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	profile, err := h.svc.Profiles.Get(c.UserContext(), identity)
	if err != nil {
		return err
	}

	return c.JSON(toProfileResponse(profile))
}

func (h *handler) saveProfile(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("body: %s", err.Error())
	}

	profile, err := h.svc.Profiles.Save(c.UserContext(), identity, service.ProfileInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		DefaultAddress: domain.ProfileAddress{
			Address: req.DefaultAddress.Address,
			City:    req.DefaultAddress.City,
			State:   req.DefaultAddress.State,
			Pincode: req.DefaultAddress.Pincode,
		},
	})
	if err != nil {
		return err
	}

	return c.JSON(toProfileResponse(profile))
}
