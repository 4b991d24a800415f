package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"customerlib/internal/model"
	"customerlib/internal/service"
	"customerlib/internal/validator"
)

// Options tunes optional routes.
type Options struct {
	// AdminResetEnabled exposes DELETE /customers, which removes every customer.
	AdminResetEnabled bool
	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// customerRequest is the body accepted by create and update.
type customerRequest struct {
	FirstName            string          `json:"first_name" validate:"required,notblank,max=100"`
	LastName             string          `json:"last_name" validate:"required,notblank,max=100"`
	PhoneNumber          string          `json:"phone_number" validate:"max=32"`
	Email                string          `json:"email" validate:"max=254"`
	TotalPurchasesAmount decimal.Decimal `json:"total_purchases_amount" validate:"gte=0"`
}

func (r customerRequest) toModel(id int64) *model.Customer {
	return &model.Customer{
		CustomerID:           id,
		FirstName:            r.FirstName,
		LastName:             r.LastName,
		PhoneNumber:          r.PhoneNumber,
		Email:                r.Email,
		TotalPurchasesAmount: r.TotalPurchasesAmount,
	}
}

type createResponse struct {
	CustomerID int64 `json:"customer_id"`
}

type resetResponse struct {
	Deleted int64 `json:"deleted"`
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, custSvc service.CustomerService, opts Options) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	if opts.Gatherer != nil {
		app.Get("/metrics", Metrics(opts.Gatherer))
	}

	v := validator.New()
	app.Post("/customers", CreateCustomer(custSvc, v))
	app.Delete("/customers", ResetCustomers(custSvc, opts.AdminResetEnabled))
	app.Get("/customers/:id", GetCustomer(custSvc))
	app.Put("/customers/:id", UpdateCustomer(custSvc, v))
	app.Delete("/customers/:id", DeleteCustomer(custSvc))
}

// HealthCheck reports 200 when the store answers a ping within two seconds.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Metrics serves the Prometheus exposition format for g.
func Metrics(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}

// CreateCustomer godoc
// @Summary Create a customer
// @Accept json
// @Produce json
// @Success 201 {object} createResponse
// @Router /customers [post]
func CreateCustomer(svc service.CustomerService, v *validator.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, ok, err := bindCustomer(c, v)
		if !ok {
			return err
		}
		created, err := svc.Create(c.UserContext(), req.toModel(0))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(createResponse{CustomerID: created.CustomerID})
	}
}

// GetCustomer godoc
// @Summary Get a customer by id
// @Produce json
// @Success 200 {object} model.Customer
// @Router /customers/{id} [get]
func GetCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		cust, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cust)
	}
}

// UpdateCustomer godoc
// @Summary Overwrite a customer
// @Accept json
// @Produce json
// @Success 200 {object} model.Customer
// @Router /customers/{id} [put]
func UpdateCustomer(svc service.CustomerService, v *validator.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		req, ok, err := bindCustomer(c, v)
		if !ok {
			return err
		}
		updated, err := svc.Update(c.UserContext(), req.toModel(id))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(updated)
	}
}

// DeleteCustomer godoc
// @Summary Delete a customer
// @Success 204
// @Router /customers/{id} [delete]
func DeleteCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ResetCustomers removes every customer. It answers 404 unless enabled.
func ResetCustomers(svc service.CustomerService, enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enabled {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
		}
		n, err := svc.Reset(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(resetResponse{Deleted: n})
	}
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// bindCustomer parses and validates the request body. When ok is false the
// error response has already been written and err must be returned as-is.
func bindCustomer(c *fiber.Ctx, v *validator.Validator) (req customerRequest, ok bool, err error) {
	if err := c.BodyParser(&req); err != nil {
		return req, false, writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	if err := v.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return req, false, writeErrorDetails(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", verrs)
		}
		return req, false, writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	return req, true, nil
}

func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "customer not found")
	case errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
