package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"luxpos/entities"
)

type createTicketRequest struct {
	CustomerType string   `json:"customer_type"`
	PeopleCount  int      `json:"people_count"`
	TableIDs     []string `json:"table_ids"`
	TableNames   string   `json:"table_names"`
	MainCastID   string   `json:"main_cast_id"`
	MainCastName string   `json:"main_cast_name"`
	SubCastIDs   []string `json:"sub_cast_ids"`
	SubCastNames string   `json:"sub_cast_names"`
	BaseFee      int64    `json:"base_fee"`
}

type addLineItemRequest struct {
	TicketID    string `json:"ticket_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}

type checkoutRequest struct {
	TicketID      string `json:"ticket_id"`
	Discount      int64  `json:"discount"`
	PaymentMethod string `json:"payment_method"`
}

func (h Handler) PostCreateTicket(c echo.Context) error {
	var request createTicketRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")
	if idempotencyKey == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Idempotency-Key header is required")
	}

	if len(request.TableIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one table id is required")
	}
	for _, tableID := range request.TableIDs {
		if strings.TrimSpace(tableID) == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "table ids must be non-empty")
		}
	}
	if strings.TrimSpace(request.MainCastID) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "main cast id is required")
	}
	if request.PeopleCount < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "people count must be at least 1")
	}

	cmd := entities.CreateTicket{
		Header:       entities.NewEventHeaderWithIdempotencyKey(idempotencyKey),
		CustomerType: entities.CustomerType(request.CustomerType),
		PeopleCount:  request.PeopleCount,
		TableIDs:     request.TableIDs,
		TableNames:   request.TableNames,
		MainCastID:   request.MainCastID,
		MainCastName: request.MainCastName,
		SubCastIDs:   request.SubCastIDs,
		SubCastNames: request.SubCastNames,
		BaseFee:      request.BaseFee,
	}

	if err := h.commandBus.Send(c.Request().Context(), cmd); err != nil {
		return fmt.Errorf("failed to send create ticket command: %w", err)
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"idempotency_key": idempotencyKey,
	})
}

func (h Handler) PostAddLineItem(c echo.Context) error {
	var request addLineItemRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")
	if idempotencyKey == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Idempotency-Key header is required")
	}
	if request.TicketID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket id is required")
	}

	cmd := entities.AddLineItem{
		Header:      entities.NewEventHeaderWithIdempotencyKey(idempotencyKey),
		TicketID:    request.TicketID,
		ProductID:   request.ProductID,
		ProductName: request.ProductName,
		Quantity:    request.Quantity,
		UnitPrice:   request.UnitPrice,
	}

	if err := h.commandBus.Send(c.Request().Context(), cmd); err != nil {
		return fmt.Errorf("failed to send add line item command: %w", err)
	}

	return c.NoContent(http.StatusAccepted)
}

func (h Handler) PostCheckout(c echo.Context) error {
	var request checkoutRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	if request.TicketID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket id is required")
	}

	cmd := entities.CheckoutTicket{
		Header:        entities.NewEventHeaderWithIdempotencyKey(request.TicketID),
		TicketID:      request.TicketID,
		Discount:      request.Discount,
		PaymentMethod: request.PaymentMethod,
	}

	if err := h.commandBus.Send(c.Request().Context(), cmd); err != nil {
		return fmt.Errorf("failed to send checkout command: %w", err)
	}

	return c.NoContent(http.StatusAccepted)
}
