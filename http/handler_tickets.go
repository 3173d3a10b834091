package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"luxpos/engine"
)

func (h Handler) GetTicket(c echo.Context) error {
	ticketID := c.Param("ticket_id")
	if ticketID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ticket id is required")
	}

	view, err := h.ticketReader.GetTicket(c.Request().Context(), ticketID)

	var notFound engine.TicketNotFoundError
	if errors.As(err, &notFound) {
		return echo.NewHTTPError(http.StatusNotFound, notFound.Error())
	}
	if err != nil {
		return fmt.Errorf("failed getting ticket: %w", err)
	}

	return c.JSON(http.StatusOK, view)
}
