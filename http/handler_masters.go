package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"luxpos/ledger"
	"luxpos/masters"
)

func (h Handler) GetTables(c echo.Context) error {
	records, err := h.ledgerReader.QueryRecords(c.Request().Context(), ledger.CollectionTables)
	if err != nil {
		return fmt.Errorf("failed getting tables: %w", err)
	}

	return c.JSON(http.StatusOK, masters.ResolveTables(records))
}

func (h Handler) GetStaff(c echo.Context) error {
	records, err := h.ledgerReader.QueryRecords(c.Request().Context(), ledger.CollectionStaff)
	if err != nil {
		return fmt.Errorf("failed getting staff: %w", err)
	}

	return c.JSON(http.StatusOK, masters.ResolveStaff(records))
}

func (h Handler) GetMenuItems(c echo.Context) error {
	records, err := h.ledgerReader.QueryRecords(c.Request().Context(), ledger.CollectionMenuItems)
	if err != nil {
		return fmt.Errorf("failed getting menu items: %w", err)
	}

	return c.JSON(http.StatusOK, masters.ResolveMenuItems(records))
}
