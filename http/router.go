package http

import (
	"net/http"

	libHttp "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func NewHttpRouter(
	commandBus CommandSender,
	ledgerReader LedgerReader,
	ticketReader TicketReader,
) *echo.Echo {
	e := libHttp.NewEcho()
	e.Use(otelecho.Middleware("luxpos"))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler := Handler{
		commandBus:   commandBus,
		ledgerReader: ledgerReader,
		ticketReader: ticketReader,
	}

	e.POST("/actions/create-ticket", handler.PostCreateTicket)
	e.POST("/actions/add-line-item", handler.PostAddLineItem)
	e.POST("/actions/checkout", handler.PostCheckout)

	e.GET("/tickets/:ticket_id", handler.GetTicket)

	e.GET("/masters/tables", handler.GetTables)
	e.GET("/masters/staff", handler.GetStaff)
	e.GET("/masters/menu-items", handler.GetMenuItems)

	return e
}
