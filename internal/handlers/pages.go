package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/zippytrip/internal/catalog"
	"github.com/nfrund/zippytrip/internal/domain"
	"github.com/nfrund/zippytrip/internal/middleware"
	"github.com/nfrund/zippytrip/internal/view/dto"
	"github.com/nfrund/zippytrip/web/src/templates/pages"
)

// PageHandler serves the read-only pages.
type PageHandler struct {
	catalog *catalog.Catalog
	tickets domain.TicketRepository
}

func NewPageHandler(cat *catalog.Catalog, tickets domain.TicketRepository) *PageHandler {
	return &PageHandler{catalog: cat, tickets: tickets}
}

// Landing handles GET /.
func (h *PageHandler) Landing(c echo.Context) error {
	return page(c, http.StatusOK, "Welcome", pages.Landing())
}

// Main handles GET /main.
func (h *PageHandler) Main(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	data := dto.Main{
		Identity:     *identity,
		Deals:        h.catalog.Deals(),
		Destinations: h.catalog.Destinations(),
	}
	return page(c, http.StatusOK, "Stays", pages.Main(data))
}

// Destination handles GET /destination/{name}.
func (h *PageHandler) Destination(c echo.Context) error {
	name := middleware.DecisionFrom(c).Param
	d, ok := h.catalog.Destination(name)
	if !ok {
		return page(c, http.StatusNotFound, "Unknown destination", pages.DestinationNotFound(name))
	}
	return page(c, http.StatusOK, d.DisplayName(), pages.Destination(d))
}

// Tickets handles GET /tickets.
func (h *PageHandler) Tickets(c echo.Context) error {
	ctx := c.Request().Context()
	identity := middleware.IdentityFrom(c)

	data := dto.Tickets{}
	tickets, err := h.tickets.ListTickets(ctx, identity.ID)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to list tickets", "user_id", identity.ID, "error", err)
		data.Unavailable = true
	} else {
		data.Tickets = tickets
	}
	return page(c, http.StatusOK, "My Tickets", pages.Tickets(data))
}
