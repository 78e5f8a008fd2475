package handler

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/garage-repair-shop/internal/middleware"
	"github.com/iliyamo/garage-repair-shop/internal/model"
	"github.com/iliyamo/garage-repair-shop/internal/repository"
)

// CustomerHandler bundles repositories for the customer pages.
type CustomerHandler struct {
	Repairs *repository.RepairRepo
	Parts   *repository.PartsInRepairRepo
}

func NewCustomerHandler(repairs *repository.RepairRepo, parts *repository.PartsInRepairRepo) *CustomerHandler {
	if repairs == nil || parts == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{Repairs: repairs, Parts: parts}
}

// Home serves the customer landing page with the customer's repairs.
func (h *CustomerHandler) Home(c echo.Context) error {
	return h.renderRepairs(c, "customer.html")
}

// RepairsPage serves the repair list page.
func (h *CustomerHandler) RepairsPage(c echo.Context) error {
	return h.renderRepairs(c, "customer_repairs.html")
}

func (h *CustomerHandler) renderRepairs(c echo.Context, page string) error {
	user := middleware.UserFrom(c)

	ctx, cancel := reqContext(c)
	defer cancel()

	repairs, err := h.Repairs.ListByCustomer(ctx, user.ID)
	if err != nil {
		log.Printf("customer: list repairs failed: %v", err)
		repairs = nil
	}
	return c.Render(http.StatusOK, page, echo.Map{"User": user, "Repairs": repairs})
}

// Repair serves one repair detail page.  A repair owned by somebody
// else, or an unknown id, silently redirects back to the customer home.
func (h *CustomerHandler) Repair(c echo.Context) error {
	user := middleware.UserFrom(c)
	id, err := paramID(c, "id")
	if err != nil {
		return c.Redirect(http.StatusFound, "/customer")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	rep, err := h.Repairs.GetByID(ctx, id)
	if err != nil || rep.CustomerID != user.ID {
		return c.Redirect(http.StatusFound, "/customer")
	}

	rows, err := h.Parts.ListByRepair(ctx, rep.ID)
	if err != nil {
		log.Printf("customer: list parts for repair %d failed: %v", rep.ID, err)
	}
	return c.Render(http.StatusOK, "customer_repair.html", echo.Map{
		"User":       user,
		"Repair":     rep,
		"Parts":      rows,
		"TotalCents": repository.TotalCents(rows),
	})
}

// Calendar shows the customer's own repairs plus anonymous busy blocks
// for everyone else's confirmed repairs.
func (h *CustomerHandler) Calendar(c echo.Context) error {
	user := middleware.UserFrom(c)

	ctx, cancel := reqContext(c)
	defer cancel()

	own, err := h.Repairs.ListByCustomer(ctx, user.ID)
	if err != nil {
		log.Printf("customer: list repairs failed: %v", err)
	}
	others, err := h.Repairs.ListOthers(ctx, user.ID)
	if err != nil {
		log.Printf("customer: list foreign repairs failed: %v", err)
	}

	entries := append(BusyEntries(others), RepairEntries(own, "/customer/repairs")...)
	return c.Render(http.StatusOK, "calendar.html", echo.Map{
		"User":          user,
		"Title":         "My calendar",
		"HomeURL":       "/customer",
		"Events":        eventsJSON(entries),
		"ProposeAction": "/customer/calendar",
	})
}

// ProposeRepair creates an inactive repair proposal from the calendar
// form.  A mechanic confirms it later.
func (h *CustomerHandler) ProposeRepair(c echo.Context) error {
	user := middleware.UserFrom(c)

	carName := strings.TrimSpace(c.FormValue("car_name"))
	start, err1 := parseDate(c.FormValue("start_of_repair"))
	end, err2 := parseDate(c.FormValue("end_of_repair"))
	if carName == "" || err1 != nil || err2 != nil || end.Before(start) {
		return c.Render(http.StatusOK, "success.html", echo.Map{
			"Msg": "Please fill in a car name and a valid date range", "BackURL": "/customer/calendar"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	rep := model.Repair{
		CarName:    carName,
		StartDate:  start,
		EndDate:    end,
		Active:     false,
		CustomerID: user.ID,
	}
	if err := h.Repairs.Create(ctx, &rep); err != nil {
		log.Printf("customer: create repair failed: %v", err)
		return c.Render(http.StatusOK, "success.html", echo.Map{
			"Msg": "Could not save the proposition, try again", "BackURL": "/customer/calendar"})
	}
	return c.Render(http.StatusOK, "success.html", echo.Map{
		"Msg": "New proposition sent", "BackURL": "/customer/calendar"})
}

// eventsJSON marshals calendar entries for embedding in the page script.
func eventsJSON(entries []CalendarEntry) template.JS {
	b, err := json.Marshal(entries)
	if err != nil {
		return template.JS("[]")
	}
	return template.JS(b)
}
