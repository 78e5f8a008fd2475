package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/garage-repair-shop/internal/middleware"
	"github.com/iliyamo/garage-repair-shop/internal/model"
	"github.com/iliyamo/garage-repair-shop/internal/queue"
	"github.com/iliyamo/garage-repair-shop/internal/repository"
	queue_publisher "github.com/iliyamo/garage-repair-shop/internal/service"
)

// MechanicHandler bundles repositories for the mechanic repair pages.
type MechanicHandler struct {
	Repairs       *repository.RepairRepo
	Parts         *repository.PartRepo
	PartsInRepair *repository.PartsInRepairRepo
	Users         *repository.UserRepo
}

func NewMechanicHandler(repairs *repository.RepairRepo, parts *repository.PartRepo, pir *repository.PartsInRepairRepo, users *repository.UserRepo) *MechanicHandler {
	if repairs == nil || parts == nil || pir == nil || users == nil {
		panic("nil repository passed to NewMechanicHandler")
	}
	return &MechanicHandler{Repairs: repairs, Parts: parts, PartsInRepair: pir, Users: users}
}

// Home serves the mechanic landing page.
func (h *MechanicHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "mechanic.html", echo.Map{"User": middleware.UserFrom(c)})
}

// RepairsPage lists every repair with its owning customer.
func (h *MechanicHandler) RepairsPage(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	rows, err := h.Repairs.ListAll(ctx)
	var msg string
	if err != nil {
		log.Printf("mechanic: list repairs failed: %v", err)
		msg = "Could not load repairs"
	}
	return c.Render(http.StatusOK, "mechanic_repairs.html", echo.Map{
		"User": middleware.UserFrom(c), "Repairs": rows, "Msg": msg})
}

// CreateRepair creates a confirmed repair for a customer named on the
// form and announces it on the queue.
func (h *MechanicHandler) CreateRepair(c echo.Context) error {
	carName := strings.TrimSpace(c.FormValue("car_name"))
	username := strings.TrimSpace(c.FormValue("username"))
	start, err1 := parseDate(c.FormValue("start_of_repair"))
	end, err2 := parseDate(c.FormValue("end_of_repair"))
	money, err3 := parsePriceCents(c.FormValue("price"))
	if carName == "" || username == "" || err1 != nil || err2 != nil || err3 != nil || end.Before(start) {
		return h.repairsMsg(c, "Please fill in a customer, a car name and a valid date range")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	customer, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return h.repairsMsg(c, "No customer with that username")
		}
		log.Printf("mechanic: load customer failed: %v", err)
		return h.repairsMsg(c, "Could not create the repair, try again")
	}

	rep := model.Repair{
		CarName:    carName,
		StartDate:  start,
		EndDate:    end,
		Active:     true,
		CustomerID: customer.ID,
		MoneyCents: money,
	}
	if err := h.Repairs.Create(ctx, &rep); err != nil {
		log.Printf("mechanic: create repair failed: %v", err)
		return h.repairsMsg(c, "Could not create the repair, try again")
	}
	h.announceConfirmed(c, &rep, customer.Username)
	return c.Redirect(http.StatusFound, "/mechanic/repairs")
}

// RepairPage serves one repair with its attached parts and the full part
// list for the attach form.
func (h *MechanicHandler) RepairPage(c echo.Context) error {
	return h.renderRepair(c, "")
}

func (h *MechanicHandler) renderRepair(c echo.Context, msg string) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Redirect(http.StatusFound, "/mechanic/repairs")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	rep, err := h.Repairs.GetByID(ctx, id)
	if err != nil {
		return c.Redirect(http.StatusFound, "/mechanic/repairs")
	}
	rows, err := h.PartsInRepair.ListByRepair(ctx, rep.ID)
	if err != nil {
		log.Printf("mechanic: list parts for repair %d failed: %v", rep.ID, err)
	}
	all, err := h.Parts.List(ctx)
	if err != nil {
		log.Printf("mechanic: list parts failed: %v", err)
	}
	return c.Render(http.StatusOK, "mechanic_repair.html", echo.Map{
		"User":       middleware.UserFrom(c),
		"Repair":     rep,
		"Parts":      rows,
		"TotalCents": repository.TotalCents(rows),
		"AllParts":   all,
		"Msg":        msg,
	})
}

// UpdateRepair overwrites dates, price and the active flag.  Confirming
// a proposal (inactive to active) announces the repair on the queue.
func (h *MechanicHandler) UpdateRepair(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Redirect(http.StatusFound, "/mechanic/repairs")
	}
	carName := strings.TrimSpace(c.FormValue("car_name"))
	start, err1 := parseDate(c.FormValue("start_of_repair"))
	end, err2 := parseDate(c.FormValue("end_of_repair"))
	money, err3 := parsePriceCents(c.FormValue("price"))
	active := c.FormValue("active") != ""
	if carName == "" || err1 != nil || err2 != nil || err3 != nil || end.Before(start) {
		return h.renderRepair(c, "Please fill in a car name and a valid date range")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	rep, err := h.Repairs.GetByID(ctx, id)
	if err != nil {
		return c.Redirect(http.StatusFound, "/mechanic/repairs")
	}
	wasActive := rep.Active

	rep.CarName = carName
	rep.StartDate = start
	rep.EndDate = end
	rep.MoneyCents = money
	rep.Active = active
	if err := h.Repairs.Update(ctx, rep); err != nil {
		log.Printf("mechanic: update repair %d failed: %v", id, err)
		return h.renderRepair(c, "Could not save the repair, try again")
	}
	if !wasActive && active {
		var customer string
		if u, err := h.Users.GetByID(ctx, rep.CustomerID); err == nil {
			customer = u.Username
		}
		h.announceConfirmed(c, rep, customer)
	}
	return h.renderRepair(c, "Repair saved")
}

// DeleteRepair removes a repair together with its association rows.
func (h *MechanicHandler) DeleteRepair(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Redirect(http.StatusFound, "/mechanic/repairs")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Repairs.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrRepairNotFound) {
		log.Printf("mechanic: delete repair %d failed: %v", id, err)
	}
	return c.Redirect(http.StatusFound, "/mechanic/repairs")
}

// AttachPart creates an association row between the repair and the part
// picked on the form.
func (h *MechanicHandler) AttachPart(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Redirect(http.StatusFound, "/mechanic/repairs")
	}
	partID, err := strconv.ParseUint(c.FormValue("part_id"), 10, 64)
	if err != nil || partID == 0 {
		return h.renderRepair(c, "Pick a part to attach")
	}
	qty, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil || qty < 0 {
		return h.renderRepair(c, "Quantity must be zero or more")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.PartsInRepair.Attach(ctx, partID, id, qty); err != nil {
		if errors.Is(err, repository.ErrDuplicateAssociation) {
			return h.renderRepair(c, "Part is already attached to this repair")
		}
		log.Printf("mechanic: attach part %d to repair %d failed: %v", partID, id, err)
		return h.renderRepair(c, "Could not attach the part, try again")
	}
	return c.Redirect(http.StatusFound, "/mechanic/repairs/"+strconv.FormatUint(id, 10))
}

// UpdateQuantity overwrites the quantity of one association row.
func (h *MechanicHandler) UpdateQuantity(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Redirect(http.StatusFound, "/mechanic/repairs")
	}
	partID, err := paramID(c, "part_id")
	if err != nil {
		return h.renderRepair(c, "Unknown part")
	}
	qty, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil || qty < 0 {
		return h.renderRepair(c, "Quantity must be zero or more")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.PartsInRepair.UpdateQuantity(ctx, partID, id, qty); err != nil {
		if errors.Is(err, repository.ErrAssociationNotFound) {
			return h.renderRepair(c, "That part is not attached to this repair")
		}
		log.Printf("mechanic: update quantity failed: %v", err)
		return h.renderRepair(c, "Could not update the quantity, try again")
	}
	return c.Redirect(http.StatusFound, "/mechanic/repairs/"+strconv.FormatUint(id, 10))
}

// DetachPart deletes one association row.
func (h *MechanicHandler) DetachPart(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Redirect(http.StatusFound, "/mechanic/repairs")
	}
	partID, err := paramID(c, "part_id")
	if err != nil {
		return h.renderRepair(c, "Unknown part")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.PartsInRepair.Detach(ctx, partID, id); err != nil && !errors.Is(err, repository.ErrAssociationNotFound) {
		log.Printf("mechanic: detach part %d from repair %d failed: %v", partID, id, err)
	}
	return c.Redirect(http.StatusFound, "/mechanic/repairs/"+strconv.FormatUint(id, 10))
}

// Calendar shows every repair in the shop.
func (h *MechanicHandler) Calendar(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	rows, err := h.Repairs.ListAll(ctx)
	if err != nil {
		log.Printf("mechanic: list repairs failed: %v", err)
	}
	repairs := make([]*model.Repair, 0, len(rows))
	for i := range rows {
		repairs = append(repairs, &rows[i].Repair)
	}
	return c.Render(http.StatusOK, "calendar.html", echo.Map{
		"User":    middleware.UserFrom(c),
		"Title":   "Workshop calendar",
		"HomeURL": "/mechanic",
		"Events":  eventsJSON(RepairEntries(repairs, "/mechanic/repairs")),
	})
}

func (h *MechanicHandler) repairsMsg(c echo.Context, msg string) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	rows, _ := h.Repairs.ListAll(ctx)
	return c.Render(http.StatusOK, "mechanic_repairs.html", echo.Map{
		"User": middleware.UserFrom(c), "Repairs": rows, "Msg": msg})
}

// announceConfirmed publishes the confirmation event.  A broker outage
// is logged by the publisher and deliberately does not fail the request.
func (h *MechanicHandler) announceConfirmed(c echo.Context, rep *model.Repair, customer string) {
	ev := queue.RepairConfirmedEvent{
		RepairID:    rep.ID,
		CustomerID:  rep.CustomerID,
		Customer:    customer,
		CarName:     rep.CarName,
		StartsAt:    rep.StartDate.Format(dateLayout),
		EndsAt:      rep.EndDate.Format(dateLayout),
		MoneyCents:  rep.MoneyCents,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	_ = queue_publisher.PublishRepairConfirmed(c.Request().Context(), ev)
}
