package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/garage-repair-shop/internal/middleware"
	"github.com/iliyamo/garage-repair-shop/internal/model"
	"github.com/iliyamo/garage-repair-shop/internal/repository"
)

// StorageHandler serves the mechanic parts-inventory pages.
type StorageHandler struct {
	Parts *repository.PartRepo
}

func NewStorageHandler(parts *repository.PartRepo) *StorageHandler {
	if parts == nil {
		panic("nil repository passed to NewStorageHandler")
	}
	return &StorageHandler{Parts: parts}
}

// List serves the storage page.  The query parameters nr_oem, qr_code
// and search_name select at most one filter, in that precedence order.
func (h *StorageHandler) List(c echo.Context) error {
	filter := repository.PartFilter{
		NrOEM:      c.QueryParam("nr_oem"),
		QRCode:     c.QueryParam("qr_code"),
		SearchName: c.QueryParam("search_name"),
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	parts, err := h.Parts.Filter(ctx, filter)
	var msg string
	if err != nil {
		log.Printf("storage: filter parts failed: %v", err)
		msg = "Could not load parts"
	}
	return c.Render(http.StatusOK, "storage.html", echo.Map{
		"User": middleware.UserFrom(c), "Parts": parts, "Filter": filter, "Msg": msg})
}

// Create adds a part to the storage.  An empty QR code gets a generated
// one so every shelf sticker can be printed right away.
func (h *StorageHandler) Create(c echo.Context) error {
	p, msg := partFromForm(c)
	if msg != "" {
		return h.listMsg(c, msg)
	}
	if p.QRCode == "" {
		p.QRCode = uuid.NewString()
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Parts.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPartExists) {
			return h.listMsg(c, "Part name is already in use")
		}
		log.Printf("storage: create part failed: %v", err)
		return h.listMsg(c, "Could not save the part, try again")
	}
	return c.Redirect(http.StatusFound, "/mechanic/storage")
}

// PartPage serves the edit form for one part.
func (h *StorageHandler) PartPage(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Redirect(http.StatusFound, "/mechanic/storage")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Parts.GetByID(ctx, id)
	if err != nil {
		return c.Redirect(http.StatusFound, "/mechanic/storage")
	}
	return c.Render(http.StatusOK, "storage_part.html", echo.Map{
		"User": middleware.UserFrom(c), "Part": p})
}

// Update overwrites one part from the edit form.
func (h *StorageHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Redirect(http.StatusFound, "/mechanic/storage")
	}
	p, msg := partFromForm(c)
	if msg == "" {
		p.ID = id

		ctx, cancel := reqContext(c)
		defer cancel()

		switch err := h.Parts.Update(ctx, p); {
		case err == nil:
			return c.Redirect(http.StatusFound, "/mechanic/storage")
		case errors.Is(err, repository.ErrPartExists):
			msg = "Part name is already in use"
		case errors.Is(err, repository.ErrPartNotFound):
			return c.Redirect(http.StatusFound, "/mechanic/storage")
		default:
			log.Printf("storage: update part %d failed: %v", id, err)
			msg = "Could not save the part, try again"
		}
	}

	ctx, cancel := reqContext(c)
	defer cancel()
	if cur, err := h.Parts.GetByID(ctx, id); err == nil {
		return c.Render(http.StatusOK, "storage_part.html", echo.Map{
			"User": middleware.UserFrom(c), "Part": cur, "Msg": msg})
	}
	return c.Redirect(http.StatusFound, "/mechanic/storage")
}

// Delete removes a part and its association rows.
func (h *StorageHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Redirect(http.StatusFound, "/mechanic/storage")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Parts.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrPartNotFound) {
		log.Printf("storage: delete part %d failed: %v", id, err)
	}
	return c.Redirect(http.StatusFound, "/mechanic/storage")
}

func (h *StorageHandler) listMsg(c echo.Context, msg string) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	parts, _ := h.Parts.List(ctx)
	return c.Render(http.StatusOK, "storage.html", echo.Map{
		"User": middleware.UserFrom(c), "Parts": parts, "Filter": repository.PartFilter{}, "Msg": msg})
}

// partFromForm reads and validates the part form fields shared by the
// create and edit flows.  The returned message is empty when valid.
func partFromForm(c echo.Context) (*model.Part, string) {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return nil, "Part name is required"
	}
	amount, err := strconv.Atoi(strings.TrimSpace(c.FormValue("amount_left")))
	if err != nil || amount < 0 {
		return nil, "Amount must be zero or more"
	}
	price, err := parsePriceCents(c.FormValue("price"))
	if err != nil {
		return nil, "Price must be a valid amount"
	}
	return &model.Part{
		Name:       name,
		AmountLeft: amount,
		EngineType: strings.TrimSpace(c.FormValue("engine_type")),
		PriceCents: price,
		NrOEM:      strings.TrimSpace(c.FormValue("nr_oem")),
		QRCode:     strings.TrimSpace(c.FormValue("qr_code")),
	}, ""
}
