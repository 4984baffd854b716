package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/communication/events/dto"
	"schoolku_backend/internals/features/communication/events/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

func formData(title string, form dto.EventForm, isNew bool) fiber.Map {
	return fiber.Map{
		"Title": title,
		"Form":  form,
		"Types": constants.EventTypes,
		"IsNew": isNew,
	}
}

// GET /evenements
func (ec *EventController) Index(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "start", "asc", helper.DefaultOpts)
	filter := service.ListFilter{
		Period: c.Query("periode", service.PeriodUpcoming),
		Search: c.Query("q"),
	}
	if t := c.Query("type"); constants.In(t, constants.EventTypes) {
		filter.Type = t
	}
	events, total, err := service.List(c.UserContext(), ec.DB, filter, dbtime.Now(), p)
	if err != nil {
		return err
	}
	return helper.Render(c, "events/index", fiber.Map{
		"Title":  "Événements",
		"Events": events,
		"Filter": filter,
		"Types":  constants.EventTypes,
		"Meta":   helper.BuildMetaFor(c, total, p),
	})
}

// GET /evenements/calendrier
func (ec *EventController) Calendar(c *fiber.Ctx) error {
	return helper.Render(c, "events/calendar", fiber.Map{
		"Title": "Calendrier",
		"Types": constants.EventTypes,
	})
}

// GET /evenements/:id
func (ec *EventController) Show(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	ev, err := service.Get(c.UserContext(), ec.DB, id)
	if err != nil {
		return err
	}
	return helper.Render(c, "events/show", fiber.Map{
		"Title": ev.EventTitle,
		"Event": ev,
		"Color": dto.TypeColor(ev.EventType),
	})
}

// GET /evenements/nouveau
func (ec *EventController) New(c *fiber.Ctx) error {
	form := dto.EventForm{
		Type:  "academique",
		Start: dbtime.Now().Format(helper.DateTimeLayout),
	}
	return helper.Render(c, "events/form", formData("Nouvel événement", form, true))
}

// POST /evenements
func (ec *EventController) Create(c *fiber.Ctx) error {
	var form dto.EventForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, "/evenements/nouveau", "Formulaire invalide")
	}
	form.AllDay = helper.FormBool(c, "event_all_day")

	ev, err := service.Create(c.UserContext(), ec.DB, helper.CurrentUserPtr(c), form)
	if err != nil {
		if _, ok := helper.IsValidationError(err); ok {
			helper.SetFlash(c, "error", helper.Messages(err))
			return helper.Render(c, "events/form", formData("Nouvel événement", form, true))
		}
		return helper.FailRedirect(c, "/evenements", err)
	}
	log.Printf("[INFO] event %q (%s) dibuat", ev.EventTitle, ev.EventType)
	return helper.FlashSuccess(c, "/evenements/"+ev.EventID.String(), "Événement créé avec succès.")
}

// GET /evenements/:id/modifier
func (ec *EventController) Edit(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	ev, err := service.Get(c.UserContext(), ec.DB, id)
	if err != nil {
		return err
	}
	data := formData("Modifier "+ev.EventTitle, dto.FromModel(ev), false)
	data["Event"] = ev
	return helper.Render(c, "events/form", data)
}

// POST /evenements/:id
func (ec *EventController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	back := "/evenements/" + id.String() + "/modifier"
	var form dto.EventForm
	if err := c.BodyParser(&form); err != nil {
		return helper.FlashError(c, back, "Formulaire invalide")
	}
	form.AllDay = helper.FormBool(c, "event_all_day")
	if _, err := service.Update(c.UserContext(), ec.DB, id, form); err != nil {
		return helper.FailRedirect(c, back, err)
	}
	return helper.FlashSuccess(c, "/evenements/"+id.String(), "Événement mis à jour.")
}

// POST /evenements/:id/supprimer
func (ec *EventController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), ec.DB, id); err != nil {
		return helper.FailRedirect(c, "/evenements", err)
	}
	return helper.FlashSuccess(c, "/evenements", "Événement supprimé.")
}

// GET /api/evenements?start=&end=
func (ec *EventController) CalendarAPI(c *fiber.Ctx) error {
	start, err := dto.ParseCalendarBound(c.Query("start"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Paramètre start invalide")
	}
	end, err := dto.ParseCalendarBound(c.Query("end"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Paramètre end invalide")
	}
	events, err := service.Between(c.UserContext(), ec.DB, start, end)
	if err != nil {
		return helper.FailJSON(c, err)
	}
	// FullCalendar mengharapkan array polos
	return c.JSON(dto.ToCalendarList(events))
}
