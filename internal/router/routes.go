package router

import (
	"net/http"

	"github.com/deppfellow/wedding-backend/internal/handler"
	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/labstack/echo/v4"
)

// registrar registers each route as either public or admin. Admin routes
// require a valid bearer token.
type registrar struct {
	echo  *echo.Echo
	admin echo.MiddlewareFunc
}

func (r *registrar) public(method, path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	r.echo.Add(method, path, h, m...)
}

func (r *registrar) protected(method, path string, h echo.HandlerFunc) {
	r.echo.Add(method, path, h, r.admin)
}

// collection registers the usual layout: public list, admin create, admin
// update and delete by id.
func (r *registrar) collection(path string, routes handler.Routes) {
	r.public(http.MethodGet, path, routes.List)
	r.protected(http.MethodPost, path, routes.Create)
	if routes.Update != nil {
		r.protected(http.MethodPut, path+"/:id", routes.Update)
	}
	r.protected(http.MethodDelete, path+"/:id", routes.Delete)
}

func (r *registrar) slots(path string, slots []string, routes map[string]handler.Routes) {
	for _, slot := range slots {
		r.collection(path+"/"+slot, routes[slot])
	}
}

func registerAuthRoutes(r *registrar, h *handler.Handlers, loginLimiter echo.MiddlewareFunc) {
	r.public(http.MethodPost, "/signup", h.Auth.SignUp())
	r.public(http.MethodPost, "/login", h.Auth.Login(), loginLimiter)
	r.protected(http.MethodGet, "/me", h.Auth.Me())
}

func registerContentRoutes(r *registrar, h *handler.Handlers) {
	// Guests RSVP from the public invitation page.
	r.public(http.MethodPost, "/invitations", h.Invitations.Create)
	r.public(http.MethodGet, "/invitations", h.Invitations.List)
	r.protected(http.MethodPut, "/invitations/:id", h.Invitations.Update)
	r.protected(http.MethodDelete, "/invitations/:id", h.Invitations.Delete)

	r.protected(http.MethodPost, "/uploadGallery", h.Gallery.Create)
	r.public(http.MethodGet, "/getGallery", h.Gallery.List)
	r.protected(http.MethodDelete, "/deleteGallery/:id", h.Gallery.Delete)

	r.collection("/tamu", h.Guests)
	r.collection("/banks", h.Banks)
	r.collection("/cover", h.Cover)
	r.collection("/gifts", h.Gifts)
	r.collection("/audio", h.Audio)

	r.slots("/schedules", model.ScheduleSlots, h.Schedules)
	r.slots("/maps", model.MapSlots, h.Maps)
	r.slots("/transfers", model.TransferSlots, h.Transfers)
	r.slots("/couple", model.CoupleSlots, h.Couple)
	r.slots("/stories", model.StorySlots, h.Stories)
}
