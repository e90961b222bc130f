package handler

import (
	"context"

	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/deppfellow/wedding-backend/internal/server"
	"github.com/deppfellow/wedding-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// Routes are the endpoints of one collection. Update is nil for kinds
// without editable fields.
type Routes struct {
	Create echo.HandlerFunc
	List   echo.HandlerFunc
	Update echo.HandlerFunc
	Delete echo.HandlerFunc
}

// Handlers groups every HTTP handler so the router receives a single value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Auth    *AuthHandler

	Invitations Routes
	Guests      Routes
	Schedules   map[string]Routes
	Maps        map[string]Routes
	Transfers   map[string]Routes

	Gallery Routes
	Banks   Routes
	Cover   Routes
	Gifts   Routes
	Audio   Routes
	Couple  map[string]Routes
	Stories map[string]Routes
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	h := NewHandler(s)

	handlers := &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Auth:    NewAuthHandler(s, services.Auth),

		Invitations: jsonRoutes[model.CreateInvitationRequest, *model.CreateInvitationRequest, model.UpdateInvitationRequest, *model.UpdateInvitationRequest, model.Invitation](
			h, services.Invitations, services.Invitations.List),
		Guests: jsonRoutes[model.CreateGuestRequest, *model.CreateGuestRequest, model.UpdateGuestRequest, *model.UpdateGuestRequest, model.Guest](
			h, services.Guests, services.Guests.List),
		Schedules: make(map[string]Routes, len(services.Schedules)),
		Maps:      make(map[string]Routes, len(services.Maps)),
		Transfers: make(map[string]Routes, len(services.Transfers)),

		Gallery: Routes{
			Create: CreateMedia(h, services.Gallery),
			List:   ListMedia(h, services.Gallery),
			Delete: DeleteMedia(h, services.Gallery),
		},
		Banks:   mediaRoutes(h, services.Banks),
		Cover:   mediaRoutes(h, services.Cover),
		Gifts:   mediaRoutes(h, services.Gifts),
		Audio:   mediaRoutes(h, services.Audio),
		Couple:  make(map[string]Routes, len(services.Couple)),
		Stories: make(map[string]Routes, len(services.Stories)),
	}

	for slot, svc := range services.Schedules {
		handlers.Schedules[slot] = jsonRoutes[model.CreateScheduleRequest, *model.CreateScheduleRequest, model.UpdateScheduleRequest, *model.UpdateScheduleRequest, model.ScheduleEntry](
			h, svc, svc.List)
	}
	for slot, svc := range services.Maps {
		handlers.Maps[slot] = jsonRoutes[model.CreateMapLinkRequest, *model.CreateMapLinkRequest, model.UpdateMapLinkRequest, *model.UpdateMapLinkRequest, model.MapLink](
			h, svc, svc.List)
	}
	for slot, svc := range services.Transfers {
		handlers.Transfers[slot] = jsonRoutes[model.CreateTransferRequest, *model.CreateTransferRequest, model.UpdateTransferRequest, *model.UpdateTransferRequest, model.TransferTarget](
			h, svc, svc.List)
	}
	for slot, svc := range services.Couple {
		handlers.Couple[slot] = mediaRoutes(h, svc)
	}
	for slot, svc := range services.Stories {
		handlers.Stories[slot] = mediaRoutes(h, svc)
	}

	return handlers
}

func jsonRoutes[C any, PC interface {
	*C
	model.Writable
}, U any, PU interface {
	*U
	model.Writable
	model.EntityID
}, T any](h Handler, svc Writer[T], list func(ctx context.Context) ([]T, error)) Routes {
	return Routes{
		Create: CreateResource[C, PC, T](h, svc),
		List:   ListResource(h, list),
		Update: UpdateResource[U, PU, T](h, svc),
		Delete: DeleteResource(h, svc),
	}
}

func mediaRoutes[T any](h Handler, svc *service.MediaService[T]) Routes {
	return Routes{
		Create: CreateMedia(h, svc),
		List:   ListMedia(h, svc),
		Update: UpdateMedia(h, svc),
		Delete: DeleteMedia(h, svc),
	}
}
