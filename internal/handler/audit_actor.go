package handler

import (
	"net/http"

	"blogger-web/internal/middleware"
	"blogger-web/internal/model"
)

func actorFromRequest(r *http.Request) model.AuditActor {
	actor := model.AuditActor{IP: middleware.ClientIP(r)}

	user, ok := middleware.ControllerFromContext(r.Context()).User()
	if !ok {
		return actor
	}

	actor.UserID = user.ID
	actor.Login = user.Login

	return actor
}
