package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/darkstar/server/result"
	"github.com/dekarrin/darkstar/server/session"
)

// HTTPCreateSession returns a HandlerFunc that starts a new game.
func (api *API) HTTPCreateSession() http.HandlerFunc {
	return httpEndpoint(api.Log, api.epCreateSession)
}

func (api *API) epCreateSession(req *http.Request) result.Result {
	s, err := api.Sessions.Create()
	if err != nil {
		return result.InternalServerError("create session: %s", err.Error())
	}

	info := s.Info()
	resp := NewSessionModel{
		ID:   s.ID.String(),
		Room: info.Room,
		Text: s.Intro(),
	}
	return result.Created(resp, "created session %s", s.ID).
		WithHeader("Location", PathPrefix+"/sessions/"+s.ID.String())
}

// HTTPGetSession returns a HandlerFunc that describes one game.
func (api *API) HTTPGetSession() http.HandlerFunc {
	return httpEndpoint(api.Log, api.epGetSession)
}

func (api *API) epGetSession(req *http.Request) result.Result {
	s, errResult := api.getSession(req)
	if errResult != nil {
		return *errResult
	}

	return result.OK(sessionModel(s.Info()), "got session %s", s.ID)
}

// HTTPDeleteSession returns a HandlerFunc that ends a game.
func (api *API) HTTPDeleteSession() http.HandlerFunc {
	return httpEndpoint(api.Log, api.epDeleteSession)
}

func (api *API) epDeleteSession(req *http.Request) result.Result {
	s, errResult := api.getSession(req)
	if errResult != nil {
		return *errResult
	}

	if err := api.Sessions.Delete(s.ID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return result.NotFound("session %s already deleted", s.ID)
		}
		return result.InternalServerError("delete session %s: %s", s.ID, err.Error())
	}

	return result.NoContent("deleted session %s", s.ID)
}

// HTTPCreateCommand returns a HandlerFunc that runs one line of player input
// in a game.
func (api *API) HTTPCreateCommand() http.HandlerFunc {
	return httpEndpoint(api.Log, api.epCreateCommand)
}

func (api *API) epCreateCommand(req *http.Request) result.Result {
	s, errResult := api.getSession(req)
	if errResult != nil {
		return *errResult
	}

	var body CommandRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	res, err := s.Command(body.Input)
	if err != nil {
		if errors.Is(err, session.ErrEnded) {
			return result.Conflict("The game has ended", "command to ended session %s", s.ID)
		}
		return result.InternalServerError("command in session %s: %s", s.ID, err.Error())
	}

	resp := CommandModel{
		Output:  res.Output,
		Events:  res.Events,
		Pending: res.Pending.String(),
	}
	if resp.Events == nil {
		resp.Events = []session.Event{}
	}
	return result.OK(resp, "session %s ran %q", s.ID, body.Input)
}
