// Package api provides the HTTP API endpoints of the Dark Star session
// server.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dekarrin/darkstar/server/result"
	"github.com/dekarrin/darkstar/server/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// PathPrefix is the prefix of all paths in the API. Routers should mount
	// the router returned by Router at this path.
	PathPrefix = "/api/v1"
)

var errMalformedBody = errors.New("malformed JSON in request")

// API holds everything the endpoints need. To use API, create one and mount
// the result of Router, or assign its HTTP* methods as handlers directly.
type API struct {
	// Sessions holds every running game.
	Sessions *session.Store

	// Log receives one entry per response and one per websocket connection.
	Log logrus.FieldLogger

	// PingInterval is how often event subscribers are pinged.
	PingInterval time.Duration

	// PongWait is how long an event subscriber may go without answering a
	// ping before it is disconnected. It must be longer than PingInterval.
	PongWait time.Duration

	upgrader websocket.Upgrader
}

// New creates an API over the given store.
func New(sessions *session.Store, log logrus.FieldLogger) *API {
	return &API{
		Sessions:     sessions,
		Log:          log,
		PingInterval: defaultPingInterval,
		PongWait:     defaultPongWait,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Router returns a router with every endpoint of the API. Paths are relative
// to PathPrefix.
func (api *API) Router() chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(api.HTTPMethodNotAllowed())
	r.NotFound(httpEndpoint(api.Log, func(*http.Request) result.Result {
		return result.NotFound()
	}))

	r.Get("/info", api.HTTPGetInfo())
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", api.HTTPCreateSession())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", api.HTTPGetSession())
			r.Delete("/", api.HTTPDeleteSession())
			r.Post("/commands", api.HTTPCreateCommand())
			r.Get("/events", api.HTTPGetEvents())
		})
	})

	return r
}

// HTTPMethodNotAllowed returns a HandlerFunc that responds with an HTTP-405.
func (api *API) HTTPMethodNotAllowed() http.HandlerFunc {
	return httpEndpoint(api.Log, func(req *http.Request) result.Result {
		return result.MethodNotAllowed(req)
	})
}

// getSession looks up the session named by the id URL parameter. If it cannot
// be found, the returned Result should be sent instead.
func (api *API) getSession(req *http.Request) (*session.Session, *result.Result) {
	id, err := getURLParam(req, "id", uuid.Parse)
	if err != nil {
		r := result.NotFound("bad session ID: %s", err.Error())
		return nil, &r
	}

	s, err := api.Sessions.Get(id)
	if err != nil {
		var r result.Result
		if errors.Is(err, session.ErrNotFound) {
			r = result.NotFound("no session %s", id)
		} else {
			r = result.InternalServerError("get session %s: %s", id, err.Error())
		}
		return nil, &r
	}
	return s, nil
}

func getURLParam[E any](r *http.Request, key string, parse func(string) (E, error)) (val E, err error) {
	valStr := chi.URLParam(r, key)
	if valStr == "" {
		return val, fmt.Errorf("parameter %q does not exist", key)
	}

	return parse(valStr)
}

// v must be a pointer to a type. Returns an error that wraps errMalformedBody
// if the problem was with the JSON itself.
func parseJSON(req *http.Request, v interface{}) error {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return fmt.Errorf("%w: %s", errMalformedBody, err.Error())
	}

	return nil
}

// EndpointFunc produces the Result of a request.
type EndpointFunc func(req *http.Request) result.Result

func httpEndpoint(log logrus.FieldLogger, ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(log, w, req)
		r := ep(req)

		// never populated; output the error directly without reading it
		if r.Status == 0 {
			logHTTPResponse(log, logrus.ErrorLevel, req, http.StatusInternalServerError, "endpoint result was never populated")
			http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
			return
		}

		// WriteResponse panics on a marshal failure, so check it first.
		if err := r.PrepareMarshaledResponse(); err != nil {
			r = result.Err(http.StatusInternalServerError, "An internal server error occurred", "could not marshal JSON response: %s", err.Error())
		}

		level := logrus.InfoLevel
		if r.IsErr {
			level = logrus.ErrorLevel
			if r.Status < 500 {
				level = logrus.WarnLevel
			}
		}
		logHTTPResponse(log, level, req, r.Status, r.InternalMsg)

		r.WriteResponse(w)
	}
}

func panicTo500(log logrus.FieldLogger, w http.ResponseWriter, req *http.Request) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			"panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack()),
		)
		logHTTPResponse(log, logrus.ErrorLevel, req, r.Status, r.InternalMsg)
		r.WriteResponse(w)
	}
}

func logHTTPResponse(log logrus.FieldLogger, level logrus.Level, req *http.Request, respStatus int, msg string) {
	// the ephemeral port on the client end is not useful
	remoteIP := req.RemoteAddr
	if idx := strings.LastIndex(remoteIP, ":"); idx >= 0 {
		remoteIP = remoteIP[:idx]
	}

	entry := log.WithFields(logrus.Fields{
		"remote": remoteIP,
		"method": req.Method,
		"path":   req.URL.Path,
		"status": respStatus,
	})

	switch level {
	case logrus.ErrorLevel:
		entry.Error(msg)
	case logrus.WarnLevel:
		entry.Warn(msg)
	default:
		entry.Info(msg)
	}
}
