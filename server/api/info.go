package api

import (
	"net/http"

	"github.com/dekarrin/darkstar/internal/version"
	"github.com/dekarrin/darkstar/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
func (api *API) HTTPGetInfo() http.HandlerFunc {
	return httpEndpoint(api.Log, api.epGetInfo)
}

func (api *API) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.DarkStar = version.Current
	resp.Sessions = api.Sessions.Len()

	return result.OK(resp, "got API info")
}
