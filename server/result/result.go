// Package result contains the results that endpoints return and that are
// written out as API responses.
package result

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the body of every JSON error response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// internalFormat splits the optional trailing internal-message arguments of
// the constructors into a format string and its args.
func internalFormat(def string, internalMsg []interface{}) (string, []interface{}) {
	if len(internalMsg) < 1 {
		return def, nil
	}
	return internalMsg[0].(string), internalMsg[1:]
}

// OK returns a Result containing an HTTP-200 with respObj as the body. If
// internalMsg is given, the first element is a format string for the rest and
// the message is logged but not shown to the client.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	f, a := internalFormat("OK", internalMsg)
	return Response(http.StatusOK, respObj, f, a...)
}

// Created returns a Result containing an HTTP-201 with respObj as the body.
func Created(respObj interface{}, internalMsg ...interface{}) Result {
	f, a := internalFormat("created", internalMsg)
	return Response(http.StatusCreated, respObj, f, a...)
}

// NoContent returns a Result containing an HTTP-204.
func NoContent(internalMsg ...interface{}) Result {
	f, a := internalFormat("no content", internalMsg)
	return Response(http.StatusNoContent, nil, f, a...)
}

// BadRequest returns a Result containing an HTTP-400 whose body gives userMsg.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	f, a := internalFormat("bad request", internalMsg)
	return Err(http.StatusBadRequest, userMsg, f, a...)
}

// NotFound returns a Result containing an HTTP-404.
func NotFound(internalMsg ...interface{}) Result {
	f, a := internalFormat("not found", internalMsg)
	return Err(http.StatusNotFound, "The requested resource was not found", f, a...)
}

// MethodNotAllowed returns a Result containing an HTTP-405 for req.
func MethodNotAllowed(req *http.Request, internalMsg ...interface{}) Result {
	f, a := internalFormat("method not allowed", internalMsg)
	userMsg := fmt.Sprintf("Method %s is not allowed for %s", req.Method, req.URL.Path)
	return Err(http.StatusMethodNotAllowed, userMsg, f, a...)
}

// Conflict returns a Result containing an HTTP-409 whose body gives userMsg.
func Conflict(userMsg string, internalMsg ...interface{}) Result {
	f, a := internalFormat("conflict", internalMsg)
	return Err(http.StatusConflict, userMsg, f, a...)
}

// InternalServerError returns a Result containing an HTTP-500. The client is
// only told that an error occurred.
func InternalServerError(internalMsg ...interface{}) Result {
	f, a := internalFormat("internal server error", internalMsg)
	return Err(http.StatusInternalServerError, "An internal server error occurred", f, a...)
}

// Response returns a successful JSON Result. If status is
// http.StatusNoContent, respObj is not read and may be nil.
func Response(status int, respObj interface{}, internalMsg string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        respObj,
	}
}

// Err returns a JSON error Result.
func Err(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

// TextErr is like Err but writes userMsg as plain text, so it cannot fail to
// marshal.
func TextErr(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        userMsg,
	}
}

// Result is the outcome of an endpoint.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp interface{}
	hdrs [][2]string

	// set by calling PrepareMarshaledResponse.
	respJSONBytes []byte
}

// WithHeader returns a copy of r that also sets the named header.
func (r Result) WithHeader(name, val string) Result {
	cp := r
	cp.hdrs = append(append([][2]string(nil), r.hdrs...), [2]string{name, val})
	return cp
}

// PrepareMarshaledResponse marshals the body if it is JSON. Calling it again
// after a success has no effect.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil {
		return nil
	}

	if r.IsJSON && r.Status != http.StatusNoContent {
		var err error
		r.respJSONBytes, err = json.Marshal(r.resp)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteResponse writes r to w. It panics if r was never populated or its body
// cannot be marshaled; call PrepareMarshaledResponse first to check.
func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}

	if err := r.PrepareMarshaledResponse(); err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	var respBytes []byte
	if r.IsJSON {
		w.Header().Set("Content-Type", "application/json")
		respBytes = r.respJSONBytes
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if r.Status != http.StatusNoContent {
			respBytes = []byte(fmt.Sprintf("%v", r.resp))
		}
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	for i := range r.hdrs {
		w.Header().Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.Status)

	if r.Status != http.StatusNoContent {
		w.Write(respBytes)
	}
}
