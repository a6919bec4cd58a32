// Package rpcjson serves connect unary procedures over plain Go structs
// encoded as JSON, and maps domain errors onto connect codes.
package rpcjson

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Codec replaces connect's protobuf-JSON codec with encoding/json so
// request and response messages can be ordinary structs.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// ServiceHandler groups the procedures of one service under its path prefix.
type ServiceHandler struct {
	name string
	mux  *http.ServeMux
	opts []connect.HandlerOption
}

// NewServiceHandler creates a handler for the fully qualified service name,
// e.g. "cubedraft.draft.v1.DraftService".
func NewServiceHandler(name string, opts ...connect.HandlerOption) *ServiceHandler {
	return &ServiceHandler{
		name: name,
		mux:  http.NewServeMux(),
		opts: append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...),
	}
}

// Procedure returns the full procedure path for method.
func (s *ServiceHandler) Procedure(method string) string {
	return fmt.Sprintf("/%s/%s", s.name, method)
}

// Handle registers a unary method on s.
func Handle[Req, Res any](s *ServiceHandler, method string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error)) {
	procedure := s.Procedure(method)
	s.mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, s.opts...))
}

// Handler returns the path prefix and handler to mount on a server mux.
func (s *ServiceHandler) Handler() (string, http.Handler) {
	return "/" + strings.Trim(s.name, "/") + "/", s.mux
}

// NewClient builds a unary client for a procedure served by a ServiceHandler.
func NewClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts ...connect.ClientOption) *connect.Client[Req, Res] {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+procedure, opts...)
}
