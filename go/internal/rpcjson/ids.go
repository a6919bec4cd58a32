package rpcjson

import (
	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/drafterr"
)

// ParseUUID parses an id field from a request message.
func ParseUUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, drafterr.InvalidArgument("invalid %s: %q", field, value)
	}
	return id, nil
}
