package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriceAPIErrors(t *testing.T) {
	cause := errors.New("database is locked")

	e := ReadFailedError("summary").WithError(cause)
	require.Equal(t, http.StatusInternalServerError, e.Status)
	require.Equal(t, CodeReadFailed, e.Code)
	require.Equal(t, "summary", e.Params["op"])
	require.ErrorIs(t, e, cause)

	e = StoreUnavailableError()
	require.Equal(t, http.StatusServiceUnavailable, e.Status)
	require.Empty(t, e.Params)

	e = UnknownInstrumentError("A", "B")
	require.Equal(t, http.StatusNotFound, e.Status)
	require.Equal(t, "unknown instrument: A,B", e.Message)
	require.Equal(t, []string{"A", "B"}, e.Params["keys"])
}
