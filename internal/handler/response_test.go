package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rakshit-singh2/fundraising-backend/internal/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, w errorWriter, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", func(c *gin.Context) { w.writeError(c, err) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestWriteError_Kinds(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{logic.ErrProjectNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", logic.ErrInvalidAddress), http.StatusBadRequest},
		{logic.ErrProjectExists, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		code, body := serveError(t, errorWriter{}, tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.EqualValues(t, tc.code, body["statusCode"])
	}

	_, body := serveError(t, errorWriter{}, logic.ErrInvalidAddress)
	assert.Equal(t, "Invalid Address", body["responseMessage"])
}

func TestWriteError_ExposeErrors(t *testing.T) {
	_, body := serveError(t, errorWriter{exposeErrors: false}, errors.New("db down"))
	assert.Equal(t, "Something went wrong", body["responseMessage"])
	assert.NotContains(t, body, "error")

	_, body = serveError(t, errorWriter{exposeErrors: true}, errors.New("db down"))
	assert.Equal(t, "db down", body["error"])
}

func TestSuccessResponse_OmitsEmptyMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	SuccessResponse(c, "", gin.H{"projects": []string{}})

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, http.StatusOK, body["statusCode"])
	assert.NotContains(t, body, "responseMessage")
	assert.Contains(t, body, "projects")
}
