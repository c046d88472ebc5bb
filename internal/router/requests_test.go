package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Debian1107/Reviewed/pkg/models"
)

func bindJSON(t *testing.T, body string, out interface{}) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return binding.JSON.Bind(req, out)
}

func TestCreateCommentRequestRatingBounds(t *testing.T) {
	var req models.CreateCommentRequest

	err := bindJSON(t, `{"itemId":"coffee-maker","content":"hi","rating":99}`, &req)
	assert.Error(t, err, "out-of-range rating must be rejected")

	req = models.CreateCommentRequest{}
	err = bindJSON(t, `{"itemId":"coffee-maker","content":"hi","rating":0}`, &req)
	assert.Error(t, err, "rating below 1 must be rejected")

	req = models.CreateCommentRequest{}
	err = bindJSON(t, `{"itemId":"coffee-maker","content":"hi","rating":5}`, &req)
	require.NoError(t, err)
	require.NotNil(t, req.Rating)
	assert.Equal(t, 5, *req.Rating)

	// Rating stays optional.
	req = models.CreateCommentRequest{}
	err = bindJSON(t, `{"itemId":"coffee-maker","content":"hi"}`, &req)
	require.NoError(t, err)
	assert.Nil(t, req.Rating)
}

func TestCreateCommentRequestRequiredFields(t *testing.T) {
	var req models.CreateCommentRequest
	assert.Error(t, bindJSON(t, `{"content":"hi"}`, &req))

	req = models.CreateCommentRequest{}
	assert.Error(t, bindJSON(t, `{"itemId":"coffee-maker"}`, &req))
}

func TestResetPasswordRequestBinding(t *testing.T) {
	var req models.ResetPasswordRequest

	err := bindJSON(t, `{"password":"hunter22","newpassword":"hunter23"}`, &req)
	require.NoError(t, err)
	assert.Equal(t, "hunter22", req.Password)
	assert.Equal(t, "hunter23", req.NewPassword)

	req = models.ResetPasswordRequest{}
	assert.Error(t, bindJSON(t, `{"password":"hunter22"}`, &req))

	req = models.ResetPasswordRequest{}
	assert.Error(t, bindJSON(t, `{"password":"hunter22","newpassword":"short"}`, &req))
}
