package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"sellerchat/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()

	OK(w, map[string]string{"message": "done"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"OK","data":{"message":"done"}}`, w.Body.String())
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusUnauthorized, CodeUnauthorized, "missing token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"status":"ERROR","error":{"code":"UNAUTHORIZED","message":"missing token"}}`, w.Body.String())
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"invalid_operation", domain.ErrSelfChatroom, http.StatusBadRequest, "INVALID_OPERATION", "cannot create chatroom with self"},
		{"conflict", domain.ErrChatroomExists, http.StatusConflict, "CONFLICT", "chatroom already exists"},
		{"not_found", domain.ErrChatroomNotFound, http.StatusNotFound, "NOT_FOUND", "chatroom not found or not a member"},
		{"no_messages", domain.ErrNoMessages, http.StatusNotFound, "NOT_FOUND", "no messages"},
		{"wrapped_domain_error", fmt.Errorf("lookup: %w", domain.ErrNoChatrooms), http.StatusNotFound, "NOT_FOUND", "no chatrooms"},
		{"unclassified", errors.New("pq: connection reset"), http.StatusInternalServerError, "INTERNAL", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/v1/chatrooms", nil)

			FromError(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body Envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, StatusError, body.Status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantMessage, body.Error.Message)
		})
	}
}
