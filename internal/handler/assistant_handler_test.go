package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type assistantAskerMock struct {
	question string
	answer   string
	err      error
}

func (m *assistantAskerMock) Ask(ctx context.Context, question string) (string, error) {
	m.question = question
	return m.answer, m.err
}

func TestAssistantHandlerAskSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &assistantAskerMock{answer: "42"}
	handler := &AssistantHandler{service: mockSvc}
	payload := []byte(`{"question":"how many sessions are scheduled?"}`)
	req, _ := http.NewRequest(http.MethodPost, "/ai/ask", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Ask(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "how many sessions are scheduled?", mockSvc.question)
}

func TestAssistantHandlerAskValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &AssistantHandler{service: &assistantAskerMock{}}
	req, _ := http.NewRequest(http.MethodPost, "/ai/ask", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Ask(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
