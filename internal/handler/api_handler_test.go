package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gourmetgo/internal/dispatch"
	"gourmetgo/internal/mealplan"
	"gourmetgo/internal/model"
	"gourmetgo/internal/payment"
	"gourmetgo/internal/service"
	"gourmetgo/internal/store/file"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *APIHandler {
	t.Helper()
	st := file.NewMemory(zerolog.Nop())
	planner := mealplan.PlannerFunc(func(ctx context.Context, preferred []string, menu []model.MenuItem, budget float64) ([]string, error) {
		return nil, nil
	})
	svc := service.New(st, payment.NewSimulator(zerolog.Nop()), planner, zerolog.Nop())
	return NewAPIHandler(dispatch.New(svc, nil, zerolog.Nop()), zerolog.Nop())
}

func postAction(t *testing.T, h *APIHandler, body string) (*httptest.ResponseRecorder, model.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Dispatch(rec, req)

	var resp model.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestDispatch_InvalidBody(t *testing.T) {
	rec, resp := postAction(t, newTestHandler(t), "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid request body.", resp.Message)
}

func TestDispatch_MissingAction(t *testing.T) {
	rec, resp := postAction(t, newTestHandler(t), `{"payload": {}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Action not specified.", resp.Message)
}

func TestDispatch_UnknownAction(t *testing.T) {
	rec, resp := postAction(t, newTestHandler(t), `{"action": "mystery"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid action: mystery", resp.Message)
}

func TestDispatch_Success(t *testing.T) {
	rec, resp := postAction(t, newTestHandler(t), `{"action": "addCategory", "payload": {"categoryName": "Main Menu"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, resp.Success)
	assert.Equal(t, "Category added.", resp.Message)
}

func TestDispatch_BusinessRejectionIsHTTP200(t *testing.T) {
	h := newTestHandler(t)

	_, resp := postAction(t, h, `{"action": "addCategory", "payload": {"categoryName": "Main Menu"}}`)
	require.True(t, resp.Success)

	rec, resp := postAction(t, h, `{"action": "addCategory", "payload": {"categoryName": "MAIN MENU"}}`)
	assert.Equal(t, http.StatusOK, rec.Code, "a domain refusal is a result, not a transport failure")
	assert.False(t, resp.Success)
	assert.Equal(t, "A category with this name already exists.", resp.Message)
}

// faultingService fails every call with a non-domain error.
type faultingService struct {
	service.CateringService
}

func (faultingService) FetchAllData(ctx context.Context) (*model.Snapshot, error) {
	return nil, context.DeadlineExceeded
}

func TestDispatch_StorageFaultIsHTTP500(t *testing.T) {
	h := NewAPIHandler(dispatch.New(faultingService{}, nil, zerolog.Nop()), zerolog.Nop())

	rec, resp := postAction(t, h, `{"action": "fetchAllData"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "An internal server error occurred.", resp.Message)
}
