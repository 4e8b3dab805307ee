package period_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/itayalasas/hcm-pro-sub001/internal/period"
	perioderrors "github.com/itayalasas/hcm-pro-sub001/internal/period/errors"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePeriodService struct {
	createFn       func(ctx context.Context, companyID, actorID string, req period.CreatePeriodRequest) (period.PeriodResponse, error)
	getAllFn       func(ctx context.Context, companyID string) ([]period.PeriodResponse, error)
	getByIDFn      func(ctx context.Context, companyID, id string) (period.PeriodResponse, error)
	getBreakdownFn func(ctx context.Context, companyID, id string) ([]period.DetailResponse, error)
	computeFn      func(ctx context.Context, companyID, actorID, id string) (period.ComputeResultResponse, error)
	transitionFn   func(ctx context.Context, companyID, actorID, id, target string) (period.PeriodResponse, error)
	deleteFn       func(ctx context.Context, companyID, id string) error
	payslipFn      func(ctx context.Context, companyID, periodID, employeeID string) ([]byte, error)
}

func (f *fakePeriodService) Create(ctx context.Context, companyID, actorID string, req period.CreatePeriodRequest) (period.PeriodResponse, error) {
	return f.createFn(ctx, companyID, actorID, req)
}

func (f *fakePeriodService) GetAll(ctx context.Context, companyID string) ([]period.PeriodResponse, error) {
	return f.getAllFn(ctx, companyID)
}

func (f *fakePeriodService) GetByID(ctx context.Context, companyID, id string) (period.PeriodResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}

func (f *fakePeriodService) GetBreakdown(ctx context.Context, companyID, id string) ([]period.DetailResponse, error) {
	return f.getBreakdownFn(ctx, companyID, id)
}

func (f *fakePeriodService) Compute(ctx context.Context, companyID, actorID, id string) (period.ComputeResultResponse, error) {
	return f.computeFn(ctx, companyID, actorID, id)
}

func (f *fakePeriodService) Transition(ctx context.Context, companyID, actorID, id, target string) (period.PeriodResponse, error) {
	return f.transitionFn(ctx, companyID, actorID, id, target)
}

func (f *fakePeriodService) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func (f *fakePeriodService) Payslip(ctx context.Context, companyID, periodID, employeeID string) ([]byte, error) {
	return f.payslipFn(ctx, companyID, periodID, employeeID)
}

func TestPeriodHandler_Create(t *testing.T) {
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	svc := &fakePeriodService{
		createFn: func(ctx context.Context, cid, aid string, req period.CreatePeriodRequest) (period.PeriodResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, aid)
			assert.Equal(t, period.TypeMonthly, req.PeriodType)
			return period.PeriodResponse{ID: uuid.New().String(), Status: period.StatusDraft}, nil
		},
	}

	h := period.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"period_type":"MONTHLY","start_date":"2025-01-01","end_date":"2025-01-31","payment_date":"2025-02-05"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/periods", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", companyID)
	c.Set("user_id", actorID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPeriodHandler_Compute(t *testing.T) {
	companyID := uuid.New().String()
	id := uuid.New().String()

	svc := &fakePeriodService{
		computeFn: func(ctx context.Context, cid, aid, pid string) (period.ComputeResultResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, id, pid)
			return period.ComputeResultResponse{
				Period:        period.PeriodResponse{ID: pid, Status: period.StatusCalculated},
				EmployeeCount: 3,
			}, nil
		},
	}

	h := period.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/periods/"+id+"/compute", nil)
	c.Params = []gin.Param{{Key: "id", Value: id}}
	c.Set("company_id", companyID)
	c.Set("user_id", uuid.New().String())

	h.Compute(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPeriodHandler_Compute_Locked(t *testing.T) {
	svc := &fakePeriodService{
		computeFn: func(ctx context.Context, cid, aid, pid string) (period.ComputeResultResponse, error) {
			return period.ComputeResultResponse{}, perioderrors.ErrPeriodLocked
		},
	}

	h := period.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/periods/123/compute", nil)
	c.Params = []gin.Param{{Key: "id", Value: "123"}}
	c.Set("company_id", uuid.New().String())
	c.Set("user_id", uuid.New().String())

	h.Compute(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
}

func TestPeriodHandler_Transition(t *testing.T) {
	companyID := uuid.New().String()
	id := uuid.New().String()

	svc := &fakePeriodService{
		transitionFn: func(ctx context.Context, cid, aid, pid, target string) (period.PeriodResponse, error) {
			assert.Equal(t, period.StatusApproved, target)
			return period.PeriodResponse{ID: pid, Status: target}, nil
		},
	}

	h := period.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"target":"APPROVED"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/periods/"+id+"/transition", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = []gin.Param{{Key: "id", Value: id}}
	c.Set("company_id", companyID)
	c.Set("user_id", uuid.New().String())

	h.Transition(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPeriodHandler_Payslip(t *testing.T) {
	companyID := uuid.New().String()
	id := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakePeriodService{
		payslipFn: func(ctx context.Context, cid, pid, eid string) ([]byte, error) {
			assert.Equal(t, employeeID, eid)
			return []byte("%PDF-1.4"), nil
		},
	}

	h := period.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/periods/"+id+"/payslips/"+employeeID, nil)
	c.Params = []gin.Param{{Key: "id", Value: id}, {Key: "employeeId", Value: employeeID}}
	c.Set("company_id", companyID)

	h.Payslip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-1.4"))
}
