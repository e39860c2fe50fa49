package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"rapport-backend/internal/render"
	"rapport-backend/internal/schema"
	"rapport-backend/internal/tablestore"
	"rapport-backend/internal/testutil/storemock"
	ucregistry "rapport-backend/internal/usecase/registry"
	ucreport "rapport-backend/internal/usecase/report"
	ucsignature "rapport-backend/internal/usecase/signature"
)

// -------- helpers --------

type env struct {
	e     *echo.Echo
	store *storemock.Store

	registry  *ucregistry.Usecase
	reports   *ucreport.Usecase
	signature *ucsignature.Usecase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := storemock.New()
	now := func() time.Time { return time.Date(2024, 3, 8, 17, 0, 0, 0, time.UTC) }
	m := tablestore.New(s, nil, &schema.Normalizer{Now: now})

	e := echo.New()
	e.Validator = NewValidator()
	return &env{
		e:         e,
		store:     s,
		registry:  ucregistry.NewUsecase(m, 4),
		reports:   ucreport.NewUsecase(m).WithClock(now),
		signature: ucsignature.NewUsecase(m, render.NewTextRenderer(), "Fugentechnik Muster AG").WithClock(now),
	}
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// do runs one request through a bare echo context bound to handler fn.
func (ev *env) do(t *testing.T, method, path string, body *bytes.Reader, fn echo.HandlerFunc, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *stdhttp.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := ev.e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if err := fn(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

// -------- health --------

func TestHealth(t *testing.T) {
	ev := newEnv(t)
	rec := ev.do(t, stdhttp.MethodGet, "/health", nil, NewHandler().Health)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("code=%d", rec.Code)
	}
}
