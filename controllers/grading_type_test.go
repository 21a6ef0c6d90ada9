package controllers

import (
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"review-portal-api/config"

	"github.com/gin-gonic/gin"
)

func gradingTypeRowSteps() []*queryStep {
	return []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `grading_types`"),
			args:    []driver.Value{int64(5)},
			columns: []string{"grading_type_id", "criteria", "min_score", "max_score", "grading_for"},
			rows:    [][]driver.Value{{int64(5), "Clarity", int64(0), int64(10), "abstract"}},
		},
	}
}

func callUpdateGradingType(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = httptest.NewRequest(http.MethodPut, "/admin/grading-types/5", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	UpdateGradingType(c)
	return w
}

// An update may not invert the score range, even when only one bound is in
// the request body.
func TestUpdateGradingTypeRejectsInvertedRange(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"min above existing max", `{"min_score":20}`},
		{"max below existing min", `{"max_score":-1}`},
		{"both bounds inverted", `{"min_score":9,"max_score":3}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, state, cleanup := newScriptedGormDB(t, gradingTypeRowSteps())
			defer cleanup()

			previous := config.DB
			config.DB = db
			defer func() { config.DB = previous }()

			w := callUpdateGradingType(t, tc.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			// No UPDATE statement may have been issued.
			if err := state.verifyComplete(); err != nil {
				t.Fatalf("%v", err)
			}
		})
	}
}

func TestUpdateGradingTypeAcceptsValidRange(t *testing.T) {
	steps := append(gradingTypeRowSteps(), &queryStep{
		kind:    kindExec,
		pattern: regexp.MustCompile("UPDATE `grading_types`"),
		result:  scriptedResult{rowsAffected: 1},
	})
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	previous := config.DB
	config.DB = db
	defer func() { config.DB = previous }()

	w := callUpdateGradingType(t, `{"min_score":1,"max_score":5}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
