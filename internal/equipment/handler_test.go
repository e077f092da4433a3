// AngelaMos | 2026
// handler_test.go

package equipment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driftline/diveadmin/internal/equipment"
	"github.com/driftline/diveadmin/internal/middleware"
)

func TestCreateResponseNamesMissingDiver(t *testing.T) {
	repo := newFakeRepo()
	repo.diverOwners["diver-a"] = "user-1"
	h := equipment.NewHandler(equipment.NewService(repo))

	body := `{"diver_id":"7b5a6c9e-0000-4000-8000-00000000dead","equipment_type":"BCD"}`
	req := httptest.NewRequest(http.MethodPost, "/equipment", strings.NewReader(body))
	req = req.WithContext(
		context.WithValue(req.Context(), middleware.UserIDKey, "user-1"),
	)

	rec := httptest.NewRecorder()
	h.Create(rec, req)

	// The missing resource is the diver, not the equipment record.
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "diver")
	assert.NotContains(t, rec.Body.String(), "equipment not found")
}
